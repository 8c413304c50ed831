/*
Package bb is a self-hosting build-script runtime.

A build script is an ordinary Go program, conventionally bb.go, whose main
function hands its build logic to bb:

	package main

	import "github.com/bbuild/bb"

	func build(ctx *bb.Context, args []string) int {
		cc := bb.NewCommand().AppendArgs("cc", "-O2", "-c", "%s", "-o", "%s")
		for _, src := range []string{"a.c", "b.c"} {
			if ctx.Run(cc, src, src+".o") != 0 {
				return 1
			}
		}
		return 0
	}

	func main() { bb.Main(build) }

# Self-rebuild

On start, Main compares the modification time of the running binary with
that of its source. When the source is not older (ties count as stale) it
runs

	<compiler> <rebuild-flags> <source>

then replays the original command line against the fresh binary and exits
with the replay's status. The replay happens at most once per invocation
chain. When the binary is up to date, the build function runs and the
binary's modification time is set to the current time afterwards.

# Reference time

The binary's modification time becomes the reference time of the run,
available as Context.ReferenceTime and used by Context.Modified. A rebuilt
and relaunched process inherits its parent's reference time through
BB_REFERENCE_TIME (Unix nanoseconds), which may also be set by the caller.
BB_MODIFY_ALL=1 makes every file count as modified. The BB_ prefix is
configurable.

# Commands

A Command holds an argument template and an environment template. Tokens
are joined by single spaces and may contain placeholders such as %s or %d,
which are only filled in when the command runs:

	cp := bb.NewCommand().AppendArgs("cp", "%s", "%s")
	ctx.Run(cp, "a.txt", "b.txt")

The expanded line is split on single spaces without any quoting, so an
argument cannot contain a space. Failing to start a process is fatal;
failing to observe its exit status only warns and reports ExitFailure.

# Configuration

Compiler, rebuild flags, source, output and environment prefix live in
Config. Scripts can embed a bb.yaml and pass it through WithConfig so the
configuration is fixed when the script is compiled. Building with
-tags bb_nocolor disables coloured diagnostics, and the default rebuild
flags carry the tag over to the rebuilt binary.
*/
package bb
