package bb

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Stale reports whether a binary built at bin must be rebuilt from a
// source modified at src. Equal times count as stale.
func Stale(src, bin time.Time) bool {
	return !src.Before(bin)
}

// Main runs the bootstrap protocol for the current process and exits with
// the resulting code. A build script's main function is usually just
//
//	func main() { bb.Main(build) }
func Main(build BuildFunc, opts ...Option) {
	os.Exit(Run(os.Args, build, opts...))
}

type bootstrap struct {
	ctx    *Context
	argv   []string
	build  BuildFunc
	binary string
	source string
	binMod time.Time
	srcMod time.Time
	// set when the reference time came from the environment
	inherited bool
	code      int
}

// Run executes the bootstrap protocol with argv as the process arguments.
// When the source is not older than the binary it rebuilds, replays argv
// against the fresh binary and returns the replay's exit code without
// calling build. Otherwise it calls build, touches the binary and returns
// build's result.
func Run(argv []string, build BuildFunc, opts ...Option) int {
	o := buildOptions(opts)
	if len(argv) == 0 {
		argv = []string{o.cfg.Output}
	}
	b := &bootstrap{
		ctx:   newContext(o, argv[1:]),
		argv:  argv,
		build: build,
	}
	if err := o.cfg.Validate(); err != nil {
		b.ctx.Raise(CONFIG_INVALID, err)
	}

	state := StateCheck
	for {
		next := b.step(state)
		if state.Terminal() {
			return b.code
		}
		state = next
	}
}

func (b *bootstrap) step(state State) State {
	ctx := b.ctx
	switch state {
	case StateCheck:
		b.binary = resolveBinary(b.argv[0])
		b.source = ctx.cfg.Source
		b.binMod = ctx.ModTime(b.binary)
		for _, src := range ctx.cfg.SourceFiles() {
			if mod := ctx.ModTime(src); mod.After(b.srcMod) {
				b.srcMod = mod
			}
		}
		ctx.refTime = b.binMod
		b.inherited = ctx.loadReferenceEnv()
		relaunched := b.consumeRelaunched()
		if !Stale(b.srcMod, b.binMod) {
			return StateUpToDate
		}
		if relaunched {
			ctx.Raise(STILL_STALE, b.binary, b.source)
		}
		return StateStale

	case StateStale:
		return StateRebuilding

	case StateRebuilding:
		ctx.log.Infof("Rebuilding %s...", b.source)
		if err := prepareRebuild(b.binary); err != nil {
			ctx.log.Warnf("Could not move %s out of the way: %v", b.binary, err)
		}
		if ctx.Run(ctx.cfg.RebuildCommand()) != ExitSuccess {
			if err := restoreRebuild(b.binary); err != nil {
				ctx.log.Warnf("Could not restore %s: %v", b.binary, err)
			}
			ctx.Raise(REBUILD_FAILED, b.source)
		}
		return StateRelaunching

	case StateRelaunching:
		b.relaunch()
		return StateRelaunching

	case StateUpToDate:
		cleanupRebuild(b.binary)
		return StateRunning

	case StateRunning:
		b.code = b.build(ctx, ctx.Args())
		return StateTouching

	case StateTouching:
		if err := touchFile(b.binary, ctx.now()); err != nil {
			ctx.log.Warnf("Could not update modification time of %s: %v", b.binary, err)
		}
		return StateDone
	}
	return StateDone
}

// consumeRelaunched reports whether this process is the replay of a
// rebuild and removes the marker so processes started by the build logic
// do not inherit it.
func (b *bootstrap) consumeRelaunched() bool {
	ctx := b.ctx
	name := ctx.cfg.RelaunchedEnv()
	if v, ok := ctx.getenv(name); !ok || v == "" {
		return false
	}
	if err := ctx.unsetenv(name); err != nil {
		ctx.log.Warnf("Could not clear %s: %v", name, err)
	}
	return true
}

// relaunch replays the original arguments against the rebuilt binary. The
// child inherits the reference time of this process unless one was
// already inherited, and is marked so it never rebuilds again.
func (b *bootstrap) relaunch() {
	ctx := b.ctx
	replay := NewCommand().AppendLiteralArgs(b.argv...)
	replay.AppendLiteralEnvs(ctx.cfg.RelaunchedEnv() + "=1")
	if !b.inherited {
		replay.AppendLiteralEnvs(ctx.cfg.ReferenceTimeEnv() + "=" + FormatReferenceTime(ctx.refTime))
	}
	b.code = ctx.Run(replay)
}

// resolveBinary finds the file behind argv[0] the way execvp would.
func resolveBinary(argv0 string) string {
	if strings.ContainsRune(argv0, filepath.Separator) || strings.ContainsRune(argv0, '/') {
		return argv0
	}
	if p, err := exec.LookPath(argv0); err == nil {
		return p
	}
	return argv0
}
