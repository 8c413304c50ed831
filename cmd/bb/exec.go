package main

import (
	"fmt"
	"strings"

	"github.com/agilira/orpheus/pkg/orpheus"

	"github.com/bbuild/bb"
)

func buildCommand(tmpl, env string) *bb.Command {
	cmd := bb.NewCommand().AppendArgs(tmpl)
	if env != "" {
		cmd.AppendEnvs(env)
	}
	return cmd
}

func toValues(args []string) []any {
	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a
	}
	return values
}

// expandTokens runs the template through expansion and tokenization
// without starting anything.
func expandTokens(tmpl, env string, args []string) (argv, envp []string, err error) {
	line, envLine, err := buildCommand(tmpl, env).Expand(toValues(args)...)
	if err != nil {
		return nil, nil, err
	}
	return bb.Tokenize(line), bb.Tokenize(envLine), nil
}

func execCommand(ctx *orpheus.Context) error {
	if len(ctx.Args) == 0 {
		return orpheus.ExecutionError("exec", "a command template is required")
	}
	tmpl, values := ctx.Args[0], ctx.Args[1:]
	env := ctx.GetFlagString("env")

	if ctx.GetFlagBool("dry-run") {
		argv, envp, err := expandTokens(tmpl, env, values)
		if err != nil {
			return orpheus.ExecutionError("exec", err.Error())
		}
		for i, tok := range argv {
			fmt.Printf("argv[%d] = %q\n", i, tok)
		}
		if len(envp) > 0 {
			fmt.Printf("env: %s\n", strings.Join(envp, " "))
		}
		return nil
	}

	var opts []bb.Option
	if ctx.GetFlagBool("no-color") {
		opts = append(opts, bb.WithNoColor())
	}
	run := bb.NewContext(nil, opts...)
	exitCode = run.Run(buildCommand(tmpl, env), toValues(values)...)
	return nil
}
