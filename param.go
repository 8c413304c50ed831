package bb

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ParamSet declares the parameters of a build script. Values come from
// --long-name[=value], -x[value] or, when neither is given, from the
// environment variable derived from the long name.
type ParamSet struct {
	ctx      *Context
	flags    *pflag.FlagSet
	required []string
	parsed   bool
}

// Params returns an empty ParamSet over the context's arguments.
func (c *Context) Params() *ParamSet {
	fs := pflag.NewFlagSet(c.cfg.Output, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return &ParamSet{ctx: c, flags: fs}
}

func (p *ParamSet) String(long, short, def, help string) *string {
	return p.flags.StringP(long, short, def, p.help(long, help))
}

func (p *ParamSet) Int(long, short string, def int, help string) *int {
	return p.flags.IntP(long, short, def, p.help(long, help))
}

func (p *ParamSet) Float(long, short string, def float64, help string) *float64 {
	return p.flags.Float64P(long, short, def, p.help(long, help))
}

func (p *ParamSet) Bool(long, short string, def bool, help string) *bool {
	return p.flags.BoolP(long, short, def, p.help(long, help))
}

// RequiredString declares a string parameter without a default. Parse
// fails fatally when neither the flag nor its variable is set.
func (p *ParamSet) RequiredString(long, short, help string) *string {
	p.required = append(p.required, long)
	return p.flags.StringP(long, short, "", p.help(long, help)+" (required)")
}

func (p *ParamSet) help(long, help string) string {
	return fmt.Sprintf("%s [$%s]", help, p.ctx.cfg.ParamEnv(long))
}

// Usage is the generated help text.
func (p *ParamSet) Usage() string {
	return "Usage of " + p.flags.Name() + ":\n" + p.flags.FlagUsages()
}

// Parse reads the context's arguments and the environment. --help prints
// the usage and exits successfully; malformed values and missing required
// parameters are fatal.
func (p *ParamSet) Parse() {
	if p.parsed {
		return
	}
	p.parsed = true
	if err := p.parse(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			p.ctx.log.Info(strings.TrimRight(p.Usage(), "\n"))
			p.ctx.exit(ExitSuccess)
			panic(&FatalError{Message: "help requested"})
		}
		var missing *missingParamError
		if errors.As(err, &missing) {
			p.ctx.Raise(PARAM_MISSING, missing.name, p.Usage())
		}
		p.ctx.Raise(PARAM_MALFORMED, err, p.Usage())
	}
}

type missingParamError struct{ name string }

func (e *missingParamError) Error() string { return "missing required parameter --" + e.name }

func (p *ParamSet) parse() error {
	if err := p.flags.Parse(p.ctx.args); err != nil {
		return err
	}
	var envErr error
	p.flags.VisitAll(func(f *pflag.Flag) {
		if envErr != nil || f.Changed {
			return
		}
		env := p.ctx.cfg.ParamEnv(f.Name)
		v, ok := p.ctx.getenv(env)
		if !ok || v == "" {
			return
		}
		if err := p.flags.Set(f.Name, v); err != nil {
			envErr = fmt.Errorf("$%s: %w", env, err)
		}
	})
	if envErr != nil {
		return envErr
	}
	for _, name := range p.required {
		if !p.flags.Changed(name) {
			return &missingParamError{name: name}
		}
	}
	return nil
}

// Rest returns the positional arguments left after Parse.
func (p *ParamSet) Rest() []string {
	return p.flags.Args()
}
