package bb

import "strings"

// Command is one not-yet-executed instruction: an argument template and an
// environment template, each a space-joined list of tokens that may embed
// placeholders such as %s. Placeholders are filled in when the command is
// run, so a single Command can be run many times with different values.
type Command struct {
	argc int
	envc int
	args strings.Builder
	envs strings.Builder
}

// NewCommand returns an empty Command.
func NewCommand() *Command {
	return &Command{}
}

func appendTokens(count *int, buf *strings.Builder, tokens []string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(tok)
		*count++
	}
}

func escapeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ReplaceAll(tok, "%", "%%")
	}
	return out
}

// AppendArgs appends argument tokens. Tokens are stored unexpanded.
func (c *Command) AppendArgs(tokens ...string) *Command {
	appendTokens(&c.argc, &c.args, tokens)
	return c
}

// AppendEnvs appends NAME=value environment tokens. Tokens are stored
// unexpanded.
func (c *Command) AppendEnvs(tokens ...string) *Command {
	appendTokens(&c.envc, &c.envs, tokens)
	return c
}

// AppendLiteralArgs appends argument tokens that expand to themselves,
// even when they contain a percent sign.
func (c *Command) AppendLiteralArgs(tokens ...string) *Command {
	return c.AppendArgs(escapeTokens(tokens)...)
}

// AppendLiteralEnvs is the environment counterpart of AppendLiteralArgs.
func (c *Command) AppendLiteralEnvs(tokens ...string) *Command {
	return c.AppendEnvs(escapeTokens(tokens)...)
}

func (c *Command) ArgCount() int { return c.argc }
func (c *Command) EnvCount() int { return c.envc }

// Args returns the raw argument template.
func (c *Command) Args() string { return c.args.String() }

// Envs returns the raw environment template.
func (c *Command) Envs() string { return c.envs.String() }

func (c *Command) String() string { return c.args.String() }

// Reset releases both templates and zeroes the counters.
func (c *Command) Reset() {
	c.argc, c.envc = 0, 0
	c.args.Reset()
	c.envs.Reset()
}

// Expand fills the placeholders of both templates. The argument template
// consumes values first and the environment template takes the rest.
func (c *Command) Expand(values ...any) (line, env string, err error) {
	argTmpl := ParseTemplate(c.Args())
	envTmpl := ParseTemplate(c.Envs())
	n := argTmpl.Placeholders()
	if n > len(values) {
		n = len(values)
	}
	if line, err = argTmpl.Expand(values[:n]...); err != nil {
		return "", "", err
	}
	if env, err = envTmpl.Expand(values[n:]...); err != nil {
		return "", "", err
	}
	return line, env, nil
}
