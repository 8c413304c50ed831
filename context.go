package bb

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Context carries everything the build logic needs from the bootstrap.
// It is built once at startup and not modified afterwards.
type Context struct {
	cfg       Config
	refTime   time.Time
	modifyAll bool
	args      []string

	log      *Logger
	spawner  Spawner
	exit     func(int)
	getenv   func(string) (string, bool)
	unsetenv func(string) error
	now      Clock
}

type options struct {
	cfg      Config
	spawner  Spawner
	stdout   io.Writer
	stderr   io.Writer
	exit     func(int)
	getenv   func(string) (string, bool)
	unsetenv func(string) error
	now      Clock
	noColor  bool
}

// Option customises Run and NewContext.
type Option func(*options)

func WithConfig(cfg Config) Option { return func(o *options) { o.cfg = cfg } }

func WithSpawner(s Spawner) Option { return func(o *options) { o.spawner = s } }

// WithOutput redirects the diagnostic streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) { o.stdout, o.stderr = stdout, stderr }
}

// WithExit replaces os.Exit for fatal diagnostics.
func WithExit(exit func(int)) Option { return func(o *options) { o.exit = exit } }

// WithEnv replaces os.LookupEnv.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) { o.getenv = lookup }
}

// WithUnsetenv replaces os.Unsetenv, used to drop variables that must not
// reach grandchildren.
func WithUnsetenv(unset func(string) error) Option {
	return func(o *options) { o.unsetenv = unset }
}

func WithClock(now Clock) Option { return func(o *options) { o.now = now } }

func WithNoColor() Option { return func(o *options) { o.noColor = true } }

func buildOptions(opts []Option) options {
	o := options{
		cfg:      DefaultConfig(),
		spawner:  OSSpawner{},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		exit:     os.Exit,
		getenv:   os.LookupEnv,
		unsetenv: os.Unsetenv,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newContext(o options, args []string) *Context {
	return &Context{
		cfg:      o.cfg,
		args:     args,
		log:      NewLogger(o.stdout, o.stderr, !o.noColor && !o.cfg.NoColor),
		spawner:  o.spawner,
		exit:     o.exit,
		getenv:   o.getenv,
		unsetenv: o.unsetenv,
		now:      o.now,
	}
}

// NewContext returns a Context for running commands outside the bootstrap,
// as tools and tests do. The reference time is taken from the environment
// when set, otherwise it is the current time.
func NewContext(args []string, opts ...Option) *Context {
	o := buildOptions(opts)
	c := newContext(o, args)
	c.refTime = o.now()
	c.loadReferenceEnv()
	return c
}

// loadReferenceEnv applies the inherited reference time and the
// modify-all switch. Malformed values are fatal.
func (c *Context) loadReferenceEnv() (inherited bool) {
	if v, ok := c.getenv(c.cfg.ReferenceTimeEnv()); ok && v != "" {
		t, err := ParseReferenceTime(v)
		if err != nil {
			c.Raise(PARAM_MALFORMED, err, c.cfg.ReferenceTimeEnv()+" must be an integer timestamp in nanoseconds")
		}
		c.refTime = t
		inherited = true
	}
	if v, ok := c.getenv(c.cfg.ModifyAllEnv()); ok && v != "" {
		b, err := ParseBool(v)
		if err != nil {
			c.Raise(PARAM_MALFORMED, err, c.cfg.ModifyAllEnv()+" must be a boolean")
		}
		c.modifyAll = b
	}
	return inherited
}

func (c *Context) Config() Config { return c.cfg }

// ReferenceTime is the moment the running build logic was built or last
// validated. Files modified at or after it count as modified.
func (c *Context) ReferenceTime() time.Time { return c.refTime }

// ModifyAll reports whether every file is treated as modified.
func (c *Context) ModifyAll() bool { return c.modifyAll }

// Args returns the program arguments without the program name.
func (c *Context) Args() []string { return append([]string(nil), c.args...) }

func (c *Context) Logger() *Logger { return c.log }

func (c *Context) Infof(format string, args ...any)  { c.log.Infof(format, args...) }
func (c *Context) Warnf(format string, args ...any)  { c.log.Warnf(format, args...) }
func (c *Context) Errorf(format string, args ...any) { c.log.Errorf(format, args...) }

// Fatalf prints a critical diagnostic and exits with ExitFailure.
func (c *Context) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.log.Crit(msg)
	c.exit(ExitFailure)
	panic(&FatalError{Message: msg})
}

// ModTime returns the modification time of path. Failure is fatal.
func (c *Context) ModTime(path string) time.Time {
	t, err := fileModTime(path)
	if err != nil {
		c.Raise(MODTIME_FAILED, path, err)
	}
	return t
}

// Modified reports whether path was modified at or after the reference
// time, or whether everything is forced to count as modified.
func (c *Context) Modified(path string) bool {
	if c.modifyAll {
		return true
	}
	return !c.ModTime(path).Before(c.refTime)
}

// NeedsUpdate reports whether target is missing or any of deps is not
// older than it.
func (c *Context) NeedsUpdate(target string, deps ...string) bool {
	if c.modifyAll {
		return true
	}
	t, err := fileModTime(target)
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	if err != nil {
		c.Raise(MODTIME_FAILED, target, err)
	}
	for _, dep := range deps {
		if Stale(c.ModTime(dep), t) {
			return true
		}
	}
	return false
}
