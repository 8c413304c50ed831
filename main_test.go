package bb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ===== TEST HARNESS =====

type spawnCall struct {
	argv []string
	envp []string
}

type fakeProcess struct {
	pid    int
	code   int
	err    error
	waited int
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Wait() (int, error) {
	p.waited++
	if p.waited > 1 {
		return ExitFailure, ErrAlreadyWaited
	}
	return p.code, p.err
}

// fakeSpawner records every spawn and lets the test decide the outcome.
type fakeSpawner struct {
	calls    []spawnCall
	spawnErr error
	result   func(argv, envp []string) (int, error)
}

func (s *fakeSpawner) Spawn(argv, envp []string) (Process, error) {
	s.calls = append(s.calls, spawnCall{
		argv: append([]string(nil), argv...),
		envp: append([]string(nil), envp...),
	})
	if s.spawnErr != nil {
		return nil, s.spawnErr
	}
	p := &fakeProcess{pid: 1000 + len(s.calls)}
	if s.result != nil {
		p.code, p.err = s.result(argv, envp)
	}
	return p, nil
}

type harness struct {
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	exits   []int
	env     map[string]string
	spawner *fakeSpawner
}

func newHarness() *harness {
	return &harness{env: map[string]string{}, spawner: &fakeSpawner{}}
}

func (h *harness) lookupEnv(key string) (string, bool) {
	v, ok := h.env[key]
	return v, ok
}

func (h *harness) unsetenv(key string) error {
	delete(h.env, key)
	return nil
}

func (h *harness) options(extra ...Option) []Option {
	opts := []Option{
		WithOutput(&h.stdout, &h.stderr),
		WithNoColor(),
		WithEnv(h.lookupEnv),
		WithUnsetenv(h.unsetenv),
		WithExit(func(code int) { h.exits = append(h.exits, code) }),
		WithSpawner(h.spawner),
	}
	return append(opts, extra...)
}

func (h *harness) context(args []string, extra ...Option) *Context {
	return NewContext(args, h.options(extra...)...)
}

// expectFatal runs fn and returns the FatalError it panicked with.
func expectFatal(t *testing.T, fn func()) *FatalError {
	t.Helper()
	var fe *FatalError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			var ok bool
			if fe, ok = r.(*FatalError); !ok {
				panic(r)
			}
		}()
		fn()
	}()
	if fe == nil {
		t.Fatalf("expected a fatal error, got none")
	}
	return fe
}

// project creates a source and a binary in a temp dir with the given
// modification times and returns a config pointing at them.
func project(t *testing.T, srcMod, binMod time.Time) (Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Source = filepath.Join(dir, "bb.go")
	cfg.Output = filepath.Join(dir, "bb")
	require.NoError(t, os.WriteFile(cfg.Source, []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg.Output, []byte("binary"), 0o755))
	require.NoError(t, os.Chtimes(cfg.Source, srcMod, srcMod))
	require.NoError(t, os.Chtimes(cfg.Output, binMod, binMod))
	return cfg, cfg.Output
}

var epoch = time.Unix(1_700_000_000, 0)
