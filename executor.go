package bb

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Process is a handle to a spawned process. It must be waited on exactly
// once.
type Process interface {
	Pid() int
	Wait() (int, error)
}

// Spawner starts processes. The environment entries in envp are applied
// on top of the inherited environment of the child.
type Spawner interface {
	Spawn(argv, envp []string) (Process, error)
}

// OSSpawner starts real operating system processes that share the
// parent's standard streams.
type OSSpawner struct{}

type osProcess struct {
	cmd    *exec.Cmd
	waited bool
}

func (OSSpawner) Spawn(argv, envp []string) (Process, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	// #nosec G204 - running user-defined commands is the point of a build script
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), envp...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = sysProcAttr()
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd}, nil
}

func (p *osProcess) Pid() int {
	if p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

func (p *osProcess) Wait() (int, error) {
	if p.waited {
		return ExitFailure, ErrAlreadyWaited
	}
	p.waited = true
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitFailure, err
	}
	return exitStatus(p.cmd.ProcessState)
}

// RunAsync expands cmd with values, logs it and starts it without waiting.
// Any failure to start the process is fatal.
func (c *Context) RunAsync(cmd *Command, values ...any) Process {
	line, env, err := cmd.Expand(values...)
	if err != nil {
		c.Raise(EXPAND_FAILED, cmd.Args(), err)
	}
	c.log.Infof("Executing: %s", line)
	if cmd.EnvCount() > 0 {
		c.log.Infof("- with environment: %s", env)
	}

	argv := Tokenize(line)
	if len(argv) == 0 || argv[0] == "" {
		c.Raise(EMPTY_COMMAND)
	}
	var envp []string
	if cmd.EnvCount() > 0 {
		envp = Tokenize(env)
	}

	proc, err := c.spawner.Spawn(argv, envp)
	if err != nil {
		c.Raise(SPAWN_FAILED, line, err)
	}
	c.log.Infof("- as process: %d", proc.Pid())
	return proc
}

// Wait blocks until proc exits and returns its exit status. When the
// status cannot be observed, it warns and returns ExitFailure instead of
// terminating.
func (c *Context) Wait(proc Process) int {
	code, err := proc.Wait()
	if err != nil {
		c.log.Warnf("Could not wait for child process %d: %v", proc.Pid(), err)
		c.log.Info("Assuming child process failed")
		return ExitFailure
	}
	return code
}

// Run runs cmd to completion and returns its exit status.
func (c *Context) Run(cmd *Command, values ...any) int {
	return c.Wait(c.RunAsync(cmd, values...))
}

func signalError(sig fmt.Stringer, name string) error {
	if name == "" {
		return fmt.Errorf("terminated by signal %v", sig)
	}
	return fmt.Errorf("terminated by %s (%v)", name, sig)
}
