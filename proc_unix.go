//go:build unix

package bb

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func sysProcAttr() *syscall.SysProcAttr { return nil }

func exitStatus(state *os.ProcessState) (int, error) {
	if state == nil {
		return ExitFailure, errors.New("no process state")
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return state.ExitCode(), nil
	}
	if ws.Signaled() {
		return ExitFailure, signalError(ws.Signal(), unix.SignalName(ws.Signal()))
	}
	if !ws.Exited() {
		return ExitFailure, errors.New("child did not exit normally")
	}
	return ws.ExitStatus(), nil
}
