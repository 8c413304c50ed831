//go:build windows

package bb

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: windows.NORMAL_PRIORITY_CLASS}
}

func exitStatus(state *os.ProcessState) (int, error) {
	if state == nil {
		return ExitFailure, errors.New("no process state")
	}
	return state.ExitCode(), nil
}
