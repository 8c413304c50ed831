package bb

import (
	"errors"
	"fmt"
)

// Process exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Exception identifies an unrecoverable condition. Raising one prints a
// critical diagnostic and terminates the program with ExitFailure.
type Exception int8

// Exception Numbers
const (
	MODTIME_FAILED Exception = iota + 1
	EXPAND_FAILED
	EMPTY_COMMAND
	SPAWN_FAILED
	REBUILD_FAILED
	PARAM_MISSING
	PARAM_MALFORMED
	FILE_COPY_FAILED
	FILE_READ_FAILED
	FILE_WRITE_FAILED
	GLOB_FAILED
	CONFIG_INVALID
	STILL_STALE
)

var exceptions = map[Exception]string{
	MODTIME_FAILED:    "Could not get modification time for %s: %v",
	EXPAND_FAILED:     "Could not expand command %q: %v",
	EMPTY_COMMAND:     "Refusing to run an empty command",
	SPAWN_FAILED:      "Could not run command: %s: %v",
	REBUILD_FAILED:    "Could not rebuild %s",
	PARAM_MISSING:     "Missing required parameter --%s\n%s",
	PARAM_MALFORMED:   "Malformed parameter: %v\n%s",
	FILE_COPY_FAILED:  "Could not copy file %s to %s: %v",
	FILE_READ_FAILED:  "Could not read file %s: %v",
	FILE_WRITE_FAILED: "Could not write file %s: %v",
	GLOB_FAILED:       "Could not expand pattern %s: %v",
	CONFIG_INVALID:    "Invalid configuration: %v",
	STILL_STALE:       "%s is still older than %s after rebuilding; the rebuild output must be the running binary",
}

// Message renders the exception's diagnostic text.
func (e Exception) Message(args ...any) string {
	format, ok := exceptions[e]
	if !ok {
		return fmt.Sprintf("unknown exception %d", int8(e))
	}
	return fmt.Sprintf(format, args...)
}

var (
	// ErrArity is returned when the values passed to an expansion do not
	// match the number of placeholders in the template.
	ErrArity = errors.New("placeholder count does not match value count")
	// ErrEmptyCommand is returned when a command expands to no tokens.
	ErrEmptyCommand = errors.New("empty command")
	// ErrAlreadyWaited is returned when a process handle is waited twice.
	ErrAlreadyWaited = errors.New("process already waited")
)

// FatalError is the panic value used when a replaced exit function
// returns instead of terminating the process.
type FatalError struct {
	Exception Exception
	Message   string
}

func (e *FatalError) Error() string { return e.Message }

// Raise reports e as a critical diagnostic and exits with ExitFailure.
// It never returns.
func (c *Context) Raise(e Exception, args ...any) {
	msg := e.Message(args...)
	c.log.Crit(msg)
	c.exit(ExitFailure)
	panic(&FatalError{Exception: e, Message: msg})
}
