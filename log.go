package bb

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

// Severity of a diagnostic line.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
	SeverityCrit
)

var (
	infoStyle  = color.New(color.FgCyan, color.OpBold)
	warnStyle  = color.New(color.FgYellow, color.OpBold)
	errorStyle = color.New(color.FgRed, color.OpBold)
	critStyle  = color.New(color.FgLightWhite, color.BgRed, color.OpBold)
)

// Tag returns the bracketed tag printed in front of every line.
func (s Severity) Tag() string {
	switch s {
	case SeverityInfo:
		return "[INFO]"
	case SeverityWarn:
		return "[WARN]"
	case SeverityError:
		return "[ERRO]"
	default:
		return "[CRIT]"
	}
}

func (s Severity) style() color.Style {
	switch s {
	case SeverityInfo:
		return infoStyle
	case SeverityWarn:
		return warnStyle
	case SeverityError:
		return errorStyle
	default:
		return critStyle
	}
}

// Logger writes single-line, severity-tagged diagnostics. Info goes to
// stdout, everything else to stderr.
type Logger struct {
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// NewLogger returns a Logger writing to the given streams. Colour is only
// applied when both the bb_nocolor build tag is absent and useColor is set.
func NewLogger(stdout, stderr io.Writer, useColor bool) *Logger {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Logger{stdout: stdout, stderr: stderr, color: useColor && colorsBuiltIn}
}

func (l *Logger) write(s Severity, msg string) {
	w := l.stderr
	if s == SeverityInfo {
		w = l.stdout
	}
	tag := s.Tag()
	if l.color {
		tag = s.style().Sprint(tag)
	}
	fmt.Fprintf(w, "%s %s\n", tag, msg)
}

func (l *Logger) Info(msg string)  { l.write(SeverityInfo, msg) }
func (l *Logger) Warn(msg string)  { l.write(SeverityWarn, msg) }
func (l *Logger) Error(msg string) { l.write(SeverityError, msg) }
func (l *Logger) Crit(msg string)  { l.write(SeverityCrit, msg) }

func (l *Logger) Infof(format string, args ...any)  { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.Error(fmt.Sprintf(format, args...)) }
