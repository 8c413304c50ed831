package bb

import (
	"runtime"
	"time"
)

// Compile-time defaults, overridable with -ldflags "-X github.com/bbuild/bb.DefaultCompiler=...".
var (
	DefaultCompiler  = "go"
	DefaultSource    = "bb.go"
	DefaultOutput    = "bb"
	DefaultEnvPrefix = "BB_"
)

// Config describes how a build script rebuilds itself.
type Config struct {
	Compiler     string   `yaml:"compiler"`
	RebuildFlags []string `yaml:"rebuild_flags"`
	Source       string   `yaml:"source"`
	// Deps are further files compiled into the binary, such as an
	// embedded configuration. Changing one rebuilds like changing Source.
	Deps         []string `yaml:"deps"`
	Output       string   `yaml:"output"`
	EnvPrefix    string   `yaml:"env_prefix"`
	NoColor      bool     `yaml:"no_color"`
}

// BuildFunc is the user's build logic. Its return value becomes the exit
// code of the program.
type BuildFunc func(ctx *Context, args []string) int

// State of the bootstrap protocol.
type State int

const (
	StateCheck State = iota
	StateUpToDate
	StateStale
	StateRebuilding
	StateRelaunching
	StateRunning
	StateTouching
	StateDone
)

var stateNames = [...]string{
	StateCheck:       "check",
	StateUpToDate:    "up-to-date",
	StateStale:       "stale",
	StateRebuilding:  "rebuilding",
	StateRelaunching: "relaunching",
	StateRunning:     "running",
	StateTouching:    "touching",
	StateDone:        "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateRelaunching || s == StateDone
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time
