// Command bb scaffolds, inspects and exercises bb build scripts.
package main

import (
	"fmt"
	"os"

	"github.com/agilira/orpheus/pkg/orpheus"
)

var version = "dev" // overridden at build time

// exitCode is set by handlers that forward a child's exit status.
var exitCode int

func newApp() *orpheus.App {
	app := orpheus.New("bb").
		SetDescription("Self-hosting build-script runtime").
		SetVersion(version)

	app.AddCommand(orpheus.NewCommand("init", "Create bb.go and bb.yaml in a directory").
		SetHandler(initCommand).
		AddFlag("template", "t", "go", "Project template (go, c)").
		AddFlag("dir", "d", ".", "Target directory").
		AddBoolFlag("force", "f", false, "Overwrite existing files"))

	app.AddCommand(orpheus.NewCommand("exec", "Run one command template: bb exec TEMPLATE [VALUES...]").
		SetHandler(execCommand).
		AddFlag("env", "e", "", "Environment template, NAME=value tokens separated by spaces").
		AddBoolFlag("dry-run", "n", false, "Print the expanded tokens instead of running").
		AddBoolFlag("no-color", "", false, "Disable coloured diagnostics"))

	app.AddCommand(orpheus.NewCommand("check", "Report whether a build script needs rebuilding").
		SetHandler(checkCommand).
		AddFlag("config", "c", "", "Configuration file (default: built-in defaults)").
		AddFlag("dir", "d", ".", "Project directory"))

	app.AddCommand(orpheus.NewCommand("validate", "Validate a configuration file").
		SetHandler(validateCommand).
		AddFlag("config", "c", "bb.yaml", "Configuration file"))

	return app
}

func main() {
	if err := newApp().Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
