package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/agilira/orpheus/pkg/orpheus"
)

type projectTemplate struct {
	script string
	config string
}

var templates = map[string]projectTemplate{
	"go": {
		script: goScript,
		config: `# bb.yaml is embedded into bb.go; edit, then run ./bb to rebuild.
compiler: go
rebuild_flags: ["build", "-o", "bb"]
source: bb.go
deps: [bb.yaml]
output: bb
env_prefix: BB_
`,
	},
	"c": {
		script: cScript,
		config: `# bb.yaml is embedded into bb.go; edit, then run ./bb to rebuild.
compiler: go
rebuild_flags: ["build", "-o", "bb"]
source: bb.go
deps: [bb.yaml]
output: bb
env_prefix: BB_
`,
	},
}

const goScript = `//go:build ignore

package main

import (
	_ "embed"

	"github.com/bbuild/bb"
)

//go:embed bb.yaml
var config []byte

func build(ctx *bb.Context, args []string) int {
	params := ctx.Params()
	out := params.String("output", "o", "app", "binary to produce")
	params.Parse()

	gobuild := bb.NewCommand().AppendArgs("go", "build", "-o", "%s", "./...")
	if code := ctx.Run(gobuild, *out); code != 0 {
		return code
	}
	return ctx.Run(bb.NewCommand().AppendArgs("go", "test", "./..."))
}

func main() {
	cfg, err := bb.ParseConfig(config)
	if err != nil {
		panic(err)
	}
	bb.Main(build, bb.WithConfig(cfg))
}
`

const cScript = `//go:build ignore

package main

import (
	_ "embed"

	"github.com/bbuild/bb"
)

//go:embed bb.yaml
var config []byte

func build(ctx *bb.Context, args []string) int {
	params := ctx.Params()
	cc := params.String("cc", "c", "cc", "C compiler")
	params.Parse()

	compile := bb.NewCommand().AppendArgs("%s", "-Wall", "-O2", "-c", "%s", "-o", "%s")
	var objects []string
	for _, src := range ctx.Glob("src/**/*.c") {
		obj := src + ".o"
		if ctx.NeedsUpdate(obj, src) {
			if code := ctx.Run(compile, *cc, src, obj); code != 0 {
				return code
			}
		}
		objects = append(objects, obj)
	}
	link := bb.NewCommand().AppendArgs("%s", "-o", "app").AppendLiteralArgs(objects...)
	return ctx.Run(link, *cc)
}

func main() {
	cfg, err := bb.ParseConfig(config)
	if err != nil {
		panic(err)
	}
	bb.Main(build, bb.WithConfig(cfg))
}
`

func templateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generateProject writes bb.go and bb.yaml for the named template into dir
// and returns the paths it wrote.
func generateProject(dir, name string, force bool) ([]string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q (available: %v)", name, templateNames())
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	files := []struct{ name, content string }{
		{"bb.go", tmpl.script},
		{"bb.yaml", tmpl.config},
	}
	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func initCommand(ctx *orpheus.Context) error {
	name := ctx.GetFlagString("template")
	dir := ctx.GetFlagString("dir")
	if _, ok := templates[name]; !ok {
		return orpheus.NotFoundError("init", fmt.Sprintf("template '%s' not found (available: %v)", name, templateNames()))
	}
	written, err := generateProject(dir, name, ctx.GetFlagBool("force"))
	if err != nil {
		return orpheus.ExecutionError("init", err.Error())
	}
	for _, path := range written {
		fmt.Printf("created %s\n", path)
	}
	fmt.Println("bootstrap with: go build -o bb bb.go && ./bb")
	return nil
}
