package bb

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== INTEGRATION TESTS =====

// The "compiler" copies the source over the output, so the rebuilt binary
// is the source script itself. The relaunched script records what it saw.
func TestE2ERebuildAndRelaunch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	skipOnWindows(t)

	dir := t.TempDir()
	record := filepath.Join(dir, "record.txt")
	compiler := writeScript(t, dir, "compile.sh", `cp "$2" "$1" && chmod +x "$1"`)
	source := writeScript(t, dir, "bb.sh",
		`printf '%s|%s|%s' "$BB_REFERENCE_TIME" "$BB_RELAUNCHED" "$*" > `+record+"\nexit 7")
	binary := filepath.Join(dir, "bb")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\nexit 99\n"), 0o755))

	binMod := epoch
	require.NoError(t, os.Chtimes(source, epoch.Add(time.Minute), epoch.Add(time.Minute)))
	require.NoError(t, os.Chtimes(binary, binMod, binMod))

	cfg := Config{
		Compiler:     compiler,
		RebuildFlags: []string{binary},
		Source:       source,
		Output:       binary,
		EnvPrefix:    "BB_",
	}
	var stdout, stderr bytes.Buffer
	built := false

	code := Run([]string{binary, "install", "--prefix=/usr/local"},
		func(*Context, []string) int { built = true; return 0 },
		WithConfig(cfg),
		WithOutput(&stdout, &stderr),
		WithNoColor(),
		WithEnv(func(string) (string, bool) { return "", false }),
		WithExit(func(code int) { t.Fatalf("unexpected exit %d: %s", code, stderr.String()) }),
	)

	assert.Equal(t, 7, code, "exit code of the relaunched binary")
	assert.False(t, built)

	data, err := os.ReadFile(record)
	require.NoError(t, err)
	parts := strings.Split(string(data), "|")
	require.Len(t, parts, 3)
	assert.Equal(t, strconv.FormatInt(binMod.UnixNano(), 10), parts[0])
	assert.Equal(t, "1", parts[1])
	assert.Equal(t, "install --prefix=/usr/local", parts[2])

	log := stdout.String()
	assert.Contains(t, log, "[INFO] Rebuilding "+source+"...")
	assert.Contains(t, log, "[INFO] Executing: "+compiler+" "+binary+" "+source)
	assert.Contains(t, log, "[INFO] - with environment: BB_RELAUNCHED=1 BB_REFERENCE_TIME=")
}

// An up-to-date script runs its build logic, which in turn compiles only
// what changed since the binary was last validated.
func TestE2EIncrementalBuild(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	skipOnWindows(t)

	cfg, binary := project(t, epoch, epoch.Add(time.Minute))
	dir := filepath.Dir(binary)
	changed := filepath.Join(dir, "changed.c")
	untouched := filepath.Join(dir, "untouched.c")
	require.NoError(t, os.WriteFile(changed, nil, 0o644))
	require.NoError(t, os.WriteFile(untouched, nil, 0o644))
	require.NoError(t, os.Chtimes(untouched, epoch, epoch))
	require.NoError(t, os.Chtimes(changed, epoch.Add(time.Hour), epoch.Add(time.Hour)))

	var stdout, stderr bytes.Buffer
	var compiled []string
	build := func(ctx *Context, args []string) int {
		for _, src := range []string{changed, untouched} {
			if !ctx.Modified(src) {
				continue
			}
			obj := strings.TrimSuffix(src, ".c") + ".o"
			if ctx.Run(NewCommand().AppendArgs("cp", "%s", "%s"), src, obj) != ExitSuccess {
				return ExitFailure
			}
			compiled = append(compiled, filepath.Base(obj))
		}
		return ExitSuccess
	}

	code := Run([]string{binary}, build,
		WithConfig(cfg),
		WithOutput(&stdout, &stderr),
		WithNoColor(),
		WithEnv(func(string) (string, bool) { return "", false }),
	)

	require.Equal(t, ExitSuccess, code, stderr.String())
	assert.Equal(t, []string{"changed.o"}, compiled)
	_, err := os.Stat(filepath.Join(dir, "changed.o"))
	assert.NoError(t, err)
	assert.Contains(t, stdout.String(), "[INFO] Executing: cp "+changed)
}

// The replay marker is consumed by the replayed process, so commands run by
// its build logic never see it.
func TestE2ERelaunchMarkerNotInherited(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	skipOnWindows(t)

	cfg, binary := project(t, epoch, epoch.Add(time.Minute))
	dir := filepath.Dir(binary)
	record := filepath.Join(dir, "marker.txt")
	script := writeScript(t, dir, "nested.sh", `printf '[%s]' "$BB_RELAUNCHED" > "$1"`)
	t.Setenv("BB_RELAUNCHED", "1")

	var stdout, stderr bytes.Buffer
	code := Run([]string{binary}, func(ctx *Context, args []string) int {
		return ctx.Run(NewCommand().AppendArgs("sh", "%s", "%s"), script, record)
	}, WithConfig(cfg), WithOutput(&stdout, &stderr), WithNoColor())

	require.Equal(t, ExitSuccess, code, stderr.String())
	data, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	_, set := os.LookupEnv("BB_RELAUNCHED")
	assert.False(t, set)
}
