package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const planTOML = `
comment = "Spring block"

[[days]]
description = "Legs"

[[days.sets]]
sets = 3

[[days.sets.exercises]]
name = "Squat"

[[days.sets.exercises.settings]]
reps = 8
`

// captureStdout redirects command output into a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// newTestCLI returns a CLI whose store and cache live in temporary
// directories.
func newTestCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "xdg-cache"))
	cfg := fmt.Sprintf(`
[store]
driver = "file"
dsn = %q

[cache]
driver = "file"
dir = %q
`, filepath.Join(dir, "store"), filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.configPath = path
	return c, dir
}

func writePlan(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(planTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args.
func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}
