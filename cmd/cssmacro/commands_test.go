package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command in dir and returns stdout
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	t.Chdir(dir)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeModule(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "src/Button.js", "import { css } from './macro'\nconst a = css`color: red;`\n")

	out, err := runCLI(t, dir, "expand", "--paths", "src/*.js")
	require.NoError(t, err)
	assert.Contains(t, out, "src/Button.js -> src/Button.expanded.js")
	assert.Contains(t, out, "Files Changed:       1")

	data, err := os.ReadFile(filepath.Join(dir, "src", "Button.expanded.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `from "emotion"`)
}

func TestExpandCommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "src/a.js", "const styled = require('./macro')\nconst A = styled.div`color: red;`\n")

	_, err := runCLI(t, dir, "expand", "--paths", "src/*.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 modules failed to expand")
	assert.NoFileExists(t, filepath.Join(dir, "src", "a.expanded.js"))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "src/a.js", "import { css, nope } from './macro'\nconst a = css`color: red;`\n")

	out, err := runCLI(t, dir, "check", "--paths", "src/*.js", "--output-format", "issues")
	require.NoError(t, err)
	assert.Contains(t, out, "src/a.js:1:15: warning:")
	assert.Contains(t, out, "(unknown-export)")
	assert.NoFileExists(t, filepath.Join(dir, "src", "a.expanded.js"))

	_, err = runCLI(t, dir, "check", "--paths", "src/*.js", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strict mode")
}
