package cssmacro

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yacobolo/cssmacro/internal/macro"
)

const (
	flushModule = "import { flush } from './macro'\nafterEach(() => flush())\n"
	flushOutput = "import { flush as _flush } from \"emotion\";\nafterEach(() => _flush())\n"
	requireUse  = "const styled = require('./macro')\nconst A = styled.div`color: red;`\n"
	plainModule = "export const answer = 42\n"
)

// writeModules creates files under dir and returns dir/src/**/*.js
func writeModules(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(dir, "src", "**", "*.js")
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	pattern := writeModules(t, dir, map[string]string{
		"src/a.js": flushModule,
		"src/b.js": requireUse,
		"src/c.js": plainModule,
	})

	result, err := Expand(context.Background(), Config{
		Paths:  []string{pattern},
		Jobs:   2,
		Logger: zaptest.NewLogger(t),
	})
	require.ErrorIs(t, err, macro.ErrImportStyle)
	require.NotNil(t, result)
	require.Len(t, result.Files, 3)

	a, b, c := result.Files[0], result.Files[1], result.Files[2]

	require.NoError(t, a.Err)
	assert.Equal(t, filepath.Join(dir, "src", "a.expanded.js"), a.Output)
	written, err := os.ReadFile(a.Output)
	require.NoError(t, err)
	assert.Equal(t, flushOutput, string(written))

	require.ErrorIs(t, b.Err, macro.ErrImportStyle)
	assert.Empty(t, b.Output)
	assert.NoFileExists(t, filepath.Join(dir, "src", "b.expanded.js"))

	require.NoError(t, c.Err)
	assert.Empty(t, c.Output)
	assert.False(t, c.Result.Changed)

	assert.Equal(t, 3, result.Stats.FilesScanned)
	assert.Equal(t, 2, result.Stats.FilesWithMacro)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 1, result.Stats.Invocations)
	assert.Len(t, result.Failed(), 1)
}

func TestExpandSkipsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	pattern := writeModules(t, dir, map[string]string{"src/a.js": flushModule})
	cfg := Config{Paths: []string{pattern}, Logger: zaptest.NewLogger(t)}

	_, err := Expand(context.Background(), cfg)
	require.NoError(t, err)

	result, err := Expand(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "src", "a.js"), result.Files[0].Path)
}

func TestExpandDryRun(t *testing.T) {
	dir := t.TempDir()
	pattern := writeModules(t, dir, map[string]string{"src/a.js": flushModule})

	result, err := Expand(context.Background(), Config{Paths: []string{pattern}, DryRun: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	f := result.Files[0]
	assert.NotEmpty(t, f.Output)
	assert.NoFileExists(t, f.Output)
	assert.Equal(t, flushOutput, string(f.Result.Code))
}

func TestExpandInPlace(t *testing.T) {
	dir := t.TempDir()
	pattern := writeModules(t, dir, map[string]string{"src/a.js": flushModule})

	_, err := Expand(context.Background(), Config{Paths: []string{pattern}, InPlace: true, Verify: true})
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "src", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, flushOutput, string(written))
}

func TestExpandOutDir(t *testing.T) {
	dir := t.TempDir()
	writeModules(t, dir, map[string]string{"src/a.js": flushModule})
	t.Chdir(dir)

	result, err := Expand(context.Background(), Config{
		Paths:  []string{"src/**/*.js"},
		OutDir: "build",
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join("build", "src", "a.js"), result.Files[0].Output)
	assert.FileExists(t, filepath.Join(dir, "build", "src", "a.js"))
}

func TestExpandCancelled(t *testing.T) {
	dir := t.TempDir()
	pattern := writeModules(t, dir, map[string]string{"src/a.js": flushModule})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Expand(ctx, Config{Paths: []string{pattern}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExpandBadPattern(t *testing.T) {
	_, err := Expand(context.Background(), Config{Paths: []string{"src/[.js"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}
