package cssmacro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		suffix   string
		expected bool
	}{
		{name: "expanded module", path: "src/Button.expanded.js", suffix: ".expanded", expected: true},
		{name: "expanded jsx", path: "src/Button.expanded.jsx", suffix: ".expanded", expected: true},
		{name: "source module", path: "src/Button.js", suffix: ".expanded", expected: false},
		{name: "custom suffix", path: "src/Button.out.js", suffix: ".out", expected: true},
		{name: "suffix elsewhere in name", path: "src/expanded/Button.js", suffix: ".expanded", expected: false},
		{name: "no suffix", path: "src/Button.expanded.js", suffix: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isGenerated(tt.path, tt.suffix)
			require.Equal(t, tt.expected, got, "isGenerated(%q, %q)", tt.path, tt.suffix)
		})
	}
}

func TestShouldSkipFile(t *testing.T) {
	cfg := Config{OutDir: "build"}.withDefaults()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "scan js", path: "src/Button.js", expected: false},
		{name: "scan jsx", path: "src/Button.jsx", expected: false},
		{name: "scan mjs", path: "src/theme.mjs", expected: false},
		{name: "skip other types", path: "src/Button.css", expected: true},
		{name: "skip typescript", path: "src/Button.ts", expected: true},
		{name: "skip node_modules", path: "node_modules/emotion/dist/index.js", expected: true},
		{name: "skip nested node_modules", path: "packages/a/node_modules/x.js", expected: true},
		{name: "skip generated", path: "src/Button.expanded.js", expected: true},
		{name: "skip output dir", path: "build/src/Button.js", expected: true},
		{name: "similar dir name", path: "builder/Button.js", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldSkipFile(tt.path, cfg)
			require.Equal(t, tt.expected, got, "shouldSkipFile(%q)", tt.path)
		})
	}
}

func TestShouldSkipFileInPlaceKeepsSuffixedFiles(t *testing.T) {
	cfg := Config{InPlace: true}.withDefaults()
	assert.False(t, shouldSkipFile("src/Button.expanded.js", cfg))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		cfg  Config
		want string
	}{
		{name: "suffix", path: "src/Button.js", cfg: Config{}, want: "src/Button.expanded.js"},
		{name: "custom suffix", path: "src/Button.jsx", cfg: Config{Suffix: ".out"}, want: "src/Button.out.jsx"},
		{name: "out dir", path: "src/Button.js", cfg: Config{OutDir: "build"}, want: filepath.Join("build", "src", "Button.js")},
		{name: "out dir with parent path", path: "../lib/a.js", cfg: Config{OutDir: "build"}, want: filepath.Join("build", "lib", "a.js")},
		{name: "in place wins", path: "src/Button.js", cfg: Config{InPlace: true, OutDir: "build"}, want: "src/Button.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPath(tt.path, tt.cfg.withDefaults())
			require.NoError(t, err)
			require.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export default 1\n"), 0o644))
	}
	write("src/b.js")
	write("src/a.jsx")
	write("src/a.expanded.jsx")
	write("src/styles.css")
	write("src/nested/c.js")
	write("node_modules/pkg/index.js")

	patterns := []string{
		filepath.Join(dir, "src", "**", "*"),
		filepath.Join(dir, "src", "*.js"),
		filepath.Join(dir, "node_modules", "**", "*.js"),
	}
	files, stats, err := discoverFiles(patterns, Config{}.withDefaults())
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "src", "a.jsx"),
		filepath.Join(dir, "src", "b.js"),
		filepath.Join(dir, "src", "nested", "c.js"),
	}
	assert.Equal(t, want, files)
	assert.Equal(t, 3, stats.FilesScanned)
	assert.Equal(t, 3, stats.FilesSkipped)
	assert.Equal(t, 6, stats.FilesDiscovered)
}
