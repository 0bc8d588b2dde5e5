package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmacro.yaml")
	configContent := `
verbose: true
runtime: "@emotion/css"
paths:
  - "app/**/*.js"

expand:
  out-dir: build
  in-place: false

check:
  strict: true
  max-same-issues: 4
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "@emotion/css", k.String("runtime"))
	assert.Equal(t, []string{"app/**/*.js"}, k.Strings("paths"))
	assert.Equal(t, "build", k.String("expand.out-dir"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, 4, k.Int("check.max-same-issues"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssmacro.yaml"))

	config := buildConfig()
	assert.Equal(t, defaultPaths, config.Paths)
	assert.Equal(t, ".expanded", config.Suffix)
	assert.Equal(t, "emotion", config.RuntimeModule)
	assert.Empty(t, config.OutDir)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmacro.yaml")
	configContent := `
runtime: from-file
expand:
  in-place: false
check:
  max-issues-per-linter: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Setenv("CSSMACRO_RUNTIME", "from-env")
	t.Setenv("CSSMACRO_EXPAND_IN_PLACE", "true")
	t.Setenv("CSSMACRO_CHECK_MAX_ISSUES_PER_LINTER", "7")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("runtime"))
	assert.True(t, k.Bool("expand.in-place"))
	assert.Equal(t, 7, k.Int("check.max-issues-per-linter"))
}

func TestBuildConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildConfig()
	assert.Equal(t, []string{"src/**/*.{js,jsx,mjs,cjs}"}, config.Paths)
	assert.Equal(t, ".expanded", config.Suffix)
	assert.Equal(t, "emotion", config.RuntimeModule)
	assert.Nil(t, config.MacroSuffixes)
	assert.False(t, config.InPlace)
	assert.False(t, config.Metadata)
	assert.False(t, config.Minify)
	assert.False(t, config.Verify)
	assert.True(t, config.CheckCSS)
	assert.Zero(t, config.Jobs)
	assert.Zero(t, config.MaxIssuesPerLinter)
	assert.Nil(t, config.Logger)
}

func TestBuildConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssmacro.yaml")
	configContent := `
paths:
  - "lib/**/*.mjs"
macro-suffixes:
  - "/styles.macro"
metadata: true
minify: true
jobs: 2
expand:
  suffix: .out
  verify: true
check:
  css: false
  max-issues-per-linter: 10
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, []string{"lib/**/*.mjs"}, config.Paths)
	assert.Equal(t, []string{"/styles.macro"}, config.MacroSuffixes)
	assert.True(t, config.Metadata)
	assert.True(t, config.Minify)
	assert.Equal(t, 2, config.Jobs)
	assert.Equal(t, ".out", config.Suffix)
	assert.True(t, config.Verify)
	assert.False(t, config.CheckCSS)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".cssmacro.yaml", []byte("runtime: from-file\nminify: true\n"), 0o644))

	cmd := expandCmd
	require.NoError(t, cmd.Flags().Parse([]string{"--runtime", "from-flag"}))
	t.Cleanup(func() {
		_ = cmd.Flags().Set("runtime", "emotion")
		cmd.Flags().Lookup("runtime").Changed = false
	})
	require.NoError(t, loadConfig(cmd))

	config := buildConfig()
	assert.Equal(t, "from-flag", config.RuntimeModule)
	// unchanged flags do not mask the file
	assert.True(t, config.Minify)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssmacro.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "runtime: emotion")
	assert.Contains(t, string(data), "expand:")
	assert.Contains(t, string(data), "check:")

	// the generated file must load
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".cssmacro.yaml"))
	config := buildConfig()
	assert.Equal(t, []string{"/macro", ".macro"}, config.MacroSuffixes)
	assert.Equal(t, ".expanded", config.Suffix)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile(".cssmacro.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile(".cssmacro.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssmacro.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "runtime: emotion")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssmacro dev\n", out.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
	assert.Nil(t, getStringsWithFallback("flag-key", "config.key", nil))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
