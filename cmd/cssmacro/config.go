package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/cssmacro"
)

const defaultConfigPath = ".cssmacro.yaml"

var defaultPaths = []string{"src/**/*.{js,jsx,mjs,cjs}"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags, only those explicitly set so that defaults never mask
	// the file and env values read through the fallback helpers
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSMACRO_* prefix)
	if err := k.Load(env.Provider("CSSMACRO_", ".", func(s string) string {
		// Only the section separator becomes a dot:
		// CSSMACRO_RUNTIME -> runtime
		// CSSMACRO_CHECK_STRICT -> check.strict
		// CSSMACRO_EXPAND_IN_PLACE -> expand.in-place
		key := strings.ToLower(strings.TrimPrefix(s, "CSSMACRO_"))
		section, rest, ok := strings.Cut(key, "_")
		if ok && (section == "expand" || section == "check") {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
		return strings.ReplaceAll(key, "_", "-")
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// addModuleFlags registers the flags shared by expand and check
func addModuleFlags(f *pflag.FlagSet) {
	f.StringSlice("paths", defaultPaths, "Glob patterns of modules to process")
	f.String("runtime", "emotion", "Module the expanded calls import from")
	f.StringSlice("macro-suffix", nil, "Import path suffixes naming the macro module (default /macro, .macro)")
	f.Bool("metadata", false, "Emit label and source options for debugging")
	f.Bool("minify", false, "Compact literal style text")
	f.IntP("jobs", "j", 0, "Modules processed in parallel (0=GOMAXPROCS)")
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() cssmacro.Config {
	return cssmacro.Config{
		Paths:         getStringsWithFallback("paths", "paths", defaultPaths),
		OutDir:        getStringWithFallback("out-dir", "expand.out-dir", ""),
		Suffix:        getStringWithFallback("suffix", "expand.suffix", cssmacro.DefaultSuffix),
		InPlace:       getBoolWithFallback("in-place", "expand.in-place", false),
		RuntimeModule: getStringWithFallback("runtime", "runtime", "emotion"),
		MacroSuffixes: getStringsWithFallback("macro-suffix", "macro-suffixes", nil),
		Metadata:      getBoolWithFallback("metadata", "metadata", false),
		Minify:        getBoolWithFallback("minify", "minify", false),
		Jobs:          getIntWithFallback("jobs", "jobs", 0),
		Verify:        getBoolWithFallback("verify", "expand.verify", false),
		DryRun:        getBoolWithFallback("dry-run", "expand.dry-run", false),

		CheckCSS:           getBoolWithFallback("css", "check.css", true),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "check.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "check.max-same-issues", 0),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
