package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssmacro.yaml config file",
	Long:  `Create a .cssmacro.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssmacro configuration

# Shared settings
verbose: false
paths:
  - "src/**/*.{js,jsx,mjs,cjs}"
runtime: emotion
macro-suffixes:
  - "/macro"
  - ".macro"
metadata: false            # emit { label, source } options
minify: false
jobs: 0                    # 0 = GOMAXPROCS

# Expansion settings
expand:
  out-dir: ""              # mirror expanded modules under this directory
  suffix: .expanded        # Button.js -> Button.expanded.js
  in-place: false
  verify: false
  dry-run: false

# Check settings
check:
  css: true
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
