package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssmacro"
	"github.com/yacobolo/cssmacro/internal/report"
)

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"lint"},
	Short:   "Report macro problems without writing anything",
	Long: `Run the expansion pass over every module and report diagnostics in
golangci-lint format. With --css the static part of every style body is
also checked for CSS syntax errors.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	addModuleFlags(f)
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Bool("css", true, "Check style bodies for CSS syntax errors")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (code) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg := buildConfig()

	quiet := getBoolWithFallback("quiet", "quiet", false)
	colors := getBoolWithFallback("color", "color", false)
	cfg.Logger = newLogger(getBoolWithFallback("verbose", "verbose", false), quiet, report.ShouldUseColors(colors))
	defer func() { _ = cfg.Logger.Sync() }()

	result, err := cssmacro.Check(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := cssmacro.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		opts := report.Options{
			UseColors:       colors,
			PrintLines:      getBoolWithFallback("print-lines", "check.print-lines", true),
			PrintLinterName: getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		}
		if err := cssmacro.WriteOutput(cmd.OutOrStdout(), result, format, opts); err != nil {
			return err
		}
	}

	// Strict mode: any issue fails. Otherwise only errors do.
	if getBoolWithFallback("strict", "check.strict", false) {
		if len(result.Issues) > 0 || result.Stats.TruncatedCount > 0 {
			return fmt.Errorf("strict mode: %d issues found", len(result.Issues)+result.Stats.TruncatedCount)
		}
	} else if result.ErrorCount > 0 {
		return fmt.Errorf("%d of %d modules cannot be expanded", result.Failed, result.Stats.FilesScanned)
	}

	return nil
}
