package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssmacro"
	"github.com/yacobolo/cssmacro/internal/report"
)

var expandCmd = &cobra.Command{
	Use:     "expand",
	Aliases: []string{"build"},
	Short:   "Expand macro imports into emotion runtime calls",
	Long: `Rewrite every module that imports the emotion macro so it calls the
emotion runtime directly. Expanded modules are written next to their source
with a suffix, mirrored under --out-dir, or written back with --in-place.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runExpand,
}

func init() {
	f := expandCmd.Flags()
	addModuleFlags(f)
	f.String("out-dir", "", "Mirror expanded modules under this directory")
	f.String("suffix", cssmacro.DefaultSuffix, "Suffix inserted before the extension of expanded modules")
	f.Bool("in-place", false, "Overwrite source modules")
	f.Bool("verify", false, "Parse every expanded module before writing it")
	f.Bool("dry-run", false, "Expand without writing anything")
	f.BoolP("watch", "w", false, "Expand again whenever a module changes")
}

func runExpand(cmd *cobra.Command, _ []string) error {
	cfg := buildConfig()

	quiet := getBoolWithFallback("quiet", "quiet", false)
	useColors := report.ShouldUseColors(getBoolWithFallback("color", "color", false))
	cfg.Logger = newLogger(getBoolWithFallback("verbose", "verbose", false), quiet, useColors)
	defer func() { _ = cfg.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if getBoolWithFallback("watch", "expand.watch", false) {
		return cssmacro.Watch(ctx, cfg, func(result *cssmacro.ExpandResult, err error) {
			if result == nil {
				fmt.Fprintf(stderr, "expansion failed: %v\n", err)
				return
			}
			printExpandResult(stdout, stderr, result, quiet, useColors)
		})
	}

	result, err := cssmacro.Expand(ctx, cfg)
	if result == nil {
		return fmt.Errorf("expansion failed: %w", err)
	}
	printExpandResult(stdout, stderr, result, quiet, useColors)

	if failed := len(result.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d modules failed to expand", failed, result.Stats.FilesScanned)
	}
	return nil
}

// printExpandResult writes the summary to stdout and every failure to stderr
func printExpandResult(stdout, stderr io.Writer, result *cssmacro.ExpandResult, quiet, useColors bool) {
	if !quiet {
		cssmacro.WriteExpandSummary(stdout, result, useColors)
	}
	for _, f := range result.Failed() {
		fmt.Fprintln(stderr, f.Err)
	}
}
