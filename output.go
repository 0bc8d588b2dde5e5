package cssmacro

import (
	"fmt"
	"io"

	"github.com/yacobolo/cssmacro/internal/report"
)

// OutputFormat represents the check output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues and statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from flags. Unknown
// formats fall back to issues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}
	return OutputIssues
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, opts report.Options) error {
	switch format {
	case OutputSummary:
		verbose := report.NewVerboseReporter(w, report.ShouldUseColors(opts.UseColors))
		verbose.PrintStatistics(result.Stats)
		verbose.PrintCoverage(result.Stats, result.Failed)

	case OutputFull:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Issues, result.Stats.TruncatedCount)

		verbose := report.NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(result.Stats)
		verbose.PrintCoverage(result.Stats, result.Failed)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	default:
		reporter := report.NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(result.Issues, result.Stats.TruncatedCount)
	}
	return nil
}

// WriteExpandSummary prints one line per written or failed module followed
// by the run counters
func WriteExpandSummary(w io.Writer, result *ExpandResult, useColors bool) {
	for _, f := range result.Files {
		switch {
		case f.Err != nil:
			fmt.Fprintf(w, "%s %s\n", report.RenderStyle(report.StyleRed, "✗", useColors), f.Path)
		case f.Output != "":
			fmt.Fprintf(w, "%s %s -> %s\n", report.RenderStyle(report.StyleGreen, "✓", useColors), f.Path, f.Output)
		}
	}
	report.NewVerboseReporter(w, useColors).PrintStatistics(result.Stats)
}
