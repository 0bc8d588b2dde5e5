package report

import (
	"fmt"
	"io"
)

// VerboseReporter prints run statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs the counters of a run
func (r *VerboseReporter) PrintStatistics(stats Stats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Macro Expansion Statistics", r.useColors))
	fmt.Fprintln(r.w, "--------------------------")

	fmt.Fprintf(r.w, "Files Scanned:       %d\n", stats.FilesScanned)
	fmt.Fprintf(r.w, "Files Using Macro:   %d\n", stats.FilesWithMacro)
	fmt.Fprintf(r.w, "Files Changed:       %d\n", stats.FilesChanged)
	fmt.Fprintf(r.w, "Macro Uses Compiled: %d\n", stats.Invocations)
	fmt.Fprintf(r.w, "Nested Uses Inlined: %d\n", stats.Flattened)
	if stats.StylesChecked > 0 {
		fmt.Fprintf(r.w, "Style Bodies Checked: %d\n", stats.StylesChecked)
	}
}

// PrintCoverage shows the share of macro-importing modules that expanded
// cleanly as a progress bar
func (r *VerboseReporter) PrintCoverage(stats Stats, failed int) {
	if stats.FilesWithMacro == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Expandable Modules", r.useColors))
	fmt.Fprintln(r.w, "------------------")
	ok := stats.FilesWithMacro - failed
	printProgressBar(r.w, float64(ok)/float64(stats.FilesWithMacro)*100)
}

// PrintWarnings lists free-form warnings
func (r *VerboseReporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
