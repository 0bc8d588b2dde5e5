package cssmacro

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yacobolo/cssmacro/internal/csscheck"
	"github.com/yacobolo/cssmacro/internal/macro"
	"github.com/yacobolo/cssmacro/internal/report"
)

// CheckResult contains the issues found by Check
type CheckResult struct {
	Issues     []Issue
	Stats      report.Stats
	ErrorCount int // issues with error severity, before limits
	Failed     int // modules the macro pass rejected
}

// Check runs the macro pass over every module matched by cfg.Paths without
// writing anything. Fatal diagnostics become error issues, unknown exports
// become warnings and, with cfg.CheckCSS, every static style body is parsed
// as CSS.
func Check(ctx context.Context, cfg Config) (*CheckResult, error) {
	cfg = cfg.withDefaults()

	files, scan, err := discoverFiles(cfg.Paths, cfg)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	checked := make([]fileCheck, len(files))
	err = forEachFile(ctx, cfg.Jobs, files, func(i int, path string) {
		checked[i] = checkFile(path, cfg)
	})
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Stats: report.Stats{FilesScanned: scan.FilesScanned},
	}
	for _, c := range checked {
		result.Issues = append(result.Issues, c.issues...)
		result.Stats.StylesChecked += c.styles
		if c.failed {
			result.Failed++
		}
		if c.usesMacro {
			result.Stats.FilesWithMacro++
		}
		if c.result != nil {
			if c.result.Changed {
				result.Stats.FilesChanged++
			}
			result.Stats.Invocations += len(c.result.Outputs)
			result.Stats.Flattened += c.result.Flattened
		}
	}

	report.SortIssues(result.Issues)
	result.ErrorCount, _ = report.CountSeverities(result.Issues)
	result.Issues, result.Stats.TruncatedCount = report.Limit(result.Issues, cfg.MaxIssuesPerLinter, cfg.MaxSameIssues)

	cfg.Logger.Debug("Check complete",
		zap.Int("files", scan.FilesScanned),
		zap.Int("issues", len(result.Issues)),
		zap.Int("truncated", result.Stats.TruncatedCount))
	return result, nil
}

type fileCheck struct {
	issues    []Issue
	result    *macro.Result
	styles    int
	failed    bool
	usesMacro bool
}

func checkFile(path string, cfg Config) fileCheck {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileCheck{issues: []Issue{issueFromError(path, err)}, failed: true}
	}

	result, err := macro.Transform(src, cfg.macroOptions(path))
	if err != nil {
		d, ok := macro.AsDiagnostic(err)
		if !ok {
			return fileCheck{issues: []Issue{issueFromError(path, err)}, failed: true}
		}
		return fileCheck{issues: []Issue{issueFromDiagnostic(d, src)}, failed: true, usesMacro: true}
	}

	c := fileCheck{result: result, usesMacro: len(result.Bindings) > 0}
	for _, w := range result.Warnings {
		c.issues = append(c.issues, issueFromDiagnostic(w, src))
	}
	if !cfg.CheckCSS || len(result.Outputs) == 0 {
		return c
	}

	checker, err := csscheck.New()
	if err != nil {
		c.issues = append(c.issues, issueFromError(path, err))
		return c
	}
	defer checker.Close()

	for _, out := range result.Outputs {
		if len(out.Sequence) == 0 || out.Form == macro.FormCallObject {
			continue
		}
		problems, err := checker.Check(out.Export, out.Sequence)
		if err != nil {
			c.issues = append(c.issues, issueFromError(path, err))
			continue
		}
		c.styles++
		for _, p := range problems {
			c.issues = append(c.issues, issueFromProblem(path, out, p, src))
		}
	}
	return c
}
