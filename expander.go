package cssmacro

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/cssmacro/internal/macro"
	"github.com/yacobolo/cssmacro/internal/report"
)

// Expand expands every module matched by cfg.Paths. A module that fails
// does not stop its siblings: each failure is recorded on its FileResult and
// all of them are returned combined, in path order.
func Expand(ctx context.Context, cfg Config) (*ExpandResult, error) {
	cfg = cfg.withDefaults()

	files, scan, err := discoverFiles(cfg.Paths, cfg)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	cfg.Logger.Debug("Discovered modules",
		zap.Int("scanned", scan.FilesScanned),
		zap.Int("skipped", scan.FilesSkipped))

	return expandFiles(ctx, cfg, files, scan)
}

// expandFiles expands files in parallel, bounded by cfg.Jobs
func expandFiles(ctx context.Context, cfg Config, files []string, scan ScanStats) (*ExpandResult, error) {
	results := make([]FileResult, len(files))
	err := forEachFile(ctx, cfg.Jobs, files, func(i int, path string) {
		results[i] = expandFile(path, cfg)
	})
	if err != nil {
		return nil, err
	}

	result := &ExpandResult{
		Files: results,
		Stats: report.Stats{FilesScanned: scan.FilesScanned},
	}
	var errs error
	for _, f := range results {
		logFile(cfg.Logger, f)
		if f.Err != nil {
			errs = multierr.Append(errs, f.Err)
			if _, ok := macro.AsDiagnostic(f.Err); ok {
				result.Stats.FilesWithMacro++
			}
			continue
		}
		if len(f.Result.Bindings) > 0 {
			result.Stats.FilesWithMacro++
		}
		if f.Output != "" {
			result.Stats.FilesChanged++
		}
		result.Stats.Invocations += len(f.Result.Outputs)
		result.Stats.Flattened += f.Result.Flattened
		result.Warnings = append(result.Warnings, f.Result.Warnings...)
	}
	return result, errs
}

// forEachFile calls fn for every file with at most jobs calls in flight.
// It stops early only when ctx is cancelled.
func forEachFile(ctx context.Context, jobs int, files []string, fn func(i int, path string)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i, path)
			return nil
		})
	}
	return g.Wait()
}

func expandFile(path string, cfg Config) (res FileResult) {
	res.Path = path
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading module: %w", err)
		return res
	}

	result, err := macro.Transform(src, cfg.macroOptions(path))
	if err != nil {
		res.Err = err
		return res
	}
	res.Result = result
	if !result.Changed {
		return res
	}

	if cfg.Verify {
		if err := verifyModule(path, result.Code); err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
	}

	out, err := outputPath(path, cfg)
	if err != nil {
		res.Err = fmt.Errorf("%s: resolving output path: %w", path, err)
		return res
	}
	res.Output = out
	if cfg.DryRun {
		return res
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		res.Err = fmt.Errorf("creating output directory: %w", err)
		return res
	}
	if err := os.WriteFile(out, result.Code, 0o644); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", out, err)
	}
	return res
}

func logFile(log *zap.Logger, f FileResult) {
	if f.Err != nil {
		log.Debug("Module failed", zap.String("file", f.Path), zap.Error(f.Err))
		return
	}
	for _, w := range f.Result.Warnings {
		log.Warn(w.Message, zap.String("file", f.Path), zap.Int("line", w.Line))
	}
	if f.Output == "" {
		return
	}
	log.Debug("Expanded module",
		zap.String("file", f.Path),
		zap.String("output", f.Output),
		zap.Int("outputs", len(f.Result.Outputs)),
		zap.Duration("elapsed", f.Elapsed))
}
