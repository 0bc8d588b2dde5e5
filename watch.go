package cssmacro

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce collapses bursts of editor writes into one run
const watchDebounce = 100 * time.Millisecond

// Watch expands every module once, then again each time a module matched
// by cfg.Paths is written, until ctx is done. Each run is passed to
// onResult; a failing run does not stop watching.
func Watch(ctx context.Context, cfg Config, onResult func(*ExpandResult, error)) error {
	cfg = cfg.withDefaults()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchRoots(cfg.Paths) {
		if err := watchDir(watcher, dir, cfg); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	onResult(Expand(ctx, cfg))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDir(watcher, event.Name, cfg); err != nil {
						cfg.Logger.Warn("Cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if !matchesAny(cfg.Paths, event.Name) || shouldSkipFile(event.Name, cfg) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(watchDebounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for path := range pending {
				files = append(files, path)
			}
			clear(pending)
			slices.Sort(files)
			cfg.Logger.Info("Change detected", zap.Strings("files", files))
			onResult(expandFiles(ctx, cfg, files, ScanStats{FilesScanned: len(files)}))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// watchRoots returns the static directory prefix of every pattern
func watchRoots(patterns []string) []string {
	var roots []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		root := filepath.FromSlash(base)
		if !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	return roots
}

// watchDir recursively adds a directory to the watcher, skipping
// node_modules, hidden directories and the output directory
func watchDir(watcher *fsnotify.Watcher, dir string, cfg Config) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if cfg.OutDir != "" && isWithin(path, cfg.OutDir) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func matchesAny(patterns []string, path string) bool {
	path = filepath.Clean(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(pattern), path); ok {
			return true
		}
	}
	return false
}
