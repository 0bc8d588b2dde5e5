package cssmacro

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Generated, vendored or ignored files
}

// moduleExtensions are the file types the macro pass understands
var moduleExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once. No .gitignore is fine.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// isModule reports whether path has a JavaScript module extension
func isModule(path string) bool {
	return slices.Contains(moduleExtensions, filepath.Ext(path))
}

// isGenerated reports whether path is an expanded module written by a
// previous run with the given suffix
func isGenerated(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	ext := filepath.Ext(path)
	return strings.HasSuffix(strings.TrimSuffix(path, ext), suffix)
}

// isVendored reports whether path lies inside node_modules
func isVendored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}

// shouldSkipFile determines if a file should be excluded from scanning.
// Gitignore rules only apply to relative paths inside the project.
func shouldSkipFile(path string, cfg Config) bool {
	if !isModule(path) || isVendored(path) {
		return true
	}
	if !cfg.InPlace && isGenerated(path, cfg.Suffix) {
		return true
	}
	if cfg.OutDir != "" && isWithin(path, cfg.OutDir) {
		return true
	}
	if !filepath.IsAbs(path) {
		if gi := loadGitIgnore(); gi != nil && gi.MatchesPath(path) {
			return true
		}
	}
	return false
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// discoverFiles expands glob patterns to a sorted, deduplicated file list
func discoverFiles(patterns []string, cfg Config) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++
			if shouldSkipFile(match, cfg) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	slices.Sort(files)
	return files, stats, nil
}

// outputPath returns where the expanded form of path is written
func outputPath(path string, cfg Config) (string, error) {
	switch {
	case cfg.InPlace:
		return path, nil
	case cfg.OutDir != "":
		rel := path
		if filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			if rel, err = filepath.Rel(cwd, path); err != nil {
				return "", err
			}
		}
		rel = filepath.Clean(rel)
		for strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = strings.TrimPrefix(rel, ".."+string(filepath.Separator))
		}
		return filepath.Join(cfg.OutDir, rel), nil
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + cfg.Suffix + ext, nil
}

// GetRelativePath returns a path relative to the working directory when possible
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
