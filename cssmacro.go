// Package cssmacro expands emotion macro imports in JavaScript modules at
// build time.
//
// Every module that imports from the macro module (any import path ending in
// "/macro" or ".macro") has its styled, css, keyframes, fontFace and
// injectGlobal uses compiled into plain calls against the emotion runtime.
// Nested css uses are flattened into their parent style body.
//
// # Expanding
//
//	result, err := cssmacro.Expand(ctx, cssmacro.Config{
//		Paths:  []string{"src/**/*.js"},
//		OutDir: "build",
//	})
//
// # Checking
//
// Check runs the same pass without writing anything and reports problems as
// golangci-lint style issues:
//
//	result, err := cssmacro.Check(ctx, cssmacro.Config{
//		Paths:    []string{"src/**/*.{js,jsx}"},
//		CheckCSS: true,
//	})
//
// # CLI Tool
//
//	go install github.com/yacobolo/cssmacro/cmd/cssmacro@latest
package cssmacro

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/yacobolo/cssmacro/internal/macro"
	"github.com/yacobolo/cssmacro/internal/report"
)

// DefaultSuffix is inserted before the extension of expanded modules written
// next to their source: Button.js becomes Button.expanded.js
const DefaultSuffix = ".expanded"

// Config holds driver configuration
type Config struct {
	Paths         []string // glob patterns of modules, "src/**/*.{js,jsx}"
	OutDir        string   // mirror expanded modules under this directory
	Suffix        string   // otherwise write next to the source with this suffix
	InPlace       bool     // overwrite sources, wins over OutDir and Suffix
	RuntimeModule string   // "emotion"
	MacroSuffixes []string // import path suffixes naming the macro module
	Metadata      bool     // emit { label, source } options
	Minify        bool     // compact literal style text
	Jobs          int      // parallel modules, 0 means GOMAXPROCS
	Verify        bool     // parse every expanded module before writing
	DryRun        bool     // do not write anything

	// Check only
	CheckCSS           bool // validate static style bodies as CSS
	MaxIssuesPerLinter int  // 0 = unlimited
	MaxSameIssues      int  // 0 = unlimited

	Logger *zap.Logger // nil means no logging
}

func (c Config) withDefaults() Config {
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c Config) macroOptions(filename string) macro.Options {
	return macro.Options{
		Filename:      filename,
		MacroSuffixes: c.MacroSuffixes,
		RuntimeModule: c.RuntimeModule,
		Metadata:      c.Metadata,
		Minify:        c.Minify,
	}
}

// FileResult is the outcome for one module
type FileResult struct {
	Path    string
	Output  string        // where the expanded module was written, "" when unchanged
	Result  *macro.Result // nil when Err is set
	Err     error         // fatal diagnostic, verification or I/O failure
	Elapsed time.Duration
}

// ExpandResult contains the per-module outcomes of Expand, sorted by path
type ExpandResult struct {
	Files    []FileResult
	Stats    report.Stats
	Warnings []*macro.Diagnostic
}

// Failed returns the modules that could not be expanded
func (r *ExpandResult) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}
