// Package report prints macro diagnostics and run statistics for the
// command line, in golangci-lint format.
package report

// Issue represents a single problem in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "unresolved-macro", "css-syntax"
	Text        string   `json:"Text"`        // "macro use cannot be resolved statically: ..."
	Severity    string   `json:"Severity"`    // "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.js"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 15 (1-based)
}

// Issue severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Stats summarizes one run over a set of modules
type Stats struct {
	FilesScanned   int
	FilesWithMacro int // modules importing the macro module
	FilesChanged   int
	Invocations    int // compiled macro uses
	Flattened      int // nested uses spliced into a parent body
	StylesChecked  int // style bodies validated as CSS
	TruncatedCount int // issues removed due to limits
}

// CountSeverities returns the number of errors and warnings in issues
func CountSeverities(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
