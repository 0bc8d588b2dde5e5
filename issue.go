package cssmacro

import (
	"bytes"
	"fmt"

	"github.com/yacobolo/cssmacro/internal/csscheck"
	"github.com/yacobolo/cssmacro/internal/macro"
	"github.com/yacobolo/cssmacro/internal/report"
)

// Issue is a problem found by Check
type Issue = report.Issue

// Linter name of issues raised by the CSS body check
const LinterCSSSyntax = "css-syntax"

// Message templates
const (
	IssueInvalidCSS = "invalid CSS in %s body: %s"
	IssueIOFailure  = "cannot process module: %v"
)

// issueFromDiagnostic converts a macro diagnostic into an issue with its
// source line attached
func issueFromDiagnostic(d *macro.Diagnostic, src []byte) Issue {
	return Issue{
		FromLinter:  d.Code,
		Text:        d.Message,
		Severity:    string(d.Severity),
		SourceLines: sourceLines(src, d.Line),
		Pos: report.IssuePos{
			Filename: d.Filename,
			Line:     d.Line,
			Column:   d.Column,
		},
	}
}

// issueFromProblem places a CSS problem of a style body in the module. Body
// lines after the first keep their source columns.
func issueFromProblem(path string, out macro.CompiledOutput, p csscheck.Problem, src []byte) Issue {
	line := out.Pos.Line + p.Line - 1
	column := p.Column
	if p.Line == 1 {
		column = out.Pos.Column
	}
	return Issue{
		FromLinter:  LinterCSSSyntax,
		Text:        fmt.Sprintf(IssueInvalidCSS, out.Export, p.Message),
		Severity:    report.SeverityWarning,
		SourceLines: sourceLines(src, line),
		Pos: report.IssuePos{
			Filename: path,
			Line:     line,
			Column:   column,
		},
	}
}

func issueFromError(path string, err error) Issue {
	return Issue{
		FromLinter: "io",
		Text:       fmt.Sprintf(IssueIOFailure, err),
		Severity:   report.SeverityError,
		Pos:        report.IssuePos{Filename: path, Line: 1, Column: 1},
	}
}

// sourceLines returns line (1-based) of src, or nil when out of range
func sourceLines(src []byte, line int) []string {
	if line < 1 {
		return nil
	}
	lines := bytes.Split(src, []byte("\n"))
	if line > len(lines) {
		return nil
	}
	return []string{string(bytes.TrimRight(lines[line-1], "\r"))}
}
