package macro

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Sentinel errors wrapped by fatal diagnostics
var (
	ErrImportStyle     = errors.New("the emotion macro must be imported with module syntax (es modules)")
	ErrUnresolvedMacro = errors.New("macro use cannot be resolved statically")
	ErrMalformedMacro  = errors.New("malformed macro use")
	ErrSyntax          = errors.New("syntax error")
)

// Severity of a diagnostic
type Severity string

// Diagnostic severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic codes
const (
	CodeImportStyle   = "import-style"
	CodeUnresolved    = "unresolved-macro"
	CodeMalformed     = "malformed-macro"
	CodeSyntax        = "syntax"
	CodeUnknownExport = "unknown-export"
)

// Diagnostic is a located problem found while transforming a module.
// Errors abort the module; warnings are collected on the Result.
type Diagnostic struct {
	Code     string
	Message  string
	Filename string
	Line     int
	Column   int
	Severity Severity

	err error
}

func (d *Diagnostic) Error() string {
	if d.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Filename, d.Line, d.Column, d.Message)
}

func (d *Diagnostic) Unwrap() error { return d.err }

// AsDiagnostic extracts a Diagnostic from err
func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

type reporter struct {
	filename string
	warnings []*Diagnostic
}

func (r *reporter) fatal(sentinel error, code string, n *sitter.Node, format string, args ...any) *Diagnostic {
	pos := positionOf(n)
	msg := sentinel.Error()
	if format != "" {
		msg = fmt.Sprintf("%s: %s", msg, fmt.Sprintf(format, args...))
	}
	return &Diagnostic{
		Code:     code,
		Message:  msg,
		Filename: r.filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Severity: SeverityError,
		err:      sentinel,
	}
}

func (r *reporter) importStyle(b *Binding, n *sitter.Node) *Diagnostic {
	return r.fatal(ErrImportStyle, CodeImportStyle, n,
		"%q is bound through require(%q)", b.LocalName, b.ModulePath)
}

func (r *reporter) unresolved(n *sitter.Node, format string, args ...any) *Diagnostic {
	return r.fatal(ErrUnresolvedMacro, CodeUnresolved, n, format, args...)
}

func (r *reporter) malformed(n *sitter.Node, format string, args ...any) *Diagnostic {
	return r.fatal(ErrMalformedMacro, CodeMalformed, n, format, args...)
}

func (r *reporter) syntax(n *sitter.Node) *Diagnostic {
	return r.fatal(ErrSyntax, CodeSyntax, n, "cannot expand macros in a module that does not parse")
}

func (r *reporter) unknownExport(b *Binding) {
	r.warnings = append(r.warnings, &Diagnostic{
		Code:     CodeUnknownExport,
		Message:  fmt.Sprintf("%q is not exported by the macro module %q, left untouched", b.ExportedName, b.ModulePath),
		Filename: r.filename,
		Line:     b.Pos.Line,
		Column:   b.Pos.Column,
		Severity: SeverityWarning,
	})
}
