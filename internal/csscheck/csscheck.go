// Package csscheck validates the static text of expanded style bodies with
// tree-sitter-css. Interpolation slots are replaced by placeholders chosen
// from their surrounding text, so a body that is only valid once its slots
// are filled in is still checked as CSS.
package csscheck

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	"github.com/yacobolo/cssmacro/internal/macro"
)

// Problem is one syntax problem in a style body
type Problem struct {
	Line    int // 1-based, relative to the style body
	Column  int // 1-based, in the checked text
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%d:%d: %s", p.Line, p.Column, p.Message)
}

// Checker parses style bodies. It is not safe for concurrent use.
type Checker struct {
	parser *sitter.Parser
}

// New creates a Checker
func New() (*Checker, error) {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tree_sitter_css.Language())
	if err := parser.SetLanguage(lang); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set CSS language: %w", err)
	}
	return &Checker{parser: parser}, nil
}

// Close releases the parser
func (c *Checker) Close() {
	c.parser.Close()
}

// Check validates the body of one compiled style. export selects how the
// body is wrapped: keyframes bodies are keyframe blocks, injectGlobal bodies
// are stylesheets and everything else is a declaration block.
func (c *Checker) Check(export string, seq macro.Sequence) ([]Problem, error) {
	prefix, suffix := wrapperFor(export)
	source := prefix + StaticText(seq) + suffix
	shift := strings.Count(prefix, "\n")

	tree := c.parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var problems []Problem
	collect(root, []byte(source), shift, &problems)
	if len(problems) == 0 {
		problems = append(problems, Problem{Line: 1, Column: 1, Message: "invalid CSS"})
	}
	return problems, nil
}

func wrapperFor(export string) (string, string) {
	switch export {
	case "injectGlobal":
		return "", ""
	case "keyframes":
		return "@keyframes cssmacro {\n", "\n}"
	}
	return ".cssmacro {\n", "\n}"
}

// collect records ERROR and MISSING nodes without descending into them
func collect(n *sitter.Node, source []byte, shift int, problems *[]Problem) {
	if n == nil || !n.HasError() && !n.IsMissing() {
		return
	}

	if n.IsMissing() || n.IsError() {
		pos := n.StartPosition()
		line := int(pos.Row) + 1 - shift
		if line < 1 {
			line = 1
		}
		msg := fmt.Sprintf("missing %q", n.Kind())
		if n.IsError() {
			msg = fmt.Sprintf("unexpected %q", snippet(string(source[n.StartByte():n.EndByte()])))
		}
		*problems = append(*problems, Problem{
			Line:    line,
			Column:  int(pos.Column) + 1,
			Message: msg,
		})
		return
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		collect(n.Child(i), source, shift, problems)
	}
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	return s
}
