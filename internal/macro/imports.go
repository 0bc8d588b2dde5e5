package macro

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// addImportEdits removes the macro imports. The runtime import takes the
// place of the first one; names the macro does not export stay imported.
func (p *pass) addImportEdits() {
	runtime := p.runtimeImport()
	done := make(map[uintptr]bool)
	for i, d := range p.decls {
		if done[d.node.Id()] {
			continue
		}
		done[d.node.Id()] = true

		var lines []string
		if i == 0 && runtime != "" {
			lines = append(lines, runtime)
		}

		if d.declarator == nil {
			if retainsAll(d) {
				if len(lines) == 0 {
					continue
				}
				lines = append(lines, text(p.src, d.node))
			} else if kept := p.retainedImport(d); kept != "" {
				lines = append(lines, kept)
			}
			p.replaceStatement(d.node, lines, nil)
			continue
		}

		group := p.declsOf(d.node)
		for _, g := range group {
			if kept := p.retainedRequire(g); kept != "" {
				lines = append(lines, kept)
			}
		}
		p.replaceStatement(d.node, lines, p.keptDeclarators(d.node, group))
	}
}

// replaceStatement swaps stmt for lines followed by the rebuilt declaration
// of the kept declarators, dropping its line when nothing remains
func (p *pass) replaceStatement(stmt *sitter.Node, lines []string, kept []*sitter.Node) {
	start, end := stmt.StartByte(), stmt.EndByte()
	if len(lines) == 0 && len(kept) == 0 {
		start, end = wholeLine(p.src, start, end)
	}
	sep := "\n" + lineIndent(p.src, stmt.StartByte())

	p.edits = append(p.edits, &edit{
		start: start,
		end:   end,
		compute: func() (string, error) {
			out := append([]string(nil), lines...)
			if len(kept) > 0 {
				decl, err := p.rebuildDeclaration(stmt, kept)
				if err != nil {
					return "", err
				}
				out = append(out, decl)
			}
			return strings.Join(out, sep), nil
		},
	})
}

// rebuildDeclaration renders `const a = 1, b = 2;` from the kept declarators
func (p *pass) rebuildDeclaration(stmt *sitter.Node, kept []*sitter.Node) (string, error) {
	parts := make([]string, len(kept))
	for i, n := range kept {
		s, err := p.render(n)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return declarationKeyword(p.src, stmt) + " " + strings.Join(parts, ", ") + semicolon(p.src, stmt), nil
}

func (p *pass) declsOf(stmt *sitter.Node) []*importDecl {
	var out []*importDecl
	for _, d := range p.decls {
		if sameNode(d.node, stmt) {
			out = append(out, d)
		}
	}
	return out
}

// keptDeclarators returns the declarators of stmt that do not require the macro
func (p *pass) keptDeclarators(stmt *sitter.Node, group []*importDecl) []*sitter.Node {
	var kept []*sitter.Node
	for _, c := range namedChildren(stmt) {
		if c.Kind() != "variable_declarator" {
			continue
		}
		macro := false
		for _, d := range group {
			if sameNode(d.declarator, c) {
				macro = true
				break
			}
		}
		if !macro {
			kept = append(kept, c)
		}
	}
	return kept
}

// runtimeImport is the single import of the runtime entry point
func (p *pass) runtimeImport() string {
	if len(p.runtimeOrder) == 0 {
		return ""
	}
	module := strconv.Quote(p.opts.RuntimeModule)

	dynamic := true
	for _, d := range p.decls {
		if d.mechanism == MechanismModule {
			dynamic = false
			break
		}
	}

	specs := make([]string, len(p.runtimeOrder))
	for i, name := range p.runtimeOrder {
		sep := " as "
		if dynamic {
			sep = ": "
		}
		specs[i] = name + sep + p.runtime[name]
	}
	if dynamic {
		return "const { " + strings.Join(specs, ", ") + " } = require(" + module + ");"
	}
	return "import { " + strings.Join(specs, ", ") + " } from " + module + ";"
}

// retainsAll reports whether every name of an import statement stays. A
// side-effect import has no names and is always removed.
func retainsAll(d *importDecl) bool {
	if len(d.bindings) == 0 {
		return false
	}
	for _, b := range d.bindings {
		if !retained(b) {
			return false
		}
	}
	return true
}

func retained(b *Binding) bool {
	if b.namespace {
		return b.usedAsRaw
	}
	return b.Export.Kind == KindUnknown
}

// retainedImport rebuilds an import statement with only the names the macro
// does not export. It returns "" when nothing needs to stay.
func (p *pass) retainedImport(d *importDecl) string {
	semi := semicolon(p.src, d.node)
	var named, lines []string
	for _, b := range d.bindings {
		if !retained(b) {
			continue
		}
		if b.namespace {
			lines = append(lines, "import * as "+b.LocalName+" from "+d.pathText+semi)
			continue
		}
		named = append(named, specifier(b.ExportedName, b.LocalName, " as "))
	}
	if len(named) > 0 {
		lines = append(lines, "import { "+strings.Join(named, ", ")+" } from "+d.pathText+semi)
	}
	return strings.Join(lines, "\n")
}

// retainedRequire is retainedImport for require declarators
func (p *pass) retainedRequire(d *importDecl) string {
	var named []string
	for _, b := range d.bindings {
		if retained(b) {
			named = append(named, specifier(b.ExportedName, b.LocalName, ": "))
		}
	}
	if len(named) == 0 {
		return ""
	}
	return declarationKeyword(p.src, d.node) + " { " + strings.Join(named, ", ") + " } = require(" + d.pathText + ");"
}

func specifier(exported, local, sep string) string {
	if exported == local {
		return local
	}
	return exported + sep + local
}

func declarationKeyword(src []byte, stmt *sitter.Node) string {
	if kw := stmt.Child(0); kw != nil && !kw.IsNamed() {
		return text(src, kw)
	}
	return "const"
}

func semicolon(src []byte, stmt *sitter.Node) string {
	if strings.HasSuffix(text(src, stmt), ";") {
		return ";"
	}
	return ""
}

// wholeLine widens [start, end) to its full line when the line holds
// nothing else
func wholeLine(src []byte, start, end uint) (uint, uint) {
	lineStart := start
	for lineStart > 0 && (src[lineStart-1] == ' ' || src[lineStart-1] == '\t') {
		lineStart--
	}
	if lineStart > 0 && src[lineStart-1] != '\n' {
		return start, end
	}
	lineEnd := end
	for lineEnd < uint(len(src)) && (src[lineEnd] == ' ' || src[lineEnd] == '\t' || src[lineEnd] == '\r') {
		lineEnd++
	}
	if lineEnd < uint(len(src)) {
		if src[lineEnd] != '\n' {
			return start, end
		}
		lineEnd++
	}
	return lineStart, lineEnd
}

// lineIndent returns the whitespace between the line start and pos
func lineIndent(src []byte, pos uint) string {
	start := pos
	for start > 0 && (src[start-1] == ' ' || src[start-1] == '\t') {
		start--
	}
	return string(src[start:pos])
}
