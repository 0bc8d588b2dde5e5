package macro

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// importDecl is one statement that binds names from the macro module
type importDecl struct {
	node       *sitter.Node // import_statement, or the declaration holding the require
	declarator *sitter.Node // variable_declarator, dynamic imports only
	path       string       // "./styled/macro"
	pathText   string       // the source string as written, quotes included
	mechanism  Mechanism
	bindings   []*Binding
}

// resolve records a Binding for every name imported from the macro module.
// Only program-level statements are considered.
func (p *pass) resolve(root *sitter.Node) {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Kind() {
		case "import_statement":
			p.resolveImport(stmt)
		case "lexical_declaration", "variable_declaration":
			for _, decl := range namedChildren(stmt) {
				if decl.Kind() == "variable_declarator" {
					p.resolveRequire(stmt, decl)
				}
			}
		}
	}
}

func (p *pass) resolveImport(stmt *sitter.Node) {
	source := stmt.ChildByFieldName("source")
	importPath, ok := stringValue(p.src, source)
	if !ok || !IsMacroPath(importPath, p.opts.MacroSuffixes) {
		return
	}

	d := &importDecl{
		node:      stmt,
		path:      importPath,
		pathText:  text(p.src, source),
		mechanism: MechanismModule,
	}
	p.decls = append(p.decls, d)

	var clause *sitter.Node
	for _, c := range namedChildren(stmt) {
		if c.Kind() == "import_clause" {
			clause = c
			break
		}
	}
	if clause == nil {
		// import './macro' binds nothing
		return
	}

	for _, c := range namedChildren(clause) {
		switch c.Kind() {
		case "identifier":
			p.bind(d, c, text(p.src, c), "default")
		case "namespace_import":
			for _, id := range namedChildren(c) {
				if id.Kind() == "identifier" {
					b := p.bind(d, id, text(p.src, id), "*")
					b.namespace = true
					b.Export = Export{Name: "*", Kind: KindNamespace}
				}
			}
		case "named_imports":
			for _, spec := range namedChildren(c) {
				if spec.Kind() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				exported := text(p.src, name)
				if v, ok := stringValue(p.src, name); ok {
					exported = v
				}
				local := exported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = text(p.src, alias)
				}
				p.bind(d, spec, local, exported)
			}
		}
	}
}

// resolveRequire handles the dynamic forms
//
//	const styled = require('./macro')
//	const { css, flush: f } = require('./macro')
//	const css = require('./macro').css
func (p *pass) resolveRequire(stmt, decl *sitter.Node) {
	value := unwrapParens(decl.ChildByFieldName("value"))
	if value == nil {
		return
	}

	member := ""
	if value.Kind() == "member_expression" {
		prop := value.ChildByFieldName("property")
		if prop == nil || prop.Kind() != "property_identifier" {
			return
		}
		member = text(p.src, prop)
		value = unwrapParens(value.ChildByFieldName("object"))
	}

	source, ok := requireSource(p.src, value)
	if !ok {
		return
	}
	importPath, _ := stringValue(p.src, source)
	if !IsMacroPath(importPath, p.opts.MacroSuffixes) {
		return
	}

	d := &importDecl{
		node:       stmt,
		declarator: decl,
		path:       importPath,
		pathText:   text(p.src, source),
		mechanism:  MechanismDynamic,
	}
	p.decls = append(p.decls, d)

	name := decl.ChildByFieldName("name")
	switch name.Kind() {
	case "identifier":
		exported := "default"
		if member != "" {
			exported = member
		}
		p.bind(d, name, text(p.src, name), exported)
	case "object_pattern":
		if member != "" {
			return
		}
		for _, prop := range namedChildren(name) {
			switch prop.Kind() {
			case "shorthand_property_identifier_pattern":
				local := text(p.src, prop)
				p.bind(d, prop, local, local)
			case "pair_pattern":
				key := prop.ChildByFieldName("key")
				val := prop.ChildByFieldName("value")
				if val == nil || val.Kind() != "identifier" {
					continue
				}
				exported := text(p.src, key)
				if v, ok := stringValue(p.src, key); ok {
					exported = v
				}
				p.bind(d, prop, text(p.src, val), exported)
			}
		}
	}
}

// requireSource returns the string argument of require('...')
func requireSource(src []byte, call *sitter.Node) (*sitter.Node, bool) {
	if call == nil || call.Kind() != "call_expression" {
		return nil, false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || text(src, fn) != "require" {
		return nil, false
	}
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Kind() != "arguments" {
		return nil, false
	}
	list := namedChildren(args)
	if len(list) != 1 || list[0].Kind() != "string" {
		return nil, false
	}
	return list[0], true
}

func (p *pass) bind(d *importDecl, n *sitter.Node, local, exported string) *Binding {
	b := &Binding{
		LocalName:    local,
		ExportedName: exported,
		ModulePath:   d.path,
		Mechanism:    d.mechanism,
		Export:       p.opts.Exports.Lookup(exported),
		Pos:          positionOf(n),
	}
	d.bindings = append(d.bindings, b)
	p.bindings = append(p.bindings, b)
	p.byLocal[local] = b
	p.names[local] = true
	if b.Export.Kind == KindUnknown && exported != "*" {
		p.rep.unknownExport(b)
	}
	return b
}
