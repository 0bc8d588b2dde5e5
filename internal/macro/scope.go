package macro

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// reference is one unshadowed read of a binding
type reference struct {
	binding *Binding
	node    *sitter.Node
}

// scope is a set of names declared by a function or block.
// The module scope is nil: macro bindings live there.
type scope struct {
	names  map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]bool), parent: parent}
}

func (s *scope) declares(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.names[name] {
			return true
		}
	}
	return false
}

// collectReferences walks the module in source order and records every
// reference to a macro binding that is not shadowed by a local declaration.
// Assignments to a binding mark it Reassigned instead.
func (p *pass) collectReferences(root *sitter.Node) {
	skip := make(map[uintptr]bool)
	for _, d := range p.decls {
		if d.declarator != nil {
			skip[d.declarator.Id()] = true
		} else {
			skip[d.node.Id()] = true
		}
	}
	p.walkScope(root, nil, skip)
}

func (p *pass) walkScope(n *sitter.Node, s *scope, skip map[uintptr]bool) {
	if n == nil || skip[n.Id()] {
		return
	}

	switch n.Kind() {
	case "identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		name := text(p.src, n)
		p.names[name] = true
		if n.Kind() == "shorthand_property_identifier_pattern" {
			return
		}
		b := p.byLocal[name]
		if b == nil || s.declares(name) {
			return
		}
		if isAssignmentTarget(n) {
			b.Reassigned = true
			return
		}
		p.refs = append(p.refs, reference{binding: b, node: n})
		return

	case "function_declaration", "function_expression", "function",
		"generator_function_declaration", "generator_function",
		"arrow_function", "method_definition":
		s = p.functionScope(n, s)

	case "statement_block", "class_body", "switch_body":
		s = p.blockScope(n, s)

	case "for_statement", "for_in_statement":
		inner := newScope(s)
		if init := n.ChildByFieldName("initializer"); init != nil {
			p.declareStatement(init, inner)
		}
		if left := n.ChildByFieldName("left"); left != nil && n.ChildByFieldName("kind") != nil {
			declarePattern(p.src, left, inner)
		}
		s = inner

	case "catch_clause":
		inner := newScope(s)
		if param := n.ChildByFieldName("parameter"); param != nil {
			declarePattern(p.src, param, inner)
		}
		s = inner

	case "class":
		if name := n.ChildByFieldName("name"); name != nil {
			s = newScope(s)
			s.names[text(p.src, name)] = true
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		p.walkScope(n.Child(i), s, skip)
	}
}

// functionScope declares parameters, the function's own name and hoisted vars
func (p *pass) functionScope(n *sitter.Node, parent *scope) *scope {
	s := newScope(parent)
	if n.Kind() != "function_declaration" && n.Kind() != "generator_function_declaration" {
		if name := n.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			s.names[text(p.src, name)] = true
		}
	}
	if param := n.ChildByFieldName("parameter"); param != nil {
		declarePattern(p.src, param, s)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, param := range namedChildren(params) {
			declarePattern(p.src, param, s)
		}
	}
	if body := n.ChildByFieldName("body"); body != nil && body.Kind() == "statement_block" {
		p.hoistVars(body, s)
	}
	return s
}

// blockScope declares the lexical names of a block
func (p *pass) blockScope(n *sitter.Node, parent *scope) *scope {
	s := newScope(parent)
	for _, stmt := range namedChildren(n) {
		p.declareStatement(stmt, s)
	}
	return s
}

func (p *pass) declareStatement(stmt *sitter.Node, s *scope) {
	switch stmt.Kind() {
	case "lexical_declaration", "variable_declaration":
		for _, decl := range namedChildren(stmt) {
			if decl.Kind() == "variable_declarator" {
				declarePattern(p.src, decl.ChildByFieldName("name"), s)
			}
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			s.names[text(p.src, name)] = true
		}
	}
}

// hoistVars declares var statements anywhere in a function body,
// without descending into nested functions
func (p *pass) hoistVars(n *sitter.Node, s *scope) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		switch c.Kind() {
		case "variable_declaration":
			p.declareStatement(c, s)
		case "function_declaration", "generator_function_declaration":
			p.declareStatement(c, s)
			continue
		case "function_expression", "function", "generator_function", "arrow_function",
			"method_definition", "class", "class_declaration":
			continue
		}
		p.hoistVars(c, s)
	}
}

// declarePattern adds every name bound by a binding pattern
func declarePattern(src []byte, n *sitter.Node, s *scope) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		s.names[text(src, n)] = true
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range namedChildren(n) {
			declarePattern(src, c, s)
		}
	case "pair_pattern":
		declarePattern(src, n.ChildByFieldName("value"), s)
	case "assignment_pattern", "object_assignment_pattern":
		declarePattern(src, n.ChildByFieldName("left"), s)
	}
}

// isAssignmentTarget reports whether the identifier n is being written to
func isAssignmentTarget(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "assignment_expression", "augmented_assignment_expression":
		return sameNode(parent.ChildByFieldName("left"), n)
	case "update_expression":
		return sameNode(parent.ChildByFieldName("argument"), n)
	case "for_in_statement":
		return sameNode(parent.ChildByFieldName("left"), n)
	}
	return false
}
