package macro

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// match classifies every reference in source order. The first fatal
// condition aborts the module.
func (p *pass) match() error {
	for _, ref := range p.refs {
		inv, err := p.classify(ref)
		if err != nil {
			return err
		}
		p.invocations = append(p.invocations, inv)
		p.byNode[inv.node.Id()] = inv
		if inv.Form == FormReference && inv.Export.Invocable() {
			p.trackAlias(inv)
		}
	}
	return nil
}

func (p *pass) classify(ref reference) (*Invocation, error) {
	b := ref.binding
	inv := &Invocation{
		Binding: b,
		Export:  b.Export,
		node:    ref.node,
	}

	callee := ref.node
	if b.namespace {
		parent := callee.Parent()
		if parent == nil || parent.Kind() != "member_expression" || !sameNode(parent.ChildByFieldName("object"), callee) {
			return nil, p.rep.unresolved(callee, "namespace import %q must be used through member access, e.g. %s.css", b.LocalName, b.LocalName)
		}
		prop := parent.ChildByFieldName("property")
		inv.Export = p.opts.Exports.Lookup(text(p.src, prop))
		callee = parent
		inv.node = callee
	}
	inv.Pos = positionOf(callee)

	if inv.Export.Kind == KindUnknown {
		inv.Form = FormPassThrough
		b.usedAsRaw = true
		return inv, nil
	}
	if b.Mechanism == MechanismDynamic && inv.Export.Invocable() {
		return nil, p.rep.importStyle(b, callee)
	}
	if b.Reassigned && inv.Export.Invocable() {
		return nil, p.rep.unresolved(callee, "%q is reassigned in this module", b.LocalName)
	}

	var err error
	switch inv.Export.Kind {
	case KindStyled:
		err = p.classifyStyled(inv, callee)
	case KindStyle:
		p.classifyStyle(inv, callee)
	default:
		inv.Form = FormReference
	}
	if err != nil {
		return nil, err
	}
	inv.Label = labelFor(p.src, inv.node)
	return inv, nil
}

// classifyStyle recognizes css`...`, css('...') and css({...})
func (p *pass) classifyStyle(inv *Invocation, callee *sitter.Node) {
	call := callOf(callee)
	if call == nil {
		inv.Form = FormReference
		return
	}
	inv.node = call
	p.setBody(inv, call.ChildByFieldName("arguments"))
	switch {
	case inv.template != nil:
		inv.Form = FormTaggedTemplate
	case len(inv.args) == 0 || isStringLike(inv.args[0]):
		inv.Form = FormCallString
	default:
		inv.Form = FormCallObject
	}
}

// classifyStyled recognizes the two-level styled forms
//
//	styled.div`...`     styled.div({...})
//	styled('div')`...`  styled(Component)({...})
//
// A bare factory (styled.div) is compiled without a style body.
func (p *pass) classifyStyled(inv *Invocation, callee *sitter.Node) error {
	parent := callee.Parent()
	if parent == nil {
		inv.Form = FormReference
		return nil
	}

	var base *sitter.Node
	switch {
	case parent.Kind() == "member_expression" && sameNode(parent.ChildByFieldName("object"), callee):
		prop := parent.ChildByFieldName("property")
		if prop == nil || prop.Kind() != "property_identifier" {
			return p.rep.malformed(parent, "unsupported styled member")
		}
		inv.tag = text(p.src, prop)
		base = parent

	case parent.Kind() == "subscript_expression" && sameNode(parent.ChildByFieldName("object"), callee):
		tag, ok := stringValue(p.src, parent.ChildByFieldName("index"))
		if !ok {
			return p.rep.malformed(parent, "styled tag must be a string literal")
		}
		inv.tag = tag
		base = parent

	case parent.Kind() == "call_expression" && sameNode(parent.ChildByFieldName("function"), callee):
		args := parent.ChildByFieldName("arguments")
		if args.Kind() == "template_string" {
			return p.rep.malformed(parent, "styled needs a tag, e.g. %s.div`...` or %s('div')`...`",
				inv.Binding.LocalName, inv.Binding.LocalName)
		}
		inv.factory = namedChildren(args)
		if len(inv.factory) == 0 {
			return p.rep.malformed(parent, "styled() called without a tag")
		}
		base = parent

	default:
		inv.Form = FormReference
		return nil
	}

	inv.Form = FormMemberOrFactory
	inv.node = base
	if call := callOf(base); call != nil {
		inv.node = call
		p.setBody(inv, call.ChildByFieldName("arguments"))
	}
	return nil
}

func (p *pass) setBody(inv *Invocation, args *sitter.Node) {
	inv.hasBody = true
	if args.Kind() == "template_string" {
		inv.template = args
		return
	}
	inv.args = namedChildren(args)
}

// callOf returns the call or tagged template whose callee is n
func callOf(n *sitter.Node) *sitter.Node {
	parent := n.Parent()
	if parent == nil || parent.Kind() != "call_expression" {
		return nil
	}
	if !sameNode(parent.ChildByFieldName("function"), n) {
		return nil
	}
	if parent.ChildByFieldName("arguments") == nil {
		return nil
	}
	return parent
}

func isStringLike(n *sitter.Node) bool {
	return n.Kind() == "string" || n.Kind() == "template_string"
}

// trackAlias remembers `const x = css` so that later x`...` inside a style
// body can be reported instead of silently left as a runtime call
func (p *pass) trackAlias(inv *Invocation) {
	parent := inv.node.Parent()
	if parent == nil || parent.Kind() != "variable_declarator" {
		return
	}
	if !sameNode(parent.ChildByFieldName("value"), inv.node) {
		return
	}
	if name := parent.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
		p.aliases[text(p.src, name)] = inv.Binding
	}
}

// inlineAt returns the invocation at n when it can be flattened into an
// enclosing style body
func (p *pass) inlineAt(n *sitter.Node) *Invocation {
	inv := p.byNode[n.Id()]
	if inv == nil || !inv.Export.Inline || !inv.hasBody {
		return nil
	}
	switch inv.Form {
	case FormTaggedTemplate, FormCallString, FormCallObject:
		return inv
	}
	return nil
}
