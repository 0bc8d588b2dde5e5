package macro

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extract builds the Sequence of an invocation's style body.
// Nested inlinable invocations are extracted first and spliced in place.
func (p *pass) extract(inv *Invocation) (Sequence, error) {
	var b sequenceBuilder
	if inv.template != nil {
		if err := p.extractTemplate(&b, inv.template); err != nil {
			return nil, err
		}
		return b.sequence(), nil
	}
	for _, arg := range inv.args {
		if err := p.extractArg(&b, arg); err != nil {
			return nil, err
		}
	}
	return b.sequence(), nil
}

// extractTemplate splits a template literal at its substitutions.
// Literal text is taken from the byte ranges between substitutions, so
// escapes and line breaks are kept exactly as written.
func (p *pass) extractTemplate(b *sequenceBuilder, tpl *sitter.Node) error {
	cursor := tpl.StartByte() + 1
	for i := uint(0); i < tpl.NamedChildCount(); i++ {
		sub := tpl.NamedChild(i)
		if sub.Kind() != "template_substitution" {
			continue
		}
		b.appendLiteral(string(p.src[cursor:sub.StartByte()]))
		cursor = sub.EndByte()

		exprs := namedChildren(sub)
		if len(exprs) == 0 {
			return p.rep.malformed(sub, "empty interpolation")
		}
		if err := p.extractSlot(b, exprs[0]); err != nil {
			return err
		}
	}
	b.appendLiteral(string(p.src[cursor : tpl.EndByte()-1]))
	return nil
}

func (p *pass) extractArg(b *sequenceBuilder, arg *sitter.Node) error {
	switch arg.Kind() {
	case "string":
		v, _ := stringValue(p.src, arg)
		b.appendLiteral(templateRaw(v))
		return nil
	case "template_string":
		return p.extractTemplate(b, arg)
	}
	return p.extractSlot(b, arg)
}

// extractSlot appends one interpolation. A nested css use is flattened;
// anything else becomes an opaque slot rendered from source.
func (p *pass) extractSlot(b *sequenceBuilder, expr *sitter.Node) error {
	inner := unwrapParens(expr)
	if nested := p.inlineAt(inner); nested != nil {
		seq, err := p.extract(nested)
		if err != nil {
			return err
		}
		nested.absorbed = true
		b.appendSequence(seq)
		return nil
	}
	if err := p.checkIndirect(inner); err != nil {
		return err
	}

	rendered, err := p.render(expr)
	if err != nil {
		return err
	}
	b.appendSlot(rendered)
	return nil
}

// checkIndirect rejects interpolations that invoke a macro through an alias
func (p *pass) checkIndirect(n *sitter.Node) error {
	if n.Kind() != "call_expression" {
		return nil
	}
	fn := unwrapParens(n.ChildByFieldName("function"))
	if fn == nil || fn.Kind() != "identifier" {
		return nil
	}
	name := text(p.src, fn)
	if b, ok := p.aliases[name]; ok {
		return p.rep.unresolved(fn, "%q is an alias of the %q macro, use %s directly", name, b.Export.Name, b.LocalName)
	}
	return nil
}
