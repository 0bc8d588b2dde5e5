package macro

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// edit replaces src[start:end]. Values are computed once, on first use.
type edit struct {
	start, end uint
	inv        *Invocation
	compute    func() (string, error)

	done bool
	out  string
}

func (e *edit) value() (string, error) {
	if e.done {
		return e.out, nil
	}
	out, err := e.compute()
	if err != nil {
		return "", err
	}
	e.out, e.done = out, true
	return out, nil
}

// generate compiles every top-level invocation in source order, then renders
// the module with the runtime import in place of the first macro import
func (p *pass) generate() (string, error) {
	for _, inv := range p.invocations {
		if inv.Form == FormPassThrough {
			continue
		}
		p.edits = append(p.edits, &edit{
			start:   inv.node.StartByte(),
			end:     inv.node.EndByte(),
			inv:     inv,
			compute: func() (string, error) { return p.compile(inv) },
		})
	}
	sortEdits(p.edits)

	end := uint(len(p.src))
	for _, e := range p.selectEdits(0, end) {
		if _, err := e.value(); err != nil {
			return "", err
		}
	}

	p.addImportEdits()
	sortEdits(p.edits)
	return p.renderRange(0, end)
}

func sortEdits(edits []*edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end > edits[j].end
	})
}

// selectEdits returns the outermost edits inside [start, end)
func (p *pass) selectEdits(start, end uint) []*edit {
	var out []*edit
	cursor := start
	for _, e := range p.edits {
		if e.start < cursor || e.end > end {
			continue
		}
		out = append(out, e)
		cursor = e.end
	}
	return out
}

// render returns the source of n with every macro use inside it compiled
func (p *pass) render(n *sitter.Node) (string, error) {
	return p.renderRange(n.StartByte(), n.EndByte())
}

func (p *pass) renderRange(start, end uint) (string, error) {
	var b strings.Builder
	cursor := start
	for _, e := range p.selectEdits(start, end) {
		out, err := e.value()
		if err != nil {
			return "", err
		}
		b.Write(p.src[cursor:e.start])
		b.WriteString(out)
		cursor = e.end
	}
	b.Write(p.src[cursor:end])
	return b.String(), nil
}

// compile produces the replacement for one invocation
func (p *pass) compile(inv *Invocation) (string, error) {
	var (
		code string
		seq  Sequence
		err  error
	)
	switch inv.Form {
	case FormReference:
		code = p.compileReference(inv)
	case FormMemberOrFactory:
		code, seq, err = p.compileStyled(inv)
	default:
		code, seq, err = p.compileStyle(inv)
	}
	if err != nil {
		return "", err
	}

	p.outputs = append(p.outputs, CompiledOutput{
		Export:      inv.Export.Name,
		Form:        inv.Form,
		Pos:         inv.Pos,
		Label:       inv.Label,
		Sequence:    seq,
		Original:    text(p.src, inv.node),
		Replacement: code,
	})
	return code, nil
}

func (p *pass) compileReference(inv *Invocation) string {
	alias := p.runtimeAlias(inv.Export.Name)
	n := inv.node
	if n.Kind() == "shorthand_property_identifier" {
		return text(p.src, n) + ": " + alias
	}
	if parent := n.Parent(); parent != nil && parent.Kind() == "export_specifier" &&
		parent.ChildByFieldName("alias") == nil {
		return alias + " as " + text(p.src, n)
	}
	return alias
}

// compileStyle emits _css([...]) for css, keyframes, fontFace and injectGlobal
func (p *pass) compileStyle(inv *Invocation) (string, Sequence, error) {
	seq, err := p.styleBody(inv)
	if err != nil {
		return "", nil, err
	}
	alias := p.runtimeAlias(inv.Export.Name)
	meta := p.metadata(inv)
	if meta != "" {
		meta = ", " + meta
	}
	return alias + "(" + sequenceArray(seq) + meta + ")", seq, nil
}

// compileStyled emits _styled("div")([...]) or _styled(Comp)([...])
func (p *pass) compileStyled(inv *Invocation) (string, Sequence, error) {
	var args []string
	if inv.factory == nil {
		args = append(args, strconv.Quote(inv.tag))
	} else {
		for _, n := range inv.factory {
			s, err := p.render(n)
			if err != nil {
				return "", nil, err
			}
			args = append(args, s)
		}
	}
	if len(args) == 1 {
		if meta := p.metadata(inv); meta != "" {
			args = append(args, meta)
		}
	}

	code := p.runtimeAlias(inv.Export.Name) + "(" + strings.Join(args, ", ") + ")"
	if !inv.hasBody {
		return code, nil, nil
	}
	seq, err := p.styleBody(inv)
	if err != nil {
		return "", nil, err
	}
	return code + "(" + sequenceArray(seq) + ")", seq, nil
}

func (p *pass) styleBody(inv *Invocation) (Sequence, error) {
	seq, err := p.extract(inv)
	if err != nil {
		return nil, err
	}
	if p.opts.Minify {
		seq = minifySequence(seq)
	}
	return seq, nil
}

// metadata returns the development options object, or "" when disabled
func (p *pass) metadata(inv *Invocation) string {
	if !p.opts.Metadata {
		return ""
	}
	var fields []string
	if inv.Label != "" {
		fields = append(fields, "label: "+strconv.Quote(inv.Label))
	}
	source := fmt.Sprintf("%d:%d", inv.Pos.Line, inv.Pos.Column)
	if p.opts.Filename != "" {
		source = p.opts.Filename + ":" + source
	}
	fields = append(fields, "source: "+strconv.Quote(source))
	return "{ " + strings.Join(fields, ", ") + " }"
}

// sequenceArray serializes a Sequence as an array of template literals and
// slot expressions
func sequenceArray(seq Sequence) string {
	items := make([]string, len(seq))
	for i, f := range seq {
		if f.IsSlot() {
			items[i] = f.Expr
			continue
		}
		items[i] = "`" + f.Raw + "`"
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// runtimeAlias returns the local name the runtime export is imported as
func (p *pass) runtimeAlias(name string) string {
	if alias, ok := p.runtime[name]; ok {
		return alias
	}
	alias := "_" + name
	for i := 2; p.names[alias]; i++ {
		alias = "_" + name + strconv.Itoa(i)
	}
	p.names[alias] = true
	p.runtime[name] = alias
	p.runtimeOrder = append(p.runtimeOrder, name)
	return alias
}
