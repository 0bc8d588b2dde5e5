package macro

import "strings"

// sequenceBuilder appends fragments while keeping a Sequence normalized:
// adjacent literals merge, empty literals are dropped, adjacent slots get an
// empty literal between them and slot indices stay dense.
type sequenceBuilder struct {
	frags []Fragment
	slots int
}

func (b *sequenceBuilder) appendLiteral(raw string) {
	if raw == "" {
		return
	}
	if n := len(b.frags); n > 0 && !b.frags[n-1].IsSlot() {
		b.frags[n-1].Raw += raw
		return
	}
	b.frags = append(b.frags, Fragment{Kind: FragmentLiteral, Raw: raw, Slot: -1})
}

func (b *sequenceBuilder) appendSlot(expr string) {
	if n := len(b.frags); n > 0 && b.frags[n-1].IsSlot() {
		b.frags = append(b.frags, Fragment{Kind: FragmentLiteral, Slot: -1})
	}
	b.frags = append(b.frags, Fragment{Kind: FragmentSlot, Expr: expr, Slot: b.slots})
	b.slots++
}

// appendSequence splices seq in place, renumbering its slots
func (b *sequenceBuilder) appendSequence(seq Sequence) {
	for _, f := range seq {
		if f.IsSlot() {
			b.appendSlot(f.Expr)
			continue
		}
		b.appendLiteral(f.Raw)
	}
}

func (b *sequenceBuilder) sequence() Sequence {
	if len(b.frags) == 0 {
		return Sequence{}
	}
	return Sequence(b.frags)
}

// templateRaw re-encodes the body of a quoted string literal so that it
// reads the same inside a template literal
func templateRaw(s string) string {
	if !strings.ContainsAny(s, "`$") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
		case c == '`':
			b.WriteString("\\`")
		case c == '$' && i+1 < len(s) && s[i+1] == '{':
			b.WriteString("\\$")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
