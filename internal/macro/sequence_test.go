package macro

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *sequenceBuilder)
		want  Sequence
	}{
		{
			name:  "empty",
			build: func(b *sequenceBuilder) {},
			want:  Sequence{},
		},
		{
			name: "adjacent literals merge",
			build: func(b *sequenceBuilder) {
				b.appendLiteral("a")
				b.appendLiteral("")
				b.appendLiteral("b")
			},
			want: Sequence{{Kind: FragmentLiteral, Raw: "ab", Slot: -1}},
		},
		{
			name: "adjacent slots are separated",
			build: func(b *sequenceBuilder) {
				b.appendSlot("x")
				b.appendSlot("y")
			},
			want: Sequence{
				{Kind: FragmentSlot, Expr: "x", Slot: 0},
				{Kind: FragmentLiteral, Slot: -1},
				{Kind: FragmentSlot, Expr: "y", Slot: 1},
			},
		},
		{
			name: "spliced sequence is renumbered",
			build: func(b *sequenceBuilder) {
				b.appendLiteral("a ")
				b.appendSlot("x")
				b.appendSequence(Sequence{
					{Kind: FragmentLiteral, Raw: " b ", Slot: -1},
					{Kind: FragmentSlot, Expr: "y", Slot: 0},
					{Kind: FragmentSlot, Expr: "z", Slot: 1},
				})
				b.appendLiteral(" c")
			},
			want: Sequence{
				{Kind: FragmentLiteral, Raw: "a ", Slot: -1},
				{Kind: FragmentSlot, Expr: "x", Slot: 0},
				{Kind: FragmentLiteral, Raw: " b ", Slot: -1},
				{Kind: FragmentSlot, Expr: "y", Slot: 1},
				{Kind: FragmentLiteral, Slot: -1},
				{Kind: FragmentSlot, Expr: "z", Slot: 2},
				{Kind: FragmentLiteral, Raw: " c", Slot: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b sequenceBuilder
			tt.build(&b)
			require.Equal(t, tt.want, b.sequence())
		})
	}
}

func TestSequenceSlotsAreDense(t *testing.T) {
	var b sequenceBuilder
	for i := range 4 {
		b.appendSequence(Sequence{
			{Kind: FragmentSlot, Expr: fmt.Sprint(i), Slot: 0},
			{Kind: FragmentLiteral, Raw: ";", Slot: -1},
		})
	}
	seq := b.sequence()
	require.Equal(t, 4, seq.Slots())

	next := 0
	for i, f := range seq {
		if f.IsSlot() {
			assert.Equal(t, next, f.Slot)
			next++
		}
		if i > 0 {
			assert.NotEqual(t, seq[i-1].IsSlot(), f.IsSlot(), "fragments must alternate")
		}
	}
}

func TestTemplateRaw(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "color: red;", want: "color: red;"},
		{in: "a`b", want: "a\\`b"},
		{in: "${x}", want: "\\${x}"},
		{in: "$ {x}", want: "$ {x}"},
		{in: `\'quoted\'`, want: `\'quoted\'`},
		{in: "\\`", want: "\\`"},
		{in: `\\` + "`", want: `\\\` + "`"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, templateRaw(tt.in))
		})
	}
}

func TestExtractionIsLossless(t *testing.T) {
	bodies := []string{
		"\n  display: flex;\n",
		"color: ${color}; width: ${w}px;",
		"${a}${b}",
		"content: \"\\`\"; x: \\${literal}; ${y}",
		"",
		"\n  &:hover { color: ${p => p.c}; }\n  ${mixin}\n",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			src := "import { css } from './macro'\nconst a = css`" + body + "`\n"
			result, err := Transform([]byte(src), Options{})
			require.NoError(t, err)
			require.Len(t, result.Outputs, 1)

			seq := result.Outputs[0].Sequence
			got := seq.Text(func(i int) string {
				for _, f := range seq {
					if f.IsSlot() && f.Slot == i {
						return "${" + f.Expr + "}"
					}
				}
				return ""
			})
			require.Equal(t, body, got)
		})
	}
}
