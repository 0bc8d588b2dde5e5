package macro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinifyCSS(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		trimStart bool
		trimEnd   bool
		want      string
	}{
		{
			name:      "declaration",
			in:        "\n  display: flex;\n",
			trimStart: true,
			trimEnd:   true,
			want:      "display:flex;",
		},
		{
			name:      "rule with selector",
			in:        "\n  & > div {\n    color: red;\n  }\n",
			trimStart: true,
			trimEnd:   true,
			want:      "& > div{color:red;}",
		},
		{
			name:      "comments are dropped",
			in:        "a: b; /* note */ c: d;",
			trimStart: true,
			trimEnd:   true,
			want:      "a:b;c:d;",
		},
		{
			name:      "strings are kept",
			in:        "content: \"end  of line\";",
			trimStart: true,
			trimEnd:   true,
			want:      "content:\"end  of line\";",
		},
		{
			name: "space next to a slot survives",
			in:   "\n  margin: 0 ",
			want: " margin:0 ",
		},
		{
			name: "whitespace between slots",
			in:   "  \n ",
			want: " ",
		},
		{
			name:    "space after a colon before a slot is dropped",
			in:      "width: ",
			trimEnd: false,
			want:    "width:",
		},
		{
			name:      "comma separated values",
			in:        "font-family: a , b,  c;",
			trimStart: true,
			trimEnd:   true,
			want:      "font-family:a,b,c;",
		},
		{
			name:      "unterminated comment is left alone",
			in:        "a: b; /* ",
			trimStart: true,
			want:      "a: b; /* ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, minifyCSS(tt.in, tt.trimStart, tt.trimEnd))
		})
	}
}

func TestMinifySequence(t *testing.T) {
	seq := Sequence{
		{Kind: FragmentLiteral, Raw: "\n  color: ", Slot: -1},
		{Kind: FragmentSlot, Expr: "c", Slot: 0},
		{Kind: FragmentLiteral, Raw: "  ", Slot: -1},
		{Kind: FragmentSlot, Expr: "d", Slot: 1},
		{Kind: FragmentLiteral, Raw: ";\n", Slot: -1},
	}
	want := Sequence{
		{Kind: FragmentLiteral, Raw: "color:", Slot: -1},
		{Kind: FragmentSlot, Expr: "c", Slot: 0},
		{Kind: FragmentLiteral, Raw: " ", Slot: -1},
		{Kind: FragmentSlot, Expr: "d", Slot: 1},
		{Kind: FragmentLiteral, Raw: ";", Slot: -1},
	}
	require.Equal(t, want, minifySequence(seq))
}
