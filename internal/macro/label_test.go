package macro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "variable", src: "const Button = css`a`", want: "Button"},
		{name: "object key", src: "const styles = { header: css`a` }", want: "header"},
		{name: "string key", src: "const styles = { 'main-nav': css`a` }", want: "main-nav"},
		{name: "assignment", src: "theme.primary = css`a`", want: "primary"},
		{name: "function", src: "function makeCard() { return css`a` }", want: "makeCard"},
		{name: "arrow in variable", src: "const useCard = () => css`a`", want: "useCard"},
		{name: "class field", src: "class Card { root = css`a` }", want: "root"},
		{name: "method", src: "class Card { render() { return css`a` } }", want: "render"},
		{name: "statement", src: "css`a`", want: ""},
		{name: "destructuring target", src: "const { a } = css`a`", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "import { css } from './macro'\n" + tt.src + "\n"
			p := analyze(t, src)
			require.NoError(t, p.match())
			require.Len(t, p.invocations, 1)
			require.Equal(t, tt.want, p.invocations[0].Label)
		})
	}
}
