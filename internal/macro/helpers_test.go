package macro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// js turns ~ into backticks so modules can be written as raw strings
func js(s string) string {
	return strings.ReplaceAll(s, "~", "`")
}

// analyze runs resolution and reference collection on src
func analyze(t *testing.T, src string) *pass {
	t.Helper()
	tree, err := parse([]byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	p := newPass([]byte(src), Options{Filename: "test.js"}.withDefaults())
	root := tree.RootNode()
	p.resolve(root)
	p.collectReferences(root)
	return p
}

// transform runs Transform and returns the output code
func transform(t *testing.T, src string, opts Options) string {
	t.Helper()
	result, err := Transform([]byte(src), opts)
	require.NoError(t, err)
	return string(result.Code)
}
