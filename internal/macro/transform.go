// Package macro expands emotion macro call sites in a JavaScript module into
// calls against the emotion runtime.
//
// A module is parsed once with tree-sitter. Names imported from the macro
// module are resolved to bindings, every use of a binding is classified,
// style bodies are split into literal text and interpolation slots (nested
// css uses are flattened into their parent), and replacements are spliced
// into the original source by byte range. Source outside a rewritten site is
// preserved byte for byte.
package macro

import (
	"bytes"
	"sort"
)

// DefaultRuntimeModule is the module the runtime import points at
const DefaultRuntimeModule = "emotion"

// Options configures a Transform
type Options struct {
	Filename      string      // used in diagnostics and source metadata
	Exports       ExportTable // nil means DefaultExports
	MacroSuffixes []string    // nil means DefaultMacroSuffixes
	RuntimeModule string      // "" means DefaultRuntimeModule
	Metadata      bool        // emit { label, source } options
	Minify        bool        // compact literal style text
}

func (o Options) withDefaults() Options {
	if o.Exports == nil {
		o.Exports = DefaultExports()
	}
	if len(o.MacroSuffixes) == 0 {
		o.MacroSuffixes = DefaultMacroSuffixes
	}
	if o.RuntimeModule == "" {
		o.RuntimeModule = DefaultRuntimeModule
	}
	return o
}

// pass holds the state of one module's transformation
type pass struct {
	src  []byte
	opts Options
	rep  *reporter

	decls    []*importDecl
	bindings []*Binding
	byLocal  map[string]*Binding

	refs        []reference
	names       map[string]bool // identifiers in the module, for alias collisions
	invocations []*Invocation
	byNode      map[uintptr]*Invocation
	aliases     map[string]*Binding

	edits        []*edit
	runtime      map[string]string
	runtimeOrder []string
	outputs      []CompiledOutput
}

func newPass(src []byte, opts Options) *pass {
	return &pass{
		src:     src,
		opts:    opts,
		rep:     &reporter{filename: opts.Filename},
		byLocal: make(map[string]*Binding),
		names:   make(map[string]bool),
		byNode:  make(map[uintptr]*Invocation),
		aliases: make(map[string]*Binding),
		runtime: make(map[string]string),
	}
}

// Transform expands every macro use in source. A module that imports nothing
// from the macro module is returned unchanged. Fatal problems are returned
// as *Diagnostic errors and no partial result is produced.
func Transform(source []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	tree, err := parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	p := newPass(source, opts)

	// 1. Resolve macro bindings
	p.resolve(root)
	if len(p.decls) == 0 {
		return &Result{Code: source}, nil
	}
	if root.HasError() {
		return nil, p.rep.syntax(firstError(root))
	}

	// 2. Find references and classify use sites
	p.collectReferences(root)
	if err := p.match(); err != nil {
		return nil, err
	}

	// 3. Extract style bodies and generate replacements
	code, err := p.generate()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(p.outputs, func(i, j int) bool {
		a, b := p.outputs[i].Pos, p.outputs[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	flattened := 0
	for _, inv := range p.invocations {
		if inv.absorbed {
			flattened++
		}
	}

	out := []byte(code)
	return &Result{
		Code:           out,
		Changed:        !bytes.Equal(out, source),
		Bindings:       p.bindings,
		Outputs:        p.outputs,
		Warnings:       p.rep.warnings,
		RuntimeImports: p.runtimeOrder,
		Flattened:      flattened,
	}, nil
}
