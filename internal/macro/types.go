package macro

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Mechanism records how a macro binding was imported
type Mechanism int

// Import mechanisms
const (
	MechanismModule  Mechanism = iota // import { css } from './macro'
	MechanismDynamic                  // const { css } = require('./macro')
)

func (m Mechanism) String() string {
	switch m {
	case MechanismModule:
		return "module"
	case MechanismDynamic:
		return "dynamic"
	}
	return "unknown"
}

// Form is the syntactic shape of a macro use site
type Form int

// Use-site forms. The first four are invocations with style content.
const (
	FormTaggedTemplate  Form = iota // css`...`
	FormCallString                  // css('...'), css(`...`), css()
	FormCallObject                  // css({...})
	FormMemberOrFactory             // styled.div`...`, styled('div')({...})
	FormReference                   // flush, hydrate, any bare value use
	FormPassThrough                 // unknown export, left untouched
)

func (f Form) String() string {
	switch f {
	case FormTaggedTemplate:
		return "tagged-template"
	case FormCallString:
		return "call-string"
	case FormCallObject:
		return "call-object"
	case FormMemberOrFactory:
		return "member-or-factory"
	case FormReference:
		return "reference"
	case FormPassThrough:
		return "pass-through"
	}
	return "unknown"
}

// Position is a 1-based source location
type Position struct {
	Line   int
	Column int // byte column
}

func positionOf(n *sitter.Node) Position {
	p := n.StartPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// Binding is a local name bound to an export of the macro module
type Binding struct {
	LocalName    string    // "_s" in import { styled as _s }
	ExportedName string    // "styled", "default" or "*" for namespaces
	ModulePath   string    // "./styled/macro"
	Mechanism    Mechanism // module or dynamic
	Export       Export    // resolved against the export table
	Pos          Position
	Reassigned   bool // assigned to after import, never statically resolvable

	namespace bool
	usedAsRaw bool // referenced through a pass-through form, must stay imported
}

// Invocation is one classified use of a binding
type Invocation struct {
	Binding *Binding
	Export  Export
	Form    Form
	Pos     Position
	Label   string

	node     *sitter.Node   // replaced node
	template *sitter.Node   // tagged body
	args     []*sitter.Node // call body arguments
	hasBody  bool
	tag      string         // styled member tag, "div"
	factory  []*sitter.Node // styled factory arguments

	absorbed bool // spliced into an enclosing style body
}

// FragmentKind separates literal text from interpolation slots
type FragmentKind int

// Fragment kinds
const (
	FragmentLiteral FragmentKind = iota
	FragmentSlot
)

// Fragment is one item of a Sequence
type Fragment struct {
	Kind FragmentKind
	Raw  string // literal text in template raw form
	Expr string // rendered slot expression
	Slot int    // dense slot index, -1 for literals
}

// IsSlot reports whether the fragment is an interpolation slot
func (f Fragment) IsSlot() bool { return f.Kind == FragmentSlot }

// Sequence is a normalized style body: literals and slots in source order
type Sequence []Fragment

// Slots returns the number of interpolation slots
func (s Sequence) Slots() int {
	n := 0
	for _, f := range s {
		if f.IsSlot() {
			n++
		}
	}
	return n
}

// Text joins the literal parts, substituting placeholder(i) for slot i
func (s Sequence) Text(placeholder func(int) string) string {
	var b strings.Builder
	for _, f := range s {
		if f.IsSlot() {
			b.WriteString(placeholder(f.Slot))
			continue
		}
		b.WriteString(f.Raw)
	}
	return b.String()
}

// Literals returns the literal parts in order
func (s Sequence) Literals() []string {
	var out []string
	for _, f := range s {
		if !f.IsSlot() {
			out = append(out, f.Raw)
		}
	}
	return out
}

// CompiledOutput is the replacement produced for one invocation
type CompiledOutput struct {
	Export      string // runtime export name, "css"
	Form        Form
	Pos         Position
	Label       string
	Sequence    Sequence
	Original    string // source text of the replaced node
	Replacement string
}

// Result is the outcome of transforming one module
type Result struct {
	Code           []byte
	Changed        bool
	Bindings       []*Binding
	Outputs        []CompiledOutput
	Warnings       []*Diagnostic
	RuntimeImports []string // runtime exports imported, in first-use order
	Flattened      int      // nested invocations spliced into a parent body
}
