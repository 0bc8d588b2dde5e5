package macro

import (
	"maps"
	"slices"
	"strings"
)

// Kind is the call-shape eligibility of a macro export
type Kind int

// Export kinds
const (
	KindUnknown Kind = iota // not a macro export, passed through
	KindStyled              // taggable factory with per-tag member access
	KindStyle               // taggable or callable style function
	KindValue               // bare runtime value, never invoked at compile time
	KindNamespace           // import * as m, members resolved on access
)

func (k Kind) String() string {
	switch k {
	case KindStyled:
		return "styled"
	case KindStyle:
		return "style"
	case KindValue:
		return "value"
	case KindNamespace:
		return "namespace"
	}
	return "unknown"
}

// Export describes one name the macro module exposes
type Export struct {
	Name   string // runtime export of the same name
	Kind   Kind
	Inline bool // nested uses are flattened into the enclosing style body
}

// Invocable reports whether uses of the export are compiled at build time.
// Only invocable exports are restricted to module-style imports.
func (e Export) Invocable() bool {
	return e.Kind == KindStyled || e.Kind == KindStyle
}

// ExportTable maps macro export names to their descriptions
type ExportTable map[string]Export

// DefaultExports returns the export table of the emotion macro
func DefaultExports() ExportTable {
	return ExportTable{
		"styled":       {Name: "styled", Kind: KindStyled},
		"css":          {Name: "css", Kind: KindStyle, Inline: true},
		"keyframes":    {Name: "keyframes", Kind: KindStyle},
		"fontFace":     {Name: "fontFace", Kind: KindStyle},
		"injectGlobal": {Name: "injectGlobal", Kind: KindStyle},
		"hydrate":      {Name: "hydrate", Kind: KindValue},
		"flush":        {Name: "flush", Kind: KindValue},
	}
}

// DefaultExportName is the export bound by default imports and whole-module requires
const DefaultExportName = "styled"

// Lookup resolves name, returning an unknown export when it is not in the table
func (t ExportTable) Lookup(name string) Export {
	if name == "default" {
		name = DefaultExportName
	}
	if e, ok := t[name]; ok {
		return e
	}
	return Export{Name: name, Kind: KindUnknown}
}

// Names returns the known export names, sorted
func (t ExportTable) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

// DefaultMacroSuffixes are the import path suffixes that identify the macro module
var DefaultMacroSuffixes = []string{"/macro", ".macro"}

// IsMacroPath reports whether an import path names the macro module.
// A trailing ".js" is ignored, so "./styled/macro.js" matches "/macro".
func IsMacroPath(importPath string, suffixes []string) bool {
	if len(suffixes) == 0 {
		suffixes = DefaultMacroSuffixes
	}
	p := strings.TrimSuffix(importPath, ".js")
	if p == "" {
		return false
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}
