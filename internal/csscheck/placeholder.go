package csscheck

import (
	"fmt"
	"strings"

	"github.com/yacobolo/cssmacro/internal/macro"
)

// StaticText renders seq with every slot replaced by a placeholder that
// parses in the slot's position:
//
//	${mixin}          statement position, a custom property declaration
//	${mixin};         same, the following semicolon ends it
//	width: ${w}px;    anywhere else, a bare identifier
func StaticText(seq macro.Sequence) string {
	var b strings.Builder
	for i, f := range seq {
		if !f.IsSlot() {
			b.WriteString(f.Raw)
			continue
		}
		var prev, next string
		if i > 0 {
			prev = seq[i-1].Raw
		}
		if i+1 < len(seq) {
			next = seq[i+1].Raw
		}
		b.WriteString(placeholder(f.Slot, prev, next))
	}
	return b.String()
}

func placeholder(slot int, prev, next string) string {
	if !statementStart(prev) || !statementEnd(next) {
		return fmt.Sprintf("cssmacro%d", slot)
	}
	if strings.HasPrefix(strings.TrimSpace(next), ";") {
		return fmt.Sprintf("--cssmacro%d:0", slot)
	}
	return fmt.Sprintf("--cssmacro%d:0;", slot)
}

// statementStart reports whether text ending in prev leaves the next token
// at the start of a statement
func statementStart(prev string) bool {
	t := strings.TrimSpace(prev)
	if t == "" {
		return true
	}
	switch t[len(t)-1] {
	case '{', '}', ';':
		return true
	}
	return false
}

// statementEnd reports whether next ends the statement a slot starts
func statementEnd(next string) bool {
	t := strings.TrimLeft(next, " \t")
	if t == "" {
		return true
	}
	switch t[0] {
	case ';', '}', '\n', '\r':
		return true
	}
	return false
}
