package macro

import (
	"io"
	"strings"

	tdparse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// minifySequence compacts the literal text of seq. Leading whitespace of the
// first literal and trailing whitespace of the last are dropped; whitespace
// next to a slot collapses to one space.
func minifySequence(seq Sequence) Sequence {
	var b sequenceBuilder
	for i, f := range seq {
		if f.IsSlot() {
			b.appendSlot(f.Expr)
			continue
		}
		b.appendLiteral(minifyCSS(f.Raw, i == 0, i == len(seq)-1))
	}
	return b.sequence()
}

// minifyCSS drops comments and redundant whitespace using the CSS lexer.
// Token bytes are copied verbatim. Input the lexer rejects is returned as is.
func minifyCSS(raw string, trimStart, trimEnd bool) string {
	l := css.NewLexer(tdparse.NewInputString(raw))

	var b strings.Builder
	var prev byte
	space := false
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if l.Err() != io.EOF {
				return raw
			}
			break
		}

		switch tt {
		case css.WhitespaceToken:
			space = true
			continue
		case css.CommentToken:
			if !strings.HasSuffix(string(data), "*/") {
				// unterminated, the rest of the comment is in a later literal
				return raw
			}
			space = true
			continue
		}

		if space {
			if b.Len() == 0 {
				if !trimStart {
					b.WriteByte(' ')
				}
			} else if !tightAfter(prev) && !tightBefore(data[0]) {
				b.WriteByte(' ')
			}
			space = false
		}
		b.Write(data)
		prev = data[len(data)-1]
	}

	if space && !trimEnd && (b.Len() == 0 && !trimStart || b.Len() > 0 && !tightAfter(prev)) {
		b.WriteByte(' ')
	}
	return b.String()
}

func tightAfter(c byte) bool {
	switch c {
	case '{', '}', ';', ':', ',':
		return true
	}
	return false
}

func tightBefore(c byte) bool {
	switch c {
	case '{', '}', ';', ',':
		return true
	}
	return false
}
