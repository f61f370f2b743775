// Package transform holds the semantic passes that run between parsing
// and generation: tree rewrites that adjust the query shape for the
// target engine, and text-level passes that must run before the parser
// or after the generator ever sees the query.
//
// Passes never fail. A pass that cannot apply to some corner of the
// input leaves that corner untouched and moves on; callers that want
// diagnostics pass a logger through transpile.Options instead.
package transform

import (
	"strings"
	"unicode"
)

// NormalizeUnicodeSpaces replaces Unicode separator runes and non-ASCII
// characters with plain ASCII spaces, leaving the content of single- and
// double-quoted literals untouched. Doubled single quotes inside a
// string literal are treated as an escaped quote, not a closing one.
//
// Queries pasted from documents and chat tools routinely carry
// non-breaking spaces that tokenize as identifier characters; this runs
// before the lexer so it never has to care.
func NormalizeUnicodeSpaces(sql string) string {
	var out strings.Builder
	out.Grow(len(sql))

	runes := []rune(sql)
	var quote rune // 0 when outside a literal
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if quote != 0 {
			out.WriteRune(ch)
			if ch == quote {
				if quote == '\'' && i+1 < len(runes) && runes[i+1] == '\'' {
					out.WriteRune(runes[i+1])
					i++
				} else {
					quote = 0
				}
			}
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			quote = ch
			out.WriteRune(ch)
		case ch > unicode.MaxASCII:
			out.WriteRune(' ')
		case unicode.IsSpace(ch) && ch != '\r' && ch != '\n':
			out.WriteRune(' ')
		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}
