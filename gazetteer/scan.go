package gazetteer

import (
	"unicode"
	"unicode/utf8"
)

// token is a run of letters in a span, with byte offsets into it.
type token struct {
	text       string
	start, end int
}

// words splits s into letter runs. Combining marks stay attached to the
// letter they follow; everything else separates tokens.
func words(s string) []token {
	var out []token
	start := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		inWord := unicode.IsLetter(r) || (start >= 0 && unicode.IsMark(r))
		switch {
		case inWord && start < 0:
			start = i
		case !inWord && start >= 0:
			out = append(out, token{text: s[start:i], start: start, end: i})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		out = append(out, token{text: s[start:], start: start, end: len(s)})
	}
	return out
}
