// Package textfold provides the case and accent folding shared by the city
// detector and the gazetteer.
//
// Two forms are produced:
//   - Lower: NFC-composed, Unicode-lowercased text. Used for the working copy
//     of a user message, so byte offsets stay meaningful to callers.
//   - Key: Lower with combining marks stripped ("são paulo" -> "sao paulo").
//     Used only as a lookup key, never for offsets.
//
// All functions are safe for concurrent use.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lower returns s in NFC with Unicode lowercasing applied.
// A fresh Caser is built per call; cases.Caser is not safe for shared use.
func Lower(s string) string {
	if s == "" {
		return s
	}
	if isASCII(s) {
		return strings.ToLower(s)
	}
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Key returns the accent-free lowercase form of s used for dictionary lookups.
func Key(s string) string {
	if s == "" {
		return s
	}
	if isASCII(s) {
		return strings.ToLower(s)
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, Lower(s))
	if err != nil {
		return Lower(s)
	}
	return out
}

// isASCII reports whether s contains only 7-bit bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
