// Package slug derives URL-safe identifiers from entry titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a title produces no usable characters at all
// (for example a title written entirely in a non-Latin script).
const Fallback = "entry"

// Generate derives a slug candidate from a title.
//
// The title is NFKD-decomposed so accented letters split into base letter
// plus combining mark, runs of non-word characters become single spaces,
// the result is lowercased and hyphen-joined, and finally any remaining
// non-ASCII codepoints (such as the combining marks) are dropped rather
// than transliterated. Uniqueness against existing entries is the
// caller's concern, not Generate's.
func Generate(title string) string {
	decomposed := norm.NFKD.String(title)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(strings.ToLower(b.String()))
	joined := strings.Join(words, "-")

	ascii := make([]byte, 0, len(joined))
	for _, r := range joined {
		if r < 128 {
			ascii = append(ascii, byte(r))
		}
	}

	if len(ascii) == 0 {
		return Fallback
	}
	return string(ascii)
}

// isWordRune reports whether r counts as a word character: a Unicode
// letter, digit, or underscore. Combining marks produced by the NFKD
// decomposition are not word characters and act as separators, the same
// way any other punctuation does.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
