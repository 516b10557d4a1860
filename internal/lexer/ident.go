package lexer

import (
	"golang.org/x/text/unicode/norm"
)

// NormalizeIdent returns the NFKC form of an identifier, which is how the
// interpreter compares names. ASCII identifiers are returned unchanged.
func NormalizeIdent(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] >= runeSelf {
			return norm.NFKC.String(text)
		}
	}
	return text
}
