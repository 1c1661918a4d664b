package token

import "strings"

// Token is one element of the formatter's input stream. Offset and Len
// locate the token in the original source bytes.
type Token struct {
	Text   string
	Kind   Kind
	Offset uint32
	Len    uint32
}

// IsKeyword reports whether the token is the given keyword, matched
// case-insensitively.
func (t Token) IsKeyword(needle string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, needle)
}

// IsIdentifierLike reports whether the token can name a call target.
func (t Token) IsIdentifierLike() bool {
	return t.Kind == Identifier
}

// IsSymbol reports whether the token is the given punctuation symbol.
func (t Token) IsSymbol(needle string) bool {
	return t.Kind == Symbol && t.Text == needle
}
