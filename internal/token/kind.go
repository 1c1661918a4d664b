package token

// Kind represents the category of a formatter token.
type Kind uint8

const (
	// Keyword is a SystemVerilog structural keyword (case-insensitive match).
	Keyword Kind = iota
	// Identifier is an identifier-shaped word, including $-prefixed system names.
	Identifier
	// Symbol is a single recognized punctuation character.
	Symbol
	// Number is a numeric literal, including sized/based forms such as 4'b1010.
	Number
	// StringLiteral is a double-quoted string.
	StringLiteral
	// Comment is a line or block comment, raw text preserved verbatim.
	Comment
	// Directive is a compiler directive, raw text preserved verbatim.
	Directive
	// Newline is a single retained line break; all other whitespace is dropped.
	Newline
	// Other covers everything else, chiefly multi-character operators.
	Other
)

var kindNames = [...]string{
	Keyword:       "Keyword",
	Identifier:    "Identifier",
	Symbol:        "Symbol",
	Number:        "Number",
	StringLiteral: "StringLiteral",
	Comment:       "Comment",
	Directive:     "Directive",
	Newline:       "Newline",
	Other:         "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
