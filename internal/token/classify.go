package token

import "strings"

// Classify buckets a code leaf by its text alone. The order matters:
// keywords win over identifiers, and single punctuation characters only
// become Symbols when nothing else matched.
func Classify(text string) Kind {
	switch {
	case IsKeywordText(text):
		return Keyword
	case isIdentifier(text):
		return Identifier
	case isNumericLiteral(text):
		return Number
	case isStringLiteral(text):
		return StringLiteral
	case len(text) == 1 && isSymbolChar(text[0]):
		return Symbol
	default:
		return Other
	}
}

func isIdentifier(text string) bool {
	if text == "" {
		return false
	}
	first := text[0]
	if first != '_' && first != '$' && !isASCIILetter(first) {
		return false
	}
	for i := 1; i < len(text); i++ {
		c := text[i]
		if c != '_' && c != '$' && !isASCIILetter(c) && !isASCIIDigit(c) {
			return false
		}
	}
	return true
}

func isNumericLiteral(text string) bool {
	if text == "" || !isASCIIDigit(text[0]) {
		return false
	}
	for i := 1; i < len(text); i++ {
		c := text[i]
		if isASCIIDigit(c) {
			continue
		}
		// Base markers, radix digits, and separators of sized literals.
		switch c {
		case '\'', '_', 's', 'S':
		default:
			if !strings.ContainsRune("hHbBoOdDxXzZaAcCeEfF.", rune(c)) {
				return false
			}
		}
	}
	return true
}

func isStringLiteral(text string) bool {
	return len(text) >= 2 && strings.HasPrefix(text, "\"") && strings.HasSuffix(text, "\"")
}

func isSymbolChar(c byte) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', ',', ';', ':', '.',
		'+', '-', '*', '/', '%', '!', '~', '&', '|', '^',
		'=', '<', '>', '?', '@':
		return true
	default:
		return false
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
