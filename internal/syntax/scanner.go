package syntax

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

type lexKind uint8

const (
	lexWhitespace lexKind = iota
	lexComment
	lexDirective
	lexString
	lexNumber
	lexIdent
	lexOperator
	lexPunct
)

// lexeme is a raw, located chunk of source text.
type lexeme struct {
	kind  lexKind
	start uint32
	end   uint32
}

// scanError carries an offset; Parse resolves it to line/column.
type scanError struct {
	off uint32
	msg string
}

func (e *scanError) Error() string { return e.msg }

// lineDirectives are the compiler directives that own the rest of their
// line. Anything else after a backtick is a macro usage and spans only its
// name.
var lineDirectives = map[string]struct{}{
	"define":          {},
	"undef":           {},
	"undefineall":     {},
	"ifdef":           {},
	"ifndef":          {},
	"elsif":           {},
	"else":            {},
	"endif":           {},
	"include":         {},
	"timescale":       {},
	"default_nettype": {},
	"resetall":        {},
	"celldefine":      {},
	"endcelldefine":   {},
	"pragma":          {},
	"line":            {},
}

// operators lists multi-character operators, longest first so the scanner
// takes the maximal munch. "::" is deliberately absent: package-scope
// colons stay two ':' leaves, matching the engine's colon spacing rule.
var operators = []string{
	"<<<=", ">>>=",
	"===", "!==", "==?", "!=?", "<<<", ">>>", "<<=", ">>=", "|->", "|=>", "->>",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "**",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"++", "--", "->", "=>", "~&", "~|", "~^", "^~", "##", "@@", ".*",
}

func scan(src []byte) ([]lexeme, error) {
	var out []lexeme
	i := 0
	for i < len(src) {
		start := i
		c := src[i]
		switch {
		case isSpace(c):
			for i < len(src) && isSpace(src[i]) {
				i++
			}
			out = append(out, lex(lexWhitespace, start, i))

		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i += 2
			for i < len(src) && src[i] != '\n' {
				i++
			}
			out = append(out, lex(lexComment, start, i))

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(string(src[i+2:]), "*/")
			if end < 0 {
				return nil, &scanError{off: u32(start), msg: "unterminated block comment"}
			}
			i += 2 + end + 2
			out = append(out, lex(lexComment, start, i))

		case c == '"':
			i++
			closed := false
			for i < len(src) {
				if src[i] == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				if src[i] == '"' {
					i++
					closed = true
					break
				}
				if src[i] == '\n' {
					break
				}
				i++
			}
			if !closed {
				return nil, &scanError{off: u32(start), msg: "unterminated string literal"}
			}
			out = append(out, lex(lexString, start, i))

		case c == '`':
			i = scanDirective(src, i)
			out = append(out, lex(lexDirective, start, i))

		case isIdentStart(c):
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			out = append(out, lex(lexIdent, start, i))

		case c == '\\' && i+1 < len(src) && !isSpace(src[i+1]):
			// Escaped identifier: backslash through the next whitespace.
			i++
			for i < len(src) && !isSpace(src[i]) {
				i++
			}
			out = append(out, lex(lexIdent, start, i))

		case isDigit(c):
			i = scanNumber(src, i)
			out = append(out, lex(lexNumber, start, i))

		case c == '\'':
			if j, ok := scanBasedLiteral(src, i); ok {
				i = j
				out = append(out, lex(lexNumber, start, i))
			} else {
				i++
				out = append(out, lex(lexPunct, start, i))
			}

		default:
			if op := matchOperator(src[i:]); op != "" {
				i += len(op)
				out = append(out, lex(lexOperator, start, i))
			} else {
				i++
				out = append(out, lex(lexPunct, start, i))
			}
		}
	}
	return out, nil
}

// scanDirective consumes a backtick directive starting at i and returns the
// end offset. Line directives run to end of line (honoring backslash
// continuations and stopping before a trailing comment); macro usages span
// only the backtick and name.
func scanDirective(src []byte, i int) int {
	j := i + 1
	nameStart := j
	for j < len(src) && isIdentPart(src[j]) {
		j++
	}
	name := strings.ToLower(string(src[nameStart:j]))
	if _, ok := lineDirectives[name]; !ok {
		return j
	}

	for j < len(src) {
		c := src[j]
		if c == '\n' {
			break
		}
		if c == '\\' && j+1 < len(src) && src[j+1] == '\n' {
			j += 2
			continue
		}
		if c == '/' && j+1 < len(src) && (src[j+1] == '/' || src[j+1] == '*') {
			break
		}
		j++
	}
	for j > i && (src[j-1] == ' ' || src[j-1] == '\t') {
		j--
	}
	return j
}

// scanNumber consumes a numeric literal starting at a decimal digit:
// plain integers, reals with exponents, sized based literals such as
// 8'hFF, and time literals such as 10ns.
func scanNumber(src []byte, i int) int {
	for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
		i++
	}
	// Fraction and exponent.
	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i += 2
		for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}
	// Sized based literal: size already consumed, base and digits follow.
	if i < len(src) && src[i] == '\'' {
		if j, ok := scanBasedLiteral(src, i); ok {
			return j
		}
	}
	// Time unit or other letter suffix glued to the digits.
	for i < len(src) && isASCIILetter(src[i]) {
		i++
	}
	return i
}

// scanBasedLiteral consumes '<base><digits> or the unsized '0 '1 'x 'z
// forms starting at the apostrophe. Reports false when the apostrophe is
// not a literal (e.g. the '{ assignment-pattern opener).
func scanBasedLiteral(src []byte, i int) (int, bool) {
	j := i + 1
	if j >= len(src) {
		return i, false
	}
	if src[j] == 's' || src[j] == 'S' {
		j++
	}
	if j >= len(src) {
		return i, false
	}
	switch src[j] {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		j++
		k := j
		for k < len(src) && (src[k] == ' ' || src[k] == '\t') {
			k++
		}
		if k >= len(src) || !isBasedDigit(src[k]) {
			return i, false
		}
		j = k
		for j < len(src) && isBasedDigit(src[j]) {
			j++
		}
		return j, true
	case '0', '1', 'x', 'X', 'z', 'Z':
		if j+1 < len(src) && isIdentPart(src[j+1]) {
			return i, false
		}
		return j + 1, true
	default:
		return i, false
	}
}

func matchOperator(rest []byte) string {
	for _, op := range operators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			return op
		}
	}
	return ""
}

func lex(kind lexKind, start, end int) lexeme {
	return lexeme{kind: kind, start: u32(start), end: u32(end)}
}

func u32(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || isASCIILetter(c)
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || isASCIILetter(c) || isDigit(c)
}

func isBasedDigit(c byte) bool {
	return isDigit(c) || c == '_' || c == '?' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == 'x' || c == 'X' || c == 'z' || c == 'Z'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
