package format

import (
	"svfmt/internal/syntax"
	"svfmt/internal/token"
)

// Tokens flattens a parse tree into the classified token stream consumed by
// the emission engine. Whitespace runs surface only their newlines; comment
// and directive regions surface as single tokens carrying their raw text.
func Tokens(tree *syntax.Tree) []token.Token {
	var tokens []token.Token
	var wsDepth, commentDepth, directiveDepth int

	tree.Walk(func(ev syntax.Event) {
		switch ev.Node.Kind {
		case syntax.NodeWhitespace:
			wsDepth += enterDelta(ev.Enter)
		case syntax.NodeComment:
			commentDepth += enterDelta(ev.Enter)
		case syntax.NodeDirective:
			directiveDepth += enterDelta(ev.Enter)
		case syntax.NodeLeaf:
			if !ev.Enter {
				return
			}
			text := tree.Text(ev.Node.Span)
			if text == "" {
				return
			}
			span := ev.Node.Span
			switch {
			case commentDepth > 0:
				tokens = append(tokens, token.Token{
					Text: text, Kind: token.Comment, Offset: span.Start, Len: span.Len(),
				})
			case wsDepth > 0:
				for i := 0; i < len(text); i++ {
					if text[i] == '\n' {
						tokens = append(tokens, token.Token{
							Text: "\n", Kind: token.Newline, Offset: span.Start + uint32(i), Len: 1,
						})
					}
				}
			case directiveDepth > 0:
				tokens = append(tokens, token.Token{
					Text: text, Kind: token.Directive, Offset: span.Start, Len: span.Len(),
				})
			default:
				tokens = append(tokens, token.Token{
					Text: text, Kind: token.Classify(text), Offset: span.Start, Len: span.Len(),
				})
			}
		}
	})
	return tokens
}

func enterDelta(enter bool) int {
	if enter {
		return 1
	}
	return -1
}
