package syntax

import (
	"errors"

	"svfmt/internal/source"
)

// Parse lexes a source file into a region tree and runs the statement
// recognizer over its code tokens. The returned tree is immutable.
func Parse(file *source.File) (*Tree, error) {
	lexemes, err := scan(file.Content)
	if err != nil {
		var scanErr *scanError
		if errors.As(err, &scanErr) {
			pos := file.Pos(scanErr.off)
			return nil, &ParseError{
				Path: file.Path,
				Line: pos.Line,
				Col:  pos.Col,
				Msg:  scanErr.msg,
			}
		}
		return nil, err
	}

	tree := &Tree{file: file}
	tree.root = Node{
		Kind: NodeRoot,
		Span: source.Span{File: file.ID, Start: 0, End: u32(len(file.Content))},
	}
	tree.root.Children = make([]Node, 0, len(lexemes))

	var code []codeTok
	for _, lx := range lexemes {
		span := source.Span{File: file.ID, Start: lx.start, End: lx.end}
		switch lx.kind {
		case lexWhitespace, lexComment, lexDirective:
			tree.root.Children = append(tree.root.Children, Node{
				Kind:     regionKind(lx.kind),
				Span:     span,
				Children: []Node{{Kind: NodeLeaf, Span: span}},
			})
		default:
			tree.root.Children = append(tree.root.Children, Node{Kind: NodeLeaf, Span: span})
			code = append(code, codeTok{
				text:  string(file.Content[lx.start:lx.end]),
				start: lx.start,
				end:   lx.end,
			})
		}
	}

	tree.controls, tree.cases = recognize(file.ID, code)
	return tree, nil
}

func regionKind(kind lexKind) NodeKind {
	switch kind {
	case lexWhitespace:
		return NodeWhitespace
	case lexComment:
		return NodeComment
	default:
		return NodeDirective
	}
}
