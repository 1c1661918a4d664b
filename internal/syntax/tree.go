package syntax

import (
	"svfmt/internal/source"
)

// NodeKind discriminates tree nodes.
type NodeKind uint8

const (
	// NodeRoot is the synthetic file node.
	NodeRoot NodeKind = iota
	// NodeWhitespace wraps a run of horizontal and vertical whitespace.
	NodeWhitespace
	// NodeComment wraps a line or block comment.
	NodeComment
	// NodeDirective wraps a compiler directive.
	NodeDirective
	// NodeLeaf is a located text span; the only node kind that carries text.
	NodeLeaf
)

// Node is one element of the parse tree. Region nodes (whitespace, comment,
// directive) wrap the leaf holding their raw text, mirroring how these
// regions nest in the grammar.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Children []Node
}

// Event is one step of an in-order tree traversal.
type Event struct {
	Enter bool
	Node  *Node
}

// Control records one conditional arm or loop statement: the byte offset of
// its governing keyword and the extent of its (possibly implicit) body
// statement.
type Control struct {
	Keyword uint32
	Body    source.Span
}

// CaseItem records the geometry of one branch label in a selection block.
type CaseItem struct {
	LabelStart uint32
	LabelEnd   uint32
	Colon      uint32
}

// CaseBlock is one selection statement with its labeled branches.
type CaseBlock struct {
	Items []CaseItem
}

// Tree is the parsed form of one source file.
type Tree struct {
	file     *source.File
	root     Node
	controls []Control
	cases    []CaseBlock
}

// File returns the source file this tree was parsed from.
func (t *Tree) File() *source.File { return t.file }

// Text returns the raw source text of a span.
func (t *Tree) Text(span source.Span) string {
	content := t.file.Content
	start, end := int(span.Start), int(span.End)
	if start < 0 || end > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

// Walk performs an in-order enter/leave traversal over the whole tree.
func (t *Tree) Walk(visit func(Event)) {
	walkNode(&t.root, visit)
}

func walkNode(n *Node, visit func(Event)) {
	visit(Event{Enter: true, Node: n})
	for i := range n.Children {
		walkNode(&n.Children[i], visit)
	}
	visit(Event{Enter: false, Node: n})
}

// Controls returns one entry per conditional arm and loop statement, in
// source order.
func (t *Tree) Controls() []Control { return t.controls }

// Cases returns one entry per selection block, in source order.
func (t *Tree) Cases() []CaseBlock { return t.cases }
