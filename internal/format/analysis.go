package format

import (
	"svfmt/internal/source"
	"svfmt/internal/syntax"
)

// collectBodySpans indexes the governed statement of every conditional arm
// and loop by the byte offset of its keyword. The engine consults it when
// deciding whether an unbraced body needs a synthesized begin/end block.
func collectBodySpans(tree *syntax.Tree) map[uint32]source.Span {
	controls := tree.Controls()
	spans := make(map[uint32]source.Span, len(controls))
	for _, ctrl := range controls {
		spans[ctrl.Keyword] = ctrl.Body
	}
	return spans
}

// collectCaseAlignment computes, for every selection block with at least
// two labeled branches, the number of spaces to insert before each branch
// colon so the colons line up one column past the widest label. Label width
// is measured to the end of the last label token, so a reformatted file
// yields the same paddings.
func collectCaseAlignment(tree *syntax.Tree) map[uint32]int {
	alignment := make(map[uint32]int)
	for _, block := range tree.Cases() {
		if len(block.Items) < 2 {
			continue
		}
		maxWidth := 0
		for _, item := range block.Items {
			if w := int(item.LabelEnd - item.LabelStart); w > maxWidth {
				maxWidth = w
			}
		}
		for _, item := range block.Items {
			width := int(item.LabelEnd - item.LabelStart)
			alignment[item.Colon] = maxWidth - width + 1
		}
	}
	return alignment
}
