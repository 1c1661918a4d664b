package syntax

import "svfmt/internal/source"

// codeTok is one non-trivia token as seen by the statement recognizer.
type codeTok struct {
	text  string
	start uint32
	end   uint32
}

// recognizer walks the code tokens of a file and collects the governed
// statement of every conditional arm and loop, plus the label geometry of
// selection blocks. It is a shape recognizer, not a parser: it matches
// block delimiters by depth and never validates expressions.
type recognizer struct {
	file source.FileID
	toks []codeTok

	controls []Control
	cases    []CaseBlock
}

func recognize(file source.FileID, toks []codeTok) ([]Control, []CaseBlock) {
	r := &recognizer{file: file, toks: toks}
	r.run()
	return r.controls, r.cases
}

func (r *recognizer) run() {
	// Trailing while of a do-while loop governs nothing; remember its
	// index so the loop pass below leaves it alone.
	doWhile := make(map[int]struct{})

	for i := 0; i < len(r.toks); i++ {
		switch r.toks[i].text {
		case "if":
			if r.text(i+1) == "(" {
				span, _ := r.statementSpan(r.skipParens(i + 1))
				r.record(i, span)
			}
		case "for", "while", "foreach", "repeat":
			if _, skip := doWhile[i]; skip {
				continue
			}
			if r.text(i+1) == "(" {
				span, _ := r.statementSpan(r.skipParens(i + 1))
				r.record(i, span)
			}
		case "do":
			span, next := r.statementSpan(i + 1)
			r.record(i, span)
			if next < len(r.toks) && r.toks[next].text == "while" {
				doWhile[next] = struct{}{}
			}
		case "forever":
			span, _ := r.statementSpan(i + 1)
			r.record(i, span)
		case "else":
			// An else-if arm is keyed at its inner if keyword instead.
			if r.text(i+1) == "if" {
				continue
			}
			span, _ := r.statementSpan(i + 1)
			r.record(i, span)
		case "case", "casex", "casez":
			r.caseBlock(i, true)
		case "randcase":
			r.caseBlock(i, false)
		}
	}
}

func (r *recognizer) record(i int, body source.Span) {
	if body.End <= body.Start {
		return
	}
	r.controls = append(r.controls, Control{Keyword: r.toks[i].start, Body: body})
}

// caseBlock collects the label geometry of one selection block. Pattern
// forms (case inside, case matches) keep their source spacing and are
// skipped. Nested statements are stepped over whole; inner selection
// blocks are picked up by the outer scan on their own keyword.
func (r *recognizer) caseBlock(i int, hasSelector bool) {
	j := i + 1
	if hasSelector {
		if r.text(j) != "(" {
			return
		}
		j = r.skipParens(j)
		switch r.text(j) {
		case "inside", "matches":
			return
		}
	}

	var items []CaseItem
	for j < len(r.toks) {
		tok := r.toks[j]
		if tok.text == "endcase" {
			break
		}
		if tok.text == "default" {
			if r.text(j+1) == ":" {
				items = append(items, CaseItem{
					LabelStart: tok.start,
					LabelEnd:   tok.end,
					Colon:      r.toks[j+1].start,
				})
				_, j = r.statementSpan(j + 2)
			} else {
				_, j = r.statementSpan(j + 1)
			}
			continue
		}
		colon, ok := r.findLabelColon(j)
		if !ok {
			break
		}
		items = append(items, CaseItem{
			LabelStart: tok.start,
			LabelEnd:   r.toks[colon-1].end,
			Colon:      r.toks[colon].start,
		})
		_, j = r.statementSpan(colon + 1)
	}
	if len(items) > 0 {
		r.cases = append(r.cases, CaseBlock{Items: items})
	}
}

// findLabelColon locates the colon closing a case item label list starting
// at token i. Bracketed ranges and ternary colons inside the labels do not
// count.
func (r *recognizer) findLabelColon(i int) (int, bool) {
	depth, ternary := 0, 0
	for j := i; j < len(r.toks); j++ {
		switch r.toks[j].text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
		case "?":
			ternary++
		case ":":
			if depth == 0 {
				if ternary > 0 {
					ternary--
					continue
				}
				return j, true
			}
		case ";", "begin", "end", "endcase":
			if depth == 0 {
				return 0, false
			}
		}
	}
	return 0, false
}

// statementSpan returns the byte extent of the single statement starting at
// token i and the index of the first token after it.
func (r *recognizer) statementSpan(i int) (source.Span, int) {
	if i >= len(r.toks) {
		return r.span(0, 0), i
	}
	start := r.toks[i].start

	switch r.toks[i].text {
	case ";":
		return r.span(start, r.toks[i].end), i + 1

	case "begin", "fork":
		last := r.matchBlock(i)
		return r.span(start, r.toks[last].end), last + 1

	case "case", "casex", "casez", "randcase", "randsequence":
		last := r.matchCase(i)
		return r.span(start, r.toks[last].end), last + 1

	case "if":
		j := i + 1
		if r.text(j) == "(" {
			j = r.skipParens(j)
		}
		sp, j := r.statementSpan(j)
		end := sp.End
		for r.text(j) == "else" {
			sp, j = r.statementSpan(j + 1)
			if sp.End > end {
				end = sp.End
			}
		}
		return r.span(start, end), j

	case "for", "while", "foreach", "repeat":
		j := i + 1
		if r.text(j) == "(" {
			j = r.skipParens(j)
		}
		sp, j := r.statementSpan(j)
		return r.span(start, sp.End), j

	case "do":
		sp, j := r.statementSpan(i + 1)
		end := sp.End
		if r.text(j) == "while" {
			j++
			if r.text(j) == "(" {
				j = r.skipParens(j)
			}
			if r.text(j) == ";" {
				end = r.toks[j].end
				j++
			} else if j > 0 && j <= len(r.toks) {
				end = r.toks[j-1].end
			}
		}
		return r.span(start, end), j

	case "forever":
		sp, j := r.statementSpan(i + 1)
		return r.span(start, sp.End), j
	}

	// Plain statement: runs to the first semicolon outside any bracket.
	depth := 0
	for j := i; j < len(r.toks); j++ {
		switch r.toks[j].text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
		case ";":
			if depth == 0 {
				return r.span(start, r.toks[j].end), j + 1
			}
		case "begin", "fork":
			if depth == 0 {
				last := r.matchBlock(j)
				return r.span(start, r.toks[last].end), last + 1
			}
		case "else", "end", "endcase", "join", "join_any", "join_none",
			"endmodule", "endclass", "endfunction", "endtask",
			"endpackage", "endgroup", "endgenerate", "endsequence",
			"endinterface":
			if depth == 0 {
				if j == i {
					return r.span(start, start), i
				}
				return r.span(start, r.toks[j-1].end), j
			}
		}
	}
	return r.span(start, r.toks[len(r.toks)-1].end), len(r.toks)
}

// matchBlock returns the index of the last token of the begin or fork block
// opening at i, including a trailing ": label" if present.
func (r *recognizer) matchBlock(i int) int {
	depth := 0
	for j := i; j < len(r.toks); j++ {
		switch r.toks[j].text {
		case "begin", "fork":
			depth++
		case "end", "join", "join_any", "join_none":
			depth--
			if depth == 0 {
				if r.text(j+1) == ":" && j+2 < len(r.toks) {
					return j + 2
				}
				return j
			}
		}
	}
	return len(r.toks) - 1
}

// matchCase returns the index of the endcase (or endsequence) closing the
// selection block opening at i.
func (r *recognizer) matchCase(i int) int {
	depth := 0
	for j := i; j < len(r.toks); j++ {
		switch r.toks[j].text {
		case "case", "casex", "casez", "randcase", "randsequence":
			depth++
		case "endcase", "endsequence":
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(r.toks) - 1
}

// skipParens steps over the parenthesized group opening at i and returns
// the index just past its closing paren.
func (r *recognizer) skipParens(i int) int {
	depth := 0
	for j := i; j < len(r.toks); j++ {
		switch r.toks[j].text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(r.toks)
}

func (r *recognizer) text(i int) string {
	if i < 0 || i >= len(r.toks) {
		return ""
	}
	return r.toks[i].text
}

func (r *recognizer) span(start, end uint32) source.Span {
	return source.Span{File: r.file, Start: start, End: end}
}
