package format

import (
	"strings"

	"svfmt/internal/config"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// autoBlockScanLimit caps how far the engine looks ahead when deciding
// whether an unbraced body needs a synthesized block.
const autoBlockScanLimit = 128

// engine is the single-pass emission core. It dispatches on token kind,
// maintains indentation through fixed keyword sets, and runs the auto-block
// state machine that inserts begin/end around multi-statement unbraced
// bodies.
type engine struct {
	cfg       *config.Config
	tokens    []token.Token
	bodySpans map[uint32]source.Span
	alignment map[uint32]int

	idx            int
	em             *emitter
	prevCallIdent  bool
	insertedBlocks []int
	tracker        wrapTracker
}

func newEngine(cfg *config.Config, tokens []token.Token, bodySpans map[uint32]source.Span, alignment map[uint32]int) *engine {
	return &engine{
		cfg:       cfg,
		tokens:    tokens,
		bodySpans: bodySpans,
		alignment: alignment,
		em:        newEmitter(cfg),
	}
}

func (f *engine) run() string {
	for f.idx = 0; f.idx < len(f.tokens); f.idx++ {
		tok := &f.tokens[f.idx]
		switch tok.Kind {
		case token.Newline:
			f.handleNewline()
		case token.Comment:
			f.handleComment(tok)
		case token.Directive:
			f.handleDirective(tok)
		default:
			f.handleToken(tok)
		}
	}

	if f.cfg.WrapMultilineBlocks {
		for len(f.insertedBlocks) > 0 {
			f.insertedBlocks = f.insertedBlocks[:len(f.insertedBlocks)-1]
			f.insertAutoEnd()
		}
	}

	f.em.ensureTrailingNewline()

	out := f.em.takeOutput()
	if f.cfg.AutoWrapLongLines && f.cfg.MaxLineLength > 0 {
		out = wrapOutput(out, f.cfg)
	}
	return out
}

func (f *engine) handleNewline() {
	if f.cfg.InlineEndElse {
		if prev := f.prevNonNewline(); prev != nil && prev.IsKeyword("end") {
			if next := f.peekNonNewline(); next != nil && next.IsKeyword("else") {
				f.em.pendingSpace = true
				return
			}
		}
	}

	f.em.newline()
	f.prevCallIdent = false

	if f.cfg.WrapMultilineBlocks {
		f.maybeInsertAutoBegin()
	}
}

func (f *engine) handleComment(tok *token.Token) {
	text := strings.TrimRight(tok.Text, "\n")
	if strings.HasPrefix(strings.TrimSpace(text), "/*") {
		f.emitBlockComment(text)
		return
	}
	f.emitLineComment(text, strings.Contains(tok.Text, "\n"))
}

func (f *engine) emitLineComment(text string, hadNewline bool) {
	if f.em.atLineStart {
		f.em.writeIndent()
	} else {
		f.em.trimTrailingWhitespace()
		if f.em.endsWith("\n") {
			f.em.writeIndent()
		} else {
			f.em.pushByte(' ')
		}
	}
	f.em.push(text)
	if hadNewline {
		f.em.pushByte('\n')
		f.em.atLineStart = true
	} else {
		f.em.atLineStart = false
	}
	f.em.pendingSpace = false
	f.prevCallIdent = false
	f.em.lastLineWasComment = true
}

func (f *engine) emitBlockComment(text string) {
	f.em.ensureBlankLine()
	f.em.writeIndent()
	f.em.push(text)
	f.em.pushByte('\n')
	f.em.atLineStart = true
	f.em.pendingSpace = false
	f.prevCallIdent = false
	f.em.ensureBlankLineAfterComment()
	f.em.lastLineWasComment = true
}

func (f *engine) maybeInsertSectionSpacing(tok *token.Token) {
	if !isSectionDeclKeyword(tok) {
		return
	}
	if len(f.em.out) == 0 {
		return
	}
	if f.em.lastLineWasComment {
		return
	}
	f.em.ensureBlankLine()
	f.em.lastLineWasComment = false
}

func (f *engine) handleDirective(tok *token.Token) {
	if !f.em.atLineStart {
		f.em.newline()
	}
	if !f.cfg.AlignPreprocessor {
		f.em.writeIndent()
	}
	f.em.push(tok.Text)
	f.em.atLineStart = false
	f.em.pendingSpace = false
	f.em.lastLineWasComment = false
}

func (f *engine) handleToken(tok *token.Token) {
	if f.cfg.WrapMultilineBlocks {
		f.flushAutoEndsBefore(tok)
		f.tracker.observe(tok)
	}

	if isDedentKeyword(tok) {
		f.em.decreaseIndent()
	}

	if f.cfg.AlignCaseColon && tok.Text == ":" {
		if f.applyCaseAlignment(tok) {
			return
		}
	}

	if f.em.atLineStart {
		f.maybeInsertSectionSpacing(tok)
		f.em.writeIndent()
	} else if f.em.pendingSpace && !needsNoSpaceBefore(tok.Text) {
		f.em.pushByte(' ')
	}

	switch {
	case tok.Text == "," && f.cfg.SpaceAfterComma:
		f.em.trimTrailingWhitespace()
		f.em.pushByte(',')
		f.em.pendingSpace = true
	case tok.Text == "(" && f.cfg.RemoveCallSpace && f.prevCallIdent:
		f.em.trimTrailingWhitespace()
		f.em.pushByte('(')
		f.em.pendingSpace = false
	default:
		f.em.push(tok.Text)
		f.em.pendingSpace = needsSpaceAfter(tok.Text, f.peekNonNewline())
	}

	if isIndentKeyword(tok) {
		f.em.increaseIndent()
	}

	f.em.atLineStart = false
	f.prevCallIdent = tok.IsIdentifierLike()
	f.em.lastLineWasComment = false

	if f.cfg.WrapMultilineBlocks {
		span, ok := f.bodySpans[tok.Offset]
		f.tracker.maybeStart(tok, span, ok)
	}
}

func (f *engine) applyCaseAlignment(tok *token.Token) bool {
	padding, ok := f.alignment[tok.Offset]
	if !ok {
		return false
	}
	f.em.trimTrailingWhitespace()
	for i := 0; i < padding; i++ {
		f.em.pushByte(' ')
	}
	f.em.pushByte(':')
	f.em.pendingSpace = true
	f.em.atLineStart = false
	f.prevCallIdent = false
	return true
}

func (f *engine) prevNonNewline() *token.Token {
	for i := f.idx - 1; i >= 0; i-- {
		if f.tokens[i].Kind != token.Newline {
			return &f.tokens[i]
		}
	}
	return nil
}

func (f *engine) peekNonNewline() *token.Token {
	for i := f.idx + 1; i < len(f.tokens); i++ {
		if f.tokens[i].Kind != token.Newline {
			return &f.tokens[i]
		}
	}
	return nil
}

func (f *engine) maybeInsertAutoBegin() {
	if !f.tracker.readyToWrap() {
		return
	}
	if f.bodyNeedsWrap() {
		f.em.writeIndent()
		f.em.push("begin")
		f.em.pushByte('\n')
		f.em.increaseIndent()
		f.em.atLineStart = true
		f.em.pendingSpace = false
		f.insertedBlocks = append(f.insertedBlocks, f.em.indentLevel)
	}
	f.tracker.reset()
}

// bodyNeedsWrap looks ahead from the current newline and reports whether
// the pending unbraced body is followed by enough statements to need a
// synthesized block: one trailing statement when the governed extent is
// known, two statements otherwise. An explicit begin, an else-if
// continuation, or a closing keyword cancels the wrap.
func (f *engine) bodyNeedsWrap() bool {
	if f.tracker.keyword == wrapNone {
		return false
	}

	required := 2
	if f.tracker.hasBodySpan {
		required = 1
	}
	semicolons := 0
	inspected := 0
	for i := f.idx + 1; i < len(f.tokens); i++ {
		tok := &f.tokens[i]
		if tok.Kind == token.Newline {
			continue
		}
		if f.tracker.hasBodySpan && tok.Offset < f.tracker.bodyEnd {
			continue
		}
		if tok.IsKeyword("begin") {
			return false
		}
		if f.tracker.keyword == wrapElse && tok.IsKeyword("if") {
			return false
		}
		if tok.IsKeyword("else") || isDedentKeyword(tok) {
			break
		}
		if tok.Text == ";" {
			semicolons++
			if semicolons >= required {
				break
			}
		}
		inspected++
		if inspected >= autoBlockScanLimit {
			break
		}
	}
	return semicolons >= required
}

func (f *engine) flushAutoEndsBefore(next *token.Token) {
	if len(f.insertedBlocks) == 0 {
		return
	}
	if next.IsKeyword("else") || isDedentKeyword(next) {
		f.insertAutoEnd()
		f.insertedBlocks = f.insertedBlocks[:len(f.insertedBlocks)-1]
	}
}

func (f *engine) insertAutoEnd() {
	f.em.trimTrailingWhitespace()
	f.em.ensureTrailingNewline()
	f.em.decreaseIndent()
	f.em.atLineStart = true
	f.em.pendingSpace = false
	f.em.writeIndent()
	f.em.push("end")
	f.em.pushByte('\n')
	f.em.atLineStart = true
	f.em.pendingSpace = false
	f.prevCallIdent = false
}

func needsSpaceAfter(text string, next *token.Token) bool {
	switch text {
	case "(", "[", "{", ".", "@":
		return false
	case ")", "]", "}", ";", ",":
		return true
	case ":":
		return next != nil && !next.IsSymbol(":")
	default:
		return true
	}
}

func needsNoSpaceBefore(text string) bool {
	switch text {
	case ")", "]", "}", ",", ";", ".":
		return true
	}
	return false
}

func isIndentKeyword(tok *token.Token) bool {
	if tok.Kind != token.Keyword {
		return false
	}
	switch strings.ToLower(tok.Text) {
	case "module", "class", "function", "task", "package",
		"begin", "case", "casex", "casez", "randcase", "randsequence",
		"covergroup", "fork", "generate", "interface":
		return true
	}
	return false
}

func isSectionDeclKeyword(tok *token.Token) bool {
	if tok.Kind != token.Keyword {
		return false
	}
	switch strings.ToLower(tok.Text) {
	case "package", "class", "interface":
		return true
	}
	return false
}

// isDedentKeyword deliberately omits endinterface: interface bodies keep
// one level of indentation through their closing keyword.
func isDedentKeyword(tok *token.Token) bool {
	if tok.Kind != token.Keyword {
		return false
	}
	switch strings.ToLower(tok.Text) {
	case "end", "endmodule", "endclass", "endfunction", "endtask",
		"endcase", "endsequence", "endpackage", "endgroup", "endgenerate",
		"join", "join_any", "join_none":
		return true
	}
	return false
}

type wrapMode uint8

const (
	wrapIdle wrapMode = iota
	wrapWaitingCondition
	wrapReady
)

type wrapKeyword uint8

const (
	wrapNone wrapKeyword = iota
	wrapIf
	wrapElse
	wrapFor
	wrapForeach
	wrapWhile
	wrapDo
	wrapForever
)

func wrapKeywordFor(tok *token.Token) wrapKeyword {
	switch {
	case tok.IsKeyword("if"):
		return wrapIf
	case tok.IsKeyword("else"):
		return wrapElse
	case tok.IsKeyword("for"):
		return wrapFor
	case tok.IsKeyword("foreach"):
		return wrapForeach
	case tok.IsKeyword("while"):
		return wrapWhile
	case tok.IsKeyword("do"):
		return wrapDo
	case tok.IsKeyword("forever"):
		return wrapForever
	}
	return wrapNone
}

// wrapTracker follows one pending control statement from its keyword to the
// newline where a begin may be synthesized.
type wrapTracker struct {
	mode        wrapMode
	parenDepth  int
	keyword     wrapKeyword
	hasBodySpan bool
	bodyEnd     uint32
}

func (t *wrapTracker) reset() {
	*t = wrapTracker{}
}

func (t *wrapTracker) maybeStart(tok *token.Token, body source.Span, hasBody bool) {
	kw := wrapKeywordFor(tok)
	if kw == wrapNone {
		return
	}
	t.hasBodySpan = hasBody
	t.bodyEnd = body.End
	switch kw {
	case wrapIf, wrapFor, wrapForeach, wrapWhile:
		t.mode = wrapWaitingCondition
	default:
		t.mode = wrapReady
	}
	t.parenDepth = 0
	t.keyword = kw
}

func (t *wrapTracker) observe(tok *token.Token) {
	switch t.mode {
	case wrapWaitingCondition:
		switch tok.Text {
		case "(":
			t.parenDepth++
		case ")":
			if t.parenDepth > 0 {
				t.parenDepth--
			}
			if t.parenDepth == 0 {
				t.mode = wrapReady
			}
		}
	case wrapReady:
		if tok.IsKeyword("begin") || tok.Text == ";" || isDedentKeyword(tok) {
			t.reset()
		}
	}
}

func (t *wrapTracker) readyToWrap() bool {
	return t.mode == wrapReady
}
