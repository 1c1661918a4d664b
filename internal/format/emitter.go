package format

import (
	"strings"

	"svfmt/internal/config"
)

// emitter owns the output buffer and the line-local state the engine
// steers: indentation level, whether the next write opens a line, whether a
// separating space is owed, and whether the previous line was a comment.
type emitter struct {
	cfg *config.Config
	out []byte

	indentLevel        int
	atLineStart        bool
	pendingSpace       bool
	lastLineWasComment bool
}

func newEmitter(cfg *config.Config) *emitter {
	return &emitter{cfg: cfg, atLineStart: true}
}

func (e *emitter) increaseIndent() {
	e.indentLevel++
}

func (e *emitter) decreaseIndent() {
	if e.indentLevel > 0 {
		e.indentLevel--
	}
}

func (e *emitter) writeIndent() {
	if e.cfg.UseTabs {
		for i := 0; i < e.indentLevel; i++ {
			e.out = append(e.out, '\t')
		}
	} else {
		e.out = append(e.out, strings.Repeat(" ", e.indentLevel*e.cfg.IndentWidth)...)
	}
	e.atLineStart = false
	e.pendingSpace = false
}

func (e *emitter) push(text string) {
	e.out = append(e.out, text...)
}

func (e *emitter) pushByte(b byte) {
	e.out = append(e.out, b)
}

func (e *emitter) endsWith(suffix string) bool {
	return len(e.out) >= len(suffix) && string(e.out[len(e.out)-len(suffix):]) == suffix
}

func (e *emitter) ensureTrailingNewline() {
	if !e.endsWith("\n") {
		e.out = append(e.out, '\n')
	}
}

// newline closes the current line. Consecutive calls collapse: the emitter
// never produces a blank line on its own, only ensureBlankLine does.
func (e *emitter) newline() {
	e.trimTrailingWhitespace()
	if !e.endsWith("\n") {
		e.out = append(e.out, '\n')
	}
	e.atLineStart = true
	e.pendingSpace = false
}

func (e *emitter) ensureBlankLine() {
	e.trimTrailingWhitespace()
	if len(e.out) == 0 {
		e.atLineStart = true
		return
	}
	if !e.endsWith("\n") {
		e.out = append(e.out, '\n')
	}
	if !e.endsWith("\n\n") {
		e.out = append(e.out, '\n')
	}
	e.atLineStart = true
	e.pendingSpace = false
}

func (e *emitter) ensureBlankLineAfterComment() {
	if !e.endsWith("\n") {
		e.out = append(e.out, '\n')
	}
	if !e.endsWith("\n\n") {
		e.out = append(e.out, '\n')
	}
	e.atLineStart = true
	e.pendingSpace = false
}

func (e *emitter) trimTrailingWhitespace() {
	for len(e.out) > 0 {
		last := e.out[len(e.out)-1]
		if last != ' ' && last != '\t' {
			break
		}
		e.out = e.out[:len(e.out)-1]
	}
}

func (e *emitter) takeOutput() string {
	s := string(e.out)
	e.out = nil
	return s
}
