package format

import (
	"strings"
	"unicode"

	"svfmt/internal/config"
)

// wrapOutput re-breaks lines longer than the configured limit. Limits are
// measured in runes. Comment and directive lines are never wrapped.
func wrapOutput(text string, cfg *config.Config) string {
	if cfg.MaxLineLength == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if hadTrailingNewline {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		for _, segment := range wrapLine(line, cfg) {
			b.WriteString(segment)
			b.WriteByte('\n')
		}
	}

	out := b.String()
	if !hadTrailingNewline {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

// wrapLine splits one line at safe break characters, indenting each
// continuation one extra unit past the original line. A line with no safe
// break point is emitted unchanged.
func wrapLine(line string, cfg *config.Config) []string {
	if cfg.MaxLineLength == 0 || len([]rune(line)) <= cfg.MaxLineLength {
		return []string{line}
	}
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" ||
		strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "`") {
		return []string{line}
	}

	indent := line[:len(line)-len(trimmed)]
	continuation := indent + strings.Repeat(" ", cfg.IndentWidth)
	if cfg.UseTabs {
		continuation = indent + "\t"
	}

	var segments []string
	current := []rune(indent)
	columns := len(current)
	lastWrap := -1

	for _, ch := range trimmed {
		current = append(current, ch)
		columns++
		if isWrapChar(ch) {
			lastWrap = len(current)
		}
		if columns > cfg.MaxLineLength && lastWrap >= 0 {
			head := strings.TrimRight(string(current[:lastWrap]), " \t")
			if head != "" {
				segments = append(segments, head)
			}
			tail := current[lastWrap:]
			for len(tail) > 0 && (tail[0] == ' ' || tail[0] == '\t') {
				tail = tail[1:]
			}
			current = append([]rune(continuation), tail...)
			columns = len(current)
			lastWrap = -1
		}
	}

	segments = append(segments, string(current))
	return segments
}

func isWrapChar(ch rune) bool {
	if unicode.IsSpace(ch) {
		return true
	}
	switch ch {
	case ',', ';', '+', '-', '*', '/', '&', '|', '=':
		return true
	}
	return false
}
