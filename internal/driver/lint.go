package driver

import (
	"strings"
	"unicode/utf8"
)

// Violation reports a single line exceeding the configured length limit.
// Columns counts runes, matching how editors show ruler positions.
type Violation struct {
	Line    int
	Columns int
}

// LineLengthViolations scans formatted output for lines longer than max
// runes. A limit of zero disables the check.
func LineLengthViolations(text string, max int) []Violation {
	if max <= 0 {
		return nil
	}
	var out []Violation
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if cols := utf8.RuneCountInString(line); cols > max {
			out = append(out, Violation{Line: i + 1, Columns: cols})
		}
	}
	return out
}
