package syntax

import "fmt"

// ParseError reports input the scanner could not tokenize. It is fatal for
// the file being formatted; the formatter performs no recovery.
type ParseError struct {
	Path string
	Line uint32
	Col  uint32
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}
