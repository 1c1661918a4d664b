package source

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingError reports input that could not be decoded to valid text.
type EncodingError struct {
	Path   string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Decode normalizes raw file bytes to UTF-8 text with LF line endings.
// It strips a UTF-8 BOM, transcodes UTF-16 input when a UTF-16 BOM is
// present, and rejects anything that is not valid UTF-8 afterwards.
func Decode(path string, content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags

	switch {
	case hasUTF8BOM(content):
		content = content[3:]
		flags |= FileHadBOM
	case hasUTF16BOM(content):
		decoded, err := decodeUTF16(content)
		if err != nil {
			return nil, 0, &EncodingError{Path: path, Reason: "invalid UTF-16 content: " + err.Error()}
		}
		content = decoded
		flags |= FileHadBOM | FileDecodedUTF16
	}

	if !utf8.Valid(content) {
		return nil, 0, &EncodingError{Path: path, Reason: "input is not valid UTF-8"}
	}

	normalized, changed := normalizeEOL(content)
	if changed {
		flags |= FileNormalizedEOL
	}
	return normalized, flags, nil
}

func hasUTF8BOM(content []byte) bool {
	return len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF
}

func hasUTF16BOM(content []byte) bool {
	if len(content) < 2 {
		return false
	}
	return (content[0] == 0xFF && content[1] == 0xFE) || (content[0] == 0xFE && content[1] == 0xFF)
}

func decodeUTF16(content []byte) ([]byte, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, content)
	return out, err
}

// normalizeEOL rewrites CRLF pairs and lone CR bytes to LF. Returns the
// normalized content and whether any replacement happened.
func normalizeEOL(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' {
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, content[i])
	}
	return out, true
}
