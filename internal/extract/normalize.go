package extract

import (
	"strings"
	"unicode"
)

// Buffer is the ordered, trimmed, blank-free line sequence of a document.
type Buffer struct {
	Lines []string
}

// Normalize splits raw text into a Buffer. Carriage returns are stripped,
// other whitespace runes (NBSP, ideographic space) become plain spaces, each
// line is trimmed and empty lines are dropped. Nothing else is rewritten.
func Normalize(raw string) Buffer {
	raw = strings.Map(foldSpace, raw)

	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines = append(lines, p)
	}
	return Buffer{Lines: lines}
}

// foldSpace drops carriage returns and maps whitespace other than newlines
// to a single space.
func foldSpace(r rune) rune {
	switch {
	case r == '\r':
		return -1
	case r == '\n' || r == ' ':
		return r
	case unicode.IsSpace(r):
		return ' '
	}
	return r
}

// Joined returns the lines joined by "\n", the form used for marker search.
func (b Buffer) Joined() string {
	return strings.Join(b.Lines, "\n")
}

// Len returns the number of lines.
func (b Buffer) Len() int {
	return len(b.Lines)
}

// Flatten collapses every whitespace run in raw to a single space.
func Flatten(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
