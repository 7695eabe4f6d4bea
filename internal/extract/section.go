package extract

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyMarkerSet is returned by Locate when no usable start marker is given.
var ErrEmptyMarkerSet = errors.New("extract: empty start marker set")

// MarkerSet lists the accepted spellings of one section boundary.
// Order carries no priority.
type MarkerSet []string

// usable reports whether the set holds at least one non-empty marker.
func (m MarkerSet) usable() bool {
	for _, s := range m {
		if s != "" {
			return true
		}
	}
	return false
}

// Section is a span of a joined buffer between a start and an end marker.
// Offsets index the string passed to Locate. End is -1 when the section runs
// to the end of the buffer.
type Section struct {
	Text        string
	StartMarker string
	Start       int
	End         int
}

// Found reports whether a start marker was matched.
func (s Section) Found() bool {
	return s.StartMarker != ""
}

// Locate finds the section that begins at the rightmost occurrence of any start
// marker and ends at the nearest following occurrence of any end marker.
//
// Pages repeat section titles earlier as navigation links, so the latest start
// wins. A document without any start marker yields a zero Section and no error.
func Locate(joined string, start, end MarkerSet) (Section, error) {
	if !start.usable() {
		return Section{}, ErrEmptyMarkerSet
	}

	f := foldMarkers(joined)

	startIdx, fromIdx := -1, -1
	used := ""
	for _, m := range start {
		if m == "" {
			continue
		}
		fm := norm.NFKC.String(m)
		idx := strings.LastIndex(f.text, fm)
		if idx == -1 {
			continue
		}
		if orig := f.offsets[idx]; orig > startIdx {
			startIdx = orig
			fromIdx = idx + len(fm)
			used = m
		}
	}
	if startIdx == -1 {
		return Section{End: -1}, nil
	}

	endIdx := -1
	for _, m := range end {
		if m == "" {
			continue
		}
		idx := strings.Index(f.text[fromIdx:], norm.NFKC.String(m))
		if idx == -1 {
			continue
		}
		if orig := f.offsets[fromIdx+idx]; endIdx == -1 || orig < endIdx {
			endIdx = orig
		}
	}

	from := f.offsets[fromIdx]
	body := joined[from:]
	if endIdx != -1 {
		body = joined[from:endIdx]
	}

	return Section{
		Text:        strings.TrimSpace(body),
		StartMarker: used,
		Start:       startIdx,
		End:         endIdx,
	}, nil
}

// folded is a compatibility-folded copy of a buffer used only to find markers.
// offsets[i] is the byte offset in the original text of folded byte i, with one
// extra entry for the end of the text.
type folded struct {
	text    string
	offsets []int
}

// foldMarkers applies NFKC rune by rune so full-width or other compatibility
// spellings of a marker match while Section text keeps the original bytes.
func foldMarkers(s string) folded {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		out := s[i : i+size]
		if r >= utf8.RuneSelf {
			out = norm.NFKC.String(out)
		}
		b.WriteString(out)
		for j := 0; j < len(out); j++ {
			offsets = append(offsets, i)
		}
		i += size
	}
	offsets = append(offsets, len(s))

	return folded{text: b.String(), offsets: offsets}
}
