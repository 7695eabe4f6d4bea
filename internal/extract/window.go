package extract

import "strings"

// Kind labels a line inside a Window. Lines start out KindUnknown; callers claim
// them with their own kinds as sub-fields are recognised.
type Kind string

const (
	KindUnknown Kind = ""
	KindAnchor  Kind = "anchor"
)

// Window is a bounded run of lines after an anchor, with a claim set recording
// which lines have already been assigned to a field. Fields that carry no label
// of their own are recovered by elimination over the lines nobody claimed.
type Window struct {
	// Offset is the index of the anchor line in the source line slice.
	Offset int

	lines []string
	kinds []Kind
}

// FindWindow selects the last line equal to anchor (case-insensitive) and
// returns the size lines starting at it. Every anchor line in the window is
// pre-claimed as KindAnchor. It reports false when the anchor is absent.
func FindWindow(lines []string, anchor string, size int) (*Window, bool) {
	at := -1
	for i, l := range lines {
		if strings.EqualFold(l, anchor) {
			at = i
		}
	}
	if at == -1 {
		return nil, false
	}
	if size < 1 {
		size = 1
	}

	end := min(at+size, len(lines))
	w := &Window{
		Offset: at,
		lines:  append([]string(nil), lines[at:end]...),
		kinds:  make([]Kind, end-at),
	}
	for i, l := range w.lines {
		if strings.EqualFold(l, anchor) {
			w.kinds[i] = KindAnchor
		}
	}
	return w, true
}

// Len returns the number of lines in the window.
func (w *Window) Len() int {
	return len(w.lines)
}

// Line returns line i, or "" when i is out of range.
func (w *Window) Line(i int) string {
	if i < 0 || i >= len(w.lines) {
		return ""
	}
	return w.lines[i]
}

// Kind returns the claim on line i.
func (w *Window) Kind(i int) Kind {
	if i < 0 || i >= len(w.kinds) {
		return KindUnknown
	}
	return w.kinds[i]
}

// Claim assigns line i to kind k. Out of range indexes are ignored.
func (w *Window) Claim(i int, k Kind) {
	if i < 0 || i >= len(w.kinds) {
		return
	}
	w.kinds[i] = k
}

// Find returns the first index >= from whose line satisfies pred, claimed or
// not, or -1.
func (w *Window) Find(from int, pred func(string) bool) int {
	for i := max(from, 0); i < len(w.lines); i++ {
		if pred(w.lines[i]) {
			return i
		}
	}
	return -1
}

// FindUnclaimed is Find restricted to KindUnknown lines.
func (w *Window) FindUnclaimed(from int, pred func(string) bool) int {
	for i := max(from, 0); i < len(w.lines); i++ {
		if w.kinds[i] == KindUnknown && pred(w.lines[i]) {
			return i
		}
	}
	return -1
}

// NextUnclaimed returns up to n unclaimed indexes >= from satisfying pred.
func (w *Window) NextUnclaimed(from, n int, pred func(string) bool) []int {
	out := make([]int, 0, n)
	for i := max(from, 0); i < len(w.lines) && len(out) < n; i++ {
		if w.kinds[i] == KindUnknown && pred(w.lines[i]) {
			out = append(out, i)
		}
	}
	return out
}

// NearestUnclaimedBefore scans backward from i and returns the closest
// unclaimed index satisfying pred, or -1.
func (w *Window) NearestUnclaimedBefore(i int, pred func(string) bool) int {
	for j := min(i, len(w.lines)) - 1; j >= 0; j-- {
		if w.kinds[j] == KindUnknown && pred(w.lines[j]) {
			return j
		}
	}
	return -1
}

// ClaimedText reports whether any claimed line equals s, ignoring case.
func (w *Window) ClaimedText(s string) bool {
	for i, l := range w.lines {
		if w.kinds[i] != KindUnknown && strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}

// Claimed returns the lines claimed as kind k, in window order.
func (w *Window) Claimed(k Kind) []string {
	out := make([]string, 0)
	for i, l := range w.lines {
		if w.kinds[i] == k {
			out = append(out, l)
		}
	}
	return out
}
