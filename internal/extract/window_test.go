package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWindow(t *testing.T) {
	lines := []string{"Daily Ops", "menu", "DAILY OPS", "a", "b", "c", "d"}

	w, ok := FindWindow(lines, "daily ops", 3)
	require.True(t, ok)
	assert.Equal(t, 2, w.Offset)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, "DAILY OPS", w.Line(0))
	assert.Equal(t, KindAnchor, w.Kind(0))
	assert.Equal(t, "b", w.Line(2))
	assert.Equal(t, "", w.Line(3))
}

func TestFindWindow_Absent(t *testing.T) {
	w, ok := FindWindow([]string{"Weekly Challenges", "x"}, "Daily Ops", 30)
	assert.False(t, ok)
	assert.Nil(t, w)
}

func TestFindWindow_TruncatedAtEnd(t *testing.T) {
	w, ok := FindWindow([]string{"x", "Anchor", "y"}, "anchor", 30)
	require.True(t, ok)
	assert.Equal(t, 2, w.Len())
}

func TestWindow_ClaimAndElimination(t *testing.T) {
	w, ok := FindWindow([]string{"Anchor", "Label: one", "value", "Other", "Target"}, "Anchor", 10)
	require.True(t, ok)

	isLabel := func(l string) bool { return strings.HasPrefix(l, "Label:") }
	label := w.FindUnclaimed(0, isLabel)
	require.Equal(t, 1, label)
	w.Claim(label, "label")
	assert.Equal(t, -1, w.FindUnclaimed(0, isLabel))
	assert.Equal(t, 1, w.Find(0, isLabel))

	all := func(string) bool { return true }
	assert.Equal(t, []int{2, 3}, w.NextUnclaimed(2, 2, all))

	w.Claim(3, "other")
	assert.Equal(t, 2, w.NearestUnclaimedBefore(4, all))
	assert.Equal(t, -1, w.NearestUnclaimedBefore(2, all))
	assert.True(t, w.ClaimedText("other"))
	assert.False(t, w.ClaimedText("value"))
	assert.Equal(t, []string{"Other"}, w.Claimed("other"))

	w.Claim(99, "ignored")
	assert.Equal(t, KindUnknown, w.Kind(99))
}
