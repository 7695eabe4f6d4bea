package feed

import (
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// DiffEvents returns the events of current whose (name, starts) key is not in
// previous, in current order.
func DiffEvents(previous, current []extract.EventEntry) []extract.EventEntry {
	known := make(map[string]bool, len(previous))
	for _, e := range previous {
		known[e.Key()] = true
	}

	added := make([]extract.EventEntry, 0)
	for _, e := range current {
		if !known[e.Key()] {
			added = append(added, e)
		}
	}
	return added
}

// Change records one field that differs between two runs.
type Change struct {
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	DetectedAt time.Time `json:"detected_at"`
}

// DetectChanges compares two nuke code snapshots and stamps every change with
// now. A nil previous reports nothing, since there is no rotation to speak of on
// the first run. A code that went missing is not a rotation either.
func DetectChanges(previous, current *NukeCodes, now time.Time) []*Change {
	var changes []*Change
	if previous == nil || current == nil {
		return changes
	}

	fields := []struct {
		name          string
		before, after *string
	}{
		{"alpha", previous.Alpha, current.Alpha},
		{"bravo", previous.Bravo, current.Bravo},
		{"charlie", previous.Charlie, current.Charlie},
	}

	now = now.UTC()
	for _, f := range fields {
		if f.after == nil || strVal(f.before) == *f.after {
			continue
		}
		changes = append(changes, &Change{
			Field:      f.name,
			OldValue:   strVal(f.before),
			NewValue:   *f.after,
			DetectedAt: now,
		})
	}
	return changes
}
