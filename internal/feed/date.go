package feed

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

var eventTimePattern = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\s+([A-Za-z]{3})\s+(\d{4}).*\((\d{1,2}):(\d{2})\)`)

// ParseEventTime parses a calendar line such as "Mo, 3rd Mar 2025 (18:00)".
// The page gives no zone, so the result is a wall-clock time in UTC.
// Returns false if the line does not parse.
func ParseEventTime(line string) (time.Time, bool) {
	m := eventTimePattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}

	t, err := time.Parse("2 Jan 2006 15:04", fmt.Sprintf("%s %s %s %s:%s", m[1], m[2], m[3], m[4], m[5]))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EventStatus describes where an event sits relative to now.
type EventStatus string

const (
	StatusUpcoming EventStatus = "upcoming"
	StatusActive   EventStatus = "active"
	StatusEnded    EventStatus = "ended"
	StatusUnknown  EventStatus = "unknown"
)

// StatusAt classifies an event at the given wall-clock time. Events whose dates
// do not parse are StatusUnknown.
func StatusAt(e extract.EventEntry, now time.Time) EventStatus {
	start, ok := ParseEventTime(e.Starts)
	if !ok {
		return StatusUnknown
	}
	end, ok := ParseEventTime(e.Ends)
	if !ok {
		return StatusUnknown
	}

	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.Before(end):
		return StatusActive
	default:
		return StatusEnded
	}
}

// SortEvents orders events by start time. Unparseable dates go last and keep
// their relative order.
func SortEvents(events []extract.EventEntry) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, okI := ParseEventTime(events[i].Starts)
		tj, okJ := ParseEventTime(events[j].Starts)
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI:
			return true
		default:
			return false
		}
	})
}
