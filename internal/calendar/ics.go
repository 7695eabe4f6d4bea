// Package calendar renders the community event calendar as an iCalendar feed.
package calendar

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
	"github.com/pfrederiksen/fo76-feeds/internal/feed"
)

// FileName is the calendar file written next to events.json.
const FileName = "events.ics"

const uidDomain = "fo76-feeds"

// GenerateICS renders one VCALENDAR with a VEVENT per event whose start and end
// both parse. Times are floating: the source page gives no zone.
func GenerateICS(events []extract.EventEntry, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//fo76-feeds//events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Fallout 76 Events\r\n")

	stamp := formatICSTime(now)
	for _, evt := range events {
		start, ok := feed.ParseEventTime(evt.Starts)
		if !ok {
			continue
		}
		end, ok := feed.ParseEventTime(evt.Ends)
		if !ok || end.Before(start) {
			continue
		}

		ics.WriteString("BEGIN:VEVENT\r\n")
		writeLine(&ics, fmt.Sprintf("UID:%s@%s", UID(evt), uidDomain))
		writeLine(&ics, "DTSTAMP:"+stamp)
		writeLine(&ics, "DTSTART:"+formatFloating(start))
		writeLine(&ics, "DTEND:"+formatFloating(end))
		writeLine(&ics, "SUMMARY:"+escapeICS(evt.Name))
		writeLine(&ics, "DESCRIPTION:"+escapeICS(fmt.Sprintf("Starts: %s\nEnds: %s", evt.Starts, evt.Ends)))
		ics.WriteString("TRANSP:TRANSPARENT\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// UID returns a stable identifier for an event, derived from its name and start.
func UID(evt extract.EventEntry) string {
	sum := sha1.Sum([]byte(evt.Key()))
	return hex.EncodeToString(sum[:])
}

// formatICSTime formats a time.Time as a UTC iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// RFC 5545 section 3.3.11
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine writes a content line folded at 75 octets, never splitting a rune.
func writeLine(b *strings.Builder, line string) {
	const limit = 75
	width := 0
	for _, r := range line {
		n := utf8.RuneLen(r)
		if width+n > limit {
			b.WriteString("\r\n ")
			width = 1
		}
		b.WriteRune(r)
		width += n
	}
	b.WriteString("\r\n")
}
