package extract

import "regexp"

// DateLinePattern matches a calendar date-time line such as
// "Mo, 3rd Mar 2025 (18:00)".
var DateLinePattern = regexp.MustCompile(`^[A-Z][a-z]{1,2},\s+\d{1,2}(st|nd|rd|th)\s+[A-Za-z]{3}\s+\d{4}.*\(\d{1,2}:\d{2}\)`)

// EventEntry is one calendar event.
type EventEntry struct {
	Name   string `json:"name"`
	Starts string `json:"starts"`
	Ends   string `json:"ends"`
}

// Key identifies an event for deduplication.
func (e EventEntry) Key() string {
	return e.Name + "||" + e.Starts
}

// Events scans a section for (start line, end line, name line) triplets. Both
// date lines must match DateLinePattern; the name is free text.
func Events(sectionText string) []EventEntry {
	lines := Normalize(sectionText).Lines
	events := make([]EventEntry, 0)

	for i := 0; i+2 < len(lines); i++ {
		if DateLinePattern.MatchString(lines[i]) && DateLinePattern.MatchString(lines[i+1]) {
			events = append(events, EventEntry{Name: lines[i+2], Starts: lines[i], Ends: lines[i+1]})
		}
	}
	return DedupEvents(events)
}

// DedupEvents drops events whose (name, starts) pair was already seen,
// keeping the first occurrence and the input order.
func DedupEvents(events []EventEntry) []EventEntry {
	seen := make(map[string]bool)
	unique := make([]EventEntry, 0, len(events))
	for _, e := range events {
		if seen[e.Key()] {
			continue
		}
		seen[e.Key()] = true
		unique = append(unique, e)
	}
	return unique
}
