package feed

import (
	"regexp"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// summaryLength caps RawSummary, in runes.
const summaryLength = 300

var minervaLocationPattern = regexp.MustCompile(`(?i)Location:\s*([^.\n\r]+?)(?:\s{2,}|\.|$)`)

// BuildMinerva reads Minerva's current location from the whereisminerva page.
func BuildMinerva(text string) Minerva {
	flat := extract.Flatten(text)

	summary := []rune(flat)
	raw := string(summary)
	if len(summary) > summaryLength {
		raw = string(summary[:summaryLength]) + "…"
	}

	return Minerva{
		Location:   lookup(flat, minervaLocationPattern),
		Inventory:  make([]string, 0),
		RawSummary: raw,
	}
}
