package feed

import (
	"regexp"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

var (
	alphaPattern    = regexp.MustCompile(`Alpha\.\s*([0-9]{8})`)
	bravoPattern    = regexp.MustCompile(`Bravo\.\s*([0-9]{8})`)
	charliePattern  = regexp.MustCompile(`Charlie\.\s*([0-9]{8})`)
	resetsInPattern = regexp.MustCompile(`(?i)Resets in:\s*([0-9a-z\s]+)\.`)
)

// BuildNukeCodes pulls the three silo codes and the reset countdown out of the
// nukacrypt page. Missing values stay nil.
func BuildNukeCodes(text string) NukeCodes {
	flat := extract.Flatten(text)
	return NukeCodes{
		Alpha:    lookup(flat, alphaPattern),
		Bravo:    lookup(flat, bravoPattern),
		Charlie:  lookup(flat, charliePattern),
		ResetsIn: lookup(flat, resetsInPattern),
	}
}

func lookup(flat string, re *regexp.Regexp) *string {
	v, ok := extract.KeyValue(flat, re)
	if !ok {
		return nil
	}
	return &v
}
