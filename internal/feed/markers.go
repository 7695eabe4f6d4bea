package feed

import "github.com/pfrederiksen/fo76-feeds/internal/extract"

// Known spellings of the section headers on the Nuka Knights home page. The
// page sometimes renders "####  Title" with a double space, and repeats every
// title earlier in its navigation menu. New variants go here.
var (
	DailyChallengesMarkers = extract.MarkerSet{
		"#### Daily Challenges",
		"####  Daily Challenges",
		"Daily Challenges",
	}

	WeeklyChallengesMarkers = extract.MarkerSet{
		"#### Weekly Challenges",
		"####  Weekly Challenges",
		"Weekly Challenges",
	}

	AxolotlMarkers = extract.MarkerSet{
		"#### Axolotl of the month",
		"####  Axolotl of the month",
		"Axolotl of the month",
	}

	CalendarMarkers = extract.MarkerSet{
		"### Current Fallout 76 Event Calendar Dates:",
		"Current Fallout 76 Event Calendar Dates:",
	}

	DiscordMarkers = extract.MarkerSet{
		"#### Nuka Knights Discord",
		"####  Nuka Knights Discord",
		"Nuka Knights Discord",
	}
)

// union concatenates marker sets into one.
func union(sets ...extract.MarkerSet) extract.MarkerSet {
	var out extract.MarkerSet
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// section locates a section whose start set is a package constant. An empty
// start set can only come from a broken edit of this file.
func section(joined string, start, end extract.MarkerSet) extract.Section {
	sec, err := extract.Locate(joined, start, end)
	if err != nil {
		panic("feed: " + err.Error())
	}
	return sec
}
