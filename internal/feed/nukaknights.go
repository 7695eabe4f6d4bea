package feed

import (
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

const (
	// DailyOpsAnchor is the label line that opens the Daily Ops block.
	DailyOpsAnchor = "Daily Ops"

	// DailyOpsWindow bounds how many lines after the anchor are scanned. Smaller
	// values cut off the enemy line; larger ones reach into the next section.
	DailyOpsWindow = 30

	// MaxMutations is the number of mutation lines kept after the mode.
	MaxMutations = 2

	// MaxAxolotlDescription is the number of description lines kept.
	MaxAxolotlDescription = 8

	minLocationLength = 4
	maxLocationLength = 60
	maxTimezoneLength = 40
)

// Claim kinds used inside the Daily Ops window.
const (
	kindSince    extract.Kind = "since"
	kindTimezone extract.Kind = "timezone"
	kindMode     extract.Kind = "mode"
	kindMutation extract.Kind = "mutation"
	kindEnemy    extract.Kind = "enemy"
	kindLocation extract.Kind = "location"
)

// BuildScore extracts the daily and weekly challenge lists.
func BuildScore(text string) Score {
	joined := extract.Normalize(text).Joined()

	daily := section(joined, DailyChallengesMarkers, WeeklyChallengesMarkers)
	weekly := section(joined, WeeklyChallengesMarkers, union(AxolotlMarkers, CalendarMarkers))

	return Score{
		Daily:  extract.Pairs(daily.Text),
		Weekly: extract.Pairs(weekly.Text),
	}
}

// BuildDailyOps reads the Daily Ops block. It returns nil when the page has no
// Daily Ops label at all.
//
// Labelled fields are claimed first (since, timezone, mode, mutations, enemy).
// The location has no label: it is the nearest unclaimed line before the enemy
// that is neither a known label nor a claimed value and has a plausible length.
func BuildDailyOps(text string) *DailyOps {
	lines := extract.Normalize(text).Lines
	w, ok := extract.FindWindow(lines, DailyOpsAnchor, DailyOpsWindow)
	if !ok {
		return nil
	}

	ops := &DailyOps{Mutations: make([]string, 0, MaxMutations)}

	if i := w.FindUnclaimed(0, isSinceLine); i >= 0 {
		w.Claim(i, kindSince)
		ops.Since = strPtr(w.Line(i))
	}

	if i := w.FindUnclaimed(0, isTimezoneLine); i >= 0 {
		w.Claim(i, kindTimezone)
		ops.Timezone = strPtr(w.Line(i))
	}

	if i := w.FindUnclaimed(0, isModeLine); i >= 0 {
		w.Claim(i, kindMode)
		mode, _ := ParseMode(w.Line(i))
		ops.Mode = &mode

		for _, j := range w.NextUnclaimed(i+1, MaxMutations, isMutationLine) {
			w.Claim(j, kindMutation)
			ops.Mutations = append(ops.Mutations, w.Line(j))
		}
	}

	enemyAt := w.Find(0, isFactionLine)
	if enemyAt < 0 {
		return ops
	}
	enemy, _ := ParseFaction(w.Line(enemyAt))
	ops.Enemy = &enemy
	if w.Kind(enemyAt) == extract.KindUnknown {
		w.Claim(enemyAt, kindEnemy)
	}

	loc := w.NearestUnclaimedBefore(enemyAt, func(l string) bool {
		return isLocationCandidate(l) && !w.ClaimedText(l)
	})
	if loc >= 0 {
		w.Claim(loc, kindLocation)
		ops.Location = strPtr(w.Line(loc))
	}

	return ops
}

func isSinceLine(l string) bool {
	return strings.HasPrefix(strings.ToLower(l), "since ")
}

func isTimezoneLine(l string) bool {
	return strings.Contains(l, "/") && utf8.RuneCountInString(l) < maxTimezoneLength
}

func isModeLine(l string) bool {
	_, ok := ParseMode(l)
	return ok
}

func isFactionLine(l string) bool {
	_, ok := ParseFaction(l)
	return ok
}

func isMutationLine(l string) bool {
	return !isSinceLine(l) && !isTimezoneLine(l)
}

func isLocationCandidate(l string) bool {
	if isSinceLine(l) || strings.Contains(l, "/") || isModeLine(l) || isFactionLine(l) {
		return false
	}
	n := utf8.RuneCountInString(l)
	return n >= minLocationLength && n <= maxLocationLength
}

// BuildAxolotl reads the Axolotl of the month block. The first two lines are
// the month and the name; start, end and timezone are picked by prefix and the
// remaining lines form the description. It returns nil when the section is
// absent.
func BuildAxolotl(text string) *Axolotl {
	joined := extract.Normalize(text).Joined()
	lines := extract.Normalize(section(joined, AxolotlMarkers, CalendarMarkers).Text).Lines

	ax := &Axolotl{Description: make([]string, 0)}
	if len(lines) > 0 {
		ax.Month = strPtr(lines[0])
	}
	if len(lines) > 1 {
		ax.Name = strPtr(lines[1])
	}
	if ax.Month == nil && ax.Name == nil {
		return nil
	}

	rest := make([]string, 0, len(lines))
	for _, l := range lines {
		low := strings.ToLower(l)
		switch {
		case strings.HasPrefix(low, "start:"):
			if ax.Start == nil {
				ax.Start = strPtr(l)
			}
		case strings.HasPrefix(low, "end:"):
			if ax.End == nil {
				ax.End = strPtr(l)
			}
		case isTimezoneLine(l):
			if ax.Timezone == nil {
				ax.Timezone = strPtr(l)
			}
		default:
			rest = append(rest, l)
		}
	}

	if len(rest) > 2 {
		rest = rest[2:]
		ax.Description = append(ax.Description, rest[:min(len(rest), MaxAxolotlDescription)]...)
	}
	return ax
}

// BuildEvents reads the event calendar.
func BuildEvents(text string) []extract.EventEntry {
	joined := extract.Normalize(text).Joined()
	return extract.Events(section(joined, CalendarMarkers, DiscordMarkers).Text)
}
