package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MinTitleLength is the shortest accepted challenge title, in runes.
	MinTitleLength = 4
	// MaxScore is the largest accepted challenge score.
	MaxScore = 5000
)

var (
	bulletPrefix  = regexp.MustCompile(`^(?:[•*-]\s*)+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	strictInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)
)

// ChallengeEntry is one scored challenge.
type ChallengeEntry struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

// Pairs reads a section as alternating title and score lines. Lines that do not
// start a valid pair are skipped one at a time, so interleaved noise is tolerated.
func Pairs(sectionText string) []ChallengeEntry {
	lines := Normalize(sectionText).Lines
	out := make([]ChallengeEntry, 0)

	for i := 0; i < len(lines)-1; i++ {
		title := cleanTitle(lines[i])
		score, ok := parseScore(lines[i+1])
		if !ok || utf8.RuneCountInString(title) < MinTitleLength {
			continue
		}
		out = append(out, ChallengeEntry{Title: title, Score: score})
		i++ // score line consumed
	}
	return out
}

func cleanTitle(line string) string {
	line = bulletPrefix.ReplaceAllString(line, "")
	line = whitespaceRun.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// parseScore accepts base-10 integers in (0, MaxScore]. Decimals and thousands
// separators are rejected.
func parseScore(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if !strictInteger.MatchString(line) {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n <= 0 || n > MaxScore {
		return 0, false
	}
	return n, true
}
