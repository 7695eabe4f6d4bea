package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyValue applies pattern to whitespace-collapsed text and returns its first
// capture group, trimmed. It reports false when nothing matched or the capture
// is empty. A pattern without a capture group is a programming error.
func KeyValue(flat string, pattern *regexp.Regexp) (string, bool) {
	if pattern.NumSubexp() < 1 {
		panic(fmt.Sprintf("extract: pattern %q has no capture group", pattern.String()))
	}
	m := pattern.FindStringSubmatch(flat)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}
