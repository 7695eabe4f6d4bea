package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// Notifier defines the interface for posting event notifications
type Notifier interface {
	// Notify announces the events. Implementations stop early when ctx is done.
	Notify(ctx context.Context, events []extract.EventEntry) error
}

// MaxMessageLength is the tweet limit.
const MaxMessageLength = 280

// FormatMessage renders an event announcement, truncated to MaxMessageLength runes.
func FormatMessage(evt extract.EventEntry) string {
	var b strings.Builder
	b.WriteString("☢️ New Fallout 76 event!\n\n")
	b.WriteString(fmt.Sprintf("🎉 %s\n", evt.Name))

	if evt.Starts != "" {
		b.WriteString(fmt.Sprintf("🟢 Starts: %s\n", evt.Starts))
	}
	if evt.Ends != "" {
		b.WriteString(fmt.Sprintf("🔴 Ends: %s\n", evt.Ends))
	}

	b.WriteString("\n#Fallout76 #FO76")

	msg := b.String()
	runes := []rune(msg)
	if len(runes) > MaxMessageLength {
		msg = string(runes[:MaxMessageLength-3]) + "..."
	}
	return msg
}
