package notifier

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// DryRunNotifier prints what would be posted without posting it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the messages that would be posted
func (n *DryRunNotifier) Notify(_ context.Context, events []extract.EventEntry) error {
	for i, evt := range events {
		msg := FormatMessage(evt)
		if _, err := fmt.Fprintf(n.out, "--- Message %d/%d ---\n%s\n\n(Length: %d characters)\n\n",
			i+1, len(events), msg, utf8.RuneCountInString(msg)); err != nil {
			return fmt.Errorf("writing dry-run message: %w", err)
		}
	}
	return nil
}
