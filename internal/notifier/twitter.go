package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// ErrMissingCredentials is returned when a TWITTER_* variable is unset.
var ErrMissingCredentials = errors.New("missing required Twitter credentials in environment variables")

const tweetInterval = 2 * time.Second

type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts events to Twitter
type TwitterNotifier struct {
	statuses statusUpdater
	interval time.Duration
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, ErrMissingCredentials
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{statuses: client.Statuses, interval: tweetInterval}, nil
}

// Notify posts a tweet for each event, pausing between posts. Cancelling ctx
// stops before the next post.
func (n *TwitterNotifier) Notify(ctx context.Context, events []extract.EventEntry) error {
	for i, evt := range events {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("posted %d of %d tweets: %w", i, len(events), err)
		}

		_, _, err := n.statuses.Update(FormatMessage(evt), nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for event %q: %w", evt.Name, err)
		}

		if i < len(events)-1 {
			if err := wait(ctx, n.interval); err != nil {
				return fmt.Errorf("posted %d of %d tweets: %w", i+1, len(events), err)
			}
		}
	}

	return nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
