package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/calendar"
	"github.com/pfrederiksen/fo76-feeds/internal/extract"
	"github.com/pfrederiksen/fo76-feeds/internal/feed"
	"github.com/pfrederiksen/fo76-feeds/internal/history"
	"github.com/pfrederiksen/fo76-feeds/internal/logger"
	"github.com/pfrederiksen/fo76-feeds/internal/notifier"
	"github.com/pfrederiksen/fo76-feeds/internal/scraper"
	"github.com/pfrederiksen/fo76-feeds/internal/storage"
)

// Fetcher downloads source pages. *scraper.Scraper implements it.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) map[string]scraper.Result
}

// Pipeline runs one build of every feed.
type Pipeline struct {
	Feeds    []feed.Feed
	Fetcher  Fetcher
	Store    *storage.Storage
	History  *history.DB       // optional
	Notifier notifier.Notifier // optional
	Now      func() time.Time
}

// Run fetches every source page once, builds or marks stale each feed, and
// returns the summary. Only storage failures are returned as errors; a failed
// source is reported through the summary.
func (p *Pipeline) Run(ctx context.Context) (*OutputResult, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	runAt := now().UTC()

	var prevEvents feed.EventsDoc
	hadEvents, err := p.Store.ReadDoc(eventsFile, &prevEvents)
	if err != nil {
		logger.Warn("previous events unreadable, skipping announcements", logger.Fields{"error": err.Error()})
		hadEvents = false
	}
	// A stale envelope written before any successful run carries no list.
	hadEvents = hadEvents && prevEvents.Events != nil

	var prevCodes feed.NukeCodesDoc
	hadCodes, err := p.Store.ReadDoc(nukeCodesFile, &prevCodes)
	if err != nil {
		logger.Warn("previous nuke codes unreadable", logger.Fields{"error": err.Error()})
		hadCodes = false
	}
	hadCodes = hadCodes && prevCodes.HasCodes()

	urls := feed.SourceURLs(p.Feeds)
	logger.Info("fetching sources", logger.Fields{"count": len(urls)})
	pages := p.Fetcher.FetchAll(ctx, urls)

	result := &OutputResult{
		RunAt:     runAt,
		Feeds:     make([]FeedSummary, 0, len(p.Feeds)),
		NewEvents: make([]extract.EventEntry, 0),
	}

	failedSources := make(map[string]bool)
	for _, u := range urls {
		if pages[u].Err != nil {
			failedSources[u] = true
		}
	}
	result.SourcesFailed = len(failedSources)
	result.SourcesTotal = len(urls)

	for _, f := range p.Feeds {
		summary, doc, err := p.buildFeed(ctx, f, pages, runAt)
		if err != nil {
			return nil, err
		}
		result.Feeds = append(result.Feeds, summary)

		switch d := doc.(type) {
		case *feed.EventsDoc:
			if err := p.writeCalendar(d.Events, runAt); err != nil {
				return nil, err
			}
			if hadEvents {
				result.NewEvents = feed.DiffEvents(prevEvents.Events, d.Events)
			} else {
				logger.Info("no previous events, skipping announcements", nil)
			}
		case *feed.NukeCodesDoc:
			if hadCodes {
				result.NukeCodeChanges = feed.DetectChanges(&prevCodes.NukeCodes, &d.NukeCodes, runAt)
				for _, c := range result.NukeCodeChanges {
					logger.Info("nuke code rotated", logger.Fields{"silo": c.Field, "code": c.NewValue})
				}
			}
		}
	}

	logger.SetGauge("events.new", float64(len(result.NewEvents)))

	announce := notEnded(result.NewEvents, runAt)
	if p.Notifier != nil && len(announce) > 0 {
		if err := p.Notifier.Notify(ctx, announce); err != nil {
			logger.Error("notification failed", logger.Fields{"events": len(announce)}, err)
			result.NotifyError = err.Error()
		} else {
			logger.Info("announced new events", logger.Fields{"count": len(announce)})
		}
	}

	return result, nil
}

// notEnded drops events that are already over at now. Events with unparseable
// dates are kept.
func notEnded(events []extract.EventEntry, now time.Time) []extract.EventEntry {
	out := make([]extract.EventEntry, 0, len(events))
	for _, e := range events {
		if feed.StatusAt(e, now) == feed.StatusEnded {
			logger.Debug("skipping ended event", logger.Fields{"event": e.Name, "ends": e.Ends})
			continue
		}
		out = append(out, e)
	}
	return out
}

func (p *Pipeline) buildFeed(ctx context.Context, f feed.Feed, pages map[string]scraper.Result, at time.Time) (FeedSummary, feed.Doc, error) {
	summary := FeedSummary{Name: f.Name, File: f.File}

	var page scraper.Result
	if f.Source != "" {
		page = pages[f.Source]
		if page.Err == nil && page.Text == "" {
			page.Err = fmt.Errorf("no page fetched for %s", f.Source)
		}
	}

	if page.Err != nil {
		if err := p.Store.MarkStale(f.File, f.Source, page.Err); err != nil {
			return summary, nil, fmt.Errorf("marking %s stale: %w", f.File, err)
		}
		logger.Warn("feed is stale", logger.Fields{"feed": f.Name, "source": f.Source, "error": page.Err.Error()})
		logger.IncrCounter("feeds.stale")

		summary.Stale = true
		summary.Error = page.Err.Error()
		p.record(ctx, history.Run{Feed: f.Name, FetchedAt: at, Source: f.Source, Stale: true, Payload: summary.Error})
		return summary, nil, nil
	}

	doc := f.Build(page.Text, at)
	if err := p.Store.WriteDoc(f.File, doc); err != nil {
		return summary, nil, fmt.Errorf("writing %s: %w", f.File, err)
	}
	summary.Items = doc.Items()
	logger.Info("feed written", logger.Fields{"feed": f.Name, "items": summary.Items})
	logger.IncrCounter("feeds.written")

	if p.History != nil {
		payload, err := json.Marshal(doc)
		if err != nil {
			return summary, nil, fmt.Errorf("encoding %s for history: %w", f.Name, err)
		}
		p.record(ctx, history.Run{Feed: f.Name, FetchedAt: at, Source: f.Source, Payload: string(payload)})
	}
	return summary, doc, nil
}

func (p *Pipeline) writeCalendar(events []extract.EventEntry, at time.Time) error {
	if err := p.Store.WriteFile(calendar.FileName, []byte(calendar.GenerateICS(events, at))); err != nil {
		return fmt.Errorf("writing %s: %w", calendar.FileName, err)
	}
	return nil
}

// record logs history failures instead of failing the run; the published
// feeds are already written.
func (p *Pipeline) record(ctx context.Context, run history.Run) {
	if p.History == nil {
		return
	}
	if err := p.History.Record(ctx, run); err != nil {
		logger.Error("recording history failed", logger.Fields{"feed": run.Feed}, err)
	}
}
