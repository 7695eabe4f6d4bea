package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/fo76-feeds/internal/logger"
)

const (
	UserAgent       = "76feed-bot/1.0 (+github.com/pfrederiksen/fo76-feeds)"
	Timeout         = 30 * time.Second
	Retries         = 3
	Concurrency     = 3
	InitialInterval = 500 * time.Millisecond

	// Pages are a few hundred KB at most.
	maxBodyBytes = 8 << 20
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Retryable reports whether the status is worth asking again for.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Scraper fetches pages and returns their body text.
type Scraper struct {
	client          *http.Client
	userAgent       string
	retries         int
	concurrency     int
	initialInterval time.Duration
	metrics         *logger.Metrics
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default client. Its Timeout is left alone.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(s *Scraper) { s.retries = n }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithConcurrency caps the number of pages FetchAll fetches at once.
func WithConcurrency(n int) Option {
	return func(s *Scraper) { s.concurrency = n }
}

// WithInitialInterval sets the first backoff delay.
func WithInitialInterval(d time.Duration) Option {
	return func(s *Scraper) { s.initialInterval = d }
}

// WithMetrics records fetch timings into m instead of the package default.
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a Scraper with the default timeout, retries and User-Agent.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent:       UserAgent,
		retries:         Retries,
		concurrency:     Concurrency,
		initialInterval: InitialInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	return s
}

// FetchText downloads url and returns the text of its body element.
func (s *Scraper) FetchText(ctx context.Context, pageURL string) (string, error) {
	var text string

	op := func() error {
		t, err := s.fetchOnce(ctx, pageURL)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && !se.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		text = t
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	retries := s.retries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)

	notify := func(err error, wait time.Duration) {
		logger.Warn("fetch failed, retrying", logger.Fields{
			"url":   pageURL,
			"wait":  wait.String(),
			"error": err.Error(),
		})
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	return text, nil
}

func (s *Scraper) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	return BodyText(io.LimitReader(resp.Body, maxBodyBytes))
}

// BodyText parses an HTML document and returns the text of its body with
// script, style and noscript content removed.
func BodyText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	return doc.Find("body").Text(), nil
}

// Result is the outcome of one page fetch.
type Result struct {
	Text    string
	Err     error
	Elapsed time.Duration
}

// FetchAll fetches every url concurrently and returns one Result per url.
// A failed page is reported in its Result and never cancels the others.
func (s *Scraper) FetchAll(ctx context.Context, urls []string) map[string]Result {
	results := make(map[string]Result, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, u := range urls {
		u := u
		g.Go(func() error {
			start := time.Now()
			text, err := s.FetchText(gctx, u)
			elapsed := time.Since(start)

			s.recordTiming(metricName(u), elapsed)
			if err != nil {
				logger.Error("fetch failed", logger.Fields{"url": u}, err)
			} else {
				logger.Debug("fetched page", logger.Fields{
					"url":     u,
					"bytes":   len(text),
					"elapsed": elapsed.String(),
				})
			}

			mu.Lock()
			results[u] = Result{Text: text, Err: err, Elapsed: elapsed}
			mu.Unlock()
			return nil
		})
	}

	// Workers never return an error; failures live in each Result.
	_ = g.Wait()
	return results
}

func (s *Scraper) recordTiming(name string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordTiming(name, d)
		return
	}
	logger.RecordTiming(name, d)
}

func metricName(pageURL string) string {
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		return "fetch." + u.Host
	}
	return "fetch." + pageURL
}
