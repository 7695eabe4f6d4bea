// Package config holds the run settings for fo76-feeds: where feeds are written,
// how pages are fetched, and which optional stages (history, notifications)
// are enabled. Values come from defaults, an optional fo76-feeds.yaml, and
// FO76_FEEDS_* environment variables, in increasing order of precedence.
package config
