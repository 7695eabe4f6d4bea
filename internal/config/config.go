package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/pfrederiksen/fo76-feeds/internal/feed"
	"github.com/pfrederiksen/fo76-feeds/internal/logger"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths, the config file name and the env prefix.
	AppName = "fo76-feeds"

	// DefaultOutDir is where the JSON feeds are published.
	DefaultOutDir = "public"

	// DefaultTimeout bounds each page request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the bot to the source sites.
	DefaultUserAgent = "76feed-bot/1.0 (+github.com/pfrederiksen/fo76-feeds)"

	// DefaultRetries is how often a failed page request is retried.
	DefaultRetries = 3

	// DefaultConcurrency is how many pages are fetched at once. There are three.
	DefaultConcurrency = 3

	DefaultLogLevel = "info"
	DefaultNotify   = NotifyNone
	DefaultFormat   = FormatText
)

// Notification modes.
const (
	NotifyNone     = "none"
	NotifyDryRun   = "dry-run"
	NotifyTwitter  = "twitter"
	NotifyTelegram = "telegram"
)

// Summary formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for a run.
type Config struct {
	// OutDir receives the published feed files.
	OutDir string `mapstructure:"out_dir"`

	// DataDir holds private state such as the history database.
	DataDir string `mapstructure:"data_dir"`

	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Retries     int           `mapstructure:"retries"`
	Concurrency int           `mapstructure:"concurrency"`

	LogLevel string `mapstructure:"log_level"`

	// Format selects the run summary printed to stdout.
	Format string `mapstructure:"format"`

	// Notify selects how newly listed events are announced.
	Notify string `mapstructure:"notify"`

	// History records every feed document in a SQLite database under DataDir.
	History bool `mapstructure:"history"`

	Sources feed.Sources `mapstructure:"sources"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		OutDir:      DefaultOutDir,
		DataDir:     XDGDataDir(),
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Retries:     DefaultRetries,
		Concurrency: DefaultConcurrency,
		LogLevel:    DefaultLogLevel,
		Format:      DefaultFormat,
		Notify:      DefaultNotify,
		Sources:     feed.DefaultSources(),
	}
}

// XDGDataDir returns the default data directory, $XDG_DATA_HOME/fo76-feeds.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the directory searched for fo76-feeds.yaml after ".".
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first problem found, as one of the sentinel errors.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return ErrEmptyOutDir
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Retries < 0 {
		return ErrInvalidRetries
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}

	switch c.Notify {
	case NotifyNone, NotifyDryRun, NotifyTwitter, NotifyTelegram:
	default:
		return ErrInvalidNotify
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	for _, raw := range []string{c.Sources.NukaKnights, c.Sources.Minerva, c.Sources.NukaCrypt} {
		if err := validateURL(raw); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, raw)
	}
	return nil
}
