package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/feed"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, DefaultOutDir)
	}
	if !strings.HasSuffix(cfg.DataDir, AppName) {
		t.Errorf("DataDir = %q, want suffix %q", cfg.DataDir, AppName)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Concurrency != DefaultConcurrency || cfg.Retries != DefaultRetries {
		t.Errorf("Concurrency/Retries = %d/%d", cfg.Concurrency, cfg.Retries)
	}
	if cfg.History {
		t.Error("History should be off by default")
	}
	if cfg.Sources != feed.DefaultSources() {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty out dir", func(c *Config) { c.OutDir = "" }, ErrEmptyOutDir},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative retries", func(c *Config) { c.Retries = -1 }, ErrInvalidRetries},
		{"zero retries allowed", func(c *Config) { c.Retries = 0 }, nil},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"upper-case log level", func(c *Config) { c.LogLevel = "DEBUG" }, nil},
		{"bad notify", func(c *Config) { c.Notify = "discord" }, ErrInvalidNotify},
		{"dry-run notify", func(c *Config) { c.Notify = NotifyDryRun }, nil},
		{"telegram notify", func(c *Config) { c.Notify = NotifyTelegram }, nil},
		{"bad format", func(c *Config) { c.Format = "yaml" }, ErrInvalidFormat},
		{"markdown format", func(c *Config) { c.Format = FormatMarkdown }, nil},
		{"relative source", func(c *Config) { c.Sources.Minerva = "/minerva" }, ErrInvalidSourceURL},
		{"ftp source", func(c *Config) { c.Sources.NukaCrypt = "ftp://nukacrypt.com/" }, ErrInvalidSourceURL},
		{"empty source", func(c *Config) { c.Sources.NukaKnights = "" }, ErrInvalidSourceURL},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fo76-feeds.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
out_dir: /srv/feeds
timeout: 10s
retries: 1
history: true
notify: dry-run
sources:
  minerva: https://minerva.example.com/
`)

	cfg, err := Load(NewViper(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutDir != "/srv/feeds" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Retries != 1 {
		t.Errorf("Retries = %d", cfg.Retries)
	}
	if !cfg.History {
		t.Error("History = false, want true")
	}
	if cfg.Notify != NotifyDryRun {
		t.Errorf("Notify = %q", cfg.Notify)
	}
	if cfg.Sources.Minerva != "https://minerva.example.com/" {
		t.Errorf("Sources.Minerva = %q", cfg.Sources.Minerva)
	}
	if cfg.Sources.NukaKnights != feed.NukaKnightsURL {
		t.Errorf("unset source should keep its default, got %q", cfg.Sources.NukaKnights)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want default", cfg.Concurrency)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "out_dir: from-file\n")
	t.Setenv("FO76_FEEDS_OUT_DIR", "from-env")
	t.Setenv("FO76_FEEDS_CONCURRENCY", "1")
	t.Setenv("FO76_FEEDS_SOURCES_NUKACRYPT", "https://codes.example.com/")

	cfg, err := Load(NewViper(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OutDir != "from-env" {
		t.Errorf("OutDir = %q, want from-env", cfg.OutDir)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
	if cfg.Sources.NukaCrypt != "https://codes.example.com/" {
		t.Errorf("Sources.NukaCrypt = %q", cfg.Sources.NukaCrypt)
	}
}

func TestLoad_NoFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(NewViper(""))
	if err != nil {
		t.Fatalf("Load() without a config file error = %v", err)
	}
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want default", cfg.OutDir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(filepath.Join(t.TempDir(), "nope.yaml")))
	if err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "timeout: -5s\n")

	_, err := Load(NewViper(path))
	if !errors.Is(err, ErrInvalidTimeout) {
		t.Errorf("Load() error = %v, want ErrInvalidTimeout", err)
	}
}
