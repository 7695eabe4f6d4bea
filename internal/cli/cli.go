package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fo76-feeds/internal/config"
	"github.com/pfrederiksen/fo76-feeds/internal/feed"
	"github.com/pfrederiksen/fo76-feeds/internal/history"
	"github.com/pfrederiksen/fo76-feeds/internal/logger"
	"github.com/pfrederiksen/fo76-feeds/internal/notifier"
	"github.com/pfrederiksen/fo76-feeds/internal/scraper"
	"github.com/pfrederiksen/fo76-feeds/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitPartial = 3
)

const (
	eventsFile    = "events.json"
	nukeCodesFile = "nukecodes.json"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// exitError carries a non-zero exit status out of RunE. err is nil when the
// summary already explains the outcome.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

type rootFlags struct {
	configFile string
	outDir     string
	dataDir    string
	format     string
	notify     string
	history    bool
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "fo76-feeds",
		Short: "Build Fallout 76 status feeds from community pages",
		Long: `Fetches the Nuka Knights, Minerva and NukaCrypt pages and rebuilds the
JSON feeds (challenges, Daily Ops, Axolotl, events, nuke codes, Minerva).
Feeds whose page cannot be fetched keep their previous content and are marked stale.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configFile, "config", "", "config file (default: ./fo76-feeds.yaml or $XDG_CONFIG_HOME/fo76-feeds/fo76-feeds.yaml)")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", config.DefaultOutDir, "Directory the feed files are written to")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", config.XDGDataDir(), "Directory for the history database")
	cmd.Flags().StringVar(&flags.format, "format", config.DefaultFormat, "Summary format: text, json or markdown")
	cmd.Flags().StringVar(&flags.notify, "notify", config.DefaultNotify, "Announce new events: none, dry-run, twitter or telegram")
	cmd.Flags().BoolVar(&flags.history, "history", false, "Record every feed document in the history database")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable debug logging and detailed output")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fo76-feeds %s\n", Version)
			return err
		},
	}
}

// loadConfig merges the config file, environment and explicitly set flags.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	v := config.NewViper(flags.configFile)

	bindings := map[string]string{
		"out_dir":  "out-dir",
		"data_dir": "data-dir",
		"format":   "format",
		"notify":   "notify",
		"history":  "history",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	return config.Load(v)
}

func runBuild(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("loading config: %w", err)}
	}

	level, _ := logger.ParseLevel(cfg.LogLevel) // validated by Load
	if flags.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	store, err := storage.New(cfg.OutDir)
	if err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("initializing storage: %w", err)}
	}

	pipeline := &Pipeline{
		Feeds: feed.Catalog(cfg.Sources),
		Fetcher: scraper.New(
			scraper.WithTimeout(cfg.Timeout),
			scraper.WithUserAgent(cfg.UserAgent),
			scraper.WithRetries(cfg.Retries),
			scraper.WithConcurrency(cfg.Concurrency),
		),
		Store: store,
	}

	if cfg.History {
		dataDir, err := storage.ExpandHome(cfg.DataDir)
		if err != nil {
			return &exitError{code: ExitError, err: err}
		}
		db, err := history.Open(dataDir)
		if err != nil {
			return &exitError{code: ExitError, err: fmt.Errorf("opening history: %w", err)}
		}
		defer db.Close() // nolint:errcheck
		pipeline.History = db
	}

	n, err := newNotifier(cfg.Notify, cmd.ErrOrStderr())
	if err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("initializing notifier: %w", err)}
	}
	pipeline.Notifier = n

	logger.Debug("starting build", logger.Fields{
		"out_dir": store.Dir(),
		"feeds":   len(pipeline.Feeds),
		"history": cfg.History,
		"notify":  cfg.Notify,
	})

	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return &exitError{code: ExitError, err: err}
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, cfg.Format, flags.verbose); err != nil {
		return &exitError{code: ExitError, err: fmt.Errorf("writing output: %w", err)}
	}

	if flags.verbose {
		logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}

	if code := result.ExitCode(); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// newNotifier returns nil for "none".
func newNotifier(mode string, out io.Writer) (notifier.Notifier, error) {
	switch mode {
	case config.NotifyDryRun:
		return notifier.NewDryRunNotifier(out), nil
	case config.NotifyTwitter:
		t, err := notifier.NewTwitterNotifier()
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.NotifyTelegram:
		t, err := notifier.NewTelegramNotifier()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, nil
	}
}

// Run executes the command with args and returns the exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
