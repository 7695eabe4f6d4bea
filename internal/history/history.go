package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file created inside the data directory.
const FileName = "history.db"

// DB is a feed run log backed by SQLite.
type DB struct {
	db   *sql.DB
	path string
}

// Run is one feed document produced by one run.
type Run struct {
	ID        int64
	Feed      string
	FetchedAt time.Time
	Source    string
	Stale     bool
	// Payload is the document as written, or the fetch error for stale runs.
	Payload string
}

// Open opens or creates the history database in dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// One writer; the run records sequentially anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &DB{db: db, path: path}
	if err := h.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history tables: %w", err)
	}
	return h, nil
}

// Path returns the database file path.
func (h *DB) Path() string {
	return h.path
}

// Close closes the database connection.
func (h *DB) Close() error {
	return h.db.Close()
}

func (h *DB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS feed_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		feed TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		stale INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_feed_runs_feed ON feed_runs(feed, id);
	`

	_, err := h.db.ExecContext(ctx, schema)
	return err
}

// Record appends a run. FetchedAt defaults to now.
func (h *DB) Record(ctx context.Context, run Run) error {
	if run.Feed == "" {
		return errors.New("recording run: feed name is empty")
	}
	if run.FetchedAt.IsZero() {
		run.FetchedAt = time.Now()
	}

	stale := 0
	if run.Stale {
		stale = 1
	}

	query := `
	INSERT INTO feed_runs (feed, fetched_at, source, stale, payload)
	VALUES (?, ?, ?, ?, ?)
	`
	_, err := h.db.ExecContext(ctx, query,
		run.Feed,
		run.FetchedAt.UTC().Format(time.RFC3339Nano),
		run.Source,
		stale,
		run.Payload,
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", run.Feed, err)
	}
	return nil
}

// Latest returns the most recent run of feed, or nil if it has none.
func (h *DB) Latest(ctx context.Context, feed string) (*Run, error) {
	query := `
	SELECT id, feed, fetched_at, source, stale, payload
	FROM feed_runs
	WHERE feed = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var (
		run       Run
		fetchedAt string
		stale     int
	)
	err := h.db.QueryRowContext(ctx, query, feed).Scan(
		&run.ID, &run.Feed, &fetchedAt, &run.Source, &stale, &run.Payload,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest run for %s: %w", feed, err)
	}

	run.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at %q: %w", fetchedAt, err)
	}
	run.Stale = stale != 0
	return &run, nil
}

// Count returns how many runs of feed are recorded.
func (h *DB) Count(ctx context.Context, feed string) (int, error) {
	var n int
	err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_runs WHERE feed = ?`, feed).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting runs for %s: %w", feed, err)
	}
	return n, nil
}
