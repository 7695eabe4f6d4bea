package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
var (
	// ErrEmptyOutDir is returned when no output directory is configured.
	ErrEmptyOutDir = errors.New("invalid out_dir: must not be empty")

	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid retries: must be non-negative")

	// ErrInvalidConcurrency is returned when fewer than one fetch may run at once.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidLogLevel is returned for a level other than debug, info, warn or error.
	ErrInvalidLogLevel = errors.New("invalid log_level: must be debug, info, warn or error")

	// ErrInvalidNotify is returned for an unknown notification mode.
	ErrInvalidNotify = errors.New("invalid notify: must be none, dry-run, twitter or telegram")

	// ErrInvalidFormat is returned for an unknown summary format.
	ErrInvalidFormat = errors.New("invalid format: must be text, json or markdown")

	// ErrInvalidSourceURL is returned when a source page URL is not absolute http(s).
	ErrInvalidSourceURL = errors.New("invalid source url: must be an absolute http or https URL")
)
