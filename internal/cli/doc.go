// Package cli implements the fo76-feeds command.
//
// The root command loads the configuration, fetches the three community pages,
// rebuilds every feed file in the output directory, and prints a run summary
// as text, JSON or Markdown. Feeds whose page could not be fetched keep their
// previous content and are flagged stale. The exit status tells a scheduler
// whether the run was clean (0), partial (3) or failed (1).
package cli
