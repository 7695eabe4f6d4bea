// Package storage reads and writes the published feed files.
//
// Every feed lives in one JSON file in the output directory (score.json,
// dailyops.json, ...). Files are written through a temporary file and a rename
// so readers never see a half-written document. When a source page cannot be
// fetched, MarkStale flags the previous document instead of replacing it.
package storage
