// Package history keeps a SQLite log of every feed document a run produced.
//
// The published JSON files only hold the latest state. History adds one row per
// feed per run so rotations (nuke codes, Minerva visits, Daily Ops) can be
// looked up later. It is off unless enabled in the configuration.
package history
