// Package feed assembles the typed Fallout 76 status feeds.
//
// Each feed is built from the flattened body text of one source page by
// composing the extract primitives: sections are located with named marker
// sets, then parsed into challenge scores, Daily Ops, the Axolotl of the month,
// the event calendar, nuke codes and the Minerva location. The package also
// wraps feeds in their versioned envelope and compares a run with the previous
// one (new calendar events, rotated nuke codes).
package feed
