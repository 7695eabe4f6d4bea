// Package extract turns flattened page text into structured values.
//
// The package operates on the whitespace-normalized text content of a page,
// never on its markup. It locates named sections whose headers drift between
// renders, then pulls title/score pairs, windowed label fields, event triplets
// and inline key/value codes out of them. Every function is pure and total:
// a missing section yields an empty result, not an error. The only error is
// ErrEmptyMarkerSet, which signals a caller bug.
package extract
