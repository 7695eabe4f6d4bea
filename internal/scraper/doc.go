// Package scraper fetches the community status pages and flattens them to text.
//
// Each page is requested with the configured User-Agent and retried with
// exponential backoff on transport errors, 429 and 5xx responses. The HTML body
// is parsed with goquery, script and style content is dropped, and the visible
// body text is returned unchanged for the extractors to segment. FetchAll
// fetches several pages concurrently and reports each page's outcome on its
// own, so one unreachable site never hides the others.
package scraper
