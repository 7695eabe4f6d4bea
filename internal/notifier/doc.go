// Package notifier announces newly listed Fallout 76 calendar events.
//
// Only events that were not in the previous events.json are announced. The
// dry-run notifier prints the messages; the Twitter notifier posts them with
// OAuth1 credentials taken from the environment.
package notifier
