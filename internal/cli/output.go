package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/pfrederiksen/fo76-feeds/internal/config"
	"github.com/pfrederiksen/fo76-feeds/internal/extract"
	"github.com/pfrederiksen/fo76-feeds/internal/feed"
)

// FeedSummary describes what happened to one feed file.
type FeedSummary struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Stale bool   `json:"stale"`
	Items int    `json:"items"`
	Error string `json:"error,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	RunAt           time.Time            `json:"run_at"`
	Feeds           []FeedSummary        `json:"feeds"`
	NewEvents       []extract.EventEntry `json:"new_events"`
	NukeCodeChanges []*feed.Change       `json:"nuke_code_changes,omitempty"`
	SourcesTotal    int                  `json:"sources_total"`
	SourcesFailed   int                  `json:"sources_failed"`
	NotifyError     string               `json:"notify_error,omitempty"`
}

// StaleCount returns how many feeds kept their previous content.
func (r *OutputResult) StaleCount() int {
	n := 0
	for _, f := range r.Feeds {
		if f.Stale {
			n++
		}
	}
	return n
}

// ExitCode maps the run outcome to the process exit status.
func (r *OutputResult) ExitCode() int {
	switch {
	case r.SourcesTotal > 0 && r.SourcesFailed == r.SourcesTotal:
		return ExitError
	case r.StaleCount() > 0:
		return ExitPartial
	default:
		return ExitSuccess
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format string, verbose bool) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, result)
	case config.FormatText:
		return writeText(w, result, verbose)
	case config.FormatMarkdown:
		return writeMarkdown(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	for _, f := range result.Feeds {
		status := "ok"
		if f.Stale {
			status = "STALE"
		}
		fmt.Fprintf(w, "%-10s %-16s %-5s %d items\n", f.Name, f.File, status, f.Items)
		if verbose && f.Error != "" {
			fmt.Fprintf(w, "           error: %s\n", f.Error)
		}
	}

	if len(result.NewEvents) == 0 {
		fmt.Fprintln(w, "\nNo new events found.")
	} else {
		fmt.Fprintf(w, "\nNew events (%d):\n", len(result.NewEvents))
		for _, evt := range result.NewEvents {
			fmt.Fprintf(w, "  NEW: %s\n", evt.Name)
			if verbose {
				fmt.Fprintf(w, "       Starts: %s\n", evt.Starts)
				fmt.Fprintf(w, "       Ends:   %s\n", evt.Ends)
			}
		}
	}

	for _, c := range result.NukeCodeChanges {
		fmt.Fprintf(w, "Nuke code %s rotated: %s -> %s\n", c.Field, displayCode(c.OldValue), c.NewValue)
	}

	if result.NotifyError != "" {
		fmt.Fprintf(w, "Notification failed: %s\n", result.NotifyError)
	}

	fmt.Fprintf(w, "\nTotal: %d feeds, %d stale, %d/%d sources failed\n",
		len(result.Feeds), result.StaleCount(), result.SourcesFailed, result.SourcesTotal)
	return nil
}

// writeMarkdown outputs results as a Markdown report
func writeMarkdown(w io.Writer, result *OutputResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Fallout 76 Feed Build")
	md.PlainText("")
	md.PlainTextf("Run at %s", result.RunAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	rows := make([][]string, 0, len(result.Feeds))
	for _, f := range result.Feeds {
		status := "✅ Fresh"
		if f.Stale {
			status = "⚠️ Stale"
		}
		rows = append(rows, []string{f.Name, "`" + f.File + "`", status, strconv.Itoa(f.Items)})
	}
	md.H2("Feeds")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Feed", "File", "Status", "Items"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case result.SourcesTotal > 0 && result.SourcesFailed == result.SourcesTotal:
		md.Cautionf("Every source failed (%d). All feeds kept their previous content.", result.SourcesFailed)
		md.PlainText("")
	case result.StaleCount() > 0:
		md.Warningf("%d feed(s) are stale.", result.StaleCount())
		md.PlainText("")
	}

	md.H2("New Events")
	md.PlainText("")
	if len(result.NewEvents) == 0 {
		md.PlainText("No new events found.")
	} else {
		items := make([]string, 0, len(result.NewEvents))
		for _, evt := range result.NewEvents {
			items = append(items, fmt.Sprintf("**%s** (%s to %s)", evt.Name, evt.Starts, evt.Ends))
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	if len(result.NukeCodeChanges) > 0 {
		md.H2("Nuke Code Rotation")
		md.PlainText("")
		rows := make([][]string, 0, len(result.NukeCodeChanges))
		for _, c := range result.NukeCodeChanges {
			rows = append(rows, []string{c.Field, displayCode(c.OldValue), c.NewValue})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Silo", "Previous", "Current"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

func displayCode(code string) string {
	if code == "" {
		return "(none)"
	}
	return code
}
