package feed

import (
	"time"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// SchemaVersion is written into every feed document.
const SchemaVersion = 1

// Envelope carries the metadata shared by every feed document.
type Envelope struct {
	Version   int    `json:"version"`
	FetchedAt string `json:"fetchedAt"`
	Source    string `json:"source,omitempty"`
	Stale     bool   `json:"stale,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewEnvelope stamps a document fetched from source at fetchedAt.
func NewEnvelope(source string, fetchedAt time.Time) Envelope {
	return Envelope{
		Version:   SchemaVersion,
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
		Source:    source,
	}
}

// Doc is a feed document ready to be written.
type Doc interface {
	// Items counts the records the document carries, for run summaries.
	Items() int
}

// ScoreDoc is score.json.
type ScoreDoc struct {
	Envelope
	Score
}

func (d *ScoreDoc) Items() int { return len(d.Daily) + len(d.Weekly) }

// DailyOpsDoc is dailyops.json.
type DailyOpsDoc struct {
	Envelope
	DailyOps *DailyOps `json:"dailyOps"`
}

func (d *DailyOpsDoc) Items() int {
	if d.DailyOps == nil {
		return 0
	}
	return 1
}

// AxolotlDoc is axolotl.json.
type AxolotlDoc struct {
	Envelope
	Axolotl *Axolotl `json:"axolotlOfTheMonth"`
}

func (d *AxolotlDoc) Items() int {
	if d.Axolotl == nil {
		return 0
	}
	return 1
}

// EventsDoc is events.json.
type EventsDoc struct {
	Envelope
	Events []extract.EventEntry `json:"events"`
}

func (d *EventsDoc) Items() int { return len(d.Events) }

// NukeCodesDoc is nukecodes.json.
type NukeCodesDoc struct {
	Envelope
	NukeCodes
}

func (d *NukeCodesDoc) Items() int {
	n := 0
	for _, c := range []*string{d.Alpha, d.Bravo, d.Charlie} {
		if c != nil {
			n++
		}
	}
	return n
}

// MinervaDoc is minerva.json.
type MinervaDoc struct {
	Envelope
	Minerva
}

func (d *MinervaDoc) Items() int {
	if d.Location == nil {
		return 0
	}
	return 1
}

// RecipesDoc is recipes.json. Recipes have no source page yet; the file is
// published empty so consumers can rely on it existing.
type RecipesDoc struct {
	Version   int      `json:"version"`
	UpdatedAt string   `json:"updatedAt"`
	Recipes   []string `json:"recipes"`
}

func (d *RecipesDoc) Items() int { return len(d.Recipes) }
