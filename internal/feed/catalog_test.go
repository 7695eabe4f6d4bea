package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	feeds := Catalog(DefaultSources())

	names := make([]string, 0, len(feeds))
	for _, f := range feeds {
		names = append(names, f.Name)
		assert.NotNil(t, f.Build, f.Name)
		assert.Equal(t, f.Name+".json", f.File)
	}
	assert.Equal(t, []string{"score", "dailyops", "axolotl", "events", "nukecodes", "minerva", "recipes"}, names)

	assert.Equal(t, []string{NukaKnightsURL, NukaCryptURL, MinervaURL}, SourceURLs(feeds))
}

func TestCatalog_DocumentShape(t *testing.T) {
	at := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	text := loadFixture(t, "nukaknights.txt")

	tests := []struct {
		feed     string
		wantKeys []string
		items    int
	}{
		{"score", []string{"version", "fetchedAt", "source", "daily", "weekly"}, 4},
		{"dailyops", []string{"version", "fetchedAt", "source", "dailyOps"}, 1},
		{"axolotl", []string{"version", "fetchedAt", "source", "axolotlOfTheMonth"}, 1},
		{"events", []string{"version", "fetchedAt", "source", "events"}, 2},
		{"nukecodes", []string{"version", "fetchedAt", "source", "alpha", "bravo", "charlie", "resetsIn"}, 0},
		{"minerva", []string{"version", "fetchedAt", "source", "location", "starts", "ends", "inventory", "rawSummary"}, 0},
		{"recipes", []string{"version", "updatedAt", "recipes"}, 0},
	}

	byName := make(map[string]Feed)
	for _, f := range Catalog(DefaultSources()) {
		byName[f.Name] = f
	}

	for _, tt := range tests {
		t.Run(tt.feed, func(t *testing.T) {
			doc := byName[tt.feed].Build(text, at)
			assert.Equal(t, tt.items, doc.Items())

			data, err := json.Marshal(doc)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(data, &fields))
			for _, k := range tt.wantKeys {
				assert.Contains(t, fields, k)
			}
			assert.NotContains(t, fields, "stale")
			if _, ok := fields["fetchedAt"]; ok {
				assert.Equal(t, "2026-10-17T12:00:00Z", fields["fetchedAt"])
			}
		})
	}
}
