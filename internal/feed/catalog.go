package feed

import "time"

// Default source pages.
const (
	NukaKnightsURL = "https://nukaknights.com/en/"
	MinervaURL     = "https://whereisminerva.nukaknights.com/"
	NukaCryptURL   = "https://dev.nukacrypt.com/FO76/"
)

// Sources names the page each group of feeds is read from.
type Sources struct {
	NukaKnights string `mapstructure:"nukaknights"`
	Minerva     string `mapstructure:"minerva"`
	NukaCrypt   string `mapstructure:"nukacrypt"`
}

// DefaultSources returns the public pages.
func DefaultSources() Sources {
	return Sources{
		NukaKnights: NukaKnightsURL,
		Minerva:     MinervaURL,
		NukaCrypt:   NukaCryptURL,
	}
}

// Feed describes one output file and how to build it from its page text.
type Feed struct {
	Name   string
	File   string
	Source string // empty when the feed needs no page
	Build  func(text string, fetchedAt time.Time) Doc
}

// Catalog returns every feed, in output order.
func Catalog(src Sources) []Feed {
	return []Feed{
		{
			Name:   "score",
			File:   "score.json",
			Source: src.NukaKnights,
			Build: func(text string, at time.Time) Doc {
				return &ScoreDoc{Envelope: NewEnvelope(src.NukaKnights, at), Score: BuildScore(text)}
			},
		},
		{
			Name:   "dailyops",
			File:   "dailyops.json",
			Source: src.NukaKnights,
			Build: func(text string, at time.Time) Doc {
				return &DailyOpsDoc{Envelope: NewEnvelope(src.NukaKnights, at), DailyOps: BuildDailyOps(text)}
			},
		},
		{
			Name:   "axolotl",
			File:   "axolotl.json",
			Source: src.NukaKnights,
			Build: func(text string, at time.Time) Doc {
				return &AxolotlDoc{Envelope: NewEnvelope(src.NukaKnights, at), Axolotl: BuildAxolotl(text)}
			},
		},
		{
			Name:   "events",
			File:   "events.json",
			Source: src.NukaKnights,
			Build: func(text string, at time.Time) Doc {
				return &EventsDoc{Envelope: NewEnvelope(src.NukaKnights, at), Events: BuildEvents(text)}
			},
		},
		{
			Name:   "nukecodes",
			File:   "nukecodes.json",
			Source: src.NukaCrypt,
			Build: func(text string, at time.Time) Doc {
				return &NukeCodesDoc{Envelope: NewEnvelope(src.NukaCrypt, at), NukeCodes: BuildNukeCodes(text)}
			},
		},
		{
			Name:   "minerva",
			File:   "minerva.json",
			Source: src.Minerva,
			Build: func(text string, at time.Time) Doc {
				return &MinervaDoc{Envelope: NewEnvelope(src.Minerva, at), Minerva: BuildMinerva(text)}
			},
		},
		{
			Name: "recipes",
			File: "recipes.json",
			Build: func(_ string, at time.Time) Doc {
				return &RecipesDoc{
					Version:   SchemaVersion,
					UpdatedAt: at.UTC().Format(time.RFC3339),
					Recipes:   make([]string, 0),
				}
			},
		},
	}
}

// SourceURLs returns the distinct pages the catalog reads, in first-use order.
func SourceURLs(feeds []Feed) []string {
	seen := make(map[string]bool)
	urls := make([]string, 0)
	for _, f := range feeds {
		if f.Source == "" || seen[f.Source] {
			continue
		}
		seen[f.Source] = true
		urls = append(urls, f.Source)
	}
	return urls
}
