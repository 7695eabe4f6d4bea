package feed

import (
	"strings"

	"github.com/pfrederiksen/fo76-feeds/internal/extract"
)

// Mode is the Daily Ops game mode.
type Mode string

const (
	ModeDecryption Mode = "decryption"
	ModeUplink     Mode = "uplink"
)

// Modes lists every known Daily Ops mode.
var Modes = []Mode{ModeDecryption, ModeUplink}

// Faction is the Daily Ops enemy faction.
type Faction string

const (
	FactionMoleMiners   Faction = "mole miners"
	FactionSuperMutants Faction = "super mutants"
	FactionRobots       Faction = "robots"
	FactionBloodEagles  Faction = "blood eagles"
	FactionCultists     Faction = "cultists"
	FactionFeralGhouls  Faction = "feral ghouls"
)

// Factions lists every known Daily Ops enemy faction.
var Factions = []Faction{
	FactionMoleMiners,
	FactionSuperMutants,
	FactionRobots,
	FactionBloodEagles,
	FactionCultists,
	FactionFeralGhouls,
}

// ParseMode matches a line against the known modes, ignoring case.
func ParseMode(line string) (Mode, bool) {
	for _, m := range Modes {
		if strings.EqualFold(line, string(m)) {
			return m, true
		}
	}
	return "", false
}

// ParseFaction matches a line against the known factions, ignoring case.
func ParseFaction(line string) (Faction, bool) {
	for _, f := range Factions {
		if strings.EqualFold(line, string(f)) {
			return f, true
		}
	}
	return "", false
}

// Score holds the daily and weekly challenge lists.
type Score struct {
	Daily  []extract.ChallengeEntry `json:"daily"`
	Weekly []extract.ChallengeEntry `json:"weekly"`
}

// DailyOps is the current Daily Ops rotation. Unresolved fields are nil.
type DailyOps struct {
	Since     *string  `json:"since"`
	Timezone  *string  `json:"timezone"`
	Mode      *Mode    `json:"mode"`
	Mutations []string `json:"mutations"`
	Location  *string  `json:"location"`
	Enemy     *Faction `json:"enemy"`
}

// Axolotl is the Axolotl of the month.
type Axolotl struct {
	Month       *string  `json:"month"`
	Name        *string  `json:"name"`
	Start       *string  `json:"start"`
	End         *string  `json:"end"`
	Timezone    *string  `json:"timezone"`
	Description []string `json:"description"`
}

// NukeCodes are the weekly launch codes.
type NukeCodes struct {
	Alpha    *string `json:"alpha"`
	Bravo    *string `json:"bravo"`
	Charlie  *string `json:"charlie"`
	ResetsIn *string `json:"resetsIn"`
}

// HasCodes reports whether any silo code is known.
func (c NukeCodes) HasCodes() bool {
	return c.Alpha != nil || c.Bravo != nil || c.Charlie != nil
}

// Minerva is the travelling vendor. Only the location is parsed today; the
// other fields are kept so consumers see a stable shape.
type Minerva struct {
	Location   *string  `json:"location"`
	Starts     *string  `json:"starts"`
	Ends       *string  `json:"ends"`
	Inventory  []string `json:"inventory"`
	RawSummary string   `json:"rawSummary"`
}

func strPtr(s string) *string {
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
