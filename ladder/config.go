// Package ladder enforces the legality of a character's progression ladder:
// elements combine into powers, powers into a law, and a law plus a title
// marks ascension.
//
// The ladder is stateless. Every pass re-derives the collapsed shape from the
// entry counts alone, so normalizing twice is the same as normalizing once.
package ladder

import (
	"fmt"

	"github.com/reoring/statecanon"
)

// Config names the caps of the ladder.
type Config struct {
	// ElementCap bounds the elements kept while collecting.
	ElementCap int `yaml:"element_cap" env:"ELEMENT_CAP"`
	// PowerCap is the power count at which elements are lost.
	PowerCap int `yaml:"power_cap" env:"POWER_CAP"`
	// LawCap bounds the laws kept before a title is set.
	LawCap int `yaml:"law_cap" env:"LAW_CAP"`
	// TitleLiftsLawCap removes the law cap once a title is present.
	TitleLiftsLawCap bool `yaml:"title_lifts_law_cap" env:"TITLE_LIFTS_LAW_CAP"`
}

var (
	// Standard keeps two powers before the law.
	Standard = Config{ElementCap: 3, PowerCap: 2, LawCap: 1, TitleLiftsLawCap: true}
	// Compact crystallizes a single power.
	Compact = Config{ElementCap: 3, PowerCap: 1, LawCap: 1, TitleLiftsLawCap: true}
)

// Preset returns a named configuration ("standard" or "compact").
func Preset(name string) (Config, bool) {
	switch name {
	case "", "standard":
		return Standard, true
	case "compact":
		return Compact, true
	}
	return Config{}, false
}

// Validate rejects caps that cannot describe a ladder.
func (c Config) Validate() error {
	var iss statecanon.Issues
	check := func(field string, v int) {
		if v < 1 {
			iss = statecanon.AppendIssues(iss, statecanon.NewIssue("/"+field, statecanon.CodeInvalidConfig,
				map[string]any{"reason": fmt.Sprintf("%s must be at least 1, got %d", field, v)}))
		}
	}
	check("element_cap", c.ElementCap)
	check("power_cap", c.PowerCap)
	check("law_cap", c.LawCap)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// lawLimit is the number of laws kept for a ladder with the given title;
// -1 means unbounded.
func (c Config) lawLimit(title string) int {
	if title != "" && c.TitleLiftsLawCap {
		return -1
	}
	return c.LawCap
}
