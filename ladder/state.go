package ladder

import (
	"fmt"

	"github.com/reoring/statecanon"
)

// State names the stage a ladder is in.
type State int

const (
	Dormant State = iota
	Collecting
	Empowered
	// AscendedUntitled holds a law but no title yet; the law cap still applies.
	AscendedUntitled
	Ascended
)

var stateNames = [...]string{"dormant", "collecting", "empowered", "ascended-untitled", "ascended"}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Classify reports the stage of a, using the same precedence as Collapse.
func (c Config) Classify(a Ascension) State {
	switch {
	case !a.Activated:
		return Dormant
	case a.Laws.Len() > 0 && a.Title != "":
		return Ascended
	case a.Laws.Len() > 0:
		return AscendedUntitled
	case a.Powers.Len() >= c.PowerCap:
		return Empowered
	default:
		return Collecting
	}
}

// Check verifies that a is already collapsed under c. at locates the ladder
// in the document for the returned issues.
func (c Config) Check(at statecanon.PathRef, a Ascension) error {
	var iss statecanon.Issues
	fail := func(key, reason string) {
		iss = statecanon.AppendIssues(iss, at.Field(key).Issue(statecanon.CodeAggregateViolation, map[string]any{"reason": reason}))
	}
	switch c.Classify(a) {
	case Dormant:
		return nil
	case Ascended, AscendedUntitled:
		if a.Elements.Len() > 0 {
			fail(KeyElements, "elements remain after a law formed")
		}
		if a.Powers.Len() > 0 {
			fail(KeyPowers, "powers remain after a law formed")
		}
		if n := c.lawLimit(a.Title); n >= 0 && a.Laws.Len() > n {
			fail(KeyLaws, fmt.Sprintf("%d laws exceed the cap of %d", a.Laws.Len(), n))
		}
	case Empowered:
		if a.Elements.Len() > 0 {
			fail(KeyElements, "elements remain after powers reached the cap")
		}
		if a.Powers.Len() != c.PowerCap {
			fail(KeyPowers, fmt.Sprintf("%d powers exceed the cap of %d", a.Powers.Len(), c.PowerCap))
		}
	case Collecting:
		if a.Elements.Len() > c.ElementCap {
			fail(KeyElements, fmt.Sprintf("%d elements exceed the cap of %d", a.Elements.Len(), c.ElementCap))
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
