package state

import (
	"fmt"

	"github.com/reoring/statecanon"
)

// Check verifies the invariants Normalize establishes. A normalized document
// always passes; a failure on Normalize output is a bug.
func (s *Schema) Check(d Document) error {
	var iss statecanon.Issues
	root := statecanon.NewRef(nil).Root()
	player := root.Field(KeyPlayer)
	fail := func(at statecanon.PathRef, format string, args ...any) {
		iss = statecanon.AppendIssues(iss, at.Issue(statecanon.CodeAggregateViolation,
			map[string]any{"reason": fmt.Sprintf(format, args...)}))
	}

	p := d.Player
	if p.Level < MinLevel || p.Level > MaxLevel {
		fail(player.Field(KeyLevel), "level %v outside [%d, %d]", p.Level, MinLevel, MaxLevel)
	}
	if p.Level >= MaxLevel && !p.NextLevel.IsMax() {
		fail(player.Field(KeyNextLevel), "level %v is at the cap but still requires experience", p.Level)
	}
	for _, r := range []struct {
		curKey        string
		cur, capacity float64
	}{
		{KeyHP, p.HP, p.MaxHP},
		{KeyMP, p.MP, p.MaxMP},
		{KeyStamina, p.Stamina, p.MaxStamina},
	} {
		if r.capacity < 0 || r.cur < 0 || r.cur > r.capacity {
			fail(player.Field(r.curKey), "%v outside [0, %v]", r.cur, r.capacity)
		}
	}
	for name, it := range p.Inventory.All() {
		if it.Quantity <= 0 {
			fail(player.Field(KeyInventory).Field(name), "quantity %v is not positive", it.Quantity)
		}
	}
	if err := s.ladder.Check(player.Field(KeyLadder), p.Ladder); err != nil {
		iss = appendErr(iss, err)
	}

	partners := root.Field(KeyFate).Field(KeyPartners)
	for name, pt := range d.Fate.Partners.All() {
		at := partners.Field(name)
		if pt.Affection < MinAffection || pt.Affection > MaxAffection {
			fail(at.Field(KeyAffection), "affection %v outside [%d, %d]", pt.Affection, MinAffection, MaxAffection)
		}
		if err := s.ladder.Check(at.Field(KeyLadder), pt.Ladder); err != nil {
			iss = appendErr(iss, err)
		}
	}
	if d.Fate.Points < 0 {
		fail(root.Field(KeyFate).Field(KeyFatePoints), "fate points %d are negative", d.Fate.Points)
	}

	if len(iss) > 0 {
		return iss
	}
	return nil
}

func appendErr(iss statecanon.Issues, err error) statecanon.Issues {
	if more, ok := statecanon.AsIssues(err); ok {
		return statecanon.AppendIssues(iss, more...)
	}
	return statecanon.AppendIssues(iss, statecanon.Issue{Path: "/", Code: statecanon.CodeAggregateViolation, Message: err.Error(), Cause: err, Offset: -1})
}
