package entity

import (
	"slices"

	"github.com/reoring/statecanon"
	js "github.com/reoring/statecanon/jsonschema"
)

// Status effect kinds.
const (
	Buff    = "增益"
	Debuff  = "减益"
	Special = "特殊"
)

// StatusKinds lists the accepted status effect kinds.
var StatusKinds = []string{Buff, Debuff, Special}

// StatusEffect is a timed buff, debuff or special condition.
type StatusEffect struct {
	Kind      string  `json:"类型"`
	Effect    string  `json:"效果"`
	Stacks    float64 `json:"层数"`
	Remaining string  `json:"剩余时间"`
	Source    string  `json:"来源"`
}

// ReadStatusEffect reads one status effect. Unknown kinds fall back to Buff.
func ReadStatusEffect(s statecanon.Scope) StatusEffect {
	kind := s.String(KeyKind, Buff)
	if !slices.Contains(StatusKinds, kind) {
		s.Mark(KeyKind, statecanon.PresenceDefaultApplied)
		kind = Buff
	}
	return StatusEffect{
		Kind:      kind,
		Effect:    s.String(KeyEffect, ""),
		Stacks:    s.Number(KeyStacks, 1),
		Remaining: s.String(KeyRemaining, ""),
		Source:    s.String(KeySource, ""),
	}
}

// StatusEffectSchema parses a single status effect.
func StatusEffectSchema() statecanon.Schema[StatusEffect] {
	return statecanon.ObjectFunc(ReadStatusEffect, StatusEffectJSONSchema)
}

func StatusEffectJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyKind, Schema: js.Enum(Buff, StatusKinds...)},
		js.Field{Name: KeyEffect, Schema: js.String("")},
		js.Field{Name: KeyStacks, Schema: js.Number(1, nil, nil)},
		js.Field{Name: KeyRemaining, Schema: js.String("")},
		js.Field{Name: KeySource, Schema: js.String("")},
	)
}
