package state

import (
	"context"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/entity"
	"github.com/reoring/statecanon/ladder"
	"github.com/reoring/statecanon/record"
)

// Partner is a fated companion. Each partner owns an independent ladder.
type Partner struct {
	Present     bool                         `json:"是否在场"`
	Race        string                       `json:"种族"`
	Identity    []string                     `json:"身份"`
	Profession  []string                     `json:"职业"`
	Tier        string                       `json:"生命层级"`
	Personality string                       `json:"性格"`
	Likes       string                       `json:"喜爱"`
	Appearance  string                       `json:"外貌"`
	Outfit      string                       `json:"着装"`
	Level       float64                      `json:"等级"`
	Attributes  entity.Attributes            `json:"属性"`
	Equipment   record.Map[entity.Equipment] `json:"装备"`
	Skills      record.Map[entity.Skill]     `json:"技能"`
	Ladder      ladder.Ascension             `json:"登神长阶"`
	Bound       bool                         `json:"是否缔结契约"`
	Affection   float64                      `json:"好感度"`
	InnerVoice  string                       `json:"心里话"`
	Backstory   string                       `json:"背景故事"`
}

// Fate is the fate system: spendable fate points and the partner roster.
type Fate struct {
	Points   int64               `json:"命运点数"`
	Partners record.Map[Partner] `json:"命定之人"`
}

func readPartner(s statecanon.Scope) Partner {
	return Partner{
		Present:     s.Bool(KeyPresent, false),
		Race:        s.String(KeyRace, ""),
		Identity:    s.Strings(KeyIdentity),
		Profession:  s.Strings(KeyProfession),
		Tier:        s.String(KeyTier, ""),
		Personality: s.String(KeyPersonality, ""),
		Likes:       s.String(KeyLikes, ""),
		Appearance:  s.String(KeyAppearance, ""),
		Outfit:      s.String(KeyOutfit, ""),
		Level:       s.Clamped(KeyLevel, MinLevel, MinLevel, MaxLevel),
		Attributes:  entity.ReadAttributes(s.Object(KeyAttributes)),
		Equipment:   collectObjects(s, KeyEquipment, entity.ReadEquipment),
		Skills:      collectObjects(s, KeySkills, entity.ReadSkill),
		Ladder:      ladder.Read(s.Object(KeyLadder)),
		Bound:       s.Bool(KeyBound, false),
		Affection:   s.Clamped(KeyAffection, 0, MinAffection, MaxAffection),
		InnerVoice:  s.String(KeyInnerVoice, ""),
		Backstory:   s.String(KeyBackstory, ""),
	}
}

func readFate(s statecanon.Scope) Fate {
	return Fate{
		Points:   s.Floored(KeyFatePoints, 0, 0),
		Partners: collectObjects(s, KeyPartners, readPartner),
	}
}

func normalizeFate(ctx context.Context, pointer string, cfg ladder.Config, f Fate) Fate {
	base := statecanon.JoinPointer(pointer, KeyPartners)
	out := record.New[Partner](f.Partners.Len())
	for name, p := range f.Partners.All() {
		at := statecanon.JoinPointer(statecanon.JoinPointer(base, name), KeyLadder)
		p.Ladder = cfg.Apply(ctx, at, p.Ladder)
		out.Set(name, p)
	}
	f.Partners = out
	return f
}
