package state

import (
	"context"
	"math"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/entity"
	"github.com/reoring/statecanon/ladder"
	"github.com/reoring/statecanon/record"
)

// Requirement is the experience needed for the next level, or the terminal
// "MAX" marker once the level cap is reached.
type Requirement struct {
	exp   float64
	atMax bool
}

// Needs returns a numeric requirement.
func Needs(exp float64) Requirement { return Requirement{exp: exp} }

// AtMax returns the terminal requirement.
func AtMax() Requirement { return Requirement{atMax: true} }

// IsMax reports whether r is the terminal marker.
func (r Requirement) IsMax() bool { return r.atMax }

// Exp returns the numeric requirement; 0 for the terminal marker.
func (r Requirement) Exp() float64 { return r.exp }

func (r Requirement) MarshalJSON() ([]byte, error) {
	if r.atMax {
		return json.Marshal(MaxLevelMarker)
	}
	return json.Marshal(r.exp)
}

// Currency is the purse, in whole coins.
type Currency struct {
	Gold   int64 `json:"金币"`
	Silver int64 `json:"银币"`
	Copper int64 `json:"铜币"`
}

// Player is the protagonist.
type Player struct {
	Race            string                           `json:"种族"`
	Identity        []string                         `json:"身份"`
	Profession      []string                         `json:"职业"`
	Tier            string                           `json:"生命层级"`
	Level           float64                          `json:"等级"`
	Experience      float64                          `json:"累计经验值"`
	NextLevel       Requirement                      `json:"升级所需经验"`
	Rank            string                           `json:"冒险者等级"`
	AttributePoints float64                          `json:"属性点"`
	Attributes      entity.Attributes                `json:"属性"`
	MaxHP           float64                          `json:"生命值上限"`
	HP              float64                          `json:"生命值"`
	MaxMP           float64                          `json:"法力值上限"`
	MP              float64                          `json:"法力值"`
	MaxStamina      float64                          `json:"体力值上限"`
	Stamina         float64                          `json:"体力值"`
	Statuses        record.Map[entity.StatusEffect]  `json:"状态效果"`
	Money           Currency                         `json:"金钱"`
	Inventory       record.Map[entity.InventoryItem] `json:"背包"`
	Equipment       record.Map[entity.Equipment]     `json:"装备"`
	Skills          record.Map[entity.Skill]         `json:"技能"`
	Ladder          ladder.Ascension                 `json:"登神长阶"`
}

func readPlayer(s statecanon.Scope) Player {
	return Player{
		Race:            s.String(KeyRace, ""),
		Identity:        s.Strings(KeyIdentity),
		Profession:      s.Strings(KeyProfession),
		Tier:            s.String(KeyTier, ""),
		Level:           s.Clamped(KeyLevel, MinLevel, MinLevel, MaxLevel),
		Experience:      s.Number(KeyExperience, 0),
		NextLevel:       readRequirement(s),
		Rank:            s.String(KeyRank, DefaultRank),
		AttributePoints: s.Number(KeyAttributePoints, 0),
		Attributes:      entity.ReadAttributes(s.Object(KeyAttributes)),
		MaxHP:           s.Number(KeyMaxHP, 0),
		HP:              s.Number(KeyHP, 0),
		MaxMP:           s.Number(KeyMaxMP, 0),
		MP:              s.Number(KeyMP, 0),
		MaxStamina:      s.Number(KeyMaxStamina, 0),
		Stamina:         s.Number(KeyStamina, 0),
		Statuses:        collectObjects(s, KeyStatuses, entity.ReadStatusEffect),
		Money:           readCurrency(s.Object(KeyMoney)),
		Inventory:       collectObjects(s, KeyInventory, entity.ReadInventoryItem),
		Equipment:       collectObjects(s, KeyEquipment, entity.ReadEquipment),
		Skills:          collectObjects(s, KeySkills, entity.ReadSkill),
		Ladder:          ladder.Read(s.Object(KeyLadder)),
	}
}

func readRequirement(s statecanon.Scope) Requirement {
	raw, _ := s.Raw(KeyNextLevel)
	if str, ok := raw.(string); ok && strings.TrimSpace(str) == MaxLevelMarker {
		return AtMax()
	}
	return Needs(s.Number(KeyNextLevel, DefaultNextLevel))
}

func readCurrency(s statecanon.Scope) Currency {
	return Currency{
		Gold:   s.Rounded(KeyGold, 0),
		Silver: s.Rounded(KeySilver, 0),
		Copper: s.Rounded(KeyCopper, 0),
	}
}

// collectObjects reads a collection whose entries are objects.
func collectObjects[V any](s statecanon.Scope, key string, read func(statecanon.Scope) V) record.Map[V] {
	return statecanon.Collect(s, key, func(e statecanon.Entry) V { return read(e.Object()) })
}

// normalizePlayer applies the cross-field invariants of the player that sits
// at pointer.
func normalizePlayer(ctx context.Context, pointer string, cfg ladder.Config, p Player) Player {
	at := func(key string) string { return statecanon.JoinPointer(pointer, key) }

	p.MaxHP, p.HP = resourcePair(ctx, at(KeyMaxHP), at(KeyHP), p.MaxHP, p.HP)
	p.MaxMP, p.MP = resourcePair(ctx, at(KeyMaxMP), at(KeyMP), p.MaxMP, p.MP)
	p.MaxStamina, p.Stamina = resourcePair(ctx, at(KeyMaxStamina), at(KeyStamina), p.MaxStamina, p.Stamina)

	if p.Level >= MaxLevel && !p.NextLevel.IsMax() {
		p.NextLevel = AtMax()
		statecanon.MarkPath(ctx, at(KeyNextLevel), statecanon.PresenceClamped)
	}

	p.Inventory = p.Inventory.Filter(func(name string, it entity.InventoryItem) bool {
		if it.Quantity > 0 {
			return true
		}
		statecanon.MarkPath(ctx, statecanon.JoinPointer(at(KeyInventory), name), statecanon.PresencePruned)
		return false
	})

	p.Ladder = cfg.Apply(ctx, at(KeyLadder), p.Ladder)
	return p
}

// resourcePair floors the cap at zero and clamps current into [0, cap],
// using the already coerced cap.
func resourcePair(ctx context.Context, capAt, curAt string, capacity, current float64) (float64, float64) {
	if c := math.Max(capacity, 0); c != capacity {
		capacity = c
		statecanon.MarkPath(ctx, capAt, statecanon.PresenceClamped)
	}
	if c := math.Min(math.Max(current, 0), capacity); c != current {
		current = c
		statecanon.MarkPath(ctx, curAt, statecanon.PresenceClamped)
	}
	return capacity, current
}
