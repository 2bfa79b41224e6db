package state

import (
	"github.com/reoring/statecanon/entity"
	js "github.com/reoring/statecanon/jsonschema"
)

// JSONSchema describes the canonical document.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	root := js.Object(
		js.Field{Name: KeyEvents, Schema: &js.Schema{Type: "object", AdditionalProperties: true, Default: map[string]any{}}},
		js.Field{Name: KeyWorld, Schema: js.Object(
			js.Field{Name: KeyTime, Schema: js.String("")},
			js.Field{Name: KeyPlace, Schema: js.String("")},
		)},
		js.Field{Name: KeyQuests, Schema: js.MapOf(entity.QuestJSONSchema(), 0)},
		js.Field{Name: KeyPlayer, Schema: s.playerJSONSchema()},
		js.Field{Name: KeyFate, Schema: js.Object(
			js.Field{Name: KeyFatePoints, Schema: js.Integer(0, js.Ptr(0.0))},
			js.Field{Name: KeyPartners, Schema: js.MapOf(s.partnerJSONSchema(), 0)},
		)},
		js.Field{Name: KeyNews, Schema: newsJSONSchema()},
	)
	root.Schema = js.Draft
	root.Title = "statecanon document"
	return root, nil
}

func (s *Schema) playerJSONSchema() *js.Schema {
	zero := js.Ptr(0.0)
	resource := func() *js.Schema { return js.Number(0, zero, nil) }
	inventoryItem := entity.InventoryItemJSONSchema()
	inventoryItem.Properties[entity.KeyQuantity].ExclusiveMinimum = zero
	return js.Object(
		js.Field{Name: KeyRace, Schema: js.String("")},
		js.Field{Name: KeyIdentity, Schema: js.Strings()},
		js.Field{Name: KeyProfession, Schema: js.Strings()},
		js.Field{Name: KeyTier, Schema: js.String("")},
		js.Field{Name: KeyLevel, Schema: levelJSONSchema()},
		js.Field{Name: KeyExperience, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeyNextLevel, Schema: &js.Schema{
			OneOf:   []*js.Schema{{Type: "number"}, {Const: MaxLevelMarker}},
			Default: DefaultNextLevel,
		}},
		js.Field{Name: KeyRank, Schema: js.String(DefaultRank)},
		js.Field{Name: KeyAttributePoints, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeyAttributes, Schema: entity.AttributesJSONSchema()},
		js.Field{Name: KeyMaxHP, Schema: resource()},
		js.Field{Name: KeyHP, Schema: resource()},
		js.Field{Name: KeyMaxMP, Schema: resource()},
		js.Field{Name: KeyMP, Schema: resource()},
		js.Field{Name: KeyMaxStamina, Schema: resource()},
		js.Field{Name: KeyStamina, Schema: resource()},
		js.Field{Name: KeyStatuses, Schema: js.MapOf(entity.StatusEffectJSONSchema(), 0)},
		js.Field{Name: KeyMoney, Schema: js.Object(
			js.Field{Name: KeyGold, Schema: js.Integer(0, nil)},
			js.Field{Name: KeySilver, Schema: js.Integer(0, nil)},
			js.Field{Name: KeyCopper, Schema: js.Integer(0, nil)},
		)},
		js.Field{Name: KeyInventory, Schema: js.MapOf(inventoryItem, 0)},
		js.Field{Name: KeyEquipment, Schema: js.MapOf(entity.EquipmentJSONSchema(), 0)},
		js.Field{Name: KeySkills, Schema: js.MapOf(entity.SkillJSONSchema(), 0)},
		js.Field{Name: KeyLadder, Schema: s.ladder.JSONSchema()},
	)
}

func (s *Schema) partnerJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyPresent, Schema: js.Boolean(false)},
		js.Field{Name: KeyRace, Schema: js.String("")},
		js.Field{Name: KeyIdentity, Schema: js.Strings()},
		js.Field{Name: KeyProfession, Schema: js.Strings()},
		js.Field{Name: KeyTier, Schema: js.String("")},
		js.Field{Name: KeyPersonality, Schema: js.String("")},
		js.Field{Name: KeyLikes, Schema: js.String("")},
		js.Field{Name: KeyAppearance, Schema: js.String("")},
		js.Field{Name: KeyOutfit, Schema: js.String("")},
		js.Field{Name: KeyLevel, Schema: levelJSONSchema()},
		js.Field{Name: KeyAttributes, Schema: entity.AttributesJSONSchema()},
		js.Field{Name: KeyEquipment, Schema: js.MapOf(entity.EquipmentJSONSchema(), 0)},
		js.Field{Name: KeySkills, Schema: js.MapOf(entity.SkillJSONSchema(), 0)},
		js.Field{Name: KeyLadder, Schema: s.ladder.JSONSchema()},
		js.Field{Name: KeyBound, Schema: js.Boolean(false)},
		js.Field{Name: KeyAffection, Schema: js.Number(0, js.Ptr(float64(MinAffection)), js.Ptr(float64(MaxAffection)))},
		js.Field{Name: KeyInnerVoice, Schema: js.String("")},
		js.Field{Name: KeyBackstory, Schema: js.String("")},
	)
}

func levelJSONSchema() *js.Schema {
	return js.Number(MinLevel, js.Ptr(float64(MinLevel)), js.Ptr(float64(MaxLevel)))
}

func newsJSONSchema() *js.Schema {
	section := func(keys ...string) *js.Schema {
		fields := make([]js.Field, len(keys))
		for i, k := range keys {
			fields[i] = js.Field{Name: k, Schema: js.String("")}
		}
		return js.Object(fields...)
	}
	return js.Object(
		js.Field{Name: KeyBulletin, Schema: section(KeyFactions, KeySovereigns, KeyMilitary, KeyEconomy, KeyDisasters)},
		js.Field{Name: KeyTavern, Schema: section(KeyBounties, KeyDiscoveries, KeyMonsters, KeyWanted, KeyTreasure)},
		js.Field{Name: KeyTeaParty, Schema: section(KeyGossip, KeyFarSight, KeyFateRipples, KeyEncounters)},
	)
}
