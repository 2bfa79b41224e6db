package entity

import (
	"github.com/reoring/statecanon"
	js "github.com/reoring/statecanon/jsonschema"
)

// Equipment is a worn or wielded item.
type Equipment struct {
	Quality     string   `json:"品质"`
	Kind        string   `json:"类型"`
	Tags        []string `json:"标签"`
	Effect      Detail   `json:"效果"`
	Description string   `json:"描述"`
	Slot        string   `json:"位置"`
}

// Skill is a learned ability.
type Skill struct {
	Quality     string   `json:"品质"`
	Kind        string   `json:"类型"`
	Cost        string   `json:"消耗"`
	Tags        []string `json:"标签"`
	Effect      Detail   `json:"效果"`
	Description string   `json:"描述"`
}

// InventoryItem is a stack of carried items.
type InventoryItem struct {
	Quality     string   `json:"品质"`
	Kind        string   `json:"类型"`
	Quantity    float64  `json:"数量"`
	Tags        []string `json:"标签"`
	Effect      Detail   `json:"效果"`
	Description string   `json:"描述"`
}

// ReadEquipment reads one equipment record.
func ReadEquipment(s statecanon.Scope) Equipment {
	return Equipment{
		Quality:     s.String(KeyQuality, ""),
		Kind:        s.String(KeyKind, ""),
		Tags:        s.Strings(KeyTags),
		Effect:      ReadDetail(s, KeyEffect),
		Description: s.String(KeyDescription, ""),
		Slot:        s.String(KeySlot, ""),
	}
}

// ReadSkill reads one skill record.
func ReadSkill(s statecanon.Scope) Skill {
	return Skill{
		Quality:     s.String(KeyQuality, ""),
		Kind:        s.String(KeyKind, ""),
		Cost:        s.String(KeyCost, ""),
		Tags:        s.Strings(KeyTags),
		Effect:      ReadDetail(s, KeyEffect),
		Description: s.String(KeyDescription, ""),
	}
}

// ReadInventoryItem reads one inventory record. Quantity defaults to 1;
// pruning of empty stacks is the inventory's job, not the item's.
func ReadInventoryItem(s statecanon.Scope) InventoryItem {
	return InventoryItem{
		Quality:     s.String(KeyQuality, ""),
		Kind:        s.String(KeyKind, ""),
		Quantity:    s.Number(KeyQuantity, 1),
		Tags:        s.Strings(KeyTags),
		Effect:      ReadDetail(s, KeyEffect),
		Description: s.String(KeyDescription, ""),
	}
}

// EquipmentSchema parses a single equipment record.
func EquipmentSchema() statecanon.Schema[Equipment] {
	return statecanon.ObjectFunc(ReadEquipment, EquipmentJSONSchema)
}

// SkillSchema parses a single skill record.
func SkillSchema() statecanon.Schema[Skill] {
	return statecanon.ObjectFunc(ReadSkill, SkillJSONSchema)
}

// InventoryItemSchema parses a single inventory record.
func InventoryItemSchema() statecanon.Schema[InventoryItem] {
	return statecanon.ObjectFunc(ReadInventoryItem, InventoryItemJSONSchema)
}

func EquipmentJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyQuality, Schema: js.String("")},
		js.Field{Name: KeyKind, Schema: js.String("")},
		js.Field{Name: KeyTags, Schema: js.Strings()},
		js.Field{Name: KeyEffect, Schema: DetailJSONSchema()},
		js.Field{Name: KeyDescription, Schema: js.String("")},
		js.Field{Name: KeySlot, Schema: js.String("")},
	)
}

func SkillJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyQuality, Schema: js.String("")},
		js.Field{Name: KeyKind, Schema: js.String("")},
		js.Field{Name: KeyCost, Schema: js.String("")},
		js.Field{Name: KeyTags, Schema: js.Strings()},
		js.Field{Name: KeyEffect, Schema: DetailJSONSchema()},
		js.Field{Name: KeyDescription, Schema: js.String("")},
	)
}

func InventoryItemJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyQuality, Schema: js.String("")},
		js.Field{Name: KeyKind, Schema: js.String("")},
		js.Field{Name: KeyQuantity, Schema: js.Number(1, nil, nil)},
		js.Field{Name: KeyTags, Schema: js.Strings()},
		js.Field{Name: KeyEffect, Schema: DetailJSONSchema()},
		js.Field{Name: KeyDescription, Schema: js.String("")},
	)
}
