package entity

import (
	"github.com/reoring/statecanon"
	js "github.com/reoring/statecanon/jsonschema"
)

// Attributes are the five base stats.
type Attributes struct {
	Strength     float64 `json:"力量"`
	Agility      float64 `json:"敏捷"`
	Constitution float64 `json:"体质"`
	Intellect    float64 `json:"智力"`
	Spirit       float64 `json:"精神"`
}

func ReadAttributes(s statecanon.Scope) Attributes {
	return Attributes{
		Strength:     s.Number(KeyStrength, 0),
		Agility:      s.Number(KeyAgility, 0),
		Constitution: s.Number(KeyConstitution, 0),
		Intellect:    s.Number(KeyIntellect, 0),
		Spirit:       s.Number(KeySpirit, 0),
	}
}

// AttributesSchema parses an attribute block.
func AttributesSchema() statecanon.Schema[Attributes] {
	return statecanon.ObjectFunc(ReadAttributes, AttributesJSONSchema)
}

func AttributesJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyStrength, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeyAgility, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeyConstitution, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeyIntellect, Schema: js.Number(0, nil, nil)},
		js.Field{Name: KeySpirit, Schema: js.Number(0, nil, nil)},
	)
}

// Realm is the domain granted on ascension.
type Realm struct {
	Name        string `json:"名称"`
	Description string `json:"描述"`
}

func ReadRealm(s statecanon.Scope) Realm {
	return Realm{
		Name:        s.String(KeyName, ""),
		Description: s.String(KeyDescription, ""),
	}
}

func RealmJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyName, Schema: js.String("")},
		js.Field{Name: KeyDescription, Schema: js.String("")},
	)
}
