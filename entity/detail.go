package entity

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/statecanon"
	js "github.com/reoring/statecanon/jsonschema"
	"github.com/reoring/statecanon/record"
)

// Detail is the value of an effect or ladder entry. The generator writes
// either free text or a map of named lines; both shapes are kept as given.
type Detail struct {
	text   string
	fields record.Map[string]
	isText bool
}

// Text returns a free-text Detail.
func Text(s string) Detail { return Detail{text: s, isText: true} }

// Lines returns a map-shaped Detail.
func Lines(pairs ...record.Pair[string]) Detail { return Detail{fields: record.Of(pairs...)} }

// EmptyDetail is the default: an empty map.
func EmptyDetail() Detail { return Detail{fields: record.New[string](0)} }

// IsText reports whether d holds free text.
func (d Detail) IsText() bool { return d.isText }

// Text returns the free text, or "" for map-shaped details.
func (d Detail) Text() string { return d.text }

// Lines returns the named lines of a map-shaped detail.
func (d Detail) Lines() record.Map[string] { return d.fields }

func (d Detail) MarshalJSON() ([]byte, error) {
	if d.isText {
		return json.Marshal(d.text)
	}
	return d.fields.MarshalJSON()
}

// ReadDetail reads the detail stored under key.
func ReadDetail(s statecanon.Scope, key string) Detail {
	raw, _ := s.Raw(key)
	if str, ok := raw.(string); ok {
		return Text(str)
	}
	return readLines(s.Object(key))
}

// ReadDetailEntry reads a collection entry as a detail.
func ReadDetailEntry(e statecanon.Entry) Detail {
	if str, ok := e.Raw.(string); ok {
		return Text(str)
	}
	return readLines(e.Object())
}

func readLines(o statecanon.Scope) Detail {
	entries := o.Entries()
	m := record.New[string](len(entries))
	for _, e := range entries {
		v, ok := e.Raw.(string)
		if !ok {
			e.Mark(statecanon.PresenceDefaultApplied)
		}
		m.Set(e.Key, v)
	}
	return Detail{fields: m}
}

// DetailJSONSchema accepts both detail shapes.
func DetailJSONSchema() *js.Schema {
	return &js.Schema{
		OneOf: []*js.Schema{
			{Type: "string"},
			{Type: "object", AdditionalProperties: &js.Schema{Type: "string"}},
		},
		Default: map[string]any{},
	}
}
