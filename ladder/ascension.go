package ladder

import (
	"context"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/entity"
	js "github.com/reoring/statecanon/jsonschema"
	"github.com/reoring/statecanon/record"
)

// Field names of the ladder object.
const (
	KeyActivated = "是否开启"
	KeyElements  = "要素"
	KeyPowers    = "权能"
	KeyLaws      = "法则"
	KeyTitle     = "神位"
	KeyRealm     = "神国"
)

// Ascension is the progression ladder of one character.
type Ascension struct {
	Activated bool                      `json:"是否开启"`
	Elements  record.Map[entity.Detail] `json:"要素"`
	Powers    record.Map[entity.Detail] `json:"权能"`
	Laws      record.Map[entity.Detail] `json:"法则"`
	Title     string                    `json:"神位"`
	Realm     entity.Realm              `json:"神国"`
}

// Read projects the raw ladder object without collapsing it.
func Read(s statecanon.Scope) Ascension {
	return Ascension{
		Activated: s.Bool(KeyActivated, false),
		Elements:  statecanon.Collect(s, KeyElements, entity.ReadDetailEntry),
		Powers:    statecanon.Collect(s, KeyPowers, entity.ReadDetailEntry),
		Laws:      statecanon.Collect(s, KeyLaws, entity.ReadDetailEntry),
		Title:     s.String(KeyTitle, ""),
		Realm:     entity.ReadRealm(s.Object(KeyRealm)),
	}
}

// Collapse re-imposes the ladder precedence on a:
//
//  1. any law: elements and powers are cleared, laws are capped unless titled;
//  2. powers at the cap: elements are cleared, powers and laws are capped;
//  3. otherwise: elements and powers are capped, laws are cleared.
//
// A dormant ladder is returned unchanged. Truncation keeps the first entries
// by insertion order.
func (c Config) Collapse(a Ascension) Ascension {
	if !a.Activated {
		return a
	}
	out := a
	empty := record.New[entity.Detail](0)
	switch {
	case a.Laws.Len() > 0:
		out.Elements = empty
		out.Powers = empty.Clone()
		if n := c.lawLimit(a.Title); n >= 0 {
			out.Laws = a.Laws.Take(n)
		}
	case a.Powers.Len() >= c.PowerCap:
		out.Elements = empty
		out.Powers = a.Powers.Take(c.PowerCap)
		out.Laws = a.Laws.Take(c.LawCap)
	default:
		out.Elements = a.Elements.Take(c.ElementCap)
		out.Powers = a.Powers.Take(c.PowerCap)
		out.Laws = empty
	}
	return out
}

// Apply collapses a and records every shrunk collection under pointer in the
// presence map carried by ctx.
func (c Config) Apply(ctx context.Context, pointer string, a Ascension) Ascension {
	out := c.Collapse(a)
	mark := func(key string, before, after int) {
		if after < before {
			statecanon.MarkPath(ctx, statecanon.JoinPointer(pointer, key), statecanon.PresenceTruncated)
		}
	}
	mark(KeyElements, a.Elements.Len(), out.Elements.Len())
	mark(KeyPowers, a.Powers.Len(), out.Powers.Len())
	mark(KeyLaws, a.Laws.Len(), out.Laws.Len())
	return out
}

// Schema parses a standalone ladder object under c.
func (c Config) Schema() statecanon.Schema[Ascension] { return statecanon.Object[Ascension](reader{c}) }

type reader struct{ c Config }

func (reader) Read(s statecanon.Scope) Ascension { return Read(s) }

func (r reader) Normalize(ctx context.Context, a Ascension) (Ascension, error) {
	return r.c.Apply(ctx, "/", a), nil
}

func (r reader) Refine(_ context.Context, a Ascension) error {
	return r.c.Check(statecanon.NewRef(nil).Root(), a)
}

func (r reader) JSONSchema() (*js.Schema, error) { return r.c.JSONSchema(), nil }

// JSONSchema describes the ladder object. Caps depend on activation and on
// the other collections, so they are enforced by Check rather than here.
func (c Config) JSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeyActivated, Schema: js.Boolean(false)},
		js.Field{Name: KeyElements, Schema: js.MapOf(entity.DetailJSONSchema(), 0)},
		js.Field{Name: KeyPowers, Schema: js.MapOf(entity.DetailJSONSchema(), 0)},
		js.Field{Name: KeyLaws, Schema: js.MapOf(entity.DetailJSONSchema(), 0)},
		js.Field{Name: KeyTitle, Schema: js.String("")},
		js.Field{Name: KeyRealm, Schema: entity.RealmJSONSchema()},
	)
}
