// Package state normalizes the persisted character/world document.
//
// Normalization runs in three phases. Read projects every field of the raw
// tree onto typed records, substituting defaults for anything missing or
// malformed. Normalize re-imposes the cross-field invariants: resource
// clamps, the level-cap sentinel, inventory pruning and ladder collapse.
// Refine re-checks those invariants and reports a violation as an
// aggregate_violation issue. The only input that fails outright is a root
// that is not an object.
package state

import (
	"context"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/entity"
	"github.com/reoring/statecanon/ladder"
	"github.com/reoring/statecanon/record"
)

// Document is the canonical state document.
type Document struct {
	Events record.Map[any]          `json:"事件"`
	World  World                    `json:"世界"`
	Quests record.Map[entity.Quest] `json:"任务列表"`
	Player Player                   `json:"主角"`
	Fate   Fate                     `json:"命定系统"`
	News   News                     `json:"新闻"`
}

// Schema normalizes documents under one ladder configuration.
type Schema struct {
	ladder ladder.Config
}

var _ statecanon.Schema[Document] = (*Schema)(nil)

// Option configures a Schema.
type Option func(*Schema)

// WithLadder selects the ladder caps. The default is ladder.Standard.
func WithLadder(c ladder.Config) Option { return func(s *Schema) { s.ladder = c } }

// NewSchema returns a document schema.
func NewSchema(opts ...Option) *Schema {
	s := &Schema{ladder: ladder.Standard}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ladder returns the ladder configuration in use.
func (s *Schema) Ladder() ladder.Config { return s.ladder }

func (s *Schema) Parse(ctx context.Context, v any) (Document, error) {
	return statecanon.Object[Document](s).Parse(ctx, v)
}

func (s *Schema) ParseWithMeta(ctx context.Context, v any) (statecanon.Decoded[Document], error) {
	return statecanon.Object[Document](s).ParseWithMeta(ctx, v)
}

// Read projects the raw document. It is the first phase of Parse.
func (s *Schema) Read(sc statecanon.Scope) Document {
	return Document{
		Events: sc.Passthrough(KeyEvents),
		World:  readWorld(sc.Object(KeyWorld)),
		Quests: collectObjects(sc, KeyQuests, entity.ReadQuest),
		Player: readPlayer(sc.Object(KeyPlayer)),
		Fate:   readFate(sc.Object(KeyFate)),
		News:   readNews(sc.Object(KeyNews)),
	}
}

// Normalize applies the cross-field invariants to a projected document.
func (s *Schema) Normalize(ctx context.Context, d Document) (Document, error) {
	d.Player = normalizePlayer(ctx, statecanon.JoinPointer("", KeyPlayer), s.ladder, d.Player)
	d.Fate = normalizeFate(ctx, statecanon.JoinPointer("", KeyFate), s.ladder, d.Fate)
	return d, nil
}

// Refine is Check as a parse phase.
func (s *Schema) Refine(_ context.Context, d Document) error { return s.Check(d) }

// Default is the schema used by the package-level helpers.
var Default = NewSchema()

// Normalize turns any raw tree into a canonical Document with the default
// schema. A nil root yields an all-default document; any other non-object
// root fails with a structural_mismatch issue.
func Normalize(raw any) (Document, error) {
	return Default.Parse(context.Background(), raw)
}

// New returns the all-default document.
func New() Document {
	d, _ := Normalize(nil)
	return d
}
