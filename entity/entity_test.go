package entity_test

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/entity"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	v, err := statecanon.Decode(statecanon.JSONBytes([]byte(s)), statecanon.ParseOpt{})
	require.NoError(t, err)
	return v
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestEquipment_ProjectsDeclaredFieldsInOrder(t *testing.T) {
	raw := decode(t, `{"位置":"主手","描述":"古老的剑","额外":"drop me","品质":"史诗","效果":{"攻击":"+10"}}`)
	eq, err := entity.EquipmentSchema().Parse(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t,
		`{"品质":"史诗","类型":"","标签":[],"效果":{"攻击":"+10"},"描述":"古老的剑","位置":"主手"}`,
		encode(t, eq))
}

func TestSkill_FieldOrderFollowsDeclaration(t *testing.T) {
	raw := decode(t, `{"描述":"d","消耗":"10法力","类型":"主动","品质":"稀有","标签":"火"}`)
	sk, err := entity.SkillSchema().Parse(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t,
		`{"品质":"稀有","类型":"主动","消耗":"10法力","标签":["火"],"效果":{},"描述":"d"}`,
		encode(t, sk))
}

func TestInventoryItem_QuantityDefaultsAndCoerces(t *testing.T) {
	ctx := context.Background()
	it, err := entity.InventoryItemSchema().Parse(ctx, decode(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, it.Quantity)

	it, err = entity.InventoryItemSchema().Parse(ctx, decode(t, `{"数量":"3"}`))
	require.NoError(t, err)
	assert.Equal(t, 3.0, it.Quantity)

	it, err = entity.InventoryItemSchema().Parse(ctx, decode(t, `{"数量":"许多"}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, it.Quantity)
}

func TestDetail_BothShapes(t *testing.T) {
	ctx := context.Background()
	text, err := entity.EquipmentSchema().Parse(ctx, decode(t, `{"效果":"灼烧敌人"}`))
	require.NoError(t, err)
	assert.True(t, text.Effect.IsText())
	assert.Equal(t, "灼烧敌人", text.Effect.Text())

	lines, err := entity.EquipmentSchema().Parse(ctx, decode(t, `{"效果":{"b":"2","a":"1","$meta":{"x":1}}}`))
	require.NoError(t, err)
	assert.False(t, lines.Effect.IsText())
	assert.Equal(t, []string{"b", "a"}, lines.Effect.Lines().Keys())

	bad, err := entity.EquipmentSchema().Parse(ctx, decode(t, `{"效果":42}`))
	require.NoError(t, err)
	assert.Equal(t, `{}`, encode(t, bad.Effect))
}

func TestStatusEffect_UnknownKindFallsBack(t *testing.T) {
	dm, err := entity.StatusEffectSchema().ParseWithMeta(context.Background(), decode(t, `{"类型":"诅咒","层数":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, entity.Buff, dm.Value.Kind)
	assert.Equal(t, 1.0, dm.Value.Stacks)
	assert.NotZero(t, dm.Presence["/类型"]&statecanon.PresenceDefaultApplied)
	assert.NotZero(t, dm.Presence["/层数"]&statecanon.PresenceDefaultApplied)

	ok, err := entity.StatusEffectSchema().Parse(context.Background(), decode(t, `{"类型":"减益"}`))
	require.NoError(t, err)
	assert.Equal(t, entity.Debuff, ok.Kind)
}

func TestAttributes_NumericStringsAndDefaults(t *testing.T) {
	a, err := entity.AttributesSchema().Parse(context.Background(), decode(t, `{"力量":"12","敏捷":true,"体质":7.5}`))
	require.NoError(t, err)
	assert.Equal(t, entity.Attributes{Strength: 12, Constitution: 7.5}, a)
}

func TestQuest_NilReadsAsDefaults(t *testing.T) {
	q, err := entity.QuestSchema().Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.Quest{}, q)
}

func TestLeafSchema_RejectsNonObject(t *testing.T) {
	_, err := entity.QuestSchema().Parse(context.Background(), []any{"x"})
	require.Error(t, err)
	assert.True(t, statecanon.HasCode(err, statecanon.CodeStructuralMismatch))
}
