package state_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/jsonschema"
	"github.com/reoring/statecanon/source/gojson"
	"github.com/reoring/statecanon/state"
)

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestMarshalIndent_Golden(t *testing.T) {
	sample, err := state.Unmarshal(readFixture(t, "sample.json"))
	require.NoError(t, err)

	for name, d := range map[string]state.Document{
		"default": state.New(),
		"sample":  sample,
	} {
		t.Run(name, func(t *testing.T) {
			b, err := state.MarshalIndent(d, "", "  ")
			require.NoError(t, err)
			golden(t).Assert(t, name, b)
		})
	}
}

func TestMarshal_GoJSONDriverAgrees(t *testing.T) {
	raw := readFixture(t, "sample.json")
	want, err := state.Default.Canonicalize(context.Background(), raw)
	require.NoError(t, err)

	statecanon.SetJSONDriver(gojson.Driver())
	defer statecanon.UseDefaultJSONDriver()
	assert.Equal(t, "go-json", statecanon.CurrentJSONDriver().Name())

	got, err := state.Default.Canonicalize(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestDecode_YAMLMatchesJSON(t *testing.T) {
	yamlDoc := []byte(`
主角:
  种族: 人类
  等级: 25
  生命值上限: 50
  生命值: 999
  背包:
    长剑: {数量: 1, 品质: 稀有}
    药水: {数量: 0}
`)
	jsonDoc := []byte(`{"主角":{"种族":"人类","等级":25,"生命值上限":50,"生命值":999,"背包":{"长剑":{"数量":1,"品质":"稀有"},"药水":{"数量":0}}}}`)

	fromYAML, err := state.Default.Decode(context.Background(), bytes.NewReader(yamlDoc), state.FormatYAML)
	require.NoError(t, err)
	fromJSON, err := state.Default.Decode(context.Background(), bytes.NewReader(jsonDoc), state.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, fromJSON.Value, fromYAML.Value)
	assert.Equal(t, []string{"长剑"}, fromYAML.Value.Player.Inventory.Keys())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]state.Format{"": state.FormatJSON, "json": state.FormatJSON, "yaml": state.FormatYAML, "yml": state.FormatYAML} {
		got, err := state.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := state.ParseFormat("toml")
	assert.Error(t, err)
}

func TestIsCanonical_RejectsReorderedInput(t *testing.T) {
	ok, err := state.Default.IsCanonical(context.Background(), []byte(`{"世界":{"地点":"","时间":""}}`))
	require.NoError(t, err)
	assert.False(t, ok)

	canon, err := state.Marshal(state.New())
	require.NoError(t, err)
	ok, err = state.Default.IsCanonical(context.Background(), append([]byte("  "), canon...))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJSONSchema_CanonicalOutputConforms(t *testing.T) {
	s, err := state.Default.JSONSchema()
	require.NoError(t, err)
	v, err := jsonschema.Compile(s)
	require.NoError(t, err)

	sample, err := state.Unmarshal(readFixture(t, "sample.json"))
	require.NoError(t, err)
	indebted, err := state.Unmarshal([]byte(`{"主角":{"金钱":{"金币":-40,"铜币":"-3.6"}}}`))
	require.NoError(t, err)
	for _, d := range []state.Document{state.New(), sample, indebted} {
		b, err := state.Marshal(d)
		require.NoError(t, err)
		assert.NoError(t, v.Validate(b))
	}
}

func TestJSONSchema_RejectsBrokenInvariants(t *testing.T) {
	s, err := state.Default.JSONSchema()
	require.NoError(t, err)
	v, err := jsonschema.Compile(s)
	require.NoError(t, err)

	base, err := state.Marshal(state.New())
	require.NoError(t, err)
	for path, value := range map[string]any{
		"主角.等级":        30,
		"主角.生命值":       -1,
		"主角.金钱.金币":     1.5,
		"主角.升级所需经验":    "soon",
		"主角.背包.石头.数量":  0,
		"命定系统.命运点数":    -2,
		"世界.天气":        "雨",
		"主角.登神长阶.要素.风": 7,
	} {
		b, err := state.Patch(base, path, value)
		require.NoError(t, err)
		assert.Error(t, v.Validate(b), path)
	}
}

func TestLookup(t *testing.T) {
	d, err := state.Unmarshal(readFixture(t, "sample.json"))
	require.NoError(t, err)

	res, err := state.Lookup(d, "主角.生命值")
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Float())

	res, err = state.Lookup(d, "主角.升级所需经验")
	require.NoError(t, err)
	assert.Equal(t, "MAX", res.String())

	res, err = state.Lookup(d, "主角.登神长阶.要素")
	require.NoError(t, err)
	var keys []string
	res.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{"风", "火", "水"}, keys)

	_, err = state.Lookup(d, "主角.背包.药水")
	assert.ErrorIs(t, err, state.ErrPathNotFound)
}

func TestPatch_RenormalizesOnNextPass(t *testing.T) {
	raw := readFixture(t, "sample.json")

	raw, err := state.Patch(raw, "主角.生命值上限", 20)
	require.NoError(t, err)
	raw, err = state.PatchRaw(raw, "主角.背包.面包", []byte(`{"数量":3}`))
	require.NoError(t, err)
	raw, err = state.Delete(raw, "主角.背包.长剑")
	require.NoError(t, err)

	d, err := state.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, 20.0, d.Player.MaxHP)
	assert.Equal(t, 20.0, d.Player.HP)
	assert.Equal(t, []string{"面包"}, d.Player.Inventory.Keys())
}

func TestPatch_EmptyAndInvalidInput(t *testing.T) {
	raw, err := state.Patch(nil, "世界.地点", "港口")
	require.NoError(t, err)
	d, err := state.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, "港口", d.World.Place)

	_, err = state.PatchRaw(raw, "世界.地点", []byte(`{oops`))
	assert.Error(t, err)

	out, err := state.Delete(raw, "世界.不存在")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}
