package coerce_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/statecanon/coerce"
)

func TestClampedNumber(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want float64
	}{
		{"json number", json.Number("12"), 12},
		{"numeric string", " 7 ", 7},
		{"above max", 99, 25},
		{"below min", -3, 1},
		{"non numeric string", "lots", 1},
		{"missing", nil, 1},
		{"bool", true, 1},
		{"nan", math.NaN(), 1},
		{"object", map[string]any{"x": 1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerce.ClampedNumber(tc.raw, 1, 1, 25))
		})
	}
}

func TestFlooredNumber(t *testing.T) {
	assert.Equal(t, int64(3), coerce.FlooredNumber(2.5, 0, 0))
	assert.Equal(t, int64(2), coerce.FlooredNumber(2.49, 0, 0))
	assert.Equal(t, int64(0), coerce.FlooredNumber(-4, 0, 0))
	assert.Equal(t, int64(-2), coerce.FlooredNumber(-2.5, 0, -10))
	assert.Equal(t, int64(5), coerce.FlooredNumber("abc", 5, 0))
	assert.Equal(t, int64(10), coerce.FlooredNumber(json.Number("9.6"), 0, 0))
}

func TestBoolean(t *testing.T) {
	assert.True(t, coerce.Boolean("是", false))
	assert.False(t, coerce.Boolean("否", true))
	assert.True(t, coerce.Boolean(true, false))
	assert.False(t, coerce.Boolean(false, true))
	assert.True(t, coerce.Boolean("maybe", true))
	assert.False(t, coerce.Boolean(nil, false))
	assert.False(t, coerce.Boolean(1, false))
}

func TestClamp_LowerBoundWins(t *testing.T) {
	assert.Equal(t, 0.0, coerce.Clamp(10, 0, -5))
	assert.Equal(t, 50.0, coerce.Clamp(999, 0, 50))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"剑士", "旅人"}, coerce.Strings([]any{"剑士", 3, "旅人"}))
	assert.Equal(t, []string{}, coerce.Strings([]any{"$__META_EXTENSIBLE__$"}))
	assert.Equal(t, []string{"火"}, coerce.Strings("火"))
	assert.Equal(t, []string{}, coerce.Strings(""))
	assert.Equal(t, []string{}, coerce.Strings(nil))
}

func TestKey_NFC(t *testing.T) {
	decomposed := "e\u0301"
	assert.Equal(t, "\u00e9", coerce.Key(" "+decomposed+" "))
}
