package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{json.Number("3"), 3, true},
		{json.Number("x"), 0, false},
		{" 42 ", 42, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12,5", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{"Infinity", 0, false},
		{7, 7, true},
		{[]any{1}, 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
	assert.Equal(t, 9.0, NumberOr("nope", 9))
}

func TestString(t *testing.T) {
	s, ok := String("  hi ")
	assert.True(t, ok)
	assert.Equal(t, "hi", s)

	s, ok = String(json.Number("12"))
	assert.True(t, ok)
	assert.Equal(t, "12", s)

	s, ok = String(3.0)
	assert.True(t, ok)
	assert.Equal(t, "3", s)

	s, ok = String(false)
	assert.True(t, ok)
	assert.Equal(t, "false", s)

	_, ok = String("   ")
	assert.False(t, ok)
	_, ok = String(map[string]any{})
	assert.False(t, ok)
}

func TestTextAndID(t *testing.T) {
	_, ok := Text(12)
	assert.False(t, ok)
	s, ok := Text(" Nubank ")
	assert.True(t, ok)
	assert.Equal(t, "Nubank", s)

	s, ok = ID(json.Number("17"))
	assert.True(t, ok)
	assert.Equal(t, "17", s)
	s, ok = ID("abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", s)
	_, ok = ID(true)
	assert.False(t, ok)
	_, ok = ID(nil)
	assert.False(t, ok)
	_, ok = ID("")
	assert.False(t, ok)
}

func TestDay(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{"2024-05-07", 7, true},
		{"2024-05-17T10:00:00Z", 17, true},
		{json.Number("10"), 10, true},
		{"25", 25, true},
		{10.5, 0, false},
		{"soon", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := Day(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		assert.Equal(t, tt.want, got, "%#v", tt.in)
	}
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(json.Number("0")))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy("false"))
	assert.True(t, Truthy(1.0))
	assert.True(t, Truthy(map[string]any{}))
}

func TestList(t *testing.T) {
	items := []any{map[string]any{"id": "1"}}
	for _, payload := range []any{
		items,
		map[string]any{"data": items},
		map[string]any{"items": items},
		map[string]any{"cards": items},
	} {
		assert.Equal(t, items, List(payload, "data", "items", "cards"))
	}

	assert.Equal(t, []any{}, List(nil, "data"))
	assert.Equal(t, []any{}, List("oops", "data"))
	assert.Equal(t, []any{}, List(map[string]any{"data": "x"}, "data"))
	assert.Equal(t, []any{}, List(map[string]any{"other": items}, "data"))
}

func TestFirst(t *testing.T) {
	m := map[string]any{
		"a": nil,
		"b": "  ",
		"c": "value",
		"n": "x",
		"m": json.Number("5"),
		"d": "2024-01-09",
	}
	s, ok := FirstString(m, "a", "b", "c")
	assert.True(t, ok)
	assert.Equal(t, "value", s)

	f, ok := FirstNumber(m, "a", "n", "m")
	assert.True(t, ok)
	assert.Equal(t, 5.0, f)

	d, ok := FirstDay(m, "x", "d")
	assert.True(t, ok)
	assert.Equal(t, 9, d)

	_, ok = FirstText(m, "m")
	assert.False(t, ok)

	id, ok := FirstID(m, "a", "m")
	assert.True(t, ok)
	assert.Equal(t, "5", id)

	assert.Nil(t, Float(m, "a", "b"))
	assert.Equal(t, 5.0, *Float(m, "m"))
}
