// Package normalize reads loosely typed JSON values (as decoded into any,
// numbers possibly as json.Number) into Go types. Each reader reports
// whether it found a usable value instead of failing.
package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Number reads a finite number from a JSON number or a numeric string.
// Blank strings, booleans and nil are not numbers.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		p, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NumberOr is Number with a default.
func NumberOr(v any, def float64) float64 {
	if f, ok := Number(v); ok {
		return f
	}
	return def
}

// String reads a trimmed, non-empty string. Numbers and booleans are
// formatted.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		t := strings.TrimSpace(s)
		return t, t != ""
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := Number(v); ok {
		return formatFloat(f), true
	}
	return "", false
}

// Text reads a trimmed, non-empty string and nothing else.
func Text(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ID reads an identifier given either as a non-empty string or a finite
// number.
func ID(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		t := strings.TrimSpace(s)
		return t, t != ""
	case bool, nil:
		return "", false
	}
	if f, ok := Number(v); ok {
		return formatFloat(f), true
	}
	return "", false
}

var datePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// Day reads a day of month from a number or from a date string starting
// with YYYY-MM-DD.
func Day(v any) (int, bool) {
	if s, ok := v.(string); ok {
		if m := datePrefix.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
			d, _ := strconv.Atoi(m[3])
			return d, true
		}
	}
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Truthy follows JavaScript truthiness: nil, false, 0, NaN and "" are false,
// everything else (including the string "false") is true.
func Truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case json.Number, float64, float32, int, int32, int64:
		f, ok := Number(b)
		return ok && f != 0
	}
	return true
}

// Record returns v as a JSON object.
func Record(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// List finds the array in payload: payload itself, or the first of keys
// holding an array. Anything else gives an empty list.
func List(payload any, keys ...string) []any {
	if arr, ok := payload.([]any); ok {
		return arr
	}
	m, ok := Record(payload)
	if !ok {
		return []any{}
	}
	for _, k := range keys {
		if arr, ok := m[k].([]any); ok {
			return arr
		}
	}
	return []any{}
}

// FirstString returns the first of keys holding a String.
func FirstString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := String(m[k]); ok {
			return s, true
		}
	}
	return "", false
}

// FirstText returns the first of keys holding a Text.
func FirstText(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := Text(m[k]); ok {
			return s, true
		}
	}
	return "", false
}

// FirstID returns the first of keys holding an ID.
func FirstID(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := ID(m[k]); ok {
			return s, true
		}
	}
	return "", false
}

// FirstNumber returns the first of keys holding a Number.
func FirstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := Number(m[k]); ok {
			return f, true
		}
	}
	return 0, false
}

// FirstDay returns the first of keys holding a Day.
func FirstDay(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		if d, ok := Day(m[k]); ok {
			return d, true
		}
	}
	return 0, false
}

// Float returns a pointer to the first number found under keys, nil when
// there is none.
func Float(m map[string]any, keys ...string) *float64 {
	f, ok := FirstNumber(m, keys...)
	if !ok {
		return nil
	}
	return &f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
