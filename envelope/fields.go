// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package envelope

import (
	"encoding/json"
	"strconv"
)

// Stringify renders a scalar JSON value as a string. Numbers lose any
// trailing ".0" so numeric ids round-trip as plain decimals regardless of
// whether the backend encoded them as numbers or strings.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// StringField probes the candidate keys in order and returns the first value
// present and non-empty, rendered as a string.
func StringField(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s := Stringify(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// Field probes the candidate keys in order and returns the first value
// present, without coercion.
func Field(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// AsObject reports whether v is a JSON object.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsArray reports whether v is a JSON array.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// StringList renders every scalar element of a JSON array as a string,
// dropping nils and nested structures.
func StringList(v any) []string {
	arr, ok := AsArray(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s := Stringify(el); s != "" {
			out = append(out, s)
		}
	}
	return out
}
