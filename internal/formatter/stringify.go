// Package formatter renders nodes for display: scalar stringification,
// match highlighting, YAML output, and the static tree view.
package formatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// Stringify returns a compact single-line representation for an arbitrary
// node. Containers marshal to compact JSON; nil renders as "null" so the
// display matches what the JSON output would show.
func Stringify(v any) string {
	if v == nil {
		return "null"
	}
	switch t := v.(type) {
	case string:
		return escapeScalarString(t)
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		// Reflection catches typed maps, slices, and structs from embedded
		// users so they render as JSON rather than Go's fmt form.
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return "null"
			}
			rv = rv.Elem()
		}
		switch rv.Kind() { //nolint:exhaustive // only composite kinds marshal
		case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
		return fmt.Sprintf("%v", v)
	}
}

// StringifyPreserveNewlines keeps real line breaks in scalar strings, for
// views where users read multiline values. Non-strings fall back to
// Stringify.
func StringifyPreserveNewlines(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return normalizeScalarString(s, false)
	}
	return Stringify(v)
}

// escapeScalarString flattens control characters so rendered rows stay
// single-line.
func escapeScalarString(s string) string {
	return normalizeScalarString(s, true)
}

func normalizeScalarString(s string, escapeNewlines bool) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if escapeNewlines && strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\n", "\\n")
	}
	return s
}

// Truncate shortens s to maxWidth display columns, appending an ellipsis
// when anything was cut. Width is measured per rune so wide characters
// count correctly.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
