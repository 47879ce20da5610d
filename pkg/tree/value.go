// Package tree provides a generic tree form for JSON-like data together with
// a case-insensitive substring search that computes which nodes must be
// expanded to reveal every match. It is the data layer behind both the static
// tree renderer and the interactive explorer.
package tree

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind classifies a node in the generic tree form.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Expandable reports whether the kind is a container (object or array).
func (k Kind) Expandable() bool {
	return k == KindObject || k == KindArray
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is the generic tree form of a single node. Scalars carry a display
// string; containers carry ordered child entries. Entries reference children
// by the original value so the walk never copies subtree data.
type Value struct {
	Kind    Kind
	Display string  // display form, set for scalars only
	Entries []Entry // ordered children, set for containers only
}

// Entry pairs the segment that reaches a child with the child value itself.
type Entry struct {
	Segment Segment
	Child   any
}

// Converter turns arbitrary values into their generic tree form. Convert is
// expected to be pure: converting the same value twice yields the same shape
// in the same order, since entry order determines the paths built during a
// walk. Expandable must agree with Convert on whether a value is a container,
// and exists so callers can classify a child without building its entries.
type Converter interface {
	Convert(v any) Value
	Expandable(v any) bool
}

// DefaultConverter handles the types produced by pkg/loader (maps, slices,
// scalars) plus arbitrary Go values via reflection: typed maps with string
// keys, typed slices/arrays, and structs honoring `json` tags. Map keys are
// ordered ascending so traversal order is deterministic.
type DefaultConverter struct{}

// Convert implements Converter.
func (DefaultConverter) Convert(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindNull, Display: "null"}
	case map[string]any:
		return objectValue(sortedKeys(t), func(k string) any { return t[k] })
	case []any:
		return arrayValue(len(t), func(i int) any { return t[i] })
	case string:
		return Value{Kind: KindString, Display: t}
	case bool:
		return Value{Kind: KindBool, Display: fmt.Sprint(t)}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Value{Kind: KindNumber, Display: fmt.Sprint(t)}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Value{Kind: KindNull, Display: "null"}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive // remaining kinds fall through to the scalar case
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			keys := make([]string, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			keyType := rv.Type().Key()
			return objectValue(keys, func(k string) any {
				return rv.MapIndex(reflect.ValueOf(k).Convert(keyType)).Interface()
			})
		}
	case reflect.Slice, reflect.Array:
		return arrayValue(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Struct:
		keys, fields := structEntries(rv)
		return objectValue(keys, func(k string) any { return fields[k] })
	}

	return Value{Kind: scalarKind(rv), Display: scalarDisplay(v, rv)}
}

// Expandable implements Converter.
func (c DefaultConverter) Expandable(v any) bool {
	switch v.(type) {
	case map[string]any:
		return true
	case []any:
		return true
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() { //nolint:exhaustive // only container kinds matter
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

func objectValue(keys []string, child func(string) any) Value {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Segment: ObjectKey(k), Child: child(k)})
	}
	return Value{Kind: KindObject, Entries: entries}
}

func arrayValue(n int, child func(int) any) Value {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Segment: ArrayIndex(i), Child: child(i)})
	}
	return Value{Kind: KindArray, Entries: entries}
}

// structEntries collects exported fields in declaration order, honoring
// `json` tag renames and skipping `json:"-"` fields.
func structEntries(rv reflect.Value) ([]string, map[string]any) {
	typ := rv.Type()
	keys := make([]string, 0, typ.NumField())
	fields := make(map[string]any, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag == "-" {
			continue
		}
		if tag != "" {
			name = tag
		}
		keys = append(keys, name)
		fields[name] = rv.Field(i).Interface()
	}
	return keys, fields
}

func scalarKind(rv reflect.Value) Kind {
	switch rv.Kind() { //nolint:exhaustive // everything else displays as a string
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Invalid:
		return KindNull
	default:
		return KindString
	}
}

// scalarDisplay renders a scalar the way the JSON output would show it,
// falling back to compact JSON for exotic types so embedded users never see
// Go's fmt representation of a struct or map.
func scalarDisplay(v any, rv reflect.Value) string {
	if !rv.IsValid() {
		return "null"
	}
	switch rv.Kind() { //nolint:exhaustive // scalar kinds only
	case reflect.String:
		return rv.String()
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(rv.Interface())
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
