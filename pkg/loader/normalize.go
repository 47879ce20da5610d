package loader

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// normalizeValue converts arbitrary Go values into JSON-compatible types
// (maps, slices, scalars) so downstream expression evaluation never sees a
// custom struct. Structs round-trip through JSON, which honors their tags.
func normalizeValue(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return value, nil

	case reflect.Map:
		return value, nil

	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := normalizeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			out[i] = elem
		}
		return out, nil

	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalizeValue(rv.Elem().Interface())

	case reflect.Struct:
		return jsonRoundTrip(value)

	default:
		return nil, fmt.Errorf("unsupported type: %v", rv.Kind())
	}
}

func jsonRoundTrip(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cannot unmarshal value: %w", err)
	}
	return out, nil
}
