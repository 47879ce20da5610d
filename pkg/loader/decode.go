package loader

import (
	"fmt"
	"reflect"
)

// maxDecodeDepth bounds recursive decoding so pathological inputs (strings
// that decode into strings that decode again) cannot recurse forever.
const maxDecodeDepth = 20

// TryDecode attempts to parse a string leaf as serialized data (JWT, JSON,
// YAML, TOML, NDJSON). It reports success only when the result is a map or
// slice; plain strings and scalars are not treated as decodable.
func TryDecode(value string) (any, bool) {
	if value == "" {
		return nil, false
	}
	parsed, err := LoadRoot(value)
	if err != nil {
		return nil, false
	}
	if isStructured(parsed) {
		return parsed, true
	}
	return nil, false
}

// RecursiveDecode walks a tree and replaces every string leaf that holds
// serialized data with its parsed structure, recursively, so nested
// serialized strings expand too.
func RecursiveDecode(node any) any {
	return recursiveDecode(node, 0)
}

func recursiveDecode(node any, depth int) any {
	if depth > maxDecodeDepth {
		return node
	}

	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = recursiveDecode(val, depth+1)
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = recursiveDecode(val, depth+1)
		}
		return out

	case string:
		if decoded, ok := TryDecode(v); ok {
			return recursiveDecode(decoded, depth+1)
		}
		return v

	default:
		return recursiveDecodeReflect(node, depth)
	}
}

// recursiveDecodeReflect covers typed containers (map[string]string,
// []string) that fall outside the plain map/slice cases above.
func recursiveDecodeReflect(node any, depth int) any {
	if node == nil {
		return nil
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() { //nolint:exhaustive // scalars fall through unchanged
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			var keyStr string
			if key.Kind() == reflect.String {
				keyStr = key.String()
			} else {
				keyStr = fmt.Sprintf("%v", key.Interface())
			}
			out[keyStr] = recursiveDecode(iter.Value().Interface(), depth+1)
		}
		return out

	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = recursiveDecode(rv.Index(i).Interface(), depth+1)
		}
		return out

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return recursiveDecode(rv.Elem().Interface(), depth+1)

	default:
		return node
	}
}

func isStructured(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Map || kind == reflect.Slice
}
