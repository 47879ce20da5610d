// Package navigator resolves path expressions against loaded documents.
// Three syntaxes are accepted: simple dotted paths with bracket indexing
// ("regions.asia.countries[0]"), JSONPath when the expression starts with
// "$" ("$.store.book[*].author"), and full CEL for anything with operators
// or function calls.
package navigator

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/oakwood-commons/treex/internal/cel"
)

// Debug controls whether navigator prints troubleshooting logs.
// Set via CLI `--debug`.
var Debug bool

// DebugWriter is where navigator debug output is written. Defaults to discard.
var DebugWriter = io.Discard

// EvaluateFunc evaluates a CEL expression against a root document. The
// indirection lets callers inject an environment with custom functions.
type EvaluateFunc func(expr string, root any) (any, error)

var evaluator EvaluateFunc

// SetEvaluator overrides the CEL evaluator used for complex expressions.
func SetEvaluator(fn EvaluateFunc) {
	evaluator = fn
}

func getEvaluator() EvaluateFunc {
	if evaluator != nil {
		return evaluator
	}
	return func(expr string, root any) (any, error) {
		e, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		return e.Evaluate(expr, root)
	}
}

// NodeAtPath navigates an expression into a parsed document and returns
// the node it selects. An empty path or bare "_" returns the root.
func NodeAtPath(root any, path string) (any, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "_" {
		return root, nil
	}

	if strings.HasPrefix(trimmed, "$") {
		if Debug {
			fmt.Fprintf(DebugWriter, "DBG(nav): jsonpath=%q\n", trimmed)
		}
		return jsonPathNavigate(root, trimmed)
	}

	if !isComplexCEL(path) {
		if Debug {
			fmt.Fprintf(DebugWriter, "DBG(nav): simple path=%q\n", path)
		}
		return simpleNavigate(root, path)
	}

	if Debug {
		fmt.Fprintf(DebugWriter, "DBG(nav): complex expr=%q\n", path)
	}
	result, err := getEvaluator()(path, root)
	if err != nil {
		return nil, fmt.Errorf("CEL evaluation error: %w", err)
	}
	return result, nil
}

// jsonPathNavigate resolves a $-prefixed JSONPath expression. A single
// match is returned bare; multiple matches come back as a slice.
func jsonPathNavigate(root any, path string) (any, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}

	results := expr.Get(root)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("JSONPath %q matched nothing", path)
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// isComplexCEL reports whether a path needs full CEL evaluation instead of
// step-by-step navigation.
func isComplexCEL(path string) bool {
	trimmed := strings.TrimSpace(path)

	// String and map literals are CEL.
	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") && len(trimmed) >= 2 {
		return true
	}
	if strings.HasPrefix(trimmed, "{") {
		return true
	}

	// A leading bracket is navigation when it holds a number or a quoted
	// key ([0], ["key"]); anything else is an array literal.
	if strings.HasPrefix(trimmed, "[") {
		if closeBracket := strings.Index(trimmed, "]"); closeBracket > 0 {
			inside := trimmed[1:closeBracket]
			if _, err := strconv.Atoi(inside); err == nil {
				return false
			}
			if strings.HasPrefix(inside, "\"") && strings.HasSuffix(inside, "\"") {
				return false
			}
			return true
		}
	}

	// Function calls: filter(), map(), size(), has(), ...
	if strings.Contains(path, "(") && strings.Contains(path, ")") {
		return true
	}
	if strings.HasPrefix(path, "_.") || strings.HasPrefix(path, "_[") {
		return true
	}
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">", "&&", "||"} {
		if strings.Contains(path, op) {
			return true
		}
	}
	return false
}

// simpleNavigate walks dotted paths and bracket notation step by step.
func simpleNavigate(root any, path string) (any, error) {
	cur := root
	for _, step := range parsePath(path) {
		cur = navigateStep(cur, step)
		if err, ok := cur.(error); ok {
			return nil, err
		}
	}
	return cur, nil
}

// parsePath splits a path into steps:
//
//	"items.0"       -> ["items", "0"]
//	"items[0].tags" -> ["items", "0", "tags"]
func parsePath(path string) []string {
	var parts []string
	var current strings.Builder

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		case '[':
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, path[i+1:j])
				i = j
			}
		default:
			current.WriteByte(path[i])
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// navigateStep descends one key or index.
func navigateStep(cur any, step string) any {
	key := step
	if strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) && len(key) > 1 {
		key = key[1 : len(key)-1]
	}

	switch t := cur.(type) {
	case map[string]any:
		v, ok := t[key]
		if !ok {
			return fmt.Errorf("key '%s' not found", key)
		}
		return v
	case []any:
		idx, err := strconv.Atoi(step)
		if err != nil {
			return fmt.Errorf("expected numeric index into array but got '%s'", step)
		}
		if idx < 0 || idx >= len(t) {
			return fmt.Errorf("index %d out of range", idx)
		}
		return t[idx]
	default:
		return navigateStepReflect(cur, step, key)
	}
}

// navigateStepReflect covers typed maps, slices, and structs so embedded
// users can navigate their own types.
func navigateStepReflect(cur any, step, key string) any {
	rv := reflect.ValueOf(cur)
	if !rv.IsValid() {
		return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
	}
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive // only container kinds are navigable
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
		}
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return fmt.Errorf("key '%s' not found", key)
		}
		return value.Interface()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(step)
		if err != nil {
			return fmt.Errorf("expected numeric index into array but got '%s'", step)
		}
		if idx < 0 || idx >= rv.Len() {
			return fmt.Errorf("index %d out of range", idx)
		}
		return rv.Index(idx).Interface()
	case reflect.Struct:
		if field, ok := structFieldValue(rv, key); ok {
			return field
		}
		return fmt.Errorf("key '%s' not found", key)
	default:
		return fmt.Errorf("cannot descend into %T at '%s'", cur, step)
	}
}

func structFieldValue(rv reflect.Value, key string) (any, bool) {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("json"), ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName == key || field.Name == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}
