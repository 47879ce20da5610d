// Package cel evaluates CEL expressions against loaded documents. The
// document is bound to the variable "_", so expressions read like
// "_.items.filter(x, x.port > 1000)".
package cel

import (
	"fmt"
	"regexp"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the strings, encoders, lists, and
// math extension libraries enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate runs expr against data, bound to "_". The result comes back as
// plain Go values (maps, slices, scalars).
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	result, _, err := prg.Eval(map[string]any{"_": data})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}

	converted := ToGo(result)
	if refVal, ok := converted.(ref.Val); ok {
		if valuer, ok := refVal.(interface{ Value() any }); ok {
			converted = valuer.Value()
		}
	}
	return converted, nil
}

// ToGo converts CEL values to Go native types recursively, covering both
// primitives and the collection shapes cel-go hands back.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	valuer, ok := val.(interface{ Value() any })
	if !ok {
		return val
	}

	switch inner := valuer.Value().(type) {
	case []ref.Val:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = convertElement(elem)
		}
		return out
	case map[string]any:
		return convertMapValues(inner)
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(inner))
		for k, v := range inner {
			out[fmt.Sprintf("%v", ToGo(k))] = ToGo(v)
		}
		return out
	default:
		return inner
	}
}

func convertElement(elem any) any {
	switch v := elem.(type) {
	case ref.Val:
		return ToGo(v)
	case map[string]any:
		return convertMapValues(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = convertElement(e)
		}
		return out
	default:
		return elem
	}
}

func convertMapValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertElement(v)
	}
	return out
}

var celFunctionPattern = regexp.MustCompile(
	`\b(map|filter|all|any|exists|exists_one|dyn)\s*\(`)

var celOperators = []string{"==", "!=", "<=", ">=", "<", ">", "&&", "||", "!"}

// IsCELExpression reports whether expr needs full CEL evaluation rather
// than simple path navigation: bracket indexing, comprehension macros, or
// comparison and boolean operators.
func IsCELExpression(expr string) bool {
	if containsBracketPair(expr) {
		return true
	}
	if celFunctionPattern.MatchString(expr) {
		return true
	}
	for _, op := range celOperators {
		if contains(expr, op) {
			return true
		}
	}
	return false
}

func containsBracketPair(s string) bool {
	return contains(s, "[") && contains(s, "]")
}

func contains(s, substr string) bool {
	return len(s) > 0 && len(substr) > 0 &&
		regexp.MustCompile(regexp.QuoteMeta(substr)).MatchString(s)
}

// ParseCEL breaks a dotted navigation expression like "a.b[0].c" into its
// steps. Bracketed segments come back without the brackets.
func ParseCEL(expr string) ([]string, error) {
	re := regexp.MustCompile(`([a-zA-Z0-9_]+|\[([^\]]+)\])`)
	matches := re.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("invalid expression: %s", expr)
	}

	steps := make([]string, 0, len(matches))
	for _, match := range matches {
		if match[2] != "" {
			steps = append(steps, match[2])
		} else {
			steps = append(steps, match[1])
		}
	}
	return steps, nil
}
