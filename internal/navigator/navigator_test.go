package navigator

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func sampleRoot() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name": "alice",
			"age":  30,
		},
		"items": []any{
			map[string]any{"id": 1, "tags": []any{"x", "y"}},
			map[string]any{"id": 2, "tags": []any{"z"}},
		},
		"bad-key": "value",
	}
}

func TestNodeAtPathRoot(t *testing.T) {
	for _, path := range []string{"", "  ", "_"} {
		result, err := NodeAtPath(sampleRoot(), path)
		if err != nil {
			t.Fatalf("path %q: unexpected error %v", path, err)
		}
		m, ok := result.(map[string]any)
		if !ok {
			t.Fatalf("path %q: expected map, got %T", path, result)
		}
		if _, ok := m["user"]; !ok {
			t.Fatalf("path %q: expected root node back", path)
		}
	}
}

func TestNodeAtPathSimple(t *testing.T) {
	tests := []struct {
		path string
		want any
	}{
		{"user.name", "alice"},
		{"user.age", 30},
		{"items.0.id", 1},
		{"items[1].id", 2},
		{"items[0].tags[1]", "y"},
		{`["bad-key"]`, "value"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result, err := NodeAtPath(sampleRoot(), tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.want {
				t.Fatalf("expected %v, got %v (%T)", tt.want, result, result)
			}
		})
	}
}

func TestNodeAtPathErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"missing key", "user.missing", "not found"},
		{"index out of range", "items[9]", "out of range"},
		{"non-numeric index", "items.first", "numeric index"},
		{"descend into scalar", "user.name.deeper", "cannot descend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NodeAtPath(sampleRoot(), tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestNodeAtPathStructs(t *testing.T) {
	type inner struct {
		Host string `json:"host"`
	}
	type outer struct {
		Server inner `json:"server"`
		Count  int
	}
	root := outer{Server: inner{Host: "localhost"}, Count: 3}

	result, err := NodeAtPath(root, "server.host")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "localhost" {
		t.Fatalf("expected localhost, got %v", result)
	}

	// Untagged fields resolve by Go name.
	result, err = NodeAtPath(root, "Count")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 3 {
		t.Fatalf("expected 3, got %v", result)
	}
}

func TestNodeAtPathJSONPath(t *testing.T) {
	t.Run("single match returns bare node", func(t *testing.T) {
		result, err := NodeAtPath(sampleRoot(), "$.user.name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "alice" {
			t.Fatalf("expected alice, got %v", result)
		}
	})

	t.Run("wildcard returns a slice", func(t *testing.T) {
		result, err := NodeAtPath(sampleRoot(), "$.items[*].id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids, ok := result.([]any)
		if !ok {
			t.Fatalf("expected []any, got %T", result)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 ids, got %v", ids)
		}
	})

	t.Run("no match errors", func(t *testing.T) {
		_, err := NodeAtPath(sampleRoot(), "$.absent.path")
		if err == nil {
			t.Fatal("expected error for unmatched JSONPath")
		}
	})

	t.Run("invalid expression errors", func(t *testing.T) {
		_, err := NodeAtPath(sampleRoot(), "$.items[")
		if err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestNodeAtPathCEL(t *testing.T) {
	result, err := NodeAtPath(sampleRoot(), "_.items.filter(x, x.id > 1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	filtered, ok := result.([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", result)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 item, got %d", len(filtered))
	}
}

func TestSetEvaluator(t *testing.T) {
	defer SetEvaluator(nil)

	called := false
	SetEvaluator(func(expr string, root any) (any, error) {
		called = true
		return "injected", nil
	})

	result, err := NodeAtPath(sampleRoot(), "_.user.name == \"alice\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected injected evaluator to be called")
	}
	if result != "injected" {
		t.Fatalf("expected injected result, got %v", result)
	}
}

func TestNodeAtPathCELError(t *testing.T) {
	defer SetEvaluator(nil)
	SetEvaluator(func(expr string, root any) (any, error) {
		return nil, fmt.Errorf("boom")
	})

	_, err := NodeAtPath(sampleRoot(), "_.x == 1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "CEL evaluation error") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"items.0", []string{"items", "0"}},
		{"items[0]", []string{"items", "0"}},
		{"items[0].tags", []string{"items", "0", "tags"}},
		{"regions.asia.countries[1]", []string{"regions", "asia", "countries", "1"}},
		{`["quoted key"]`, []string{`"quoted key"`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := parsePath(tt.path); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parsePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsComplexCEL(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"user.name", false},
		{"items[0]", false},
		{`["bad-key"]`, false},
		{"[1, 2, 3]", true},
		{`"literal"`, true},
		{`{"a": 1}`, true},
		{"_.items.filter(x, x.id > 1)", true},
		{"size(_.items)", true},
		{"_.x == 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isComplexCEL(tt.path); got != tt.want {
				t.Fatalf("isComplexCEL(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
