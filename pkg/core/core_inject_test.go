package core

import (
	"fmt"
	"testing"
)

type fakeNavigator struct {
	root   any
	path   string
	result any
	err    error
}

func (f *fakeNavigator) NodeAtPath(root any, path string) (any, error) {
	f.root = root
	f.path = path
	return f.result, f.err
}

type fakeEvaluator struct {
	expr   string
	result any
}

func (f *fakeEvaluator) Evaluate(expr string, root any) (any, error) {
	f.expr = expr
	return f.result, nil
}

func TestEngineUsesInjectedNavigator(t *testing.T) {
	nav := &fakeNavigator{result: 42}
	engine, err := New(WithNavigator(nav))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out, err := engine.Select(map[string]any{"a": 1}, "a")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if out != 42 {
		t.Fatalf("Select = %v, want 42", out)
	}
	if nav.path != "a" {
		t.Fatalf("navigator path = %q, want %q", nav.path, "a")
	}
}

func TestEngineUsesInjectedEvaluator(t *testing.T) {
	eval := &fakeEvaluator{result: "out"}
	engine, err := New(WithEvaluator(eval))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out, err := engine.Evaluate("_.x", nil)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if out != "out" {
		t.Fatalf("Evaluate = %v, want out", out)
	}
	if eval.expr != "_.x" {
		t.Fatalf("evaluator expr = %q", eval.expr)
	}
}

func TestEngineNavigatorError(t *testing.T) {
	nav := &fakeNavigator{err: fmt.Errorf("nope")}
	engine, err := New(WithNavigator(nav))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := engine.Select(nil, "x"); err == nil {
		t.Fatal("expected navigator error to propagate")
	}
}
