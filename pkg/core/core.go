// Package core is the embeddable facade over loading, path selection,
// search, and rendering. CLI and TUI both sit on top of it, and library
// users get one import instead of four.
package core

import (
	"fmt"

	"github.com/oakwood-commons/treex/internal/cel"
	"github.com/oakwood-commons/treex/internal/formatter"
	"github.com/oakwood-commons/treex/internal/navigator"
	"github.com/oakwood-commons/treex/pkg/loader"
	"github.com/oakwood-commons/treex/pkg/tree"
)

// Evaluator evaluates expressions against a root node.
type Evaluator interface {
	Evaluate(expr string, root any) (any, error)
}

// Navigator resolves path expressions into a document.
type Navigator interface {
	NodeAtPath(root any, path string) (any, error)
}

// Engine bundles the pieces needed to load, select, search, and render
// tree data. The zero value is not usable; construct with New.
type Engine struct {
	Evaluator Evaluator
	Navigator Navigator
	Converter tree.Converter

	// NoColor disables styling in rendered output.
	NoColor bool
	// MaxStringLen truncates long string values in tree output; 0 keeps
	// them whole.
	MaxStringLen int
	// AbbreviateRoot mirrors a renderer that hides the root label; it
	// changes how single top-level search hits are treated.
	AbbreviateRoot bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// WithNavigator sets a custom path navigator.
func WithNavigator(n Navigator) Option {
	return func(c *Engine) {
		c.Navigator = n
	}
}

// WithConverter sets the converter that maps raw values onto the tree
// abstraction.
func WithConverter(conv tree.Converter) Option {
	return func(c *Engine) {
		c.Converter = conv
	}
}

// WithNoColor disables styled output.
func WithNoColor(noColor bool) Option {
	return func(c *Engine) {
		c.NoColor = noColor
	}
}

// WithMaxStringLen truncates string values in rendered trees.
func WithMaxStringLen(n int) Option {
	return func(c *Engine) {
		c.MaxStringLen = n
	}
}

// WithAbbreviateRoot controls whether a lone top-level search match still
// expands the root.
func WithAbbreviateRoot(abbreviate bool) Option {
	return func(c *Engine) {
		c.AbbreviateRoot = abbreviate
	}
}

// New creates an Engine with defaults: the built-in CEL evaluator, the
// path navigator, and the reflection-based converter.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = eval
	}
	if engine.Navigator == nil {
		engine.Navigator = defaultNavigator{}
	}
	if engine.Converter == nil {
		engine.Converter = tree.DefaultConverter{}
	}
	return engine, nil
}

// LoadRoot parses input into a single root node; multi-doc inputs return a slice.
func LoadRoot(input string) (any, error) {
	return loader.LoadRoot(input)
}

// LoadFile reads a file and parses it into a single root node.
func LoadFile(path string) (any, error) {
	return loader.LoadFile(path)
}

// LoadObject accepts an already parsed object. Strings and byte slices go
// through the shared loader to preserve format auto-detection.
func LoadObject(value any) (any, error) {
	return loader.LoadObject(value)
}

// Evaluate runs the evaluator against the provided root node.
func (e *Engine) Evaluate(expr string, root any) (any, error) {
	if e == nil || e.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is not configured")
	}
	return e.Evaluator.Evaluate(expr, root)
}

// Select navigates a path expression into the root.
func (e *Engine) Select(root any, path string) (any, error) {
	if e == nil || e.Navigator == nil {
		return nil, fmt.Errorf("navigator is not configured")
	}
	return e.Navigator.NodeAtPath(root, path)
}

// Search runs a substring search over the tree and returns the expansion
// state it implies: ids whose containers must open to reveal matches, the
// reset set of every container id, and the term for highlighting.
func (e *Engine) Search(root any, rawTerm string) (tree.Expansion[string], error) {
	term, err := tree.NewSearchTerm(rawTerm)
	if err != nil {
		return tree.Expansion[string]{}, err
	}

	reset := make(map[string]struct{})
	matched := tree.FindMatchingPaths(root, e.Converter, term, e.AbbreviateRoot, tree.PointerID, reset)
	return tree.Expansion[string]{
		Expanded: matched,
		Reset:    reset,
		Term:     &term,
	}, nil
}

// Render draws the node as an ASCII tree under the given expand policy.
func (e *Engine) Render(root any, policy tree.ExpandPolicy) string {
	exp := tree.ResolveExpansion(root, e.Converter, policy, e.AbbreviateRoot, tree.PointerID)
	return formatter.FormatAsTree(root, formatter.TreeOptions{
		NoColor:      e.NoColor,
		Converter:    e.Converter,
		Expansion:    exp,
		MaxStringLen: e.MaxStringLen,
	})
}

// RenderYAML renders the node as YAML, useful for piping selections on.
func (e *Engine) RenderYAML(node any) (string, error) {
	return formatter.FormatYAML(node, formatter.YAMLFormatOptions{
		LiteralBlockStrings: true,
	})
}

// Stringify renders a node into a compact display string.
func (e *Engine) Stringify(node any) string {
	return formatter.Stringify(node)
}

type defaultNavigator struct{}

func (defaultNavigator) NodeAtPath(root any, path string) (any, error) {
	return navigator.NodeAtPath(root, path)
}
