package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchTerm(t *testing.T) {
	t.Run("empty input is rejected", func(t *testing.T) {
		_, err := NewSearchTerm("")
		require.ErrorIs(t, err, ErrEmptySearchTerm)
	})

	t.Run("input is ascii lowercased", func(t *testing.T) {
		term, err := NewSearchTerm("FooBAR")
		require.NoError(t, err)
		assert.Equal(t, "foobar", term.String())
		assert.Equal(t, 6, term.Len())
	})

	t.Run("whitespace only is valid", func(t *testing.T) {
		term, err := NewSearchTerm("  ")
		require.NoError(t, err)
		assert.True(t, term.Matches("a  b"))
		assert.False(t, term.Matches("a b"))
	})

	t.Run("non ascii runes are preserved", func(t *testing.T) {
		term, err := NewSearchTerm("Größe")
		require.NoError(t, err)
		// Only A-Z folds; ö and ß are untouched.
		assert.Equal(t, "größe", term.String())
	})
}

func TestSearchTermMatches(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		display string
		want    bool
	}{
		{"exact", "foo", "foo", true},
		{"substring", "oob", "foobar", true},
		{"case insensitive term", "FOO", "foobar", true},
		{"case insensitive display", "foo", "FOOBAR", true},
		{"no occurrence", "baz", "foobar", false},
		{"longer than display", "foobar", "foo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewSearchTerm(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.Matches(tt.display))
		})
	}
}

// Matching must agree regardless of which side carries the upper case.
func TestSearchTermCaseSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"needle", "a Needle in a haystack"},
		{"NEEDLE", "a needle in a haystack"},
		{"nEeDlE", "A NEEDLE IN A HAYSTACK"},
	}
	for _, p := range pairs {
		term, err := NewSearchTerm(p[0])
		require.NoError(t, err)
		assert.True(t, term.Matches(p[1]), "term %q should match %q", p[0], p[1])
	}
}

func TestSearchTermMatchIndices(t *testing.T) {
	tests := []struct {
		name string
		term string
		text string
		want []int
	}{
		{"single", "bar", "foobarbaz", []int{3}},
		{"multiple", "ab", "ab__ab_ab", []int{0, 4, 7}},
		{"non overlapping", "aa", "aaaa", []int{0, 2}},
		{"mixed case", "go", "GOing to go", []int{0, 9}},
		{"none", "zz", "foobar", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewSearchTerm(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.MatchIndices(tt.text))
		})
	}
}

func mustTerm(t *testing.T, raw string) SearchTerm {
	t.Helper()
	term, err := NewSearchTerm(raw)
	require.NoError(t, err)
	return term
}

func findPaths(t *testing.T, root any, raw string, abbreviateRoot bool, reset map[string]struct{}) map[string]struct{} {
	t.Helper()
	return FindMatchingPaths(root, DefaultConverter{}, mustTerm(t, raw), abbreviateRoot, PointerID, reset)
}

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// A match at a nested leaf marks the root and every ancestor container,
// so each containing level is revealed.
func TestFindMatchingPathsAncestorClosure(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": "needle",
			},
		},
	}

	got := findPaths(t, root, "needle", false, nil)
	assert.Equal(t, idSet("", "/a", "/a/b"), got)
}

func TestFindMatchingPathsKeyMatch(t *testing.T) {
	root := map[string]any{
		"outer": map[string]any{
			"needle": 1,
			"other":  2,
		},
	}

	// The key "needle" matches; its ancestors (root and /outer) are marked.
	got := findPaths(t, root, "needle", false, nil)
	assert.Equal(t, idSet("", "/outer"), got)
}

// Array indices are never matched, only object keys and display values.
func TestFindMatchingPathsArrayIndexExemption(t *testing.T) {
	t.Run("index text alone matches nothing", func(t *testing.T) {
		root := map[string]any{"arr": []any{"a", "b", "c"}}
		got := findPaths(t, root, "2", false, nil)
		assert.Empty(t, got)
	})

	t.Run("element value still matches", func(t *testing.T) {
		root := map[string]any{"arr": []any{"a", "b", "2"}}
		got := findPaths(t, root, "2", false, nil)
		assert.Equal(t, idSet("", "/arr"), got)
	})
}

// A lone top-level match needs no expansion; the spurious root id is
// dropped unless the renderer abbreviates the root.
func TestFindMatchingPathsSingleTopLevelSuppression(t *testing.T) {
	root := map[string]any{"foo": 1, "bar": 2}

	t.Run("suppressed without root abbreviation", func(t *testing.T) {
		got := findPaths(t, root, "foo", false, nil)
		assert.Empty(t, got)
	})

	t.Run("kept with root abbreviation", func(t *testing.T) {
		got := findPaths(t, root, "foo", true, nil)
		assert.Equal(t, idSet(""), got)
	})

	t.Run("nested matches are never suppressed", func(t *testing.T) {
		nested := map[string]any{"foo": map[string]any{"bar": "x"}}
		got := findPaths(t, nested, "bar", false, nil)
		assert.Equal(t, idSet("", "/foo"), got)
	})
}

// Reset ids cover every node whose child is a container, regardless of
// whether the search matched anything.
func TestFindMatchingPathsResetIDs(t *testing.T) {
	root := map[string]any{
		"a": []any{1, 2, map[string]any{"b": 3}},
	}

	reset := make(map[string]struct{})
	got := findPaths(t, root, "no-such-term", false, reset)

	assert.Empty(t, got)
	assert.Equal(t, idSet("/a", "/a/2"), reset)
}

func TestFindMatchingPathsEmptyContainers(t *testing.T) {
	reset := make(map[string]struct{})

	got := findPaths(t, map[string]any{}, "x", false, reset)
	assert.Empty(t, got)
	assert.Empty(t, reset)

	got = findPaths(t, []any{}, "x", false, reset)
	assert.Empty(t, got)
	assert.Empty(t, reset)
}

func TestFindMatchingPathsScalarRoot(t *testing.T) {
	// A matching bare scalar has no ancestors to expand.
	got := findPaths(t, "needle", "needle", false, nil)
	assert.Empty(t, got)
}

// searchFixture is the document exercised end to end: term "g" matches the
// key "grep" and the value "Greetings!".
func searchFixture() map[string]any {
	return map[string]any{
		"foo": []any{1, 2, []any{3}},
		"bar": map[string]any{
			"qux": false,
			"thud": map[string]any{
				"a/b": []any{4, 5, map[string]any{"m~n": "Greetings!"}},
			},
			"grep": 21,
		},
		"baz": nil,
	}
}

func TestFindMatchingPathsEndToEnd(t *testing.T) {
	reset := make(map[string]struct{})
	got := findPaths(t, searchFixture(), "g", true, reset)

	assert.Equal(t, idSet(
		"",
		"/bar",
		"/bar/thud",
		"/bar/thud/a~1b",
		"/bar/thud/a~1b/2",
	), got)

	assert.Equal(t, idSet(
		"/foo",
		"/foo/2",
		"/bar",
		"/bar/thud",
		"/bar/thud/a~1b",
		"/bar/thud/a~1b/2",
	), reset)

	// Every expansion-state id touched for this document: match ids plus
	// reset ids, seven in total.
	union := make(map[string]struct{})
	for id := range got {
		union[id] = struct{}{}
	}
	for id := range reset {
		union[id] = struct{}{}
	}
	assert.Len(t, union, 7)
}

// Identifiers are opaque to the walk; any comparable type works.
func TestFindMatchingPathsCustomIDType(t *testing.T) {
	type nodeID struct{ pointer string }
	makeID := func(p Path) nodeID { return nodeID{pointer: p.Pointer()} }

	root := map[string]any{"a": map[string]any{"b": "needle"}}
	got := FindMatchingPaths(root, DefaultConverter{}, mustTerm(t, "needle"), false, makeID, nil)

	assert.Contains(t, got, nodeID{pointer: ""})
	assert.Contains(t, got, nodeID{pointer: "/a"})
	assert.Len(t, got, 2)
}
