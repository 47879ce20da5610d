package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandFixture() map[string]any {
	return map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
		},
		"list": []any{1, []any{2}},
	}
}

func resolve(t *testing.T, policy ExpandPolicy) Expansion[string] {
	t.Helper()
	return ResolveExpansion(expandFixture(), DefaultConverter{}, policy, false, PointerID)
}

func TestResolveExpansionNone(t *testing.T) {
	exp := resolve(t, ExpandNone())
	assert.False(t, exp.All)
	assert.Empty(t, exp.Expanded)
	assert.False(t, exp.Expands(""))
}

func TestResolveExpansionAll(t *testing.T) {
	exp := resolve(t, ExpandAll())
	assert.True(t, exp.All)
	assert.True(t, exp.Expands(""))
	assert.True(t, exp.Expands("/a/b"))
}

func TestResolveExpansionToLevel(t *testing.T) {
	t.Run("level zero expands only the root", func(t *testing.T) {
		exp := resolve(t, ExpandToLevel(0))
		assert.Equal(t, idSet(""), exp.Expanded)
	})

	t.Run("level one includes top level containers", func(t *testing.T) {
		exp := resolve(t, ExpandToLevel(1))
		assert.Equal(t, idSet("", "/a", "/list"), exp.Expanded)
	})

	t.Run("level two reaches nested containers", func(t *testing.T) {
		exp := resolve(t, ExpandToLevel(2))
		assert.Equal(t, idSet("", "/a", "/a/b", "/list", "/list/1"), exp.Expanded)
	})
}

func TestResolveExpansionSearchResults(t *testing.T) {
	exp := resolve(t, ExpandSearchResults("c"))
	require.NotNil(t, exp.Term)
	assert.Equal(t, "c", exp.Term.String())
	// Key "c" sits at /a/b/c; its ancestors are expanded.
	assert.Equal(t, idSet("", "/a", "/a/b"), exp.Expanded)
	// Containers with container children feed the reset set.
	assert.Equal(t, idSet("/a", "/a/b", "/list", "/list/1"), exp.Reset)
}

func TestResolveExpansionSearchResultsEmptyTerm(t *testing.T) {
	exp := resolve(t, ExpandSearchResults(""))
	assert.Nil(t, exp.Term)
	assert.False(t, exp.All)
	assert.Empty(t, exp.Expanded)
}

func TestResolveExpansionSearchResultsOrAll(t *testing.T) {
	t.Run("valid term searches", func(t *testing.T) {
		exp := resolve(t, ExpandSearchResultsOrAll("c"))
		assert.False(t, exp.All)
		assert.Equal(t, idSet("", "/a", "/a/b"), exp.Expanded)
	})

	t.Run("empty term falls back to all", func(t *testing.T) {
		exp := resolve(t, ExpandSearchResultsOrAll(""))
		assert.True(t, exp.All)
	})
}
