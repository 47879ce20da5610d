package tree

type expandMode int

const (
	expandNone expandMode = iota
	expandAll
	expandToLevel
	expandSearch
	expandSearchOrAll
)

// ExpandPolicy decides which containers start expanded when a document is
// first shown. Construct one with the Expand* helpers.
type ExpandPolicy struct {
	mode  expandMode
	level int
	term  string
}

// ExpandNone collapses everything.
func ExpandNone() ExpandPolicy {
	return ExpandPolicy{mode: expandNone}
}

// ExpandAll expands every container.
func ExpandAll() ExpandPolicy {
	return ExpandPolicy{mode: expandAll}
}

// ExpandToLevel expands containers up to and including the given depth;
// level 0 expands only the root.
func ExpandToLevel(level int) ExpandPolicy {
	if level < 0 {
		level = 0
	}
	return ExpandPolicy{mode: expandToLevel, level: level}
}

// ExpandSearchResults expands exactly the containers needed to reveal every
// match for term. An unparsable (empty) term behaves like ExpandNone.
func ExpandSearchResults(term string) ExpandPolicy {
	return ExpandPolicy{mode: expandSearch, term: term}
}

// ExpandSearchResultsOrAll is ExpandSearchResults, falling back to
// ExpandAll when the term is unparsable.
func ExpandSearchResultsOrAll(term string) ExpandPolicy {
	return ExpandPolicy{mode: expandSearchOrAll, term: term}
}

// Expansion is a resolved ExpandPolicy: the concrete id sets a renderer
// applies before showing a document.
type Expansion[ID comparable] struct {
	// Expanded holds the ids that must start expanded. Ignored when All is set.
	Expanded map[ID]struct{}
	// Reset holds the ids whose previous expansion state should be cleared
	// before Expanded is applied. Populated by search policies only.
	Reset map[ID]struct{}
	// Term is the active search term for search policies with valid input,
	// for use by match highlighting.
	Term *SearchTerm
	// All expands every container regardless of ids.
	All bool
}

// Expands reports whether the node with the given id starts expanded.
func (e Expansion[ID]) Expands(id ID) bool {
	if e.All {
		return true
	}
	_, ok := e.Expanded[id]
	return ok
}

// ResolveExpansion turns a policy into the id sets for one document.
// abbreviateRoot mirrors the renderer's root presentation and feeds the
// search tie-break; it has no effect on the other policies.
func ResolveExpansion[ID comparable](
	root any,
	conv Converter,
	policy ExpandPolicy,
	abbreviateRoot bool,
	makeID func(Path) ID,
) Expansion[ID] {
	switch policy.mode {
	case expandAll:
		return Expansion[ID]{All: true}

	case expandToLevel:
		expanded := make(map[ID]struct{})
		path := make(Path, 0, 8)
		collectToLevel(root, conv, policy.level, &path, expanded, makeID)
		return Expansion[ID]{Expanded: expanded}

	case expandSearch, expandSearchOrAll:
		term, err := NewSearchTerm(policy.term)
		if err != nil {
			if policy.mode == expandSearchOrAll {
				return Expansion[ID]{All: true}
			}
			return Expansion[ID]{Expanded: make(map[ID]struct{})}
		}
		reset := make(map[ID]struct{})
		matches := FindMatchingPaths(root, conv, term, abbreviateRoot, makeID, reset)
		return Expansion[ID]{Expanded: matches, Reset: reset, Term: &term}

	default:
		return Expansion[ID]{Expanded: make(map[ID]struct{})}
	}
}

// collectToLevel registers every container at depth <= level, where the
// root sits at depth 0.
func collectToLevel[ID comparable](
	v any,
	conv Converter,
	level int,
	path *Path,
	expanded map[ID]struct{},
	makeID func(Path) ID,
) {
	val := conv.Convert(v)
	if !val.Kind.Expandable() {
		return
	}
	if len(*path) <= level {
		expanded[makeID(*path)] = struct{}{}
	}
	if len(*path) >= level {
		// Children sit below the cutoff; nothing further can qualify.
		return
	}
	for _, entry := range val.Entries {
		*path = append(*path, entry.Segment)
		collectToLevel(entry.Child, conv, level, path, expanded, makeID)
		*path = (*path)[:len(*path)-1]
	}
}
