package tree

import (
	"errors"
	"strings"
)

// ErrEmptySearchTerm is returned when a search term is constructed from an
// empty string. Callers treat it as "no active search" and skip the walk.
var ErrEmptySearchTerm = errors.New("search term is empty")

// SearchTerm is a validated, ASCII-lowercased substring query. The zero
// value is invalid; construct one with NewSearchTerm.
type SearchTerm struct {
	term string
}

// NewSearchTerm validates raw user input and returns the normalized term.
// The only rejected input is the empty string; whitespace-only terms are
// valid and match literally.
func NewSearchTerm(raw string) (SearchTerm, error) {
	if raw == "" {
		return SearchTerm{}, ErrEmptySearchTerm
	}
	return SearchTerm{term: asciiLower(raw)}, nil
}

// String returns the normalized (lowercased) term.
func (t SearchTerm) String() string {
	return t.term
}

// Len returns the byte length of the normalized term. Highlighting callers
// combine it with MatchIndices to compute match spans.
func (t SearchTerm) Len() int {
	return len(t.term)
}

// Matches reports whether the display string contains the term, comparing
// ASCII case-insensitively. No locale or Unicode folding is applied.
func (t SearchTerm) Matches(display string) bool {
	return strings.Contains(asciiLower(display), t.term)
}

// MatchIndices returns the byte offset of every non-overlapping occurrence
// of the term in text, scanning left to right against the ASCII-lowercased
// form. Offsets are valid into the original text.
func (t SearchTerm) MatchIndices(text string) []int {
	if t.term == "" {
		return nil
	}
	lowered := asciiLower(text)
	var offsets []int
	for from := 0; ; {
		i := strings.Index(lowered[from:], t.term)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, from+i)
		from += i + len(t.term)
	}
}

// asciiLower lowercases A-Z only, leaving all other bytes untouched.
func asciiLower(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' })
	if i < 0 {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// FindMatchingPaths walks root depth-first and returns the identifier of
// every node that must be expanded so that each match stays visible: for a
// match at path P it records makeID over every proper prefix of P, from the
// empty (root) path up to and including P's parent. Scalar display values
// and object keys are matched; array indices never are.
//
// As a side effect the identifier of every node whose child is itself a
// container is inserted into resetIDs, independent of match outcome, so the
// caller can clear stale expansion state before applying the result.
// Pass nil to skip that bookkeeping.
//
// When abbreviateRoot is false and the walk produced exactly one identifier,
// the result is emptied: a lone identifier can only be the root's, meaning
// the only match was a top-level key or value and nothing needs revealing.
//
// makeID must be pure: equal paths must yield equal identifiers. The walk
// only collects identifiers, it never compares or interprets them. Recursion
// depth equals tree depth; there is no explicit cap, so pathological inputs
// are bounded only by the goroutine stack.
func FindMatchingPaths[ID comparable](
	root any,
	conv Converter,
	term SearchTerm,
	abbreviateRoot bool,
	makeID func(Path) ID,
	resetIDs map[ID]struct{},
) map[ID]struct{} {
	matchIDs := make(map[ID]struct{})
	path := make(Path, 0, 8)
	searchValue(root, conv, term, &path, matchIDs, makeID, resetIDs)

	if !abbreviateRoot && len(matchIDs) == 1 {
		// The only match was a top level key or value - no need to expand anything.
		clear(matchIDs)
	}
	return matchIDs
}

func searchValue[ID comparable](
	v any,
	conv Converter,
	term SearchTerm,
	path *Path,
	matchIDs map[ID]struct{},
	makeID func(Path) ID,
	resetIDs map[ID]struct{},
) {
	val := conv.Convert(v)
	if !val.Kind.Expandable() {
		if term.Matches(val.Display) {
			recordMatch(*path, matchIDs, makeID)
		}
		return
	}

	for _, entry := range val.Entries {
		*path = append(*path, entry.Segment)

		if conv.Expandable(entry.Child) && resetIDs != nil {
			resetIDs[makeID(*path)] = struct{}{}
		}

		// Indices in an array are not matchable, only object keys.
		if val.Kind == KindObject && term.Matches(entry.Segment.String()) {
			recordMatch(*path, matchIDs, makeID)
		}

		searchValue(entry.Child, conv, term, path, matchIDs, makeID, resetIDs)
		*path = (*path)[:len(*path)-1]
	}
}

// recordMatch registers every proper prefix of the matching path, so each
// containing level down to the match is marked for expansion.
func recordMatch[ID comparable](path Path, matchIDs map[ID]struct{}, makeID func(Path) ID) {
	for i := 0; i < len(path); i++ {
		matchIDs[makeID(path[:i])] = struct{}{}
	}
}
