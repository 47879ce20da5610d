package tree

import (
	"strconv"
	"strings"
)

// Segment identifies one step from a node to a child: an object key or an
// array index. Segments are small values copied freely; key strings are
// shared with the traversed document, never duplicated.
type Segment struct {
	key   string
	index int
	isKey bool
}

// ObjectKey returns a segment for an object property.
func ObjectKey(key string) Segment {
	return Segment{key: key, isKey: true}
}

// ArrayIndex returns a segment for an array element.
func ArrayIndex(index int) Segment {
	return Segment{index: index}
}

// IsKey reports whether the segment is an object key (as opposed to an
// array index).
func (s Segment) IsKey() bool {
	return s.isKey
}

// Key returns the object key, or "" for array indices.
func (s Segment) Key() string {
	if !s.isKey {
		return ""
	}
	return s.key
}

// Index returns the array index, or -1 for object keys.
func (s Segment) Index() int {
	if s.isKey {
		return -1
	}
	return s.index
}

// String is the display form: the raw key text, or the decimal index.
// Key matching during a search runs against this form.
func (s Segment) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

// pointerToken renders the segment as an RFC 6901 reference token,
// escaping "~" to "~0" and "/" to "~1".
func (s Segment) pointerToken() string {
	t := s.String()
	if strings.ContainsAny(t, "~/") {
		t = strings.ReplaceAll(t, "~", "~0")
		t = strings.ReplaceAll(t, "/", "~1")
	}
	return t
}

// Path is the ordered route from the root to a node. During a walk one
// shared Path is mutated in place: a segment is pushed before descending
// into a child and popped on return, so no per-node copies are made.
type Path []Segment

// Pointer renders the path as an RFC 6901 JSON Pointer. The empty path
// (the root) renders as "".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.pointerToken())
	}
	return b.String()
}

// Clone returns an independent copy of the path. Callers that retain a path
// beyond the current walk step must clone it, since the walk mutates its
// backing array.
func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// PointerID is the default path-to-identifier function: the JSON Pointer
// string itself. Equal paths always yield equal identifiers.
func PointerID(p Path) string {
	return p.Pointer()
}
