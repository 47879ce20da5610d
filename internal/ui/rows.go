package ui

import (
	"github.com/oakwood-commons/treex/pkg/tree"
)

// row is one visible line of the explorer: a node at a depth, addressed by
// its JSON Pointer id.
type row struct {
	id         string
	depth      int
	label      string
	isIndex    bool
	value      tree.Value
	expandable bool
	expanded   bool
}

// rootLabel is shown for the document root, which has no key of its own.
const rootLabel = "."

// flattenTree projects the tree onto the visible row list, descending only
// into containers whose id is in the expanded set.
func flattenTree(root any, conv tree.Converter, expanded map[string]struct{}) []row {
	val := conv.Convert(root)
	if !val.Kind.Expandable() {
		return []row{{id: "", label: rootLabel, value: val}}
	}

	_, rootOpen := expanded[""]
	rows := []row{{
		id:         "",
		label:      rootLabel,
		value:      val,
		expandable: true,
		expanded:   rootOpen,
	}}
	if rootOpen {
		path := make(tree.Path, 0, 8)
		rows = appendEntries(rows, val, conv, &path, 1, expanded)
	}
	return rows
}

func appendEntries(rows []row, val tree.Value, conv tree.Converter, path *tree.Path, depth int, expanded map[string]struct{}) []row {
	for _, entry := range val.Entries {
		*path = append(*path, entry.Segment)
		id := path.Pointer()

		child := conv.Convert(entry.Child)
		r := row{
			id:         id,
			depth:      depth,
			isIndex:    !entry.Segment.IsKey(),
			label:      entry.Segment.String(),
			value:      child,
			expandable: child.Kind.Expandable(),
		}
		if r.expandable {
			_, r.expanded = expanded[id]
		}
		rows = append(rows, r)

		if r.expanded {
			rows = appendEntries(rows, child, conv, path, depth+1, expanded)
		}
		*path = (*path)[:len(*path)-1]
	}
	return rows
}

// containerIDs returns the id of every container in the tree, used to
// expand everything at once.
func containerIDs(root any, conv tree.Converter) map[string]struct{} {
	ids := make(map[string]struct{})
	val := conv.Convert(root)
	if !val.Kind.Expandable() {
		return ids
	}
	ids[""] = struct{}{}
	path := make(tree.Path, 0, 8)
	collectContainerIDs(val, conv, &path, ids)
	return ids
}

func collectContainerIDs(val tree.Value, conv tree.Converter, path *tree.Path, ids map[string]struct{}) {
	for _, entry := range val.Entries {
		*path = append(*path, entry.Segment)
		child := conv.Convert(entry.Child)
		if child.Kind.Expandable() {
			ids[path.Pointer()] = struct{}{}
			collectContainerIDs(child, conv, path, ids)
		}
		*path = (*path)[:len(*path)-1]
	}
}

// parentID returns the pointer id of the parent container, or "" for
// top-level entries. The root's parent is the root itself.
func parentID(id string) string {
	if id == "" {
		return ""
	}
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '/' {
			return id[:i]
		}
	}
	return ""
}
