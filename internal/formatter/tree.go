package formatter

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/treex/pkg/tree"
)

var (
	treeKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	treeValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	treeIndexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TreeOptions controls the static tree rendering.
type TreeOptions struct {
	// NoColor disables all styling, including match highlighting.
	NoColor bool
	// Converter supplies the generic tree form; nil uses the default.
	Converter tree.Converter
	// Expansion decides which containers are open. Collapsed containers
	// render as a one-line summary. Its Term, when set, drives match
	// highlighting of keys and values.
	Expansion tree.Expansion[string]
	// MaxStringLen truncates inline string values; 0 disables truncation.
	MaxStringLen int
}

// FormatAsTree renders the node as an ASCII tree honoring the expansion
// set: open containers show their children, closed ones a summary. Ids are
// JSON Pointer strings as produced by tree.PointerID.
func FormatAsTree(node any, opts TreeOptions) string {
	conv := opts.Converter
	if conv == nil {
		conv = tree.DefaultConverter{}
	}

	val := conv.Convert(node)
	if !val.Kind.Expandable() {
		return leafText(val, opts) + "\n"
	}

	root := treeprint.New()
	if !opts.Expansion.Expands("") {
		root.SetValue(treeprint.Value(collapsedSummary(val)))
		return root.String()
	}

	path := make(tree.Path, 0, 8)
	addEntries(root, val, conv, &path, opts)
	return root.String()
}

func addEntries(branch treeprint.Tree, val tree.Value, conv tree.Converter, path *tree.Path, opts TreeOptions) {
	for _, entry := range val.Entries {
		*path = append(*path, entry.Segment)
		label := entryLabel(val.Kind, entry.Segment, opts)

		child := conv.Convert(entry.Child)
		switch {
		case !child.Kind.Expandable():
			branch.AddNode(treeprint.Value(label + ": " + leafText(child, opts)))
		case opts.Expansion.Expands(path.Pointer()):
			sub := branch.AddBranch(treeprint.Value(label))
			addEntries(sub, child, conv, path, opts)
		default:
			branch.AddNode(treeprint.Value(label + ": " + collapsedSummary(child)))
		}

		*path = (*path)[:len(*path)-1]
	}
}

// entryLabel renders the segment reaching a child. Object keys are match
// highlighted; array indices are display-only and never highlighted, since
// indices are exempt from matching.
func entryLabel(parent tree.Kind, seg tree.Segment, opts TreeOptions) string {
	if parent == tree.KindArray {
		label := fmt.Sprintf("[%d]", seg.Index())
		if opts.NoColor {
			return label
		}
		return treeIndexStyle.Render(label)
	}

	key := escapeScalarString(seg.Key())
	key = HighlightMatches(key, opts.Expansion.Term, opts.NoColor)
	if opts.NoColor {
		return key
	}
	return treeKeyStyle.Render(key)
}

func leafText(val tree.Value, opts TreeOptions) string {
	text := escapeScalarString(val.Display)
	if val.Kind == tree.KindString && opts.MaxStringLen > 0 {
		text = Truncate(text, opts.MaxStringLen)
	}
	text = HighlightMatches(text, opts.Expansion.Term, opts.NoColor)
	if opts.NoColor {
		return text
	}
	return treeValueStyle.Render(text)
}

func collapsedSummary(val tree.Value) string {
	if val.Kind == tree.KindArray {
		return fmt.Sprintf("[%d items]", len(val.Entries))
	}
	return fmt.Sprintf("{%d keys}", len(val.Entries))
}
