package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/treex/pkg/tree"
)

var defaultMatchStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("11"))

// MatchStyle is the style applied to matched substrings. Overridable by the
// UI theme.
var MatchStyle = defaultMatchStyle

// HighlightMatches wraps every occurrence of term in text with MatchStyle.
// With a nil term, or when color is off, text is returned unchanged.
func HighlightMatches(text string, term *tree.SearchTerm, noColor bool) string {
	if term == nil || noColor {
		return text
	}
	offsets := term.MatchIndices(text)
	if len(offsets) == 0 {
		return text
	}

	var b strings.Builder
	prev := 0
	for _, off := range offsets {
		b.WriteString(text[prev:off])
		b.WriteString(MatchStyle.Render(text[off : off+term.Len()]))
		prev = off + term.Len()
	}
	b.WriteString(text[prev:])
	return b.String()
}
