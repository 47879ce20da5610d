// Package ui implements the interactive tree explorer. The model keeps an
// expand state keyed by JSON Pointer ids and projects the document onto a
// flat row list; search rewrites the expand state so every match is
// visible.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/treex/internal/formatter"
	"github.com/oakwood-commons/treex/pkg/tree"
)

const (
	glyphCollapsed = "▸ "
	glyphExpanded  = "▾ "
	glyphLeaf      = "  "

	// chromeLines is header + separator + footer.
	chromeLines = 3
)

// Model is the top-level explorer model.
type Model struct {
	root any
	conv tree.Converter

	theme          Theme
	noColor        bool
	abbreviateRoot bool

	expanded map[string]struct{}
	rows     []row
	cursor   int
	offset   int

	searching   bool
	searchInput textinput.Model
	term        *tree.SearchTerm
	status      string
	errMsg      string

	width    int
	height   int
	quitting bool
}

// NewModel builds an explorer over root. The initial expand state follows
// the policy; an initial search term may be applied on top of it.
func NewModel(root any, opts Options) *Model {
	conv := opts.Converter
	if conv == nil {
		conv = tree.DefaultConverter{}
	}

	input := textinput.New()
	input.Placeholder = "search"
	input.Prompt = "/"
	input.CharLimit = 128
	input.SetWidth(40)

	m := &Model{
		root:           root,
		conv:           conv,
		theme:          DefaultTheme(),
		noColor:        opts.NoColor,
		abbreviateRoot: opts.AbbreviateRoot,
		expanded:       make(map[string]struct{}),
		searchInput:    input,
		width:          80,
		height:         24,
	}
	m.applyPolicy(opts.Expand)
	if opts.Search != "" {
		m.applySearch(opts.Search)
	}
	m.refresh()
	return m
}

// applyPolicy seeds the expand state from an expand policy.
func (m *Model) applyPolicy(policy tree.ExpandPolicy) {
	exp := tree.ResolveExpansion(m.root, m.conv, policy, m.abbreviateRoot, tree.PointerID)
	switch {
	case exp.All:
		m.expanded = containerIDs(m.root, m.conv)
	case exp.Expanded != nil:
		m.expanded = make(map[string]struct{}, len(exp.Expanded))
		for id := range exp.Expanded {
			m.expanded[id] = struct{}{}
		}
	default:
		m.expanded = map[string]struct{}{"": {}}
	}
	if exp.Term != nil {
		m.term = exp.Term
	}
}

// applySearch recomputes matches, collapses every container in the reset
// set, then opens everything on a path to a match.
func (m *Model) applySearch(raw string) {
	term, err := tree.NewSearchTerm(raw)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	reset := make(map[string]struct{})
	matched := tree.FindMatchingPaths(m.root, m.conv, term, m.abbreviateRoot, tree.PointerID, reset)
	for id := range reset {
		delete(m.expanded, id)
	}
	for id := range matched {
		m.expanded[id] = struct{}{}
	}

	m.term = &term
	m.errMsg = ""
	m.status = fmt.Sprintf("search %q: %d branches open", term.String(), len(matched))
	m.refresh()
	m.cursor = 0
	m.offset = 0
}

func (m *Model) clearSearch() {
	m.term = nil
	m.status = ""
	m.refresh()
}

func (m *Model) refresh() {
	m.rows = flattenTree(m.root, m.conv, m.expanded)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	visible := m.visibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) visibleLines() int {
	lines := m.height - chromeLines
	if lines < 1 {
		lines = 1
	}
	return lines
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.SetWidth(msg.Width - 4)
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		if strings.TrimSpace(m.searchInput.Value()) == "" {
			m.clearSearch()
		}
		return m, nil
	}

	// Live search: every edit re-runs the traversal. The reset set covers
	// every container, so stale expansions from earlier prefixes collapse
	// before the new matches open.
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if raw := strings.TrimSpace(m.searchInput.Value()); raw == "" {
		m.clearSearch()
	} else {
		m.applySearch(raw)
	}
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clampScroll()

	case "g", "home":
		m.cursor = 0
		m.clampScroll()

	case "G", "end":
		m.cursor = len(m.rows) - 1
		m.clampScroll()

	case "enter", "space", " ":
		m.toggleCursor()

	case "right", "l":
		if r := m.currentRow(); r != nil && r.expandable && !r.expanded {
			m.expanded[r.id] = struct{}{}
			m.refresh()
		} else if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.clampScroll()
		}

	case "left", "h":
		r := m.currentRow()
		switch {
		case r == nil:
		case r.expandable && r.expanded:
			delete(m.expanded, r.id)
			m.refresh()
		default:
			m.moveToParent()
		}

	case "e":
		m.expanded = containerIDs(m.root, m.conv)
		m.refresh()

	case "c":
		m.expanded = map[string]struct{}{"": {}}
		m.cursor = 0
		m.refresh()

	case "/":
		m.searching = true
		m.errMsg = ""
		if m.term != nil {
			m.searchInput.SetValue(m.term.String())
		}
		return m, m.searchInput.Focus()

	case "esc":
		if m.term != nil {
			m.clearSearch()
		}
	}
	return m, nil
}

func (m *Model) toggleCursor() {
	r := m.currentRow()
	if r == nil || !r.expandable {
		return
	}
	if r.expanded {
		delete(m.expanded, r.id)
	} else {
		m.expanded[r.id] = struct{}{}
	}
	m.refresh()
}

func (m *Model) moveToParent() {
	r := m.currentRow()
	if r == nil || r.id == "" {
		return
	}
	parent := parentID(r.id)
	for i, candidate := range m.rows {
		if candidate.id == parent {
			m.cursor = i
			m.clampScroll()
			return
		}
	}
}

func (m *Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.separatorLine())
	b.WriteString("\n")

	visible := m.visibleLines()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	for i := end - m.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.footerLine())

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m *Model) headerLine() string {
	id := ""
	if r := m.currentRow(); r != nil {
		id = r.id
	}
	if id == "" {
		id = rootLabel
	}
	text := "Path: " + id
	if m.noColor {
		return text
	}
	return m.theme.Path.Render(text)
}

func (m *Model) separatorLine() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	sep := strings.Repeat("─", width)
	if m.noColor {
		return sep
	}
	return m.theme.Separator.Render(sep)
}

func (m *Model) footerLine() string {
	if m.searching {
		return m.searchInput.View()
	}
	if m.errMsg != "" {
		if m.noColor {
			return m.errMsg
		}
		return m.theme.Error.Render(m.errMsg)
	}
	if m.status != "" {
		if m.noColor {
			return m.status
		}
		return m.theme.Status.Render(m.status)
	}
	help := "j/k move · enter toggle · e/c expand/collapse all · / search · q quit"
	if m.noColor {
		return help
	}
	return m.theme.Help.Render(help)
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]

	marker := "  "
	if i == m.cursor {
		marker = "❯ "
		if !m.noColor {
			marker = m.theme.Cursor.Render("❯") + " "
		}
	}

	glyph := glyphLeaf
	if r.expandable {
		glyph = glyphCollapsed
		if r.expanded {
			glyph = glyphExpanded
		}
	}

	indent := strings.Repeat("  ", r.depth)
	label := m.renderLabel(r)

	var rest string
	switch {
	case !r.expandable:
		rest = ": " + m.renderValue(r)
	case !r.expanded:
		rest = " " + m.renderSummary(r)
	}

	return marker + indent + glyph + label + rest
}

func (m *Model) renderLabel(r row) string {
	if r.isIndex {
		label := "[" + r.label + "]"
		if m.noColor {
			return label
		}
		return m.theme.Index.Render(label)
	}

	label := formatter.HighlightMatches(r.label, m.term, m.noColor)
	if m.noColor {
		return label
	}
	return m.theme.Key.Render(label)
}

func (m *Model) renderValue(r row) string {
	display := r.value.Display
	if r.value.Kind == tree.KindString {
		display = formatter.Stringify(display)
	}
	display = formatter.Truncate(display, m.valueWidth(r))
	display = formatter.HighlightMatches(display, m.term, m.noColor)
	if m.noColor {
		return display
	}
	return m.theme.Value.Render(display)
}

func (m *Model) renderSummary(r row) string {
	var summary string
	if r.value.Kind == tree.KindArray {
		summary = fmt.Sprintf("[%d items]", len(r.value.Entries))
	} else {
		summary = fmt.Sprintf("{%d keys}", len(r.value.Entries))
	}
	if m.noColor {
		return summary
	}
	return m.theme.Summary.Render(summary)
}

func (m *Model) valueWidth(r row) int {
	width := m.width - 2*r.depth - len(r.label) - 8
	if width < 16 {
		width = 16
	}
	return width
}

// Rows exposes the visible rows, primarily for tests.
func (m *Model) Rows() []row {
	return m.rows
}

// Expanded reports whether the container id is currently open.
func (m *Model) Expanded(id string) bool {
	_, ok := m.expanded[id]
	return ok
}

// Term returns the active search term, or nil.
func (m *Model) Term() *tree.SearchTerm {
	return m.term
}
