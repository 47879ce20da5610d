package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/treex/pkg/tree"
)

// Options configure the explorer.
type Options struct {
	// Converter maps raw values onto the tree abstraction; nil uses the
	// default reflection-based converter.
	Converter tree.Converter
	// Expand seeds the initial expand state.
	Expand tree.ExpandPolicy
	// Search applies an initial search term on startup.
	Search string
	// NoColor disables styling.
	NoColor bool
	// AbbreviateRoot changes how a lone top-level search match is treated.
	AbbreviateRoot bool
	// Width and Height force a window size; zero auto-detects.
	Width  int
	Height int
}

// RunExplorer starts the interactive explorer over root and blocks until
// the user quits.
func RunExplorer(root any, opts Options, progOpts ...tea.ProgramOption) error {
	m := NewModel(root, opts)

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width > 0 && height > 0 {
		m.width = width
		m.height = height
		progOpts = append(progOpts, tea.WithWindowSize(width, height))
	}

	prog := tea.NewProgram(m, progOpts...)
	_, err := prog.Run()
	return err
}
