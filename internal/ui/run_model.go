package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunModel starts the Bubble Tea TUI for m. Width/height of 0 will
// auto-detect the terminal size (falling back to defaults). Extra
// ProgramOptions (e.g., custom IO) can be provided to mirror tea.NewProgram.
func RunModel(m *Model, width, height int, startKeys []string, opts ...tea.ProgramOption) error {
	if width > 0 || height > 0 {
		runW, runH := width, height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = defaultWidth
		}
		if runH <= 0 {
			runH = defaultHeight
		}
		m.Width, m.Height = runW, runH
		m.clamp()
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	if len(startKeys) > 0 {
		ApplyStartupKeys(m, startKeys)
		if m.Quitting() {
			return nil
		}
	}

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
