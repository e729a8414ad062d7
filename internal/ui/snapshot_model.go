package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/label"
)

// ModelSnapshotConfig configures snapshot rendering using the Model implementation.
type ModelSnapshotConfig struct {
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
	Options   Options
}

// RenderModelSnapshot renders a single frame of the viewer over forest
// after replaying the start keys.
func RenderModelSnapshot(forest document.Forest, sizes label.Sizes, cfg ModelSnapshotConfig) (string, error) {
	opts := cfg.Options
	opts.NoColor = opts.NoColor || cfg.NoColor
	m, err := NewModel(forest, sizes, opts)
	if err != nil {
		return "", err
	}
	m.Width, m.Height = defaultWidth, defaultHeight
	if cfg.Width > 0 {
		m.Width = cfg.Width
	}
	if cfg.Height > 0 {
		m.Height = cfg.Height
	}
	m.clamp()

	if len(cfg.StartKeys) > 0 {
		ApplyStartupKeys(m, cfg.StartKeys)
	}

	view := m.Render()
	if cfg.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, m.Height, m.Width), nil
}

func padSnapshotHeight(view string, height, width int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
