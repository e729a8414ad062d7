// Package tui embeds the jview tree viewer in other programs.
package tui

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/label"
	"github.com/oakwood-commons/jview/internal/ui"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Document converts root into a loaded document named name. Raw input
// ([]byte or json.RawMessage) is parsed with format detection; maps,
// slices and scalars are converted directly, with map keys sorted.
func Document(name string, root any) (*loader.Document, error) {
	if strings.TrimSpace(name) == "" {
		name = "document"
	}
	switch t := root.(type) {
	case *loader.Document:
		return t, nil
	case json.RawMessage:
		return loader.Parse(name, t, loader.FormatAuto)
	case []byte:
		return loader.Parse(name, t, loader.FormatAuto)
	}
	v, err := loader.FromAny(root)
	if err != nil {
		return nil, err
	}
	return &loader.Document{Name: name, Format: loader.FormatJSON, Size: int64(len(v.Pack())), Value: v}, nil
}

func forestOf(root any, cfg Config) (document.Forest, label.Sizes, error) {
	doc, err := Document(cfg.Name, root)
	if err != nil {
		return nil, nil, err
	}
	arena := &loader.Arena{}
	arena.Add(doc)
	return document.NewForest(arena.Documents()...), label.Sizes(arena.Sizes()), nil
}

// Run starts the viewer on root and blocks until the user quits. Host
// applications can pass tea.ProgramOption values to control IO.
func Run(root any, cfg Config, opts ...tea.ProgramOption) error {
	forest, sizes, err := forestOf(root, cfg)
	if err != nil {
		return err
	}
	m, err := ui.NewModel(forest, sizes, cfg.options())
	if err != nil {
		return err
	}
	return ui.RunModel(m, cfg.Width, cfg.Height, cfg.StartKeys, opts...)
}

// RenderSnapshot renders one frame of the viewer after replaying
// cfg.StartKeys and returns it.
func RenderSnapshot(root any, cfg Config) (string, error) {
	forest, sizes, err := forestOf(root, cfg)
	if err != nil {
		return "", err
	}
	return ui.RenderModelSnapshot(forest, sizes, ui.ModelSnapshotConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		NoColor:   cfg.NoColor,
		StartKeys: cfg.StartKeys,
		Options:   cfg.options(),
	})
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
