package tui

import (
	"time"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/internal/ui"
)

// Config holds host-provided settings for running the viewer.
type Config struct {
	// Name labels the root row. Defaults to "document".
	Name          string
	Width         int
	Height        int
	NoColor       bool
	ASCII         bool
	Mouse         bool
	ColorScheme   string
	StatusTimeout time.Duration
	StartKeys     []string
	// SearchTerm starts the viewer with a key search.
	SearchTerm string
	// Level starts the viewer expanded to this nesting level.
	Level *int
	// Keys overrides bindings per action, e.g. {"quit": {"x"}}.
	Keys    map[string][]string
	Schemes map[string]config.SchemeConfig
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	cfg := Config{
		Name:          "document",
		Mouse:         true,
		ColorScheme:   "default",
		StatusTimeout: ui.DefaultStatusTimeout,
	}
	if embedded, err := config.Default(); err == nil {
		cfg.ASCII = config.BoolValue(embedded.UI.ASCII, false)
		cfg.Mouse = config.BoolValue(embedded.UI.Mouse, true)
		if embedded.UI.ColorScheme != "" {
			cfg.ColorScheme = embedded.UI.ColorScheme
		}
		cfg.Keys = embedded.UI.Keys
		cfg.Schemes = embedded.UI.Schemes
	}
	return cfg
}

func (c Config) options() ui.Options {
	return ui.Options{
		ASCII:         c.ASCII,
		Mouse:         c.Mouse,
		NoColor:       c.NoColor,
		ColorScheme:   c.ColorScheme,
		StatusTimeout: c.StatusTimeout,
		Keys:          c.Keys,
		Schemes:       c.Schemes,
		SearchTerm:    c.SearchTerm,
		Level:         c.Level,
	}
}
