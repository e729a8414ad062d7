// Package settings provides build metadata, runtime configuration, and
// context helpers used across the jview CLI and its packages.
package settings

import (
	"strings"
	"time"
)

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jview"

// Environment variables that seed the viewer options. Flags given on the
// command line take precedence over them.
const (
	EnvASCII       = "JSON_VIEW_ASCII"
	EnvNoMouse     = "JSON_VIEW_NO_MOUSE"
	EnvColorScheme = "JSON_VIEW_COLOR_SCHEME"
	EnvNoColor     = "NO_COLOR"
)

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation: logging, input handling
// and the viewer options resolved from config, environment and flags.
type Run struct {
	MinLogLevel   int8
	Format        string
	Decode        bool
	ASCII         bool
	Mouse         bool
	NoColor       bool
	ColorScheme   string
	StatusTimeout time.Duration
	ExitOnError   bool
}

// NewCliParams returns the defaults used before config and flags are applied.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:   0,
		Format:        "auto",
		Mouse:         true,
		ColorScheme:   "default",
		StatusTimeout: 3 * time.Second,
		ExitOnError:   true,
	}
}

// ApplyEnv overlays the JSON_VIEW_* variables and NO_COLOR. Any non-empty
// value switches a boolean option on.
func (r *Run) ApplyEnv(getenv func(string) string) {
	if getenv(EnvASCII) != "" {
		r.ASCII = true
	}
	if getenv(EnvNoMouse) != "" {
		r.Mouse = false
	}
	if s := strings.TrimSpace(getenv(EnvColorScheme)); s != "" {
		r.ColorScheme = s
	}
	if getenv(EnvNoColor) != "" {
		r.NoColor = true
	}
}
