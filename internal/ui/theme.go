package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// Built-in scheme names in cycling order.
const (
	SchemeDefault    = "default"
	SchemeColorblind = "colorblind"
	SchemeNone       = "none"
)

// SchemeNames lists the schemes cycled by the scheme key.
var SchemeNames = []string{SchemeDefault, SchemeColorblind, SchemeNone}

// ParseScheme maps a user supplied scheme name to a built-in one. Matching
// is case-insensitive; "mono" and "monochrome" mean none and anything
// unknown falls back to default.
func ParseScheme(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemeColorblind:
		return SchemeColorblind
	case SchemeNone, "mono", "monochrome":
		return SchemeNone
	}
	return SchemeDefault
}

// Theme holds the resolved styles of one colour scheme.
type Theme struct {
	Name        string
	Description string
	Colored     bool

	Normal        lipgloss.Style
	Tree          lipgloss.Style
	Indicator     lipgloss.Style
	Key           lipgloss.Style
	String        lipgloss.Style
	Number        lipgloss.Style
	Boolean       lipgloss.Style
	Null          lipgloss.Style
	Selected      lipgloss.Style
	Match         lipgloss.Style
	SelectedMatch lipgloss.Style
	Status        lipgloss.Style
	Dim           lipgloss.Style
}

var namedColors = map[string]color.Color{
	"black":          lipgloss.Black,
	"red":            lipgloss.Red,
	"green":          lipgloss.Green,
	"yellow":         lipgloss.Yellow,
	"blue":           lipgloss.Blue,
	"magenta":        lipgloss.Magenta,
	"cyan":           lipgloss.Cyan,
	"white":          lipgloss.White,
	"bright_black":   lipgloss.BrightBlack,
	"gray":           lipgloss.BrightBlack,
	"bright_red":     lipgloss.BrightRed,
	"bright_green":   lipgloss.BrightGreen,
	"bright_yellow":  lipgloss.BrightYellow,
	"bright_blue":    lipgloss.BrightBlue,
	"bright_magenta": lipgloss.BrightMagenta,
	"bright_cyan":    lipgloss.BrightCyan,
	"bright_white":   lipgloss.BrightWhite,
}

// ParseColor resolves an ANSI colour name, ANSI number or hex value. Empty
// and unrecognised values yield nil, meaning the terminal default.
func ParseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return nil
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if _, isNone := lipgloss.Color(s).(lipgloss.NoColor); isNone {
		return nil
	}
	return lipgloss.Color(s)
}

func fg(c string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if col := ParseColor(c); col != nil {
		s = s.Foreground(col)
	}
	return s
}

func fgbg(f, b string) lipgloss.Style {
	s := fg(f)
	if col := ParseColor(b); col != nil {
		s = s.Background(col)
	}
	return s
}

// NewTheme builds a theme from its configured colours. The none scheme, and
// any scheme when colour is disabled, renders with attributes only.
func NewTheme(name string, sc config.SchemeConfig, noColor bool) Theme {
	th := Theme{Name: name, Description: sc.Description}
	th.Dim = lipgloss.NewStyle().Faint(true)
	if name == SchemeNone || noColor {
		th.Normal = lipgloss.NewStyle()
		th.Tree, th.Indicator, th.Key = th.Normal, th.Normal, th.Normal
		th.String, th.Number, th.Boolean, th.Null = th.Normal, th.Normal, th.Normal, th.Normal
		th.Selected = lipgloss.NewStyle().Reverse(true)
		th.Match = lipgloss.NewStyle().Bold(true)
		th.SelectedMatch = lipgloss.NewStyle().Reverse(true).Bold(true)
		th.Status = lipgloss.NewStyle().Reverse(true)
		return th
	}

	th.Colored = true
	th.Normal = fg(sc.Normal)
	th.Tree = fg(sc.Tree)
	th.Indicator = fg(sc.Indicator)
	th.Key = fg(sc.Key)
	th.String = fg(sc.String)
	th.Number = fg(sc.Number)
	th.Boolean = fg(sc.Boolean)
	th.Null = fg(sc.Null)
	th.Selected = fgbg(sc.SelectionFG, sc.SelectionBG)
	th.Match = fg(sc.Match).Bold(true)
	th.SelectedMatch = fgbg(sc.SelectionMatchFG, sc.SelectionMatchBG).Bold(true)
	th.Status = th.Selected
	return th
}

// ValueStyle is the style for a value of kind k.
func (t Theme) ValueStyle(k loader.Kind) lipgloss.Style {
	switch k {
	case loader.KindString:
		return t.String
	case loader.KindNumber:
		return t.Number
	case loader.KindBool:
		return t.Boolean
	case loader.KindNull:
		return t.Null
	}
	return t.Normal
}

// StatusMessage announces the theme after it was switched to.
func (t Theme) StatusMessage() string {
	if !t.Colored {
		return "Color scheme: none - Colors disabled"
	}
	msg := "Color scheme: " + t.Name
	if t.Description != "" {
		msg += " - " + t.Description
	}
	return msg
}

// BuildThemes resolves the built-in schemes from cfg in cycling order.
func BuildThemes(schemes map[string]config.SchemeConfig, noColor bool) []Theme {
	out := make([]Theme, 0, len(SchemeNames))
	for _, name := range SchemeNames {
		out = append(out, NewTheme(name, schemes[name], noColor))
	}
	return out
}

func schemeIndex(name string) int {
	name = ParseScheme(name)
	for i, n := range SchemeNames {
		if n == name {
			return i
		}
	}
	return 0
}
