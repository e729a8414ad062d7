// Package config holds the user-tunable settings of the viewer and the
// embedded defaults they are merged onto.
package config

// Config is the root of config.yaml.
type Config struct {
	UI UIConfig `yaml:"ui"`
}

// UIConfig controls the interactive viewer. Pointer fields distinguish
// "unset" from the zero value so user files can override single keys.
type UIConfig struct {
	ColorScheme     string                  `yaml:"color_scheme,omitempty"`
	ASCII           *bool                   `yaml:"ascii,omitempty"`
	Mouse           *bool                   `yaml:"mouse,omitempty"`
	StatusTimeoutMS *int                    `yaml:"status_timeout_ms,omitempty"`
	Keys            map[string][]string     `yaml:"keys,omitempty"`
	Schemes         map[string]SchemeConfig `yaml:"schemes,omitempty"`
}

// SchemeConfig names the colour of each role in a colour scheme. Values are
// ANSI names ("cyan"), ANSI numbers ("6", "81") or hex ("#00afff"). An
// empty value keeps the terminal default.
type SchemeConfig struct {
	Description      string `yaml:"description,omitempty"`
	Normal           string `yaml:"normal,omitempty"`
	SelectionFG      string `yaml:"selection_fg,omitempty"`
	SelectionBG      string `yaml:"selection_bg,omitempty"`
	Match            string `yaml:"match,omitempty"`
	SelectionMatchFG string `yaml:"selection_match_fg,omitempty"`
	SelectionMatchBG string `yaml:"selection_match_bg,omitempty"`
	Tree             string `yaml:"tree,omitempty"`
	Indicator        string `yaml:"indicator,omitempty"`
	String           string `yaml:"string,omitempty"`
	Number           string `yaml:"number,omitempty"`
	Boolean          string `yaml:"boolean,omitempty"`
	Null             string `yaml:"null,omitempty"`
	Key              string `yaml:"key,omitempty"`
}

// BoolValue dereferences b, returning def when it is unset.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// IntValue dereferences i, returning def when it is unset.
func IntValue(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}
