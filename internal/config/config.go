package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses and returns the embedded default configuration. The result
// is a deep copy, so callers may modify it.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		embeddedConfig, embeddedConfigErr = Parse(embeddedDefaultConfig)
		if embeddedConfigErr != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", embeddedConfigErr)
		}
	})
	if embeddedConfigErr != nil {
		return Config{}, embeddedConfigErr
	}
	return Merge(Config{}, embeddedConfig), nil
}

// Parse decodes a config document. Unknown keys are rejected so typos in
// user files surface instead of being ignored.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses the config file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Load returns the embedded defaults with the file at path merged on top.
// An empty path yields the defaults alone.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	user, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	return Merge(cfg, user), nil
}

// Merge returns base with every field set in override applied on top. Key
// bindings replace per action; schemes merge per role.
func Merge(base, override Config) Config {
	out := Config{UI: base.UI}
	out.UI.Keys = maps.Clone(base.UI.Keys)
	out.UI.Schemes = maps.Clone(base.UI.Schemes)

	o := override.UI
	if o.ColorScheme != "" {
		out.UI.ColorScheme = o.ColorScheme
	}
	if o.ASCII != nil {
		out.UI.ASCII = ptr(*o.ASCII)
	}
	if o.Mouse != nil {
		out.UI.Mouse = ptr(*o.Mouse)
	}
	if o.StatusTimeoutMS != nil {
		out.UI.StatusTimeoutMS = ptr(*o.StatusTimeoutMS)
	}
	if len(o.Keys) > 0 && out.UI.Keys == nil {
		out.UI.Keys = make(map[string][]string, len(o.Keys))
	}
	for action, keys := range o.Keys {
		out.UI.Keys[action] = slices.Clone(keys)
	}
	if len(o.Schemes) > 0 && out.UI.Schemes == nil {
		out.UI.Schemes = make(map[string]SchemeConfig, len(o.Schemes))
	}
	for name, scheme := range o.Schemes {
		out.UI.Schemes[name] = mergeScheme(out.UI.Schemes[name], scheme)
	}
	return out
}

func mergeScheme(base, override SchemeConfig) SchemeConfig {
	out := base
	apply := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}
	apply(override.Description, &out.Description)
	apply(override.Normal, &out.Normal)
	apply(override.SelectionFG, &out.SelectionFG)
	apply(override.SelectionBG, &out.SelectionBG)
	apply(override.Match, &out.Match)
	apply(override.SelectionMatchFG, &out.SelectionMatchFG)
	apply(override.SelectionMatchBG, &out.SelectionMatchBG)
	apply(override.Tree, &out.Tree)
	apply(override.Indicator, &out.Indicator)
	apply(override.String, &out.String)
	apply(override.Number, &out.Number)
	apply(override.Boolean, &out.Boolean)
	apply(override.Null, &out.Null)
	apply(override.Key, &out.Key)
	return out
}

// Encode renders cfg as YAML with two-space indentation.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ptr[T any](v T) *T {
	return &v
}
