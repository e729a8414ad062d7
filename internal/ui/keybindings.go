package ui

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap holds the viewer's key bindings. Digits 0-9 always select an
// expansion level and are not remappable.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Collapse    key.Binding
	Expand      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	SearchKey   key.Binding
	SearchValue key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	ClearSearch key.Binding
	CycleScheme key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "Move selection up or down")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Move selection down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp/PgDn", "Move one page up or down")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Move one page down")),
		Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("Home/End", "Jump to first or last item")),
		End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("End", "Jump to last item")),
		Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Collapse the current item or go to its parent")),
		Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Expand the current item")),
		ExpandAll:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "Expand all items")),
		CollapseAll: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "Collapse all items")),
		SearchKey:   key.NewBinding(key.WithKeys("s", "/"), key.WithHelp("s", "Search keys")),
		SearchValue: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "Search values")),
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n / N", "Next / previous search match")),
		PrevMatch:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "Previous search match")),
		ClearSearch: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Clear search results")),
		CycleScheme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Cycle color scheme")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Copy selected JSON to clipboard")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Show this help screen")),
		Quit:        key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "Quit the program")),
	}
}

// bindings maps config action names to the bindings they control.
func (k *KeyMap) bindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":           &k.Up,
		"down":         &k.Down,
		"page_up":      &k.PageUp,
		"page_down":    &k.PageDown,
		"home":         &k.Home,
		"end":          &k.End,
		"collapse":     &k.Collapse,
		"expand":       &k.Expand,
		"expand_all":   &k.ExpandAll,
		"collapse_all": &k.CollapseAll,
		"search_key":   &k.SearchKey,
		"search_value": &k.SearchValue,
		"next_match":   &k.NextMatch,
		"prev_match":   &k.PrevMatch,
		"clear_search": &k.ClearSearch,
		"cycle_scheme": &k.CycleScheme,
		"copy":         &k.Copy,
		"help":         &k.Help,
		"quit":         &k.Quit,
	}
}

// Actions returns the remappable action names, sorted.
func (k *KeyMap) Actions() []string {
	b := k.bindings()
	out := make([]string, 0, len(b))
	for name := range b {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ApplyOverrides replaces the keys of each named action. Digits are
// reserved for expansion levels.
func (k *KeyMap) ApplyOverrides(overrides map[string][]string) error {
	b := k.bindings()
	for action, keys := range overrides {
		binding, ok := b[action]
		if !ok {
			return fmt.Errorf("unknown key action %q (valid: %s)", action, strings.Join(k.Actions(), ", "))
		}
		for _, ks := range keys {
			if len(ks) == 1 && ks[0] >= '0' && ks[0] <= '9' {
				return fmt.Errorf("key %q for action %q is reserved for expansion levels", ks, action)
			}
		}
		if len(keys) == 0 {
			binding.SetEnabled(false)
			continue
		}
		binding.SetKeys(keys...)
		binding.SetHelp(strings.Join(keys, "/"), binding.Help().Desc)
		binding.SetEnabled(true)
	}
	return nil
}

// FullHelp groups the bindings as they are listed on the help screen. The
// second binding of each pair shares the first one's help line.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PageUp, k.PageDown},
		{k.Home, k.End},
		{k.Collapse},
		{k.Expand},
		{k.ExpandAll},
		{k.CollapseAll},
		{k.SearchKey},
		{k.SearchValue},
		{k.NextMatch, k.PrevMatch},
		{k.ClearSearch},
		{k.CycleScheme},
		{k.Copy},
		{k.Help},
		{k.Quit},
	}
}

// ShortHelp lists the hints shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// primaryKey is the first key of b, used to label clickable hints.
func primaryKey(b key.Binding) string {
	keys := b.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
