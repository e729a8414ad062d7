package ui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMapMatches(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name    string
		key     string
		binding key.Binding
	}{
		{"vim down", "j", km.Down},
		{"arrow up", "up", km.Up},
		{"expand all alias", "=", km.ExpandAll},
		{"collapse all alias", "_", km.CollapseAll},
		{"slash searches keys", "/", km.SearchKey},
		{"shift S searches values", "S", km.SearchValue},
		{"ctrl+c quits", "ctrl+c", km.Quit},
		{"page down", "pgdown", km.PageDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(keyPressFor(tt.key), tt.binding))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	km := DefaultKeyMap()
	require.NoError(t, km.ApplyOverrides(map[string][]string{
		"quit":         {"x"},
		"cycle_scheme": {},
	}))

	assert.True(t, key.Matches(keyPressFor("x"), km.Quit))
	assert.False(t, key.Matches(keyPressFor("q"), km.Quit))
	assert.Equal(t, "x", km.Quit.Help().Key)
	assert.Equal(t, "Quit the program", km.Quit.Help().Desc)
	assert.False(t, km.CycleScheme.Enabled())
}

func TestApplyOverridesErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]string
	}{
		{"unknown action", map[string][]string{"teleport": {"x"}}},
		{"digit reserved", map[string][]string{"quit": {"5"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := DefaultKeyMap()
			require.Error(t, km.ApplyOverrides(tt.overrides))
		})
	}
}

func TestActionsSorted(t *testing.T) {
	km := DefaultKeyMap()
	actions := km.Actions()
	require.Len(t, actions, 19)
	assert.Equal(t, "clear_search", actions[0])
	assert.Equal(t, "up", actions[len(actions)-1])
}

func TestOverriddenKeyDrivesModel(t *testing.T) {
	opts := testOptions(t)
	opts.Keys = map[string][]string{"down": {"x"}}
	m, err := NewModel(testForest(t, sampleDoc), nil, opts)
	require.NoError(t, err)

	press(m, "j")
	assert.Equal(t, 0, m.Selected)
	press(m, "x")
	assert.Equal(t, 1, m.Selected)
}

func TestHiddenStatusHintWhenDisabled(t *testing.T) {
	opts := testOptions(t)
	opts.Keys = map[string][]string{"help": {}}
	m, err := NewModel(testForest(t, sampleDoc), nil, opts)
	require.NoError(t, err)

	text, hints := m.statusLine()
	assert.Equal(t, "doc.json   (q:quit)", text)
	require.Len(t, hints, 1)
	assert.NotContains(t, renderHelpScreen(m), "Show this help screen")
}

func renderHelpScreen(m *Model) string {
	m.HelpVisible = true
	defer func() { m.HelpVisible = false }()
	return m.Render()
}
