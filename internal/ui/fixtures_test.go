package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/pkg/loader"
)

const sampleDoc = `{"name": "alice", "items": [1, 2, "x"], "nested": {"inner": {"name": true}}}`

// testForest parses inputs as doc.json, doc1.json, ... in order.
func testForest(t *testing.T, inputs ...string) document.Forest {
	t.Helper()
	var arena loader.Arena
	for i, in := range inputs {
		name := "doc.json"
		if i > 0 {
			name = "doc" + string(rune('0'+i)) + ".json"
		}
		doc, err := loader.Parse(name, []byte(in), loader.FormatJSON)
		require.NoError(t, err)
		arena.Add(doc)
	}
	return document.NewForest(arena.Documents()...)
}

func testOptions(t *testing.T) Options {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return Options{
		Mouse:   true,
		Schemes: cfg.UI.Schemes,
	}
}

// newTestModel builds an 80x24 model over the inputs with default config.
func newTestModel(t *testing.T, inputs ...string) *Model {
	t.Helper()
	m, err := NewModel(testForest(t, inputs...), nil, testOptions(t))
	require.NoError(t, err)
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyPressFor(k))
	}
	return cmd
}

func visibleKeys(m *Model) []string {
	out := make([]string, 0, len(m.Visible))
	for _, n := range m.Visible {
		out = append(out, n.Key)
	}
	return out
}
