package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/pkg/loader"
)

func TestPrefix(t *testing.T) {
	root := build(t, "p.json", `{"a": {"x": 1, "y": {"z": 2}}, "b": [1]}`)
	document.ExpandAll(root)

	var unicode, ascii []string
	for _, n := range document.CollectVisible(root) {
		unicode = append(unicode, Prefix(n, false)+n.Key)
		ascii = append(ascii, Prefix(n, true)+n.Key)
	}

	assert.Equal(t, []string{
		"p.json",
		"├── a",
		"│   ├── x",
		"│   └── y",
		"│       └── z",
		"└── b",
		"    └── [0]",
	}, unicode)
	assert.Equal(t, []string{
		"p.json",
		"|-- a",
		"|   |-- x",
		"|   `-- y",
		"|       `-- z",
		"`-- b",
		"    `-- [0]",
	}, ascii)
}

func TestTypeIconAndIndicator(t *testing.T) {
	root := build(t, "i.json", `{"s": "", "t": true, "f": false, "n": 1, "z": null, "e": {}, "o": {"k": 1}, "l": [1], "el": []}`)

	tests := []struct {
		key       string
		icon      string
		indicator string
	}{
		{"s", "℀ ", ""},
		{"t", "☒ ", ""},
		{"f", "☐ ", ""},
		{"n", "⅑ ", ""},
		{"z", "⊘ ", ""},
		{"e", "⁞ ", ""},
		{"o", "", "▶ "},
		{"l", "", "▶ "},
		{"el", "", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n := child(t, root, tt.key)
			assert.Equal(t, tt.icon, TypeIcon(n))
			assert.Equal(t, tt.indicator, Indicator(n, false))
		})
	}

	assert.Equal(t, "", TypeIcon(root))
	assert.Equal(t, "▼ ", Indicator(root, false))
	assert.Equal(t, "v ", Indicator(root, true))
	assert.Equal(t, "> ", Indicator(child(t, root, "o"), true))
}

func TestArrayPreview(t *testing.T) {
	root := build(t, "a.json", `{"mixed": ["a", 1, true, null, {"k": 1}, [2]], "nums": [10, 20, 30, 40, 50], "empty": []}`)
	mixed := child(t, root, "mixed")
	nums := child(t, root, "nums")

	t.Run("fits", func(t *testing.T) {
		p := ArrayPreview(mixed, 100)
		assert.Equal(t, `"a", 1, true, null, {...}, [...]`, p.String())
		assert.False(t, p.Truncated)
		require.Len(t, p.Tokens, 6)
		assert.Equal(t, loader.KindString, p.Tokens[0].Kind)
		assert.Equal(t, loader.KindArray, p.Tokens[5].Kind)
	})

	t.Run("truncated", func(t *testing.T) {
		// ": " + "10, 20" = 8 columns; the third item needs 4 more plus 3 for "...".
		p := ArrayPreview(nums, 14)
		assert.Equal(t, "10, 20...", p.String())
		assert.True(t, p.Truncated)
	})

	t.Run("no room", func(t *testing.T) {
		p := ArrayPreview(nums, 2)
		assert.Empty(t, p.Tokens)
		assert.False(t, p.Truncated)
	})

	t.Run("control characters", func(t *testing.T) {
		n := child(t, build(t, "b.json", `{"arr": ["x\ny", 2]}`), "arr")
		assert.Equal(t, `"x\ny", 2`, ArrayPreview(n, 100).String())
	})

	assert.True(t, HasPreview(nums))
	assert.False(t, HasPreview(child(t, root, "empty")))
	assert.False(t, HasPreview(root))
	nums.Expanded = true
	assert.False(t, HasPreview(nums))
}
