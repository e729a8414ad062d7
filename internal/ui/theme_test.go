package ui

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/jview/internal/config"
	"github.com/oakwood-commons/jview/pkg/loader"
)

func TestParseScheme(t *testing.T) {
	tests := map[string]string{
		"":           SchemeDefault,
		"Default":    SchemeDefault,
		"COLORBLIND": SchemeColorblind,
		"none":       SchemeNone,
		"mono":       SchemeNone,
		"monochrome": SchemeNone,
		"sepia":      SchemeDefault,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseScheme(in), in)
	}
}

func TestParseColor(t *testing.T) {
	assert.Nil(t, ParseColor(""))
	assert.Nil(t, ParseColor("default"))
	assert.Nil(t, ParseColor("not-a-color"))
	assert.Equal(t, lipgloss.Cyan, ParseColor("Cyan"))
	assert.Equal(t, lipgloss.BrightBlack, ParseColor("gray"))
	assert.NotNil(t, ParseColor("#ff8800"))
	assert.NotNil(t, ParseColor("214"))
}

func TestNewThemeNoColor(t *testing.T) {
	sc := config.SchemeConfig{Description: "x", String: "green"}
	th := NewTheme(SchemeDefault, sc, true)
	assert.False(t, th.Colored)
	assert.Equal(t, "Color scheme: none - Colors disabled", th.StatusMessage())
	assert.Equal(t, "v", th.String.Render("v"))
}

func TestThemeValueStyle(t *testing.T) {
	cfg, err := config.Default()
	assert.NoError(t, err)
	themes := BuildThemes(cfg.UI.Schemes, false)
	assert.Len(t, themes, len(SchemeNames))

	th := themes[0]
	assert.True(t, th.Colored)
	assert.Equal(t, th.String, th.ValueStyle(loader.KindString))
	assert.Equal(t, th.Null, th.ValueStyle(loader.KindNull))
	assert.Equal(t, th.Normal, th.ValueStyle(loader.KindObject))
	assert.Equal(t, "Color scheme: default - Balanced palette with distinct types", th.StatusMessage())
	assert.False(t, themes[2].Colored)
}

func TestSchemeIndex(t *testing.T) {
	assert.Equal(t, 0, schemeIndex("nope"))
	assert.Equal(t, 1, schemeIndex("colorblind"))
	assert.Equal(t, 2, schemeIndex("mono"))
}
