package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys simulates startup keypresses (Vim-like tokens and literal text).
// It mutates the provided model in place.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<up>").
		if strings.HasPrefix(token, `\`) {
			pressText(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				pressText(m, segment.text)
				continue
			}
			msgs, ok := keyMsgsFromToken(segment.text)
			if !ok {
				pressText(m, segment.text)
				continue
			}
			for _, msg := range msgs {
				m.Update(msg)
			}
		}
	}
}

func pressText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is a parsed piece of a token, either a <...> key or literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into <...> keys and literal text.
// Example: "s<CR>n" -> ["s", "<CR>", "n"]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		// A lone "<" with nothing inside is the literal key.
		if endIdx == -1 || endIdx == 1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}
	return segments
}

var namedKeys = map[string]tea.Key{
	"esc":       {Code: tea.KeyEscape},
	"escape":    {Code: tea.KeyEscape},
	"c-[":       {Code: tea.KeyEscape},
	"cr":        {Code: tea.KeyEnter},
	"enter":     {Code: tea.KeyEnter},
	"return":    {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"space":     {Code: tea.KeySpace, Text: " "},
	"bs":        {Code: tea.KeyBackspace},
	"backspace": {Code: tea.KeyBackspace},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"home":      {Code: tea.KeyHome},
	"end":       {Code: tea.KeyEnd},
	"pgup":      {Code: tea.KeyPgUp},
	"pageup":    {Code: tea.KeyPgUp},
	"pgdown":    {Code: tea.KeyPgDown},
	"pgdn":      {Code: tea.KeyPgDown},
	"pagedown":  {Code: tea.KeyPgDown},
	"c-c":       {Code: 'c', Mod: tea.ModCtrl},
	"ctrl+c":    {Code: 'c', Mod: tea.ModCtrl},
}

// keyMsgsFromToken parses a Vim-like token into key messages.
// Examples: "<Esc>", "<CR>", "<Up>", "<PgDn>", "<C-c>", "<?>".
// Only <...> forms are treated as keys; everything else is literal text.
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") || len(token) < 3 {
		return nil, false
	}
	inner := token[1 : len(token)-1]
	if k, ok := namedKeys[strings.ToLower(inner)]; ok {
		return []tea.KeyPressMsg{tea.KeyPressMsg(k)}, true
	}
	if r := []rune(inner); len(r) == 1 {
		return []tea.KeyPressMsg{{Code: r[0], Text: inner}}, true
	}
	return nil, false
}
