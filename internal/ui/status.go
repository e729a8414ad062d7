package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/jview/internal/label"
)

// clickHint is a status bar region that fires key when clicked. start and
// end are terminal columns, end exclusive.
type clickHint struct {
	key        string
	start, end int
}

type hintSpec struct {
	binding key.Binding
	text    string
}

// statusLine builds the status bar text and the clickable hints inside it.
func (m *Model) statusLine() (string, []clickHint) {
	var b strings.Builder
	if n := m.Current(); n != nil {
		b.WriteString(label.EscapeKey(n.StatusPath()))
	}

	var specs []hintSpec
	if m.Search.Active() {
		current, total := 0, len(m.Search.Matches)
		if total > 0 {
			current = m.Search.CurrentIndex + 1
		}
		fmt.Fprintf(&b, "   [search '%s' %d/%d]", m.Search.Term, current, total)
		specs = []hintSpec{
			{m.Keys.NextMatch, "next"},
			{m.Keys.PrevMatch, "prev"},
			{m.Keys.ClearSearch, "clear"},
		}
	} else {
		specs = []hintSpec{
			{m.Keys.Help, "help"},
			{m.Keys.Quit, "quit"},
		}
	}

	var hints []clickHint
	first := true
	for _, s := range specs {
		k := primaryKey(s.binding)
		if k == "" || !s.binding.Enabled() {
			continue
		}
		if first {
			b.WriteString("   (")
			first = false
		} else {
			b.WriteString(", ")
		}
		start := label.Width(b.String())
		b.WriteString(k + ":" + s.text)
		hints = append(hints, clickHint{key: k, start: start, end: label.Width(b.String())})
	}
	if !first {
		b.WriteString(")")
	}
	return b.String(), hints
}

func (m *Model) renderStatus() string {
	if m.Prompting() {
		return ansi.Truncate(m.prompt.View(), m.Width, "")
	}
	text := m.status
	if text == "" {
		text, _ = m.statusLine()
	}
	text = ansi.Truncate(text, m.Width, "")
	if pad := m.Width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return m.Theme().Status.Render(text)
}
