package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/label"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	if m.Mouse {
		v.MouseMode = tea.MouseModeCellMotion
	}
	return v
}

// Render draws the current frame: the visible slice of the tree followed
// by the status bar, or the help overlay when it is open.
func (m *Model) Render() string {
	if m.HelpVisible {
		return m.renderHelp()
	}

	rows := m.displayRows()
	lines := make([]string, 0, rows+1)
	for i := 0; i < rows; i++ {
		idx := m.Offset + i
		if idx >= len(m.Visible) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.renderRow(idx))
	}
	lines = append(lines, m.renderStatus())
	return strings.Join(lines, "\n")
}

// availableWidth is the room left for a row's label once the prefix,
// indicator and icon are drawn.
func (m *Model) availableWidth(prefix string) int {
	return m.Width - (label.Width(prefix) + 4) - 5
}

func (m *Model) renderRow(idx int) string {
	n := m.Visible[idx]
	th := m.Theme()

	prefix := label.Prefix(n, m.ASCII)
	indicator := label.Indicator(n, m.ASCII)
	icon := label.TypeIcon(n)
	avail := m.availableWidth(prefix)
	content := label.WithSearch(n, m.Search, m.Sizes, avail)

	var preview label.Preview
	hasPreview := label.HasPreview(n)
	if hasPreview {
		preview = label.ArrayPreview(n, avail-label.Width(content))
		hasPreview = len(preview.Tokens) > 0 || preview.Truncated
	}

	selected := idx == m.Selected
	match := m.isMatch(n)
	if selected || match {
		plain := prefix + indicator + icon + content
		if hasPreview {
			plain += ": " + preview.String()
		}
		style := th.Match
		switch {
		case selected && match:
			style = th.SelectedMatch
		case selected:
			style = th.Selected
		}
		return style.Render(ansi.Truncate(plain, m.Width, ""))
	}

	var b strings.Builder
	b.WriteString(th.Tree.Render(prefix))
	b.WriteString(th.Indicator.Render(indicator + icon))
	b.WriteString(m.renderContent(n, content))
	if hasPreview {
		b.WriteString(m.renderPreview(preview))
	}
	return ansi.Truncate(b.String(), m.Width, "")
}

// renderContent colours a label. Scalars get a key and a value colour,
// everything else is drawn plain.
func (m *Model) renderContent(n *document.Node, content string) string {
	th := m.Theme()
	if n.IsRoot || n.HasChildren() {
		return th.Normal.Render(content)
	}
	switch n.Kind() {
	case loader.KindObject, loader.KindArray:
		return th.Normal.Render(content)
	}
	k, v, ok := label.SplitKeyValue(content, n.Key)
	if !ok {
		return th.Normal.Render(content)
	}
	return th.Key.Render(k) + th.Normal.Render(": ") + th.ValueStyle(n.Kind()).Render(v)
}

func (m *Model) renderPreview(p label.Preview) string {
	th := m.Theme()
	var b strings.Builder
	b.WriteString(th.Normal.Render(": "))
	for i, t := range p.Tokens {
		if i > 0 {
			b.WriteString(th.Normal.Render(", "))
		}
		b.WriteString(th.ValueStyle(t.Kind).Render(t.Text))
	}
	if p.Truncated {
		b.WriteString(th.Normal.Render("..."))
	}
	return b.String()
}
