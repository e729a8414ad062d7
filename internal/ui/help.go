package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jview/internal/clipboard"
)

const levelHelpLine = "  0-9              Expand to nesting level (0=collapse all, 1=first level, etc.)"

// helpLines lists the key bindings as shown on the help screen. Disabled
// bindings are left out.
func (m *Model) helpLines() []string {
	th := m.Theme()
	lines := []string{"JSON Viewer Key Bindings:", ""}
	for _, group := range m.Keys.FullHelp() {
		lead := group[0]
		if !lead.Enabled() || len(lead.Keys()) == 0 {
			continue
		}
		h := lead.Help()
		line := fmt.Sprintf("  %-17s%s", h.Key, h.Desc)
		if h.Desc == m.Keys.Copy.Help().Desc {
			if suffix := clipboard.HelpSuffix(getenvFn); suffix != "" {
				line += th.Dim.Render(suffix)
			}
		}
		lines = append(lines, line)
		if h.Desc == m.Keys.CollapseAll.Help().Desc {
			lines = append(lines, levelHelpLine)
		}
	}
	return append(lines, "", "Press any key to return...")
}

func (m *Model) renderHelp() string {
	border := lipgloss.NormalBorder()
	if m.ASCII {
		border = lipgloss.ASCIIBorder()
	}
	box := lipgloss.NewStyle().
		Border(border).
		Padding(0, 1).
		Render(strings.Join(m.helpLines(), "\n"))
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
