package tui

import "github.com/oakwood-commons/jview/internal/ui"

// CopyToClipboard copies text to the terminal clipboard with an OSC 52
// escape sequence, the same way the viewer's copy key does.
func CopyToClipboard(text string) error {
	return ui.CopyToClipboard(text)
}
