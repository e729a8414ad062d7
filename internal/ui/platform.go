package ui

import (
	"os"

	"github.com/oakwood-commons/jview/internal/clipboard"
)

// copyToClipboardFn and getenvFn are the active implementations for the
// clipboard and the environment lookups behind its status messages. Tests
// replace them via StubPlatformActions() to prevent side effects.
var (
	copyToClipboardFn = clipboard.Copy
	getenvFn          = os.Getenv
)

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// StubPlatformActions replaces the clipboard with a no-op and pins the
// environment to a terminal that supports OSC 52. It returns a restore
// function. Use in tests to prevent side effects.
func StubPlatformActions() (restore func()) {
	origCopy := copyToClipboardFn
	origEnv := getenvFn
	copyToClipboardFn = func(string) error { return nil }
	getenvFn = func(k string) string {
		if k == "TERM" {
			return "xterm-256color"
		}
		return ""
	}
	return func() {
		copyToClipboardFn = origCopy
		getenvFn = origEnv
	}
}
