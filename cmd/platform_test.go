package cmd

import (
	"os"
	"testing"

	"github.com/oakwood-commons/jview/internal/ui"
)

// TestMain stubs the clipboard so no test in the cmd package writes OSC 52
// sequences to the real terminal.
func TestMain(m *testing.M) {
	restore := ui.StubPlatformActions()
	code := m.Run()
	restore()
	os.Exit(code)
}
