// Package label renders the text shown for each tree row: content labels,
// type icons, tree prefixes and inline previews. Everything here is pure.
package label

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/internal/search"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// Sizes maps a root key to the byte size of its input.
type Sizes map[string]int64

// RootSummary describes the type of a root's value, e.g.
// "📦 dictionary, 3 keys", followed by the input size when known.
func RootSummary(n *document.Node, sizes Sizes) string {
	var summary string
	switch n.Kind() {
	case loader.KindObject:
		summary = "📦 dictionary, " + countNoun(loader.Len(n.Value), "key", "keys")
	case loader.KindArray:
		summary = "🗂️ list, " + countNoun(loader.Len(n.Value), "item", "items")
	case loader.KindString:
		summary = "℀ string"
	case loader.KindNumber:
		summary = "⅑ number"
	case loader.KindBool:
		summary = "☒ boolean"
	default:
		summary = "⊘ null"
	}
	if size, ok := sizes[n.Key]; ok {
		summary += ", " + FormatFileSize(size)
	}
	return summary
}

// Content returns the label for n without icon or prefix. maxWidth only
// affects roots, whose source path is shortened to fit.
func Content(n *document.Node, sizes Sizes, maxWidth int) string {
	if n.IsRoot {
		summary := RootSummary(n, sizes)
		// 4 columns for " (" and ")" plus a space of slack.
		short := ShortenPath(EscapeKey(n.Key), maxWidth-Width(summary)-4)
		return short + " (" + summary + ")"
	}

	key := EscapeKey(n.Key)
	switch n.Kind() {
	case loader.KindObject:
		return key + " (dictionary, " + countNoun(loader.Len(n.Value), "key", "keys") + ")"
	case loader.KindArray:
		return key + " (list, " + countNoun(loader.Len(n.Value), "item", "items") + ")"
	case loader.KindString:
		return key + ": \"" + Escape(loader.StringValue(n.Value)) + "\""
	default:
		return key + ": " + loader.ScalarText(n.Value)
	}
}

// WithSearch is Content plus, for roots, the number of search matches in
// that root's tree.
func WithSearch(n *document.Node, state *search.State, sizes Sizes, maxWidth int) string {
	base := Content(n, sizes, maxWidth)
	if !n.IsRoot || !state.Active() || state.Empty() {
		return base
	}
	count := state.CountUnder(n)
	if count == 0 {
		return base
	}
	i := strings.LastIndex(base, ")")
	if i < 0 {
		return base
	}
	return base[:i] + ", 🔍 " + countNoun(count, "match", "matches") + base[i:]
}

// SplitKeyValue splits a scalar label built by Content for a node with the
// given key into its key and value parts.
func SplitKeyValue(content, key string) (k, value string, ok bool) {
	k = EscapeKey(key)
	if !strings.HasPrefix(content, k+": ") {
		return content, "", false
	}
	return k, content[len(k)+2:], true
}

func countNoun(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// Escape makes a string printable on one line: backslash, quote, newline,
// carriage return and tab get their usual escapes and other control
// characters are written as \u00XX.
func Escape(s string) string {
	return escape(s, true)
}

// EscapeKey escapes only control characters, so keys and paths keep their
// quotes and backslashes but still fit on one row.
func EscapeKey(s string) string {
	return escape(s, false)
}

func escape(s string, quotes bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quotes && c == '\\':
			b.WriteString(`\\`)
		case quotes && c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FormatFileSize renders a byte count with binary units: the exact count
// for bytes, one decimal below 10, and whole numbers above.
func FormatFileSize(size int64) string {
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	switch {
	case unit == 0:
		return fmt.Sprintf("%d %s", size, units[0])
	case value < 10:
		return fmt.Sprintf("%.1f %s", value, units[unit])
	default:
		return fmt.Sprintf("%d %s", int64(value+0.5), units[unit])
	}
}
