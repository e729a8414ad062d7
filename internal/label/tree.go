package label

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// Glyphs are the characters used to draw the tree.
type Glyphs struct {
	Pipe      string
	Blank     string
	Branch    string
	LastChild string
	Expanded  string
	Collapsed string
}

var (
	unicodeGlyphs = Glyphs{
		Pipe:      "│   ",
		Blank:     "    ",
		Branch:    "├── ",
		LastChild: "└── ",
		Expanded:  "▼ ",
		Collapsed: "▶ ",
	}
	asciiGlyphs = Glyphs{
		Pipe:      "|   ",
		Blank:     "    ",
		Branch:    "|-- ",
		LastChild: "`-- ",
		Expanded:  "v ",
		Collapsed: "> ",
	}
)

// GlyphSet returns the ASCII or Unicode glyphs.
func GlyphSet(ascii bool) Glyphs {
	if ascii {
		return asciiGlyphs
	}
	return unicodeGlyphs
}

// Prefix draws the connector lines in front of n. Each ancestor below the
// root contributes a pipe unless it is the last of its siblings, and n
// itself ends in a branch or last-child corner. Roots have no prefix.
func Prefix(n *document.Node, ascii bool) string {
	if n.Parent == nil {
		return ""
	}
	g := GlyphSet(ascii)
	var parts []string
	for cur := n.Parent; cur.Parent != nil; cur = cur.Parent {
		if cur.IsLastSibling {
			parts = append(parts, g.Blank)
		} else {
			parts = append(parts, g.Pipe)
		}
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	if n.IsLastSibling {
		b.WriteString(g.LastChild)
	} else {
		b.WriteString(g.Branch)
	}
	return b.String()
}

// TypeIcon returns the icon shown before leaves. Roots, arrays and
// non-empty objects have none.
func TypeIcon(n *document.Node) string {
	if n.IsRoot {
		return ""
	}
	switch n.Kind() {
	case loader.KindString:
		return "℀ "
	case loader.KindBool:
		if loader.BoolValue(n.Value) {
			return "☒ "
		}
		return "☐ "
	case loader.KindNumber:
		return "⅑ "
	case loader.KindNull:
		return "⊘ "
	case loader.KindObject:
		if loader.Len(n.Value) == 0 {
			return "⁞ "
		}
	}
	return ""
}

// Indicator is the expand marker for nodes with children. Leaves that carry
// a type icon get nothing, other leaves two spaces of padding.
func Indicator(n *document.Node, ascii bool) string {
	if n.HasChildren() {
		g := GlyphSet(ascii)
		if n.Expanded {
			return g.Expanded
		}
		return g.Collapsed
	}
	if TypeIcon(n) != "" {
		return ""
	}
	return "  "
}

// Width is the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// ShortenPath fits path into maxWidth columns by eliding the middle of its
// directory part. Paths that already fit are returned as they are, as are
// paths that eliding would not make any shorter.
func ShortenPath(path string, maxWidth int) string {
	if Width(path) <= maxWidth {
		return path
	}

	slash := strings.LastIndex(path, "/")
	if slash < 0 {
		return takeLeft(path, maxWidth-3) + "..."
	}

	filename := path[slash+1:]
	dir := path[:slash]

	if Width(filename) > maxWidth-4 {
		return ".../" + takeLeft(filename, maxWidth-7) + "..."
	}

	remaining := maxWidth - Width(filename) - 1
	if Width(dir) <= remaining {
		return path
	}

	prefixLen := max(1, remaining/3)
	suffixLen := max(1, remaining-prefixLen-3)
	if prefixLen+suffixLen+3 >= Width(dir) {
		return path
	}
	return takeLeft(dir, prefixLen) + "..." + takeRight(dir, suffixLen) + "/" + filename
}

func takeLeft(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}

func takeRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	width := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if width+rw > w {
			break
		}
		width += rw
		i--
	}
	return string(runes[i:])
}

// PreviewToken is one rendered element of an inline array preview.
type PreviewToken struct {
	Text string
	Kind loader.Kind
}

// Preview is the inline summary shown after a collapsed array's label.
type Preview struct {
	Tokens    []PreviewToken
	Truncated bool
}

// String joins the preview the way it is drawn, without the leading ": ".
func (p Preview) String() string {
	var b strings.Builder
	for i, t := range p.Tokens {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Text)
	}
	if p.Truncated {
		b.WriteString("...")
	}
	return b.String()
}

// HasPreview reports whether n is drawn with an inline preview: a
// collapsed, non-empty, non-root array.
func HasPreview(n *document.Node) bool {
	return !n.IsRoot && !n.Expanded && n.Kind() == loader.KindArray && n.HasChildren()
}

// ArrayPreview lists the elements of n's array until budget columns are
// used up. budget includes the 2-column ": " separator in front of the
// preview. An ellipsis marks elements that did not fit.
func ArrayPreview(n *document.Node, budget int) Preview {
	var p Preview
	used := 2
	for _, c := range n.Children {
		tok := PreviewToken{Kind: c.Kind()}
		switch tok.Kind {
		case loader.KindString:
			tok.Text = "\"" + Escape(loader.StringValue(c.Value)) + "\""
		case loader.KindObject:
			tok.Text = "{...}"
		case loader.KindArray:
			tok.Text = "[...]"
		default:
			tok.Text = loader.ScalarText(c.Value)
		}

		sep := 0
		if len(p.Tokens) > 0 {
			sep = 2
		}
		w := Width(tok.Text)
		if used+sep+w > budget-3 {
			if used < budget {
				p.Truncated = true
			}
			break
		}
		used += sep + w
		p.Tokens = append(p.Tokens, tok)
	}
	return p
}
