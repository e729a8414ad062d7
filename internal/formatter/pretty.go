// Package formatter renders documents as indented JSON, YAML and static
// trees for non-interactive output.
package formatter

import (
	"bufio"
	"io"
	"strings"

	"github.com/tailscale/hujson"
)

// DefaultIndent is the indentation used for pretty-printed JSON.
const DefaultIndent = 2

// Pretty renders v as indented JSON. Literals are written exactly as they
// were parsed, so NaN, Infinity and -Infinity survive and numbers keep
// their source spelling. Comments and trailing commas are dropped.
func Pretty(v *hujson.Value, indent int) string {
	var b strings.Builder
	_ = WriteJSON(&b, v, indent)
	return b.String()
}

// WriteJSON writes the indented form of v to w.
func WriteJSON(w io.Writer, v *hujson.Value, indent int) error {
	if indent < 0 {
		indent = DefaultIndent
	}
	bw := bufio.NewWriter(w)
	writeValue(bw, v.Value, indent, 0)
	return bw.Flush()
}

func writeValue(w *bufio.Writer, v hujson.ValueTrimmed, indent, level int) {
	switch t := v.(type) {
	case *hujson.Object:
		if len(t.Members) == 0 {
			w.WriteString("{}")
			return
		}
		w.WriteByte('{')
		for i := range t.Members {
			if i > 0 {
				w.WriteByte(',')
			}
			newline(w, indent, level+1)
			writeValue(w, t.Members[i].Name.Value, indent, level+1)
			w.WriteString(": ")
			writeValue(w, t.Members[i].Value.Value, indent, level+1)
		}
		newline(w, indent, level)
		w.WriteByte('}')
	case *hujson.Array:
		if len(t.Elements) == 0 {
			w.WriteString("[]")
			return
		}
		w.WriteByte('[')
		for i := range t.Elements {
			if i > 0 {
				w.WriteByte(',')
			}
			newline(w, indent, level+1)
			writeValue(w, t.Elements[i].Value, indent, level+1)
		}
		newline(w, indent, level)
		w.WriteByte(']')
	case hujson.Literal:
		w.Write(t)
	}
}

func newline(w *bufio.Writer, indent, level int) {
	w.WriteByte('\n')
	for i := 0; i < indent*level; i++ {
		w.WriteByte(' ')
	}
}

// Compact renders v on a single line without comments or whitespace.
func Compact(v *hujson.Value) string {
	c := v.Clone()
	c.Minimize()
	return c.String()
}
