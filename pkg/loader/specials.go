package loader

import (
	"bytes"

	"github.com/tailscale/hujson"
)

// Placeholders substituted for bare non-finite tokens so the input becomes
// valid JWCC. They are swapped back for raw literals after parsing.
const (
	placeholderNaN    = "__JSON_VIEW_NaN__"
	placeholderInf    = "__JSON_VIEW_INF__"
	placeholderNegInf = "__JSON_VIEW_NEG_INF__"
)

var specialTokens = []struct {
	token       string
	placeholder string
}{
	// -Infinity must be tried before Infinity.
	{"-Infinity", placeholderNegInf},
	{"Infinity", placeholderInf},
	{"NaN", placeholderNaN},
}

// replaceSpecialNumbers rewrites bare NaN, Infinity and -Infinity tokens
// into quoted placeholders. Tokens inside strings and comments are left alone.
func replaceSpecialNumbers(in []byte) []byte {
	if !bytes.Contains(in, []byte("NaN")) && !bytes.Contains(in, []byte("Infinity")) {
		return in
	}
	out := make([]byte, 0, len(in)+32)
	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == '"':
			end := skipString(in, i)
			out = append(out, in[i:end]...)
			i = end
			continue
		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			end := bytes.IndexByte(in[i:], '\n')
			if end < 0 {
				end = len(in) - i
			}
			out = append(out, in[i:i+end]...)
			i += end
			continue
		case c == '/' && i+1 < len(in) && in[i+1] == '*':
			end := bytes.Index(in[i+2:], []byte("*/"))
			if end < 0 {
				out = append(out, in[i:]...)
				return out
			}
			out = append(out, in[i:i+2+end+2]...)
			i += 2 + end + 2
			continue
		}
		if matched := matchSpecial(in, i); matched >= 0 {
			tok := specialTokens[matched]
			out = append(out, '"')
			out = append(out, tok.placeholder...)
			out = append(out, '"')
			i += len(tok.token)
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

// skipString returns the index just past the string literal starting at i.
func skipString(in []byte, i int) int {
	for j := i + 1; j < len(in); j++ {
		switch in[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(in)
}

func matchSpecial(in []byte, i int) int {
	if i > 0 && isIdentByte(in[i-1]) {
		return -1
	}
	for n, tok := range specialTokens {
		end := i + len(tok.token)
		if end > len(in) || string(in[i:end]) != tok.token {
			continue
		}
		if end < len(in) && isIdentByte(in[end]) {
			continue
		}
		return n
	}
	return -1
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// restoreSpecialNumbers walks v and replaces placeholder strings with raw
// non-finite literals.
func restoreSpecialNumbers(v *hujson.Value) {
	switch t := v.Value.(type) {
	case *hujson.Object:
		for i := range t.Members {
			restoreSpecialNumbers(&t.Members[i].Value)
		}
	case *hujson.Array:
		for i := range t.Elements {
			restoreSpecialNumbers(&t.Elements[i])
		}
	case hujson.Literal:
		if t.Kind() != '"' {
			return
		}
		switch t.String() {
		case placeholderNaN:
			v.Value = literalNaN
		case placeholderInf:
			v.Value = literalInf
		case placeholderNegInf:
			v.Value = literalNegInf
		}
	}
}

// parseJSON parses JSON or JWCC text, accepting NaN, Infinity and -Infinity
// as number literals.
func parseJSON(data []byte) (hujson.Value, error) {
	v, err := hujson.Parse(replaceSpecialNumbers(data))
	if err != nil {
		return hujson.Value{}, err
	}
	restoreSpecialNumbers(&v)
	return v, nil
}
