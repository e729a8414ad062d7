package loader

import (
	"strings"

	"github.com/tailscale/hujson"
)

const maxDecodeDepth = 20

// TryDecode attempts to parse a string value as structured data (JWT, JSON,
// YAML, TOML, NDJSON). It returns the decoded value and true only when the
// result is an object or a list. Plain strings and scalars return false.
func TryDecode(value string) (hujson.Value, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return hujson.Value{}, false
	}
	// Single-line strings without structural characters are plain text;
	// YAML would happily accept them as scalars anyway.
	if !strings.ContainsAny(trimmed, "{[:=\n") && !IsJWT(trimmed) {
		return hujson.Value{}, false
	}

	v, _, err := detect(value)
	if err != nil {
		return hujson.Value{}, false
	}
	switch KindOf(&v) {
	case KindObject, KindArray:
		return v, true
	}
	return hujson.Value{}, false
}

// DecodeEmbedded walks v and replaces every string leaf that holds
// serialized structured data with its parsed form. Nested serialized
// strings are expanded too. It must run before the document is added
// to an Arena.
func DecodeEmbedded(v *hujson.Value) {
	decodeEmbedded(v, 0)
}

func decodeEmbedded(v *hujson.Value, depth int) {
	if depth > maxDecodeDepth {
		return
	}
	switch t := v.Value.(type) {
	case *hujson.Object:
		for i := range t.Members {
			decodeEmbedded(&t.Members[i].Value, depth+1)
		}
	case *hujson.Array:
		for i := range t.Elements {
			decodeEmbedded(&t.Elements[i], depth+1)
		}
	case hujson.Literal:
		if t.Kind() != '"' {
			return
		}
		if decoded, ok := TryDecode(t.String()); ok {
			v.Value = decoded.Value
			decodeEmbedded(v, depth+1)
		}
	}
}
