package loader

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"
)

// IsJWT detects if input looks like a JWT token.
// A valid JWT has exactly 3 dot-separated parts where the first two
// are valid base64url-encoded JSON objects.
func IsJWT(input string) bool {
	parts, ok := jwtParts(input)
	if !ok {
		return false
	}

	for i := 0; i < 2; i++ {
		decoded, err := base64.RawURLEncoding.DecodeString(parts[i])
		if err != nil {
			return false
		}
		v, err := hujson.Parse(decoded)
		if err != nil || KindOf(&v) != KindObject {
			return false
		}
	}

	// Signature just needs to be valid base64url (can contain any bytes)
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

func jwtParts(input string) ([]string, bool) {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return parts, false
	}
	for _, part := range parts {
		if len(part) == 0 {
			return parts, false
		}
	}
	return parts, true
}

// DecodeJWT splits and decodes a JWT token into an object with header,
// payload, and signature members, in that order.
func DecodeJWT(input string) (hujson.Value, error) {
	parts, ok := jwtParts(input)
	if !ok {
		return hujson.Value{}, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	header, err := decodeJWTSegment(parts[0])
	if err != nil {
		return hujson.Value{}, fmt.Errorf("invalid JWT header: %w", err)
	}
	payload, err := decodeJWTSegment(parts[1])
	if err != nil {
		return hujson.Value{}, fmt.Errorf("invalid JWT payload: %w", err)
	}

	// Signature stays base64url; it is binary and has no JSON form.
	return newObject([]hujson.ObjectMember{
		member("header", header),
		member("payload", payload),
		member("signature", hujson.Value{Value: hujson.String(parts[2])}),
	}), nil
}

func decodeJWTSegment(part string) (hujson.Value, error) {
	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return hujson.Value{}, err
	}
	v, err := hujson.Parse(raw)
	if err != nil {
		return hujson.Value{}, err
	}
	if KindOf(&v) != KindObject {
		return hujson.Value{}, fmt.Errorf("expected a JSON object")
	}
	return v, nil
}
