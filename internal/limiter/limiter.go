// Package limiter trims the top level of a document to a window of records.
package limiter

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // Show only this many records (0 = unlimited)
	Offset int // Skip the first N records (0 = no skip)
	Tail   int // Show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Window returns the half-open range [start, end) of a collection of
// length n that the configuration selects.
func (c Config) Window(n int) (start, end int) {
	if c.Tail > 0 {
		return max(0, n-c.Tail), n
	}
	start = min(c.Offset, n)
	end = n
	if c.Limit > 0 {
		end = min(start+c.Limit, n)
	}
	return start, end
}

// Apply returns a copy of v whose top-level array elements or object
// members are limited to the configured window. Objects keep their member
// order. Scalars and inactive configurations return v unchanged. The
// original value is never modified.
func (c Config) Apply(v hujson.Value) hujson.Value {
	if !c.IsActive() {
		return v
	}

	switch t := v.Value.(type) {
	case *hujson.Array:
		start, end := c.Window(len(t.Elements))
		out := v
		out.Value = &hujson.Array{Elements: append([]hujson.Value(nil), t.Elements[start:end]...)}
		return out
	case *hujson.Object:
		start, end := c.Window(len(t.Members))
		out := v
		out.Value = &hujson.Object{Members: append([]hujson.ObjectMember(nil), t.Members[start:end]...)}
		return out
	}
	return v
}
