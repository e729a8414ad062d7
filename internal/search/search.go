// Package search finds tree nodes whose key or value contains a term and
// steps through the matches.
package search

import (
	"strings"

	"github.com/oakwood-commons/jview/internal/document"
	"github.com/oakwood-commons/jview/pkg/loader"
)

// Search walks every node under roots in pre-order, collapsed subtrees
// included, and returns the nodes whose lowercased key (when keys is set)
// or canonical value (when values is set) contains term. term must already
// be lowercase. Each node appears at most once.
func Search(roots []*document.Node, term string, keys, values bool) []*document.Node {
	if term == "" {
		return nil
	}
	var out []*document.Node
	document.Forest(roots).Walk(func(n *document.Node) bool {
		if matches(n, term, keys, values) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func matches(n *document.Node, term string, keys, values bool) bool {
	if keys && strings.Contains(strings.ToLower(n.Key), term) {
		return true
	}
	return values && strings.Contains(strings.ToLower(CanonicalValue(n)), term)
}

// CanonicalValue is the text a value search compares against: raw string
// contents, true/false, canonical number text, null, or the container
// names "dictionary" and "list".
func CanonicalValue(n *document.Node) string {
	return loader.ScalarText(n.Value)
}

// State is the result of the most recent search.
type State struct {
	Term         string
	SearchKeys   bool
	SearchValues bool
	Matches      []*document.Node
	CurrentIndex int
}

// New runs a search for rawTerm over roots. The term is lowercased first.
func New(roots []*document.Node, rawTerm string, keys, values bool) *State {
	term := strings.ToLower(rawTerm)
	return &State{
		Term:         term,
		SearchKeys:   keys,
		SearchValues: values,
		Matches:      Search(roots, term, keys, values),
	}
}

// Active reports whether a search term is set.
func (s *State) Active() bool {
	return s != nil && s.Term != ""
}

// Empty reports whether there is nothing to navigate.
func (s *State) Empty() bool {
	return s == nil || len(s.Matches) == 0
}

// Current returns the current match, or nil when there are none.
func (s *State) Current() *document.Node {
	if s.Empty() {
		return nil
	}
	return s.Matches[s.CurrentIndex]
}

// IsMatch reports whether n is one of the matches.
func (s *State) IsMatch(n *document.Node) bool {
	return s.indexOf(n) >= 0
}

func (s *State) indexOf(n *document.Node) int {
	if s == nil {
		return -1
	}
	for i, m := range s.Matches {
		if m == n {
			return i
		}
	}
	return -1
}

// Next advances to the following match, wrapping past the end. When
// focused is itself a match, stepping starts from it instead of the stored
// position. There must be at least one match.
func (s *State) Next(focused *document.Node) *document.Node {
	s.resync(focused)
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Matches)
	return s.Matches[s.CurrentIndex]
}

// Prev moves to the preceding match, wrapping past the start. See Next.
func (s *State) Prev(focused *document.Node) *document.Node {
	s.resync(focused)
	s.CurrentIndex = (s.CurrentIndex - 1 + len(s.Matches)) % len(s.Matches)
	return s.Matches[s.CurrentIndex]
}

func (s *State) resync(focused *document.Node) {
	if i := s.indexOf(focused); i >= 0 {
		s.CurrentIndex = i
	}
}

// CountUnder returns how many matches belong to the tree rooted at root.
func (s *State) CountUnder(root *document.Node) int {
	if s == nil {
		return 0
	}
	count := 0
	for _, m := range s.Matches {
		if m.Root() == root {
			count++
		}
	}
	return count
}
