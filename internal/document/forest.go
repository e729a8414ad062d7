package document

import (
	"github.com/oakwood-commons/jview/pkg/loader"
)

// Forest holds one root per loaded document, in load order.
type Forest []*Node

// NewForest builds a root for every document and flags the last root as
// the last sibling so tree prefixes close correctly.
func NewForest(docs ...*loader.Document) Forest {
	f := make(Forest, 0, len(docs))
	for _, d := range docs {
		f = append(f, Build(&d.Value, d.Name, nil, true))
	}
	if len(f) > 0 {
		f[len(f)-1].IsLastSibling = true
	}
	return f
}

// Visible concatenates the visible nodes of every root.
func (f Forest) Visible() []*Node {
	var out []*Node
	for _, r := range f {
		out = appendVisible(out, r)
	}
	return out
}

// ExpandAll expands every root completely.
func (f Forest) ExpandAll() {
	for _, r := range f {
		ExpandAll(r)
	}
}

// CollapseAll collapses every root's subtree, keeping the roots themselves
// open when keepRoots is set.
func (f Forest) CollapseAll(keepRoots bool) {
	for _, r := range f {
		CollapseAll(r, keepRoots)
	}
}

// ExpandToLevel applies ExpandToLevel to every root.
func (f Forest) ExpandToLevel(level int) {
	for _, r := range f {
		ExpandToLevel(r, level)
	}
}

// IndexOf returns the position of n in visible, or -1.
func IndexOf(visible []*Node, n *Node) int {
	for i, v := range visible {
		if v == n {
			return i
		}
	}
	return -1
}

// Walk visits every node under the roots in pre-order, ignoring expansion.
// Returning false from fn stops the walk.
func (f Forest) Walk(fn func(*Node) bool) {
	for _, r := range f {
		if !walk(r, fn) {
			return
		}
	}
}

func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
