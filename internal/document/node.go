// Package document builds the navigable tree over loaded values and
// controls which parts of it are expanded.
package document

import (
	"fmt"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/oakwood-commons/jview/pkg/loader"
)

// Node is one entry of the navigable tree. Value points into a document
// owned by a loader.Arena; the tree never modifies it. Only Expanded
// changes after construction.
type Node struct {
	Value         *hujson.Value
	Parent        *Node
	Children      []*Node
	Key           string
	Expanded      bool
	IsRoot        bool
	IsLastSibling bool
}

// Build creates the subtree for v. Object members become children keyed by
// member name and array elements become children keyed "[i]", both in
// source order. Only roots start expanded.
func Build(v *hujson.Value, key string, parent *Node, isRoot bool) *Node {
	n := &Node{
		Value:    v,
		Parent:   parent,
		Key:      key,
		Expanded: isRoot,
		IsRoot:   isRoot,
	}
	switch t := v.Value.(type) {
	case *hujson.Object:
		n.Children = make([]*Node, 0, len(t.Members))
		for i := range t.Members {
			name := t.Members[i].Name.Value.(hujson.Literal).String()
			n.Children = append(n.Children, Build(&t.Members[i].Value, name, n, false))
		}
	case *hujson.Array:
		n.Children = make([]*Node, 0, len(t.Elements))
		for i := range t.Elements {
			n.Children = append(n.Children, Build(&t.Elements[i], IndexKey(i), n, false))
		}
	}
	if len(n.Children) > 0 {
		n.Children[len(n.Children)-1].IsLastSibling = true
	}
	return n
}

// IndexKey is the key given to the i-th array element.
func IndexKey(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// Kind returns the kind of the node's value.
func (n *Node) Kind() loader.Kind {
	return loader.KindOf(n.Value)
}

// HasChildren reports whether the node has anything to expand.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Root walks up to the node's root.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Depth is the number of parent links between n and its root.
// Roots are at depth 0 and their children at depth 1.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Path returns the keys from the root down to n, root key first.
func (n *Node) Path() []string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Key)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// StatusPath renders the location of n for the status bar: the base name
// of the root followed by "/key" for each step below it.
func (n *Node) StatusPath() string {
	parts := n.Path()
	var b strings.Builder
	root := parts[0]
	if i := strings.LastIndex(root, "/"); i >= 0 {
		root = root[i+1:]
	}
	b.WriteString(root)
	for _, p := range parts[1:] {
		b.WriteByte('/')
		b.WriteString(p)
	}
	return b.String()
}

// Child returns the direct child with the given key.
func (n *Node) Child(key string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}
