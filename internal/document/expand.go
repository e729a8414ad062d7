package document

// CollectVisible returns n and every node reachable from it through
// expanded nodes, in depth-first pre-order.
func CollectVisible(n *Node) []*Node {
	return appendVisible(nil, n)
}

func appendVisible(out []*Node, n *Node) []*Node {
	out = append(out, n)
	if !n.Expanded {
		return out
	}
	for _, c := range n.Children {
		out = appendVisible(out, c)
	}
	return out
}

// ExpandAll expands n and all of its descendants.
func ExpandAll(n *Node) {
	n.Expanded = true
	for _, c := range n.Children {
		ExpandAll(c)
	}
}

// CollapseAll collapses n and all of its descendants. With keepRoot set,
// n itself stays as it is when it is a root; descendants are always collapsed.
func CollapseAll(n *Node, keepRoot bool) {
	if !(n.IsRoot && keepRoot) {
		n.Expanded = false
	}
	for _, c := range n.Children {
		CollapseAll(c, false)
	}
}

// ExpandToLevel opens the tree under root so that nodes shallower than
// level are expanded and everything at or below level is collapsed.
// A root's children are at level 1. Level 0 collapses the root as well.
func ExpandToLevel(root *Node, level int) {
	if level <= 0 {
		CollapseAll(root, false)
		return
	}
	root.Expanded = true
	for _, c := range root.Children {
		expandToLevel(c, 1, level)
	}
}

func expandToLevel(n *Node, depth, level int) {
	if depth >= level {
		CollapseAll(n, false)
		return
	}
	n.Expanded = n.HasChildren()
	for _, c := range n.Children {
		expandToLevel(c, depth+1, level)
	}
}

// ExpandPath expands every ancestor of n so that n becomes visible.
// n itself is left untouched and nothing is collapsed.
func ExpandPath(n *Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		p.Expanded = true
	}
}
