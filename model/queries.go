package model

// ChildSlot identifies which of a split's two children a path step refers
// to, independent of the orientation-flavored Direction callers use at the
// API surface (see PathFromDirections).
type ChildSlot int

const (
	SlotFirst ChildSlot = iota
	SlotSecond
)

// FindLeaf returns the leaf with the given pane id, if present.
func FindLeaf(root *Node, pane PaneId) (*LeafNode, bool) {
	var found *LeafNode
	walk(root, func(n *Node) bool {
		if n.IsLeaf() && n.Leaf.PaneID == pane {
			found = n.Leaf
			return false
		}
		return true
	})
	return found, found != nil
}

// FindParent returns the split node that directly owns the pane, and which
// slot it occupies. Returns ok=false if the pane is the tree's sole root
// leaf or does not exist.
func FindParent(root *Node, pane PaneId) (parent *SplitNode, slot ChildSlot, ok bool) {
	if root == nil {
		return nil, 0, false
	}
	var rec func(n *Node) bool
	rec = func(n *Node) bool {
		if n == nil || n.IsLeaf() {
			return true
		}
		s := n.Split
		for i, c := range s.Children {
			if c.IsLeaf() && c.Leaf.PaneID == pane {
				parent = s
				slot = ChildSlot(i)
				return false
			}
		}
		for _, c := range s.Children {
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(root)
	return parent, slot, parent != nil
}

// PaneIDs yields every pane id in the tree via a stable in-order traversal
// (leftmost child first), restartable on each call.
func PaneIDs(root *Node) []PaneId {
	var ids []PaneId
	walk(root, func(n *Node) bool {
		if n.IsLeaf() {
			ids = append(ids, n.Leaf.PaneID)
		}
		return true
	})
	return ids
}

// WidgetIDOf returns the widget id displayed in the given pane.
func WidgetIDOf(root *Node, pane PaneId) (WidgetId, bool) {
	leaf, ok := FindLeaf(root, pane)
	if !ok {
		return "", false
	}
	return leaf.WidgetID, true
}

// FirstLeaf returns the leftmost leaf under n (in-order first), or nil if n
// has no leaves (n == nil).
func FirstLeaf(n *Node) *LeafNode {
	for n != nil {
		if n.IsLeaf() {
			return n.Leaf
		}
		n = n.Split.Children[0]
	}
	return nil
}

// walk performs a pre-order, leftmost-first traversal of the tree, calling
// f for every node (internal and leaf). Traversal stops early if f returns
// false for any node.
func walk(root *Node, f func(*Node) bool) {
	if root == nil {
		return
	}
	var rec func(*Node) bool
	rec = func(n *Node) bool {
		if n == nil {
			return true
		}
		if !f(n) {
			return false
		}
		if n.IsSplit() {
			for _, c := range n.Split.Children {
				if !rec(c) {
					return false
				}
			}
		}
		return true
	}
	rec(root)
}

// Contains reports whether candidate is pane's own subtree or a descendant
// of it — used to reject InvalidMove (moving a pane into itself or into
// one of its own descendants).
func Contains(root *Node, ancestor, candidate PaneId) bool {
	node := findSubtree(root, ancestor)
	if node == nil {
		return false
	}
	found := false
	walk(node, func(n *Node) bool {
		if n.IsLeaf() && n.Leaf.PaneID == candidate {
			found = true
			return false
		}
		return true
	})
	return found
}

// findSubtree returns the node that is the root of the subtree anchored at
// the leaf with the given pane id (i.e. the leaf itself — placement
// commands only ever anchor on leaves, never on internal nodes).
func findSubtree(root *Node, pane PaneId) *Node {
	var found *Node
	walk(root, func(n *Node) bool {
		if n.IsLeaf() && n.Leaf.PaneID == pane {
			found = n
			return false
		}
		return true
	})
	return found
}

// PathFromDirections converts a caller-supplied split_path (a sequence of
// placement directions, root to target split) into concrete child slots,
// checking that each direction is valid for the orientation of the split
// encountered at that depth. This is how ResizeCommand's split_path
// resolves to an actual SplitNode; SetRatios follows the same path rules.
func PathFromDirections(root *Node, path []Direction) (*SplitNode, error) {
	n := root
	for _, d := range path {
		if n == nil || !n.IsSplit() {
			return nil, ErrSplitNotFound
		}
		s := n.Split
		if orientationOf(d) != s.Orientation {
			return nil, ErrSplitNotFound
		}
		if firstSlot(d) {
			n = s.Children[0]
		} else {
			n = s.Children[1]
		}
	}
	if n == nil || !n.IsSplit() {
		return nil, ErrSplitNotFound
	}
	return n.Split, nil
}
