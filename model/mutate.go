package model

// This file holds the pure, copy-on-write tree surgery MultiSplit's
// commands are built from. Every function here takes a *Tree and returns a
// brand new *Tree (or an error); the input is never mutated, and subtrees
// untouched by the edit are shared by pointer between the old and new
// trees (Design Notes §9, "structural sharing").

// ReplaceLeaf rebuilds the path from root to the leaf with the given pane
// id, replacing that leaf with whatever build returns. build receives the
// existing node (always a leaf) so it can preserve identity fields, e.g.
// ReplaceWidgetCommand keeps PaneID and only swaps WidgetID; SplitCommand
// wraps the leaf with a new sibling.
func ReplaceLeaf(tree *Tree, target PaneId, build func(old *Node) *Node) (*Tree, error) {
	if tree.Root == nil {
		return nil, newPaneNotFound(target)
	}
	newRoot, replaced := replaceLeafRec(tree.Root, target, build)
	if !replaced {
		return nil, newPaneNotFound(target)
	}
	next := tree.clone()
	next.Root = newRoot
	return next, nil
}

func replaceLeafRec(n *Node, target PaneId, build func(old *Node) *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.IsLeaf() {
		if n.Leaf.PaneID == target {
			return build(n), true
		}
		return n, false
	}
	s := n.Split
	for i, c := range s.Children {
		newChild, replaced := replaceLeafRec(c, target, build)
		if replaced {
			nc := s.Children
			nc[i] = newChild
			return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: s.Ratios, Children: nc}}, true
		}
	}
	return n, false
}

// ReplaceNode rebuilds the path from root to the exact node instance
// target (matched by pointer identity, not content), replacing it with
// whatever build returns. This is how commands restore a whole subtree —
// not just a single leaf — to a position after structural sharing has
// carried that exact node instance into a new tree unchanged (Design
// Notes §9): CloseCommand's Undo and MoveCommand's Undo both reattach a
// previously-detached sibling subtree this way.
func ReplaceNode(tree *Tree, target *Node, build func(old *Node) *Node) (*Tree, error) {
	if tree.Root == nil {
		return nil, ErrSplitNotFound
	}
	if tree.Root == target {
		next := tree.clone()
		next.Root = build(target)
		return next, nil
	}
	newRoot, replaced := replaceNodeRec(tree.Root, target, build)
	if !replaced {
		return nil, ErrSplitNotFound
	}
	next := tree.clone()
	next.Root = newRoot
	return next, nil
}

func replaceNodeRec(n *Node, target *Node, build func(old *Node) *Node) (*Node, bool) {
	if n == nil || n.IsLeaf() {
		return n, false
	}
	s := n.Split
	for i, c := range s.Children {
		if c == target {
			nc := s.Children
			nc[i] = build(c)
			return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: s.Ratios, Children: nc}}, true
		}
	}
	for i, c := range s.Children {
		newChild, replaced := replaceNodeRec(c, target, build)
		if replaced {
			nc := s.Children
			nc[i] = newChild
			return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: s.Ratios, Children: nc}}, true
		}
	}
	return n, false
}

// RemoveLeaf detaches the leaf with the given pane id, promoting its
// sibling into the position its parent split occupied. If target is the
// tree's sole root leaf, the resulting tree is empty (Root == nil). The
// removed leaf is returned so callers (CloseCommand, MoveCommand) can
// reattach it elsewhere or restore it on undo.
func RemoveLeaf(tree *Tree, target PaneId) (*Tree, *LeafNode, error) {
	if tree.Root == nil {
		return nil, nil, newPaneNotFound(target)
	}
	if tree.Root.IsLeaf() {
		if tree.Root.Leaf.PaneID != target {
			return nil, nil, newPaneNotFound(target)
		}
		next := tree.clone()
		next.Root = nil
		next.FocusedPane = clearFocus(next.FocusedPane, target)
		next.Selection = removeFromSelection(next.Selection, target)
		return next, tree.Root.Leaf, nil
	}
	newRoot, removed, found := removeLeafRec(tree.Root, target)
	if !found {
		return nil, nil, newPaneNotFound(target)
	}
	next := tree.clone()
	next.Root = newRoot
	next.FocusedPane = clearFocus(next.FocusedPane, target)
	next.Selection = removeFromSelection(next.Selection, target)
	return next, removed, nil
}

func removeLeafRec(n *Node, target PaneId) (newNode *Node, removed *LeafNode, found bool) {
	if n == nil || n.IsLeaf() {
		return n, nil, false
	}
	s := n.Split
	for i, c := range s.Children {
		if c.IsLeaf() && c.Leaf.PaneID == target {
			return s.Children[1-i], c.Leaf, true
		}
	}
	for i, c := range s.Children {
		newChild, removedLeaf, found := removeLeafRec(c, target)
		if found {
			nc := s.Children
			nc[i] = newChild
			return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: s.Ratios, Children: nc}}, removedLeaf, true
		}
	}
	return n, nil, false
}

// SetRatios rebuilds the path named by path (root to the target split,
// resolved the same way PathFromDirections resolves it) with new ratios.
func SetRatios(tree *Tree, path []Direction, ratios [2]float64) (*Tree, error) {
	if tree.Root == nil {
		return nil, ErrSplitNotFound
	}
	newRoot, err := setRatiosRec(tree.Root, path, ratios)
	if err != nil {
		return nil, err
	}
	next := tree.clone()
	next.Root = newRoot
	return next, nil
}

func setRatiosRec(n *Node, path []Direction, ratios [2]float64) (*Node, error) {
	if n == nil || !n.IsSplit() {
		return nil, ErrSplitNotFound
	}
	s := n.Split
	if len(path) == 0 {
		return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: ratios, Children: s.Children}}, nil
	}
	d := path[0]
	if orientationOf(d) != s.Orientation {
		return nil, ErrSplitNotFound
	}
	idx := 0
	if !firstSlot(d) {
		idx = 1
	}
	newChild, err := setRatiosRec(s.Children[idx], path[1:], ratios)
	if err != nil {
		return nil, err
	}
	nc := s.Children
	nc[idx] = newChild
	return &Node{Split: &SplitNode{Orientation: s.Orientation, Ratios: s.Ratios, Children: nc}}, nil
}

// WithFocus returns a copy of tree with FocusedPane set to pane (empty
// string clears focus). The caller is responsible for re-validating that
// pane refers to a live leaf (Model.Apply does this for every commit).
func WithFocus(tree *Tree, pane PaneId) *Tree {
	next := tree.clone()
	next.FocusedPane = pane
	return next
}

// WithSelection returns a copy of tree with its selection set replaced.
func WithSelection(tree *Tree, selection []PaneId) *Tree {
	next := tree.clone()
	next.Selection = append([]PaneId(nil), selection...)
	return next
}

func clearFocus(focus, removed PaneId) PaneId {
	if focus == removed {
		return ""
	}
	return focus
}

func removeFromSelection(sel []PaneId, target PaneId) []PaneId {
	if len(sel) == 0 {
		return sel
	}
	out := make([]PaneId, 0, len(sel))
	for _, p := range sel {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// BuildSplitReplacement returns the build function ReplaceLeaf needs to
// turn a leaf into a split: the new pane lands on the side named by where,
// the original leaf keeps its identity on the other side.
func BuildSplitReplacement(where Direction, newPane PaneId, newWidget WidgetId, newPaneRatio float64) func(old *Node) *Node {
	return func(old *Node) *Node {
		orientation := orientationOf(where)
		newLeaf := NewLeaf(newPane, newWidget)
		if firstSlot(where) {
			return NewSplit(orientation, newLeaf, old, [2]float64{newPaneRatio, 1 - newPaneRatio})
		}
		return NewSplit(orientation, old, newLeaf, [2]float64{1 - newPaneRatio, newPaneRatio})
	}
}

// BuildMoveReplacement returns the build function ReplaceLeaf needs to
// insert a detached node (moved *Node, built from the leaf RemoveLeaf
// returned) adjacent to the leaf currently at the replace site.
func BuildMoveReplacement(where Direction, moved *Node) func(old *Node) *Node {
	return func(old *Node) *Node {
		orientation := orientationOf(where)
		if firstSlot(where) {
			return NewSplit(orientation, moved, old, [2]float64{0.5, 0.5})
		}
		return NewSplit(orientation, old, moved, [2]float64{0.5, 0.5})
	}
}
