package command

import "github.com/texelation/multisplit/model"

// CloseCommand removes the target pane, promoting its sibling into the
// parent split's position (§4.2). Closing the tree's last pane leaves it
// empty.
type CloseCommand struct {
	Target model.PaneId

	// Captured on Execute, for Undo:
	removedLeaf   *model.LeafNode
	wasSoleRoot   bool
	survivor      *model.Node // the exact sibling subtree instance, pre-removal
	slot          model.ChildSlot
	orientation   model.Orientation
	ratios        [2]float64
	previousFocus model.PaneId
}

func (c *CloseCommand) Name() string { return "close" }

func (c *CloseCommand) Execute(m *model.Model) error {
	if _, ok := m.FindLeaf(c.Target); !ok {
		return &model.PaneNotFoundError{Pane: c.Target}
	}
	parent, slot, hasParent := m.FindParent(c.Target)
	c.wasSoleRoot = !hasParent
	c.previousFocus = m.FocusedPane()
	if hasParent {
		c.slot = slot
		c.orientation = parent.Orientation
		c.ratios = parent.Ratios
		c.survivor = parent.Children[1-slot]
	}

	next, removed, err := model.RemoveLeaf(m.Tree(), c.Target)
	if err != nil {
		return err
	}
	c.removedLeaf = removed

	fallback := fallbackFocus(next, c.previousFocus)
	next = model.WithFocus(next, fallback)
	return m.Apply(next)
}

// fallbackFocus implements §4.3 step 8 / §9's Open Question resolution: if
// the previous focus still exists, keep it; otherwise pick the in-order
// first leaf of the surviving tree (or none, if the tree is now empty),
// which the caller always commits — emitting focus_changed(prev, None)
// even when the tree becomes empty, per the Open Question's suggested
// resolution.
func fallbackFocus(tree *model.Tree, previous model.PaneId) model.PaneId {
	if tree.Root == nil {
		return ""
	}
	if _, ok := model.FindLeaf(tree.Root, previous); ok {
		return previous
	}
	if leaf := model.FirstLeaf(tree.Root); leaf != nil {
		return leaf.PaneID
	}
	return ""
}

// Undo restores the closed pane by reattaching it exactly where it was:
// as the sibling of the subtree it was removed from, in the original
// ratios and child order.
func (c *CloseCommand) Undo(m *model.Model) error {
	if c.wasSoleRoot {
		next := &model.Tree{Root: model.NewLeaf(c.removedLeaf.PaneID, c.removedLeaf.WidgetID)}
		next = model.WithFocus(next, c.previousFocus)
		return m.Apply(next)
	}

	removedNode := &model.Node{Leaf: c.removedLeaf}
	orientation, ratios, slot := c.orientation, c.ratios, c.slot
	build := func(old *model.Node) *model.Node {
		var first, second *model.Node
		if slot == model.SlotFirst {
			first, second = removedNode, old
		} else {
			first, second = old, removedNode
		}
		return &model.Node{Split: &model.SplitNode{
			Orientation: orientation,
			Ratios:      ratios,
			Children:    [2]*model.Node{first, second},
		}}
	}
	next, err := model.ReplaceNode(m.Tree(), c.survivor, build)
	if err != nil {
		return err
	}
	next = model.WithFocus(next, c.previousFocus)
	return m.Apply(next)
}
