package command

import "github.com/texelation/multisplit/model"

// MoveCommand detaches source from its current position (promoting its
// sibling) and inserts it adjacent to target on the side named by where
// (§4.2). Moving a pane to itself or into one of its own descendants is
// rejected as InvalidMove.
type MoveCommand struct {
	Source model.PaneId
	Target model.PaneId
	Where  model.Direction

	// Captured on Execute, for Undo — mirrors CloseCommand's bookkeeping
	// since detaching source is exactly a close-without-destroying-it.
	// Source always has a parent here: Execute requires target to already
	// exist, which is only possible if the tree has more than one pane.
	survivor      *model.Node
	slot          model.ChildSlot
	orientation   model.Orientation
	ratios        [2]float64
	previousFocus model.PaneId
	detached      *model.Tree // the tree right after source was removed, still holding survivor
}

func (c *MoveCommand) Name() string { return "move" }

func (c *MoveCommand) Execute(m *model.Model) error {
	sourceLeaf, ok := m.FindLeaf(c.Source)
	if !ok {
		return &model.PaneNotFoundError{Pane: c.Source}
	}
	if _, ok := m.FindLeaf(c.Target); !ok {
		return &model.PaneNotFoundError{Pane: c.Target}
	}
	if c.Source == c.Target {
		return model.ErrInvalidMove
	}
	if model.Contains(m.Root(), c.Source, c.Target) {
		return model.ErrInvalidMove
	}

	parent, slot, hasParent := m.FindParent(c.Source)
	if !hasParent {
		// Unreachable: target's successful lookup above proves the tree
		// has at least two panes, so source has a parent split.
		return model.ErrInvalidMove
	}
	c.previousFocus = m.FocusedPane()
	c.slot = slot
	c.orientation = parent.Orientation
	c.ratios = parent.Ratios
	c.survivor = parent.Children[1-slot]

	detached, _, err := model.RemoveLeaf(m.Tree(), c.Source)
	if err != nil {
		return err
	}
	c.detached = detached

	movedNode := model.NewLeaf(sourceLeaf.PaneID, sourceLeaf.WidgetID)
	build := model.BuildMoveReplacement(c.Where, movedNode)
	attached, err := model.ReplaceLeaf(detached, c.Target, build)
	if err != nil {
		return err
	}
	attached = model.WithFocus(attached, c.Source)
	return m.Apply(attached)
}

// Undo restores source exactly where Execute found it, by the same
// pointer-identity reattachment CloseCommand's Undo uses. The reattachment
// starts from the tree Execute captured right after detaching source, which
// still holds the survivor instance even when target lay inside it.
func (c *MoveCommand) Undo(m *model.Model) error {
	_, removed, err := model.RemoveLeaf(m.Tree(), c.Source)
	if err != nil {
		return err
	}
	movedNode := &model.Node{Leaf: removed}

	orientation, ratios, slot := c.orientation, c.ratios, c.slot
	build := func(old *model.Node) *model.Node {
		var first, second *model.Node
		if slot == model.SlotFirst {
			first, second = movedNode, old
		} else {
			first, second = old, movedNode
		}
		return &model.Node{Split: &model.SplitNode{
			Orientation: orientation,
			Ratios:      ratios,
			Children:    [2]*model.Node{first, second},
		}}
	}
	restored, err := model.ReplaceNode(c.detached, c.survivor, build)
	if err != nil {
		return err
	}
	restored = model.WithFocus(restored, c.previousFocus)
	return m.Apply(restored)
}
