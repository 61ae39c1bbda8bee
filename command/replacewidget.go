package command

import "github.com/texelation/multisplit/model"

// ReplaceWidgetCommand swaps the widget shown in Pane without disturbing
// the pane's identity or position in the tree (§4.2: "PaneID is preserved;
// only WidgetID changes").
type ReplaceWidgetCommand struct {
	Pane        model.PaneId
	NewWidgetID model.WidgetId

	previousWidgetID model.WidgetId // captured on Execute, for Undo
}

func (c *ReplaceWidgetCommand) Name() string { return "replace_widget" }

func (c *ReplaceWidgetCommand) Execute(m *model.Model) error {
	leaf, ok := m.FindLeaf(c.Pane)
	if !ok {
		return &model.PaneNotFoundError{Pane: c.Pane}
	}
	c.previousWidgetID = leaf.WidgetID

	newWidgetID := c.NewWidgetID
	build := func(old *model.Node) *model.Node {
		return model.NewLeaf(old.Leaf.PaneID, newWidgetID)
	}
	next, err := model.ReplaceLeaf(m.Tree(), c.Pane, build)
	if err != nil {
		return err
	}
	return m.Apply(next)
}

func (c *ReplaceWidgetCommand) Undo(m *model.Model) error {
	previousWidgetID := c.previousWidgetID
	build := func(old *model.Node) *model.Node {
		return model.NewLeaf(old.Leaf.PaneID, previousWidgetID)
	}
	next, err := model.ReplaceLeaf(m.Tree(), c.Pane, build)
	if err != nil {
		return err
	}
	return m.Apply(next)
}
