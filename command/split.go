package command

import "github.com/texelation/multisplit/model"

// CreateInitialCommand creates the very first pane in an empty container.
// Spec §8 scenario 1 exercises it ("Apply insert_initial(\"A\")") even
// though §6.2's Command Surface only names operations that assume a
// target pane already exists; every split/close/move/resize needs a pane
// to act on, so bootstrapping the empty tree is necessarily a distinct
// operation, documented in DESIGN.md.
type CreateInitialCommand struct {
	WidgetID model.WidgetId
	IDGen    IDGenerator

	paneID model.PaneId // captured on Execute
}

func (c *CreateInitialCommand) Name() string { return "create_initial" }

// PaneID returns the pane id assigned to the created leaf (valid after a
// successful Execute).
func (c *CreateInitialCommand) PaneID() model.PaneId { return c.paneID }

func (c *CreateInitialCommand) Execute(m *model.Model) error {
	if m.Root() != nil {
		return &model.InvariantViolationError{Which: "non-empty", Detail: "container already has a root"}
	}
	if c.paneID == "" {
		c.paneID = c.IDGen.NextPaneID()
	}
	next := &model.Tree{Root: model.NewLeaf(c.paneID, c.WidgetID), FocusedPane: c.paneID}
	return m.Apply(next)
}

func (c *CreateInitialCommand) Undo(m *model.Model) error {
	next := &model.Tree{}
	return m.Apply(next)
}

// SplitCommand replaces the target leaf with a split whose children are
// the original leaf and a new leaf, per §4.2's SplitCommand row.
type SplitCommand struct {
	Target       model.PaneId
	Where        model.Direction
	NewWidgetID  model.WidgetId
	InitialRatio float64 // ratio given to the new pane; 0 means "use 0.5"
	IDGen        IDGenerator

	newPaneID model.PaneId // captured on Execute, reused verbatim by Redo
}

func (c *SplitCommand) Name() string { return "split" }

// NewPaneID returns the pane id assigned to the newly created leaf (valid
// after a successful Execute).
func (c *SplitCommand) NewPaneID() model.PaneId { return c.newPaneID }

func (c *SplitCommand) Execute(m *model.Model) error {
	if _, ok := m.FindLeaf(c.Target); !ok {
		return &model.PaneNotFoundError{Pane: c.Target}
	}
	ratio := c.InitialRatio
	if ratio <= 0 {
		ratio = 0.5
	}
	if c.newPaneID == "" {
		c.newPaneID = c.IDGen.NextPaneID()
	}
	build := model.BuildSplitReplacement(c.Where, c.newPaneID, c.NewWidgetID, ratio)
	next, err := model.ReplaceLeaf(m.Tree(), c.Target, build)
	if err != nil {
		return err
	}
	next = model.WithFocus(next, c.newPaneID)
	return m.Apply(next)
}

// Undo removes the leaf the split introduced, which promotes the original
// leaf (still carrying its original PaneID and WidgetID) back into the
// position the split occupied — exactly reversing Execute.
func (c *SplitCommand) Undo(m *model.Model) error {
	next, _, err := model.RemoveLeaf(m.Tree(), c.newPaneID)
	if err != nil {
		return err
	}
	next = model.WithFocus(next, c.Target)
	return m.Apply(next)
}
