package command

import "github.com/texelation/multisplit/model"

// SetFocusCommand moves focus to Pane. Pane may be "" to clear focus
// entirely (§4.2's focus row permits an empty target).
type SetFocusCommand struct {
	Pane model.PaneId

	previousFocus model.PaneId // captured on Execute, for Undo
}

func (c *SetFocusCommand) Name() string { return "set_focus" }

func (c *SetFocusCommand) Execute(m *model.Model) error {
	if c.Pane != "" {
		if _, ok := m.FindLeaf(c.Pane); !ok {
			return &model.PaneNotFoundError{Pane: c.Pane}
		}
	}
	c.previousFocus = m.FocusedPane()
	next := model.WithFocus(m.Tree(), c.Pane)
	return m.Apply(next)
}

func (c *SetFocusCommand) Undo(m *model.Model) error {
	next := model.WithFocus(m.Tree(), c.previousFocus)
	return m.Apply(next)
}
