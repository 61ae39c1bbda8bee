package command

import "github.com/texelation/multisplit/model"

// DefaultHistoryCapacity bounds the undo stack. Once full, executing a new
// command evicts the oldest entry (§4.2: "history capacity defaults to 100
// entries; older entries are discarded first").
const DefaultHistoryCapacity = 100

// Controller is the Command Surface's entry point: every structural or
// focus change to the model goes through Execute, Undo, or Redo, never
// Model.Apply directly. It owns the bounded undo/redo stacks.
type Controller struct {
	model    *model.Model
	capacity int
	undo     []Command
	redo     []Command
	activeTx *Transaction
}

// NewController wraps m with undo/redo history bounded to capacity entries.
// capacity <= 0 uses DefaultHistoryCapacity.
func NewController(m *model.Model, capacity int) *Controller {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &Controller{model: m, capacity: capacity}
}

// Model returns the underlying Model, for read-only queries.
func (c *Controller) Model() *model.Model { return c.model }

// Subscribe registers a listener with the underlying Model.
func (c *Controller) Subscribe(l model.Listener) { c.model.Subscribe(l) }

// Unsubscribe removes a previously registered listener.
func (c *Controller) Unsubscribe(l model.Listener) { c.model.Unsubscribe(l) }

// Execute runs cmd against the Model. On success, cmd is pushed onto the
// undo stack (evicting the oldest entry if the stack is at capacity) and
// the redo stack is cleared — executing a new command after undoing always
// discards the redone-from-here future (§4.2).
func (c *Controller) Execute(cmd Command) error {
	if err := cmd.Execute(c.model); err != nil {
		return err
	}
	c.undo = append(c.undo, cmd)
	if len(c.undo) > c.capacity {
		c.undo = c.undo[len(c.undo)-c.capacity:]
	}
	c.redo = nil
	return nil
}

// CanUndo reports whether Undo has a command to reverse.
func (c *Controller) CanUndo() bool { return len(c.undo) > 0 }

// CanRedo reports whether Redo has a command to reapply.
func (c *Controller) CanRedo() bool { return len(c.redo) > 0 }

// Undo reverses the most recently executed command and moves it onto the
// redo stack.
func (c *Controller) Undo() error {
	if len(c.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := c.undo[len(c.undo)-1]
	if err := cmd.Undo(c.model); err != nil {
		return err
	}
	c.undo = c.undo[:len(c.undo)-1]
	c.redo = append(c.redo, cmd)
	return nil
}

// Redo reapplies the most recently undone command and moves it back onto
// the undo stack. It calls Execute, not a separate "redo" path, so
// id-stable commands (split, create_initial) must have already captured
// and reused their generated ids on the first Execute.
func (c *Controller) Redo() error {
	if len(c.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := c.redo[len(c.redo)-1]
	if err := cmd.Execute(c.model); err != nil {
		return err
	}
	c.redo = c.redo[:len(c.redo)-1]
	c.undo = append(c.undo, cmd)
	if len(c.undo) > c.capacity {
		c.undo = c.undo[len(c.undo)-c.capacity:]
	}
	return nil
}
