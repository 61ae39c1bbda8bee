package command

import "github.com/texelation/multisplit/model"

// Transaction groups a sequence of commands into a single undo/redo entry
// (§4.2: "a transaction's Commit pushes exactly one history entry; Rollback
// leaves no trace"). Begin a transaction with Controller.Begin, execute
// commands against it instead of the Controller directly, and close it with
// Commit or Rollback.
//
// Nested Begin calls on an already-open transaction are flattened into the
// outermost one: Begin returns the same *Transaction and bumps a depth
// counter, and only the outermost Commit or Rollback actually closes it —
// mirroring how database/sql's Tx has no native nesting and callers instead
// share one Tx across nested helper functions.
type Transaction struct {
	ctrl     *Controller
	depth    int
	commands []Command
	closed   bool
}

// Begin opens a new transaction, or, if one is already open on this
// Controller, returns it with its nesting depth incremented.
func (c *Controller) Begin() *Transaction {
	if c.activeTx != nil {
		c.activeTx.depth++
		return c.activeTx
	}
	tx := &Transaction{ctrl: c}
	c.activeTx = tx
	return tx
}

// Execute runs cmd immediately against the Model and records it for the
// transaction's eventual Commit or Rollback. Unlike Controller.Execute, it
// does not touch the Controller's undo/redo stacks directly.
func (tx *Transaction) Execute(cmd Command) error {
	if tx.closed {
		return ErrNoActiveTransaction
	}
	if err := cmd.Execute(tx.ctrl.model); err != nil {
		return err
	}
	tx.commands = append(tx.commands, cmd)
	return nil
}

// Commit closes the transaction. At nesting depth 0 this pushes one
// composite history entry covering every command executed within the
// transaction (including nested Begin/Commit pairs) and clears the redo
// stack; at deeper nesting it only decrements depth, deferring to the
// outermost Commit.
func (tx *Transaction) Commit() error {
	if tx.closed {
		return ErrNoActiveTransaction
	}
	if tx.depth > 0 {
		tx.depth--
		return nil
	}
	tx.closed = true
	tx.ctrl.activeTx = nil
	if len(tx.commands) == 0 {
		return nil
	}
	composite := &compositeCommand{commands: tx.commands}
	tx.ctrl.undo = append(tx.ctrl.undo, composite)
	if len(tx.ctrl.undo) > tx.ctrl.capacity {
		tx.ctrl.undo = tx.ctrl.undo[len(tx.ctrl.undo)-tx.ctrl.capacity:]
	}
	tx.ctrl.redo = nil
	return nil
}

// Rollback closes the transaction, undoing every command it executed in
// reverse order, and leaves no history entry. At nesting depth 0 only: like
// Commit, nested Rollback calls just decrement depth and defer to the
// outermost call. Calling Rollback (or Commit) twice on the same
// transaction is a safe no-op returning ErrNoActiveTransaction, matching
// database/sql's Tx.
func (tx *Transaction) Rollback() error {
	if tx.closed {
		return ErrNoActiveTransaction
	}
	if tx.depth > 0 {
		tx.depth--
		return nil
	}
	tx.closed = true
	tx.ctrl.activeTx = nil
	for i := len(tx.commands) - 1; i >= 0; i-- {
		if err := tx.commands[i].Undo(tx.ctrl.model); err != nil {
			return err
		}
	}
	return nil
}

// compositeCommand replays or reverses a transaction's commands as one
// history entry.
type compositeCommand struct {
	commands []Command
}

func (c *compositeCommand) Name() string { return "transaction" }

func (c *compositeCommand) Execute(m *model.Model) error {
	for _, cmd := range c.commands {
		if err := cmd.Execute(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *compositeCommand) Undo(m *model.Model) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(m); err != nil {
			return err
		}
	}
	return nil
}
