package command

import "errors"

var (
	// ErrNothingToUndo is returned by Controller.Undo when the undo stack
	// is empty.
	ErrNothingToUndo = errors.New("command: nothing to undo")
	// ErrNothingToRedo is returned by Controller.Redo when the redo stack
	// is empty.
	ErrNothingToRedo = errors.New("command: nothing to redo")
	// ErrNoActiveTransaction is returned by Transaction.Commit or Rollback
	// when called on an already-closed transaction.
	ErrNoActiveTransaction = errors.New("command: no active transaction")
)
