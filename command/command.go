// Package command implements the Controller layer: every structural or
// focus change to a MultiSplit tree is expressed as a Command with forward
// and reverse actions, and the Controller is the sole caller of
// model.Model.Apply (§4.2).
package command

import "github.com/texelation/multisplit/model"

// Command is a reversible, encapsulated mutation. Execute and Undo both
// operate against the live Model by calling its read queries and its sole
// Apply entry point; command-local state captured during Execute (e.g. a
// freshly generated PaneId, or ratios clamped to range) lives on the
// concrete command value so Undo can restore the exact prior state.
type Command interface {
	Execute(m *model.Model) error
	Undo(m *model.Model) error
	// Name identifies the command for logging and serialization.
	Name() string
}
