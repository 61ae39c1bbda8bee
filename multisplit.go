// Package multisplit is the public façade for the split-pane layout engine:
// one Engine instance owns a Model, a Controller, and a Reconciler, and
// exposes the Command Surface and Notifications of §6.2/§6.3 as ordinary
// Go methods and a Listener subscription, so a host never touches the
// internal model/command/reconcile packages directly.
package multisplit

import (
	"github.com/texelation/multisplit/command"
	"github.com/texelation/multisplit/focus"
	"github.com/texelation/multisplit/geometry"
	"github.com/texelation/multisplit/model"
	"github.com/texelation/multisplit/persist"
	"github.com/texelation/multisplit/reconcile"
)

// Options configures a new Engine. The zero value is valid: every field
// falls back to a sensible default.
type Options struct {
	// Epsilon is the minimum ratio either side of a split may hold.
	// Defaults to model.DefaultEpsilon.
	Epsilon float64
	// HistoryCapacity bounds the undo/redo stacks. Defaults to
	// command.DefaultHistoryCapacity.
	HistoryCapacity int
	// IDGen mints new PaneIds. Defaults to command.UUIDGenerator. Tests
	// should inject a command.SeededGenerator for reproducible ids.
	IDGen command.IDGenerator
}

// Engine is one independent instance of the layout engine: its own tree,
// undo/redo history, and widget map. Multiple Engines in a process share no
// state (Design Notes §9, "Global mutable state: none").
type Engine struct {
	model       *model.Model
	ctrl        *command.Controller
	reconciler  *reconcile.Reconciler
	idGen       command.IDGenerator
}

// New creates an Engine backed by provider for widget mounting/unmounting.
func New(provider reconcile.WidgetProvider, opts Options) *Engine {
	epsilon := opts.Epsilon
	if epsilon <= 0 {
		epsilon = model.DefaultEpsilon
	}
	idGen := opts.IDGen
	if idGen == nil {
		idGen = command.UUIDGenerator{}
	}

	m := model.New(epsilon)
	ctrl := command.NewController(m, opts.HistoryCapacity)
	rec := reconcile.NewReconciler(provider)
	ctrl.Subscribe(rec)

	return &Engine{model: m, ctrl: ctrl, reconciler: rec, idGen: idGen}
}

// Subscribe registers a listener for tree_changed, focus_changed,
// selection_changed, and focus_navigation_blocked notifications (§6.3).
// widget_needed / widget_closing are delivered through the WidgetProvider
// passed to New, not through this channel.
func (e *Engine) Subscribe(l model.Listener) { e.ctrl.Subscribe(l) }

// Unsubscribe removes a previously registered listener.
func (e *Engine) Unsubscribe(l model.Listener) { e.ctrl.Unsubscribe(l) }

// InsertInitial creates the first pane in an empty Engine. Every other
// structural command requires a pane to already exist, so this bootstraps
// the container (§8 scenario 1).
func (e *Engine) InsertInitial(widgetID model.WidgetId) (model.PaneId, error) {
	cmd := &command.CreateInitialCommand{WidgetID: widgetID, IDGen: e.idGen}
	if err := e.ctrl.Execute(cmd); err != nil {
		return "", err
	}
	return cmd.PaneID(), nil
}

// Split replaces target with a split whose children are the original leaf
// and a new leaf. ratio <= 0 defaults to 0.5.
func (e *Engine) Split(target model.PaneId, where model.Direction, newWidgetID model.WidgetId, ratio float64) (model.PaneId, error) {
	cmd := &command.SplitCommand{Target: target, Where: where, NewWidgetID: newWidgetID, InitialRatio: ratio, IDGen: e.idGen}
	if err := e.ctrl.Execute(cmd); err != nil {
		return "", err
	}
	return cmd.NewPaneID(), nil
}

// Close removes target, promoting its sibling into the parent split's
// position. Closing the tree's last pane leaves it empty.
func (e *Engine) Close(target model.PaneId) error {
	return e.ctrl.Execute(&command.CloseCommand{Target: target})
}

// MovePane detaches source and reinserts it adjacent to target.
func (e *Engine) MovePane(source, target model.PaneId, where model.Direction) error {
	return e.ctrl.Execute(&command.MoveCommand{Source: source, Target: target, Where: where})
}

// Resize updates the ratios of the split named by path, clamped to
// [epsilon, 1-epsilon].
func (e *Engine) Resize(path []model.Direction, ratios [2]float64) error {
	return e.ctrl.Execute(&command.ResizeCommand{Path: path, NewRatios: ratios})
}

// ReplaceWidget swaps the widget shown in pane, preserving its PaneId.
func (e *Engine) ReplaceWidget(pane model.PaneId, newWidgetID model.WidgetId) error {
	return e.ctrl.Execute(&command.ReplaceWidgetCommand{Pane: pane, NewWidgetID: newWidgetID})
}

// SetFocus moves focus to pane ("" clears focus).
func (e *Engine) SetFocus(pane model.PaneId) error {
	return e.ctrl.Execute(&command.SetFocusCommand{Pane: pane})
}

// Navigate moves focus in direction, computing geometry against outer
// using handleThickness (0 uses geometry.DefaultHandleThickness). Emits
// focus_navigation_blocked via the subscribed listeners if no pane lies in
// that direction.
func (e *Engine) Navigate(outer geometry.Rect, handleThickness int, direction model.Direction) error {
	layout := geometry.Allocate(e.model.Root(), outer, handleThickness)
	return focus.Navigate(e.ctrl, layout, direction)
}

// FocusNext moves focus to the next leaf in in-order traversal, wrapping.
func (e *Engine) FocusNext() error { return focus.FocusNext(e.ctrl) }

// FocusPrevious moves focus to the previous leaf in in-order traversal,
// wrapping.
func (e *Engine) FocusPrevious() error { return focus.FocusPrevious(e.ctrl) }

// Undo reverses the most recently executed command.
func (e *Engine) Undo() error { return e.ctrl.Undo() }

// Redo reapplies the most recently undone command.
func (e *Engine) Redo() error { return e.ctrl.Redo() }

// CanUndo reports whether Undo has a command to reverse.
func (e *Engine) CanUndo() bool { return e.ctrl.CanUndo() }

// CanRedo reports whether Redo has a command to reapply.
func (e *Engine) CanRedo() bool { return e.ctrl.CanRedo() }

// BeginTransaction opens a scope grouping subsequent commands (executed
// against the returned Transaction, not the Engine) into a single undo
// entry on Commit, or no trace at all on Rollback.
func (e *Engine) BeginTransaction() *command.Transaction { return e.ctrl.Begin() }

// Save encodes the current tree per §4.6. includeFocus controls whether
// the focused pane is included (§9 Open Question, resolved in SPEC_FULL.md
// §D: defaults true at the command-line default but is always explicit
// here since Save takes it directly).
func (e *Engine) Save(includeFocus bool) ([]byte, error) {
	return persist.Encode(e.model.Tree(), includeFocus)
}

// Load replaces the current tree with the one encoded in data. Load is
// all-or-nothing: a decode failure leaves the Engine's current tree
// untouched.
func (e *Engine) Load(data []byte) error {
	decoded, err := persist.Decode(data, e.model.Epsilon())
	if err != nil {
		return err
	}
	return e.model.Apply(decoded)
}

// Layout computes the current geometry for outer using handleThickness (0
// uses geometry.DefaultHandleThickness).
func (e *Engine) Layout(outer geometry.Rect, handleThickness int) *geometry.Layout {
	return geometry.Allocate(e.model.Root(), outer, handleThickness)
}

// WidgetHandle returns the widget handle currently mounted in pane, and
// whether it is showing a placeholder (provider failure).
func (e *Engine) WidgetHandle(pane model.PaneId) (handle reconcile.WidgetHandle, placeholder bool, ok bool) {
	h, ok := e.reconciler.Handle(pane)
	return h, e.reconciler.IsPlaceholder(pane), ok
}

// Root returns the current tree's root node (nil when every pane is closed).
func (e *Engine) Root() *model.Node { return e.model.Root() }

// Tree returns the current tree, including focus and selection.
func (e *Engine) Tree() *model.Tree { return e.model.Tree() }

// FocusedPane returns the currently focused pane, or "" if none.
func (e *Engine) FocusedPane() model.PaneId { return e.model.FocusedPane() }

// PaneIDs returns every pane id in stable in-order traversal order.
func (e *Engine) PaneIDs() []model.PaneId { return e.model.PaneIDs() }

// WidgetIDOf returns the widget id displayed in pane.
func (e *Engine) WidgetIDOf(pane model.PaneId) (model.WidgetId, bool) { return e.model.WidgetIDOf(pane) }

// Revision returns the strictly monotonic revision counter.
func (e *Engine) Revision() uint64 { return e.model.Revision() }
