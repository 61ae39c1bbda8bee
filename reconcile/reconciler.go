// Package reconcile implements the View Core: keeping host-owned widgets in
// sync with Model changes without destroying ones that should survive a
// structural edit (§4.3). It is the hardest subsystem per the spec, and the
// one most directly grounded on the teacher's own incremental-update code
// (texel/tree.go's SplitActive re-parenting existing nodes rather than
// rebuilding the tree from scratch).
package reconcile

import "github.com/texelation/multisplit/model"

// WidgetHandle is an opaque reference to a host-owned widget instance. The
// reconciler never inspects it, only threads it through provide/close
// calls and its own bookkeeping map.
type WidgetHandle interface{}

// WidgetProvider is the host-supplied object satisfying the Widget-Provider
// Protocol (§6.1). Implementations must be synchronous; the reconciler does
// not suspend.
type WidgetProvider interface {
	// ProvideWidget is called when a pane appears (new split, load, or a
	// widget_id change on a retained pane). A moved pane keeps its pane id
	// and widget id, so it is not provided again. Returning a nil handle or
	// a non-nil error both install a placeholder; the reconciler does not
	// distinguish the two beyond recording the failure.
	ProvideWidget(widgetID model.WidgetId, pane model.PaneId) (WidgetHandle, error)
	// WidgetClosing is called when a pane is about to disappear (close, or
	// a widget_id change on a retained pane). The host
	// regains ownership of handle; the reconciler retains no reference to
	// it afterward.
	WidgetClosing(widgetID model.WidgetId, pane model.PaneId, handle WidgetHandle)
}

// entry is the reconciler's bookkeeping for one mounted pane.
type entry struct {
	handle      WidgetHandle
	widgetID    model.WidgetId
	placeholder bool
}

// Reconciler tracks which widget instance is mounted in each pane and
// updates that mapping as the tree changes, per the preservation guarantee:
// a pane_id present before and after a change with an unchanged widget_id
// keeps the exact same handle instance.
type Reconciler struct {
	provider WidgetProvider
	mounted  map[model.PaneId]entry
}

// NewReconciler returns a Reconciler that will call provider to mount and
// unmount widgets as panes appear and disappear.
func NewReconciler(provider WidgetProvider) *Reconciler {
	return &Reconciler{provider: provider, mounted: make(map[model.PaneId]entry)}
}

// HandleChange implements model.Listener, reconciling on every tree_changed
// event. Registering a Reconciler as a listener on the same Model its
// Controller mutates is the intended wiring.
func (r *Reconciler) HandleChange(evt model.ChangeEvent) {
	if evt.Type != model.EventTreeChanged {
		return
	}
	r.Reconcile(evt.OldTree, evt.NewTree)
}

// Reconcile runs the 1-5 steps of §4.3's algorithm against old and next,
// updating the widget map in place. It does not itself apply geometry or
// restore focus: geometry is the geometry package's concern (step 7, a
// pure function of the resulting tree) and focus fallback on pane removal
// is enforced by CloseCommand at the point a pane can disappear (step 8),
// since Model.Apply rejects any tree whose focus does not refer to a live
// leaf — there is no later point at which an orphaned focus could reach
// the reconciler to repair.
func (r *Reconciler) Reconcile(old, next *model.Tree) {
	oldIDs := idSet(old)
	newIDs := idSet(next)

	for id := range oldIDs {
		if _, stillPresent := newIDs[id]; !stillPresent {
			r.closeWidget(id)
		}
	}

	for id := range newIDs {
		oldWidgetID, wasPresent := widgetIDIn(old, id)
		newWidgetID, _ := widgetIDIn(next, id)
		switch {
		case !wasPresent:
			r.mountWidget(id, newWidgetID)
		case oldWidgetID != newWidgetID:
			r.closeWidget(id)
			r.mountWidget(id, newWidgetID)
		}
		// oldWidgetID == newWidgetID: retained unchanged, handle untouched.
	}
}

func (r *Reconciler) closeWidget(pane model.PaneId) {
	e, ok := r.mounted[pane]
	if !ok {
		return
	}
	r.provider.WidgetClosing(e.widgetID, pane, e.handle)
	delete(r.mounted, pane)
}

func (r *Reconciler) mountWidget(pane model.PaneId, widgetID model.WidgetId) {
	handle, err := r.provider.ProvideWidget(widgetID, pane)
	placeholder := err != nil || handle == nil
	r.mounted[pane] = entry{handle: handle, widgetID: widgetID, placeholder: placeholder}
}

// Handle returns the widget handle currently mounted in pane, if any.
func (r *Reconciler) Handle(pane model.PaneId) (WidgetHandle, bool) {
	e, ok := r.mounted[pane]
	return e.handle, ok
}

// IsPlaceholder reports whether pane is showing a placeholder because its
// provider call failed or returned nil (§4.3 "Failure handling").
func (r *Reconciler) IsPlaceholder(pane model.PaneId) bool {
	return r.mounted[pane].placeholder
}

// WidgetIDFor returns the widget id recorded for pane's current mount,
// for placeholder diagnostic rendering (showing the widget_id as text).
func (r *Reconciler) WidgetIDFor(pane model.PaneId) (model.WidgetId, bool) {
	e, ok := r.mounted[pane]
	return e.widgetID, ok
}

func idSet(tree *model.Tree) map[model.PaneId]bool {
	set := make(map[model.PaneId]bool)
	if tree == nil {
		return set
	}
	for _, id := range model.PaneIDs(tree.Root) {
		set[id] = true
	}
	return set
}

func widgetIDIn(tree *model.Tree, pane model.PaneId) (model.WidgetId, bool) {
	if tree == nil {
		return "", false
	}
	return model.WidgetIDOf(tree.Root, pane)
}
