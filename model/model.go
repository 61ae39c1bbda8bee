package model

// EventType names the kind of change a ChangeEvent carries. The shape
// mirrors the teacher's typed event dispatcher (texel/dispatcher.go's
// Event/EventType pair broadcast to subscribers) generalized to the
// model's own notifications (tree_changed, focus_changed,
// selection_changed, focus_navigation_blocked).
type EventType int

const (
	EventTreeChanged EventType = iota
	EventFocusChanged
	EventSelectionChanged
	EventFocusNavigationBlocked
)

// ChangeEvent is delivered synchronously to every registered Listener from
// within the call stack that produced it. Only the fields relevant to
// Type are populated.
type ChangeEvent struct {
	Type EventType

	OldTree *Tree
	NewTree *Tree

	OldFocus PaneId
	NewFocus PaneId

	OldSelection []PaneId
	NewSelection []PaneId

	BlockedDirection Direction
}

// Listener observes Model changes. Implementations must not call back into
// Apply from within HandleChange — the Model rejects reentrant mutation
// attempts with ErrReentrantMutation.
type Listener interface {
	HandleChange(ChangeEvent)
}

// Model is the canonical, validated tree plus focus/selection state
// described in §4.1. It is the sole holder of the current Tree; Apply is
// its only mutating entry point, invoked only by the Controller.
type Model struct {
	tree      *Tree
	epsilon   float64
	listeners []Listener
	applying  bool
}

// New creates an empty Model. epsilon is the minimum ratio any side of a
// split may hold; pass DefaultEpsilon unless the host has a reason to
// allow tighter or looser splits.
func New(epsilon float64) *Model {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Model{tree: Empty(), epsilon: epsilon}
}

// Epsilon returns the configured minimum split ratio.
func (m *Model) Epsilon() float64 { return m.epsilon }

// Subscribe registers a listener. Order of delivery matches registration
// order.
func (m *Model) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Unsubscribe removes a previously registered listener, if present.
func (m *Model) Unsubscribe(l Listener) {
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Root returns the current tree's root node (nil when every pane is
// closed).
func (m *Model) Root() *Node { return m.tree.Root }

// Tree returns the current tree. Cheap to call repeatedly: the returned
// value is immutable and shares structure with whatever tree follows it.
func (m *Model) Tree() *Tree { return m.tree }

// FindLeaf returns the leaf with the given pane id.
func (m *Model) FindLeaf(pane PaneId) (*LeafNode, bool) { return FindLeaf(m.tree.Root, pane) }

// FindParent returns the split node that owns pane and which slot it
// occupies.
func (m *Model) FindParent(pane PaneId) (*SplitNode, ChildSlot, bool) {
	return FindParent(m.tree.Root, pane)
}

// PaneIDs returns every pane id in stable in-order traversal order.
func (m *Model) PaneIDs() []PaneId { return PaneIDs(m.tree.Root) }

// WidgetIDOf returns the widget id displayed in pane.
func (m *Model) WidgetIDOf(pane PaneId) (WidgetId, bool) { return WidgetIDOf(m.tree.Root, pane) }

// FocusedPane returns the currently focused pane, or "" if none.
func (m *Model) FocusedPane() PaneId { return m.tree.FocusedPane }

// Selection returns the current ordered selection set.
func (m *Model) Selection() []PaneId { return m.tree.Selection }

// Revision returns the strictly monotonic revision counter, incremented on
// every successful Apply.
func (m *Model) Revision() uint64 { return m.tree.Revision }

// Apply validates next against every invariant and, if it passes, makes it
// the Model's current tree, bumps the revision, and notifies listeners.
// Rejected changes leave the Model untouched (atomic failure). Apply
// itself guards against reentrant invocation from within a listener's
// HandleChange.
func (m *Model) Apply(next *Tree) error {
	if m.applying {
		return ErrReentrantMutation
	}
	if err := Validate(next.Root, m.epsilon); err != nil {
		return err
	}
	if err := ValidateFocus(next.Root, next.FocusedPane); err != nil {
		return err
	}
	next.Selection = filterLiveSelection(next.Root, next.Selection)

	old := m.tree
	next.Revision = old.Revision + 1
	m.applying = true
	m.tree = next
	m.notify(old, next)
	m.applying = false
	return nil
}

func filterLiveSelection(root *Node, selection []PaneId) []PaneId {
	if len(selection) == 0 {
		return selection
	}
	live := make(map[PaneId]bool)
	for _, id := range PaneIDs(root) {
		live[id] = true
	}
	out := make([]PaneId, 0, len(selection))
	for _, id := range selection {
		if live[id] {
			out = append(out, id)
		}
	}
	return out
}

func (m *Model) notify(old, next *Tree) {
	m.dispatch(ChangeEvent{Type: EventTreeChanged, OldTree: old, NewTree: next})
	if old.FocusedPane != next.FocusedPane {
		m.dispatch(ChangeEvent{Type: EventFocusChanged, OldFocus: old.FocusedPane, NewFocus: next.FocusedPane})
	}
	if !sameSelection(old.Selection, next.Selection) {
		m.dispatch(ChangeEvent{Type: EventSelectionChanged, OldSelection: old.Selection, NewSelection: next.Selection})
	}
}

// NotifyBlocked emits focus_navigation_blocked. It is called by the focus
// package, which does not itself hold a reference fit to construct a
// ChangeEvent of the other kinds.
func (m *Model) NotifyBlocked(d Direction) {
	m.dispatch(ChangeEvent{Type: EventFocusNavigationBlocked, BlockedDirection: d})
}

func (m *Model) dispatch(evt ChangeEvent) {
	for _, l := range m.listeners {
		l.HandleChange(evt)
	}
}

func sameSelection(a, b []PaneId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
