// Package focus implements directional and tab-order focus navigation over
// a reconciled layout (§4.5). It sits above command and geometry: it reads
// the current layout, decides the next pane, and drives the change through
// a Controller so the move is itself undoable and notified like any other
// focus change.
package focus

import (
	"github.com/texelation/multisplit/command"
	"github.com/texelation/multisplit/geometry"
	"github.com/texelation/multisplit/model"
)

// Navigate moves focus to the leaf adjacent to the currently focused pane
// in direction, using layout for spatial geometry. If no leaf lies in that
// direction (the focused pane is at the outer boundary), focus is
// unchanged and the model emits focus_navigation_blocked.
func Navigate(ctrl *command.Controller, layout *geometry.Layout, d model.Direction) error {
	m := ctrl.Model()
	current := m.FocusedPane()
	if current == "" {
		return nil
	}
	currentGeom, ok := layout.Leaves[current]
	if !ok {
		return nil
	}
	gap := 0
	if len(layout.Handles) > 0 {
		h := layout.Handles[0]
		gap = h.Rect.W
		if h.Orientation == model.Vertical {
			gap = h.Rect.H
		}
	}
	px, py := probePoint(currentGeom.Rect, d, gap)
	target := findContaining(layout, px, py, current)
	if target == "" {
		m.NotifyBlocked(d)
		return nil
	}
	return ctrl.Execute(&command.SetFocusCommand{Pane: target})
}

// FocusNext moves focus to the next leaf in in-order traversal, wrapping to
// the first leaf after the last.
func FocusNext(ctrl *command.Controller) error {
	return stepTabOrder(ctrl, 1)
}

// FocusPrevious moves focus to the previous leaf in in-order traversal,
// wrapping to the last leaf before the first.
func FocusPrevious(ctrl *command.Controller) error {
	return stepTabOrder(ctrl, -1)
}

func stepTabOrder(ctrl *command.Controller, delta int) error {
	m := ctrl.Model()
	ids := m.PaneIDs()
	if len(ids) == 0 {
		return nil
	}
	current := m.FocusedPane()
	idx := 0
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	next := ((idx+delta)%len(ids) + len(ids)) % len(ids)
	return ctrl.Execute(&command.SetFocusCommand{Pane: ids[next]})
}

// probePoint returns the midpoint of the rect's edge facing direction,
// advanced past a divider gap units thick so it falls inside the adjacent
// pane rather than on the shared handle.
func probePoint(r geometry.Rect, d model.Direction, gap int) (x, y int) {
	switch d {
	case model.Right:
		return r.X + r.W + gap, r.Y + r.H/2
	case model.Left:
		return r.X - gap - 1, r.Y + r.H/2
	case model.Down:
		return r.X + r.W/2, r.Y + r.H + gap
	case model.Up:
		return r.X + r.W/2, r.Y - gap - 1
	default:
		return r.X, r.Y
	}
}

// findContaining returns the pane id of the leaf whose rect contains
// (x, y), excluding exclude. Returns "" if no leaf contains the point.
func findContaining(layout *geometry.Layout, x, y int, exclude model.PaneId) model.PaneId {
	for id, geom := range layout.Leaves {
		if id == exclude {
			continue
		}
		if containsPoint(geom.Rect, x, y) {
			return id
		}
	}
	return ""
}

func containsPoint(r geometry.Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
