// Package geometry turns a MultiSplit tree into pixel rectangles: one per
// leaf, one per split handle (for input routing), computed as a pure
// function of the tree, an outer rectangle, and a handle thickness (§4.4).
package geometry

import "github.com/texelation/multisplit/model"

// DefaultHandleThickness is the width (for a Horizontal split, which divides
// the rectangle side by side) or height (for a Vertical split, which stacks
// it top to bottom) reserved for the draggable divider between children.
const DefaultHandleThickness = 4

// MinLeafSize is the minimum width and height a leaf may be allocated
// before its subtree is flagged as overflowing.
const MinLeafSize = 20

// Rect is an axis-aligned pixel rectangle with an integer origin and
// extent.
type Rect struct {
	X, Y, W, H int
}

// LeafGeometry is the computed placement for one leaf.
type LeafGeometry struct {
	Rect     Rect
	Overflow bool
}

// HandleGeometry is the computed placement for one split's divider,
// usable by a host for input routing (drag-to-resize).
type HandleGeometry struct {
	Path        []model.Direction
	Rect        Rect
	Orientation model.Orientation
}

// Layout is the full result of an Allocate call: every leaf's rectangle
// keyed by pane id, plus every split's handle rectangle.
type Layout struct {
	Leaves  map[model.PaneId]LeafGeometry
	Handles []HandleGeometry
}

// Allocate computes the geometry for every leaf and split handle in root,
// within outer, using handleThickness as the divider size (DefaultHandleThickness
// if <= 0). It is a pure function: identical inputs produce a bit-identical
// Layout (§4.4 "Determinism").
func Allocate(root *model.Node, outer Rect, handleThickness int) *Layout {
	if handleThickness <= 0 {
		handleThickness = DefaultHandleThickness
	}
	l := &Layout{Leaves: make(map[model.PaneId]LeafGeometry)}
	allocateNode(root, outer, handleThickness, nil, l)
	return l
}

func allocateNode(n *model.Node, rect Rect, thickness int, path []model.Direction, l *Layout) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		overflow := rect.W < MinLeafSize || rect.H < MinLeafSize
		l.Leaves[n.Leaf.PaneID] = LeafGeometry{Rect: rect, Overflow: overflow}
		return
	}
	s := n.Split
	if s.Orientation == model.Horizontal {
		available := rect.W - thickness
		w0 := roundRatio(available, s.Ratios[0])
		w1 := available - w0
		first := Rect{X: rect.X, Y: rect.Y, W: w0, H: rect.H}
		second := Rect{X: rect.X + w0 + thickness, Y: rect.Y, W: w1, H: rect.H}
		handle := Rect{X: rect.X + w0, Y: rect.Y, W: thickness, H: rect.H}
		l.Handles = append(l.Handles, HandleGeometry{Path: path, Rect: handle, Orientation: s.Orientation})
		allocateNode(s.Children[0], first, thickness, append(append([]model.Direction(nil), path...), model.Left), l)
		allocateNode(s.Children[1], second, thickness, append(append([]model.Direction(nil), path...), model.Right), l)
		return
	}

	available := rect.H - thickness
	h0 := roundRatio(available, s.Ratios[0])
	h1 := available - h0
	first := Rect{X: rect.X, Y: rect.Y, W: rect.W, H: h0}
	second := Rect{X: rect.X, Y: rect.Y + h0 + thickness, W: rect.W, H: h1}
	handle := Rect{X: rect.X, Y: rect.Y + h0, W: rect.W, H: thickness}
	l.Handles = append(l.Handles, HandleGeometry{Path: path, Rect: handle, Orientation: s.Orientation})
	allocateNode(s.Children[0], first, thickness, append(append([]model.Direction(nil), path...), model.Up), l)
	allocateNode(s.Children[1], second, thickness, append(append([]model.Direction(nil), path...), model.Down), l)
}

// roundRatio rounds available*ratio to the nearest integer, half away from
// zero. available is always >= 0 for a validly allocated split.
func roundRatio(available int, ratio float64) int {
	return int(float64(available)*ratio + 0.5)
}
