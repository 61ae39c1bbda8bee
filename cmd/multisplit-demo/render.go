// Copyright © 2026 MultiSplit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/multisplit-demo/render.go
// Summary: Renders a reconciled layout as bordered boxes via tcell.

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/texelation/multisplit"
	"github.com/texelation/multisplit/geometry"
	"github.com/texelation/multisplit/model"
)

var (
	styleNormal      = tcell.StyleDefault
	styleFocused     = tcell.StyleDefault.Reverse(true)
	stylePlaceholder = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHandle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// renderFrame draws every leaf's border and label and every split handle
// into screen, using layout for geometry and engine for widget/focus state.
// A pane with an installed placeholder (provider failure) shows its
// widget id as red diagnostic text, mirroring the teacher's pane buffer
// fallback when an app is nil.
func renderFrame(screen tcell.Screen, engine *multisplit.Engine, layout *geometry.Layout) {
	screen.Clear()

	focused := engine.FocusedPane()
	for pane, geom := range layout.Leaves {
		style := styleNormal
		if pane == focused {
			style = styleFocused
		}
		drawBox(screen, geom.Rect, style)

		label := labelFor(engine, pane, geom)
		labelStyle := style
		if _, placeholder, _ := engine.WidgetHandle(pane); placeholder || geom.Overflow {
			labelStyle = stylePlaceholder
		}
		drawText(screen, geom.Rect.X+1, geom.Rect.Y+1, geom.Rect.W-2, label, labelStyle)
	}

	for _, h := range layout.Handles {
		drawHandle(screen, h)
	}

	screen.Show()
}

func labelFor(engine *multisplit.Engine, pane model.PaneId, geom geometry.LeafGeometry) string {
	widgetID, _ := engine.WidgetIDOf(pane)
	if geom.Overflow {
		return fmt.Sprintf("%s (too small)", widgetID)
	}
	if _, placeholder, ok := engine.WidgetHandle(pane); ok && placeholder {
		return fmt.Sprintf("%s (failed)", widgetID)
	}
	return string(widgetID)
}

func drawBox(screen tcell.Screen, r geometry.Rect, style tcell.Style) {
	for x := r.X; x < r.X+r.W; x++ {
		screen.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, r.Y+r.H-1, tcell.RuneHLine, nil, style)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		screen.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(r.X+r.W-1, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(r.X+r.W-1, r.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(r.X, r.Y+r.H-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(r.X+r.W-1, r.Y+r.H-1, tcell.RuneLRCorner, nil, style)
}

func drawHandle(screen tcell.Screen, h geometry.HandleGeometry) {
	for x := h.Rect.X; x < h.Rect.X+h.Rect.W; x++ {
		for y := h.Rect.Y; y < h.Rect.Y+h.Rect.H; y++ {
			screen.SetContent(x, y, ' ', nil, styleHandle)
		}
	}
}

// drawText writes text at (x, y), truncated to width cells measured with
// go-runewidth so multi-column runes never overrun the pane's interior.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	col := x
	budget := width
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if budget-w < 0 {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col += w
		budget -= w
	}
}
