// Copyright © 2026 MultiSplit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/multisplit-demo/provider.go
// Summary: Stand-in WidgetProvider for the demo host.

package main

import (
	"errors"
	"sync/atomic"

	"github.com/texelation/multisplit/model"
	"github.com/texelation/multisplit/reconcile"
)

// paneWidget is the demo host's stand-in for a real widget (a shell, an
// editor, whatever a production host would mount). It carries just enough
// state to render a labeled box: the widget id it was created for and a
// sequence number so distinct widgets with the same id are visibly distinct.
type paneWidget struct {
	widgetID model.WidgetId
	seq      int64
}

// demoProvider implements reconcile.WidgetProvider. Any widget id prefixed
// with "broken:" fails to provide, exercising the placeholder rendering
// path (§4.3 Failure handling) without needing a real failing backend.
type demoProvider struct {
	seq atomic.Int64
}

func newDemoProvider() *demoProvider {
	return &demoProvider{}
}

func (p *demoProvider) ProvideWidget(widgetID model.WidgetId, pane model.PaneId) (reconcile.WidgetHandle, error) {
	if len(widgetID) >= 7 && widgetID[:7] == "broken:" {
		return nil, errors.New("provider refused widget " + string(widgetID))
	}
	return &paneWidget{widgetID: widgetID, seq: p.seq.Add(1)}, nil
}

func (p *demoProvider) WidgetClosing(widgetID model.WidgetId, pane model.PaneId, handle reconcile.WidgetHandle) {
	// The demo host owns no external resources (no PTYs, no file handles)
	// per spec §1's ownership boundary, so there is nothing to release here.
}
