package reconcile

import (
	"errors"
	"testing"

	"github.com/texelation/multisplit/command"
	"github.com/texelation/multisplit/model"
)

type fakeProvider struct {
	nextHandle  int
	fail        map[model.WidgetId]bool
	provided    []string // "widgetID/pane" in call order
	closed      []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{fail: make(map[model.WidgetId]bool)}
}

func (p *fakeProvider) ProvideWidget(widgetID model.WidgetId, pane model.PaneId) (WidgetHandle, error) {
	p.provided = append(p.provided, string(widgetID)+"/"+string(pane))
	if p.fail[widgetID] {
		return nil, errors.New("provider failure")
	}
	p.nextHandle++
	return p.nextHandle, nil
}

func (p *fakeProvider) WidgetClosing(widgetID model.WidgetId, pane model.PaneId, handle WidgetHandle) {
	p.closed = append(p.closed, string(widgetID)+"/"+string(pane))
}

func setupWithReconciler(t *testing.T) (*command.Controller, *Reconciler, *fakeProvider, model.PaneId) {
	t.Helper()
	m := model.New(model.DefaultEpsilon)
	ctrl := command.NewController(m, 10)
	provider := newFakeProvider()
	rec := NewReconciler(provider)
	ctrl.Subscribe(rec)

	init := &command.CreateInitialCommand{WidgetID: "A", IDGen: command.NewSeededGenerator(1, "p")}
	if err := ctrl.Execute(init); err != nil {
		t.Fatalf("create_initial: %v", err)
	}
	return ctrl, rec, provider, init.PaneID()
}

func TestReconcilerMountsNewPaneOnSplit(t *testing.T) {
	ctrl, rec, provider, p1 := setupWithReconciler(t)
	if _, ok := rec.Handle(p1); !ok {
		t.Fatalf("expected p1 mounted after create_initial")
	}

	split := &command.SplitCommand{Target: p1, Where: model.Right, NewWidgetID: "B", IDGen: command.NewSeededGenerator(2, "p")}
	if err := ctrl.Execute(split); err != nil {
		t.Fatalf("split: %v", err)
	}
	p2 := split.NewPaneID()
	if _, ok := rec.Handle(p2); !ok {
		t.Fatalf("expected p2 mounted after split")
	}
	if len(provider.provided) != 2 {
		t.Fatalf("expected 2 provide calls, got %d: %v", len(provider.provided), provider.provided)
	}
}

func TestReconcilerPreservesRetainedHandleIdentity(t *testing.T) {
	ctrl, rec, _, p1 := setupWithReconciler(t)
	split := &command.SplitCommand{Target: p1, Where: model.Right, NewWidgetID: "B", IDGen: command.NewSeededGenerator(3, "p")}
	if err := ctrl.Execute(split); err != nil {
		t.Fatalf("split: %v", err)
	}
	before, _ := rec.Handle(p1)

	resize := &command.ResizeCommand{Path: nil, NewRatios: [2]float64{0.3, 0.7}}
	if err := ctrl.Execute(resize); err != nil {
		t.Fatalf("resize: %v", err)
	}
	after, _ := rec.Handle(p1)
	if before != after {
		t.Fatalf("expected p1's handle identity preserved across resize, got %v -> %v", before, after)
	}
}

func TestReconcilerClosesRemovedPane(t *testing.T) {
	ctrl, rec, provider, p1 := setupWithReconciler(t)
	split := &command.SplitCommand{Target: p1, Where: model.Right, NewWidgetID: "B", IDGen: command.NewSeededGenerator(4, "p")}
	if err := ctrl.Execute(split); err != nil {
		t.Fatalf("split: %v", err)
	}
	p2 := split.NewPaneID()

	closeCmd := &command.CloseCommand{Target: p2}
	if err := ctrl.Execute(closeCmd); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := rec.Handle(p2); ok {
		t.Fatalf("expected p2's handle removed after close")
	}
	found := false
	for _, c := range provider.closed {
		if c == "B/"+string(p2) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected widget_closing(B, p2), got %v", provider.closed)
	}
}

func TestReconcilerWidgetIDChangeClosesThenMounts(t *testing.T) {
	ctrl, rec, provider, p1 := setupWithReconciler(t)
	before, _ := rec.Handle(p1)

	rw := &command.ReplaceWidgetCommand{Pane: p1, NewWidgetID: "terminal"}
	if err := ctrl.Execute(rw); err != nil {
		t.Fatalf("replace widget: %v", err)
	}
	after, ok := rec.Handle(p1)
	if !ok {
		t.Fatalf("expected p1 still mounted after widget replacement")
	}
	if before == after {
		t.Fatalf("expected a new handle instance after widget_id changed")
	}
	widgetID, _ := rec.WidgetIDFor(p1)
	if widgetID != "terminal" {
		t.Fatalf("expected widget id %q, got %q", "terminal", widgetID)
	}
	closedOld := false
	for _, c := range provider.closed {
		if c == "A/"+string(p1) {
			closedOld = true
		}
	}
	if !closedOld {
		t.Fatalf("expected widget_closing for the old widget id, got %v", provider.closed)
	}
}

func TestReconcilerProviderFailureInstallsPlaceholder(t *testing.T) {
	m := model.New(model.DefaultEpsilon)
	ctrl := command.NewController(m, 10)
	provider := newFakeProvider()
	provider.fail["ghost-widget"] = true
	rec := NewReconciler(provider)
	ctrl.Subscribe(rec)

	init := &command.CreateInitialCommand{WidgetID: "ghost-widget", IDGen: command.NewSeededGenerator(5, "p")}
	if err := ctrl.Execute(init); err != nil {
		t.Fatalf("create_initial: %v", err)
	}
	p1 := init.PaneID()
	if !rec.IsPlaceholder(p1) {
		t.Fatalf("expected p1 to be a placeholder after provider failure")
	}
	widgetID, _ := rec.WidgetIDFor(p1)
	if widgetID != "ghost-widget" {
		t.Fatalf("expected placeholder to retain widget id for diagnostics, got %q", widgetID)
	}

	// Closing a placeholder pane must still succeed and still notify
	// widget_closing, even though its handle is nil.
	closeCmd := &command.CloseCommand{Target: p1}
	if err := ctrl.Execute(closeCmd); err != nil {
		t.Fatalf("close placeholder pane: %v", err)
	}
	if _, ok := rec.Handle(p1); ok {
		t.Fatalf("expected placeholder entry removed after close")
	}
	closedPlaceholder := false
	for _, c := range provider.closed {
		if c == "ghost-widget/"+string(p1) {
			closedPlaceholder = true
		}
	}
	if !closedPlaceholder {
		t.Fatalf("expected widget_closing for the placeholder pane, got %v", provider.closed)
	}
}
