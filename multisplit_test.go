package multisplit

import (
	"errors"
	"testing"

	"github.com/texelation/multisplit/command"
	"github.com/texelation/multisplit/geometry"
	"github.com/texelation/multisplit/model"
	"github.com/texelation/multisplit/reconcile"
)

type fakeProvider struct {
	fail map[model.WidgetId]bool
}

func (p *fakeProvider) ProvideWidget(widgetID model.WidgetId, pane model.PaneId) (reconcile.WidgetHandle, error) {
	if p.fail != nil && p.fail[widgetID] {
		return nil, errors.New("provider failure")
	}
	return string(widgetID), nil
}

func (p *fakeProvider) WidgetClosing(widgetID model.WidgetId, pane model.PaneId, handle reconcile.WidgetHandle) {
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(&fakeProvider{}, Options{IDGen: command.NewSeededGenerator(1, "p")})
}

func TestEngineInsertInitialAndSplit(t *testing.T) {
	e := newTestEngine(t)
	p1, err := e.InsertInitial("A")
	if err != nil {
		t.Fatalf("insert initial: %v", err)
	}
	if e.FocusedPane() != p1 {
		t.Fatalf("expected initial pane focused, got %q", e.FocusedPane())
	}

	p2, err := e.Split(p1, model.Right, "B", 0.5)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(e.PaneIDs()) != 2 {
		t.Fatalf("expected 2 panes, got %d", len(e.PaneIDs()))
	}
	handle, placeholder, ok := e.WidgetHandle(p2)
	if !ok || placeholder || handle != "B" {
		t.Fatalf("expected mounted handle B for p2, got %v placeholder=%v ok=%v", handle, placeholder, ok)
	}
}

func TestEngineUndoRedoRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	p1, _ := e.InsertInitial("A")
	if _, err := e.Split(p1, model.Right, "B", 0.5); err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(e.PaneIDs()) != 2 {
		t.Fatalf("expected 2 panes before undo")
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(e.PaneIDs()) != 1 {
		t.Fatalf("expected 1 pane after undo, got %d", len(e.PaneIDs()))
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if len(e.PaneIDs()) != 2 {
		t.Fatalf("expected 2 panes after redo, got %d", len(e.PaneIDs()))
	}
}

func TestEngineNavigateAndBlockedNotification(t *testing.T) {
	e := newTestEngine(t)
	p1, _ := e.InsertInitial("A")
	if _, err := e.Split(p1, model.Right, "B", 0.5); err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := e.SetFocus(p1); err != nil {
		t.Fatalf("set focus: %v", err)
	}

	outer := geometry.Rect{X: 0, Y: 0, W: 100, H: 50}
	if err := e.Navigate(outer, 0, model.Right); err != nil {
		t.Fatalf("navigate right: %v", err)
	}
	if e.FocusedPane() == p1 {
		t.Fatalf("expected focus to move off p1")
	}

	var blocked int
	e.Subscribe(listenerFunc(func(evt model.ChangeEvent) {
		if evt.Type == model.EventFocusNavigationBlocked {
			blocked++
		}
	}))
	if err := e.Navigate(outer, 0, model.Right); err != nil {
		t.Fatalf("navigate right at boundary: %v", err)
	}
	if blocked != 1 {
		t.Fatalf("expected exactly one blocked notification, got %d", blocked)
	}
}

func TestEngineSaveLoadRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	p1, _ := e.InsertInitial("A")
	if _, err := e.Split(p1, model.Right, "B", 0.5); err != nil {
		t.Fatalf("split: %v", err)
	}
	data, err := e.Save(true)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	other := New(&fakeProvider{}, Options{})
	if err := other.Load(data); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(other.PaneIDs()) != 2 {
		t.Fatalf("expected 2 panes after load, got %d", len(other.PaneIDs()))
	}
}

func TestEngineTransactionCommitIsOneUndoEntry(t *testing.T) {
	e := newTestEngine(t)
	p1, _ := e.InsertInitial("A")

	tx := e.BeginTransaction()
	p2Cmd := &command.SplitCommand{Target: p1, Where: model.Right, NewWidgetID: "B", IDGen: command.NewSeededGenerator(2, "p")}
	if err := tx.Execute(p2Cmd); err != nil {
		t.Fatalf("tx split: %v", err)
	}
	p2 := p2Cmd.NewPaneID()
	closeCmd := &command.CloseCommand{Target: p2}
	if err := tx.Execute(closeCmd); err != nil {
		t.Fatalf("tx close: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(e.PaneIDs()) != 1 {
		t.Fatalf("expected 1 pane after transaction, got %d", len(e.PaneIDs()))
	}
	if !e.CanUndo() {
		t.Fatalf("expected a single undoable entry for the whole transaction")
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("undo transaction: %v", err)
	}
	if len(e.PaneIDs()) != 1 {
		t.Fatalf("expected transaction fully reversed, got %d panes", len(e.PaneIDs()))
	}
	// The only entry left is InsertInitial's; undoing it empties the tree.
	if err := e.Undo(); err != nil {
		t.Fatalf("undo insert initial: %v", err)
	}
	if len(e.PaneIDs()) != 0 {
		t.Fatalf("expected empty tree after undoing insert initial, got %d panes", len(e.PaneIDs()))
	}
	if e.CanUndo() {
		t.Fatalf("expected no further undoable entries")
	}
}

type listenerFunc func(model.ChangeEvent)

func (f listenerFunc) HandleChange(evt model.ChangeEvent) { f(evt) }
