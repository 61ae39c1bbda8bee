package command

import (
	"testing"

	"github.com/texelation/multisplit/model"
)

func TestReplaceWidgetCommandExecuteAndUndo(t *testing.T) {
	m, a := newTestModel(t)
	rw := &ReplaceWidgetCommand{Pane: a, NewWidgetID: "terminal"}
	if err := rw.Execute(m); err != nil {
		t.Fatalf("execute: %v", err)
	}
	widget, ok := m.WidgetIDOf(a)
	if !ok || widget != "terminal" {
		t.Fatalf("expected widget %q, got %q (ok=%v)", "terminal", widget, ok)
	}
	if _, ok := m.FindLeaf(a); !ok {
		t.Fatalf("expected pane id %q to survive widget replacement", a)
	}

	if err := rw.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	widget, _ = m.WidgetIDOf(a)
	if widget != "w1" {
		t.Fatalf("expected widget restored to %q, got %q", "w1", widget)
	}
}

func TestReplaceWidgetCommandUnknownPane(t *testing.T) {
	m, _ := newTestModel(t)
	rw := &ReplaceWidgetCommand{Pane: "ghost", NewWidgetID: "x"}
	if _, ok := rw.Execute(m).(*model.PaneNotFoundError); !ok {
		t.Fatalf("expected PaneNotFoundError")
	}
}
