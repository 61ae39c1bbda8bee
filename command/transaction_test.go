package command

import (
	"testing"

	"github.com/texelation/multisplit/model"
)

func TestTransactionCommitIsOneHistoryEntry(t *testing.T) {
	ctrl, a := newTestController(t)
	tx := ctrl.Begin()

	s1 := &SplitCommand{Target: a, Where: model.Right, NewWidgetID: "w2", IDGen: NewSeededGenerator(300, "pane")}
	if err := tx.Execute(s1); err != nil {
		t.Fatalf("tx execute s1: %v", err)
	}
	b := s1.NewPaneID()
	s2 := &SplitCommand{Target: b, Where: model.Down, NewWidgetID: "w3", IDGen: NewSeededGenerator(301, "pane")}
	if err := tx.Execute(s2); err != nil {
		t.Fatalf("tx execute s2: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(ctrl.Model().PaneIDs()) != 3 {
		t.Fatalf("expected 3 panes after transaction, got %d", len(ctrl.Model().PaneIDs()))
	}
	if !ctrl.CanUndo() {
		t.Fatalf("expected one undoable entry after commit")
	}
	if err := ctrl.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(ctrl.Model().PaneIDs()) != 1 {
		t.Fatalf("expected single undo to revert the whole transaction, got %d panes", len(ctrl.Model().PaneIDs()))
	}
	if ctrl.CanUndo() {
		t.Fatalf("expected no further undo entries for the transaction's inner commands")
	}
}

func TestTransactionRollbackLeavesNoTrace(t *testing.T) {
	ctrl, a := newTestController(t)
	tx := ctrl.Begin()

	s1 := &SplitCommand{Target: a, Where: model.Right, NewWidgetID: "w2", IDGen: NewSeededGenerator(310, "pane")}
	if err := tx.Execute(s1); err != nil {
		t.Fatalf("tx execute: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if len(ctrl.Model().PaneIDs()) != 1 {
		t.Fatalf("expected rollback to undo the split, got %d panes", len(ctrl.Model().PaneIDs()))
	}
	if ctrl.CanUndo() {
		t.Fatalf("expected rollback to leave no history entry")
	}
}

func TestTransactionNestedBeginFlattensToOutermost(t *testing.T) {
	ctrl, a := newTestController(t)
	outer := ctrl.Begin()
	inner := ctrl.Begin()
	if outer != inner {
		t.Fatalf("expected nested Begin to return the same transaction instance")
	}

	s := &SplitCommand{Target: a, Where: model.Right, NewWidgetID: "w2", IDGen: NewSeededGenerator(320, "pane")}
	if err := inner.Execute(s); err != nil {
		t.Fatalf("inner execute: %v", err)
	}

	if err := inner.Commit(); err != nil {
		t.Fatalf("inner commit: %v", err)
	}
	if ctrl.CanUndo() {
		t.Fatalf("expected inner commit to defer to outer, not close the transaction")
	}

	if err := outer.Commit(); err != nil {
		t.Fatalf("outer commit: %v", err)
	}
	if !ctrl.CanUndo() {
		t.Fatalf("expected outer commit to push the single composite entry")
	}
}

func TestTransactionDoubleCloseIsSafeNoOp(t *testing.T) {
	ctrl, _ := newTestController(t)
	tx := ctrl.Begin()
	if err := tx.Commit(); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if err := tx.Commit(); err != ErrNoActiveTransaction {
		t.Fatalf("expected ErrNoActiveTransaction on second commit, got %v", err)
	}
	if err := tx.Rollback(); err != ErrNoActiveTransaction {
		t.Fatalf("expected ErrNoActiveTransaction on rollback after commit, got %v", err)
	}
}
