package command

import (
	"testing"

	"github.com/texelation/multisplit/model"
)

func TestMoveCommandExecuteAndUndo(t *testing.T) {
	m, a, b, c := buildThreePane(t)

	mv := &MoveCommand{Source: c, Target: a, Where: model.Left}
	if err := mv.Execute(m); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if m.FocusedPane() != c {
		t.Fatalf("expected focus on moved pane %q, got %q", c, m.FocusedPane())
	}
	parent, _, ok := m.FindParent(c)
	if !ok || parent.Orientation != model.Horizontal {
		t.Fatalf("expected c to have a horizontal split parent after move left")
	}

	if err := mv.Undo(m); err != nil {
		t.Fatalf("undo: %v", err)
	}
	ids := m.PaneIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 panes after undo, got %d", len(ids))
	}
	// After undo, b and c must both still exist under a's former sibling
	// split exactly as buildThreePane constructed it.
	if _, ok := m.FindLeaf(b); !ok {
		t.Fatalf("expected pane %q present after undo", b)
	}
	if _, ok := m.FindLeaf(c); !ok {
		t.Fatalf("expected pane %q present after undo", c)
	}
}

func TestMoveCommandRejectsSelfMove(t *testing.T) {
	m, a := newTestModel(t)
	mv := &MoveCommand{Source: a, Target: a, Where: model.Left}
	if err := mv.Execute(m); err != model.ErrInvalidMove {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestMoveCommandRejectsUnknownPanes(t *testing.T) {
	m, a, _, _ := buildThreePane(t)
	mv := &MoveCommand{Source: "ghost", Target: a, Where: model.Left}
	if _, ok := mv.Execute(m).(*model.PaneNotFoundError); !ok {
		t.Fatalf("expected PaneNotFoundError for unknown source")
	}
	mv2 := &MoveCommand{Source: a, Target: "ghost", Where: model.Left}
	if _, ok := mv2.Execute(m).(*model.PaneNotFoundError); !ok {
		t.Fatalf("expected PaneNotFoundError for unknown target")
	}
}
