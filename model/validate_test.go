package model

import "testing"

func TestValidateNilRootIsValid(t *testing.T) {
	if err := Validate(nil, DefaultEpsilon); err != nil {
		t.Fatalf("expected nil root to be valid, got %v", err)
	}
}

func TestValidateSingleLeafIsValid(t *testing.T) {
	root := NewLeaf("p1", "A")
	if err := Validate(root, DefaultEpsilon); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsRatioSumMismatch(t *testing.T) {
	root := NewSplit(Vertical, NewLeaf("p1", "A"), NewLeaf("p2", "B"), [2]float64{0.4, 0.4})
	err := Validate(root, DefaultEpsilon)
	if err == nil {
		t.Fatalf("expected ratio-sum violation")
	}
	var ive *InvariantViolationError
	if !asInvariantViolation(err, &ive) || ive.Which != "ratio-sum" {
		t.Fatalf("expected ratio-sum violation, got %v", err)
	}
}

func TestValidateRejectsRatioBelowEpsilon(t *testing.T) {
	root := NewSplit(Vertical, NewLeaf("p1", "A"), NewLeaf("p2", "B"), [2]float64{0.01, 0.99})
	err := Validate(root, DefaultEpsilon)
	if err == nil {
		t.Fatalf("expected ratio-bounds violation")
	}
	var ive *InvariantViolationError
	if !asInvariantViolation(err, &ive) || ive.Which != "ratio-bounds" {
		t.Fatalf("expected ratio-bounds violation, got %v", err)
	}
}

func TestValidateRejectsDuplicatePaneID(t *testing.T) {
	root := NewSplit(Vertical, NewLeaf("p1", "A"), NewLeaf("p1", "B"), [2]float64{0.5, 0.5})
	err := Validate(root, DefaultEpsilon)
	if err == nil {
		t.Fatalf("expected unique-pane violation")
	}
	var ive *InvariantViolationError
	if !asInvariantViolation(err, &ive) || ive.Which != "unique-pane" {
		t.Fatalf("expected unique-pane violation, got %v", err)
	}
}

func TestValidateRejectsNilChild(t *testing.T) {
	root := &Node{Split: &SplitNode{Orientation: Vertical, Ratios: [2]float64{0.5, 0.5}, Children: [2]*Node{NewLeaf("p1", "A"), nil}}}
	err := Validate(root, DefaultEpsilon)
	if err == nil {
		t.Fatalf("expected binary-rule violation")
	}
}

func TestValidateRejectsCycle(t *testing.T) {
	leaf := NewLeaf("p1", "A")
	cyclic := &Node{Split: &SplitNode{Orientation: Vertical, Ratios: [2]float64{0.5, 0.5}}}
	cyclic.Split.Children = [2]*Node{leaf, cyclic}
	err := Validate(cyclic, DefaultEpsilon)
	if err == nil {
		t.Fatalf("expected acyclic violation")
	}
	var ive *InvariantViolationError
	if !asInvariantViolation(err, &ive) || ive.Which != "acyclic" {
		t.Fatalf("expected acyclic violation, got %v", err)
	}
}

func TestValidateFocusRequiresLivePane(t *testing.T) {
	root := NewLeaf("p1", "A")
	if err := ValidateFocus(root, "p1"); err != nil {
		t.Fatalf("expected live focus to validate, got %v", err)
	}
	if err := ValidateFocus(root, "ghost"); err == nil {
		t.Fatalf("expected error for focus on nonexistent pane")
	}
	if err := ValidateFocus(root, ""); err != nil {
		t.Fatalf("expected empty focus to always validate, got %v", err)
	}
}

func asInvariantViolation(err error, target **InvariantViolationError) bool {
	ive, ok := err.(*InvariantViolationError)
	if !ok {
		return false
	}
	*target = ive
	return true
}
