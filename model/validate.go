package model

import (
	"math"
	"strconv"
)

// Validate walks root and checks every structural invariant: the binary
// rule (every split has exactly two non-nil children), the ratio rule
// (ratios sum to 1.0 within tolerance and each is >= epsilon), pane
// uniqueness, and absence of cycles. A nil root is always valid (the empty
// tree). Grounded on the retrieved standalone layout validator
// (leapmux's internal/hub/layout.Validate), which walks a split tree the
// same shape and wraps child errors with the path that produced them.
func Validate(root *Node, epsilon float64) error {
	if root == nil {
		return nil
	}
	seen := make(map[PaneId]bool)
	visiting := make(map[*Node]bool)
	return validateNode(root, epsilon, seen, visiting)
}

func validateNode(n *Node, epsilon float64, seen map[PaneId]bool, visiting map[*Node]bool) error {
	if n == nil {
		return newInvariantViolation("binary", "split has a nil child")
	}
	if visiting[n] {
		return newInvariantViolation("acyclic", "tree contains a cycle")
	}
	visiting[n] = true
	defer delete(visiting, n)

	switch {
	case n.IsLeaf():
		if seen[n.Leaf.PaneID] {
			return newInvariantViolation("unique-pane", "duplicate pane id "+string(n.Leaf.PaneID))
		}
		seen[n.Leaf.PaneID] = true
		return nil

	case n.IsSplit():
		s := n.Split
		for _, c := range s.Children {
			if c == nil {
				return newInvariantViolation("binary", "split has a nil child")
			}
		}
		sum := s.Ratios[0] + s.Ratios[1]
		if math.Abs(sum-1.0) > ratioTolerance {
			return newInvariantViolation("ratio-sum", "ratios do not sum to 1.0")
		}
		for i, r := range s.Ratios {
			if r < epsilon-ratioTolerance {
				return newInvariantViolation("ratio-bounds", "ratio below epsilon at index "+strconv.Itoa(i))
			}
			if r > (1-epsilon)+ratioTolerance {
				return newInvariantViolation("ratio-bounds", "ratio above 1-epsilon at index "+strconv.Itoa(i))
			}
		}
		for _, c := range s.Children {
			if err := validateNode(c, epsilon, seen, visiting); err != nil {
				return err
			}
		}
		return nil

	default:
		return newInvariantViolation("sum-type", "node is neither leaf nor split")
	}
}

// ValidateFocus checks invariant 6 (focused pane is live): if focus is set
// it must refer to an existing leaf in root.
func ValidateFocus(root *Node, focus PaneId) error {
	if focus == "" {
		return nil
	}
	if _, ok := FindLeaf(root, focus); !ok {
		return newPaneNotFound(focus)
	}
	return nil
}
