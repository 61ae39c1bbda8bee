package command

import "github.com/texelation/multisplit/model"

// ResizeCommand sets the ratio pair of the split named by Path (root-to-
// split directions resolved by model.PathFromDirections). Ratios outside
// [epsilon, 1-epsilon] are clamped before being applied; the clamped values,
// not the requested ones, are what Execute commits (see AppliedRatios), and
// Undo restores the ratios the split held before Execute (§4.2's resize row:
// "undo restores prior ratio exactly").
type ResizeCommand struct {
	Path      []model.Direction
	NewRatios [2]float64

	appliedRatios  [2]float64 // captured on Execute: the clamped values actually applied
	previousRatios [2]float64 // captured on Execute, for Undo
}

func (c *ResizeCommand) Name() string { return "resize" }

func (c *ResizeCommand) Execute(m *model.Model) error {
	split, err := model.PathFromDirections(m.Root(), c.Path)
	if err != nil {
		return err
	}
	c.previousRatios = split.Ratios
	c.appliedRatios = clampRatios(c.NewRatios, m.Epsilon())

	next, err := model.SetRatios(m.Tree(), c.Path, c.appliedRatios)
	if err != nil {
		return err
	}
	return m.Apply(next)
}

func (c *ResizeCommand) Undo(m *model.Model) error {
	next, err := model.SetRatios(m.Tree(), c.Path, c.previousRatios)
	if err != nil {
		return err
	}
	return m.Apply(next)
}

// AppliedRatios returns the clamped ratio pair actually committed by the
// last Execute.
func (c *ResizeCommand) AppliedRatios() [2]float64 { return c.appliedRatios }

func clampRatios(ratios [2]float64, epsilon float64) [2]float64 {
	first := ratios[0]
	if first < epsilon {
		first = epsilon
	}
	if first > 1-epsilon {
		first = 1 - epsilon
	}
	return [2]float64{first, 1 - first}
}
