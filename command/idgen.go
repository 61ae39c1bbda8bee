package command

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/texelation/multisplit/model"
)

// IDGenerator mints PaneIds for newly created panes. The pane-creating
// commands (CreateInitialCommand, SplitCommand) take one in their IDGen
// field, and Engine takes one through Options, so tests can inject a
// deterministic generator and production code gets real randomness — spec §4.2: "Generated PaneIds
// use a deterministic generator (injected; tests may seed)."
type IDGenerator interface {
	NextPaneID() model.PaneId
}

// UUIDGenerator is the production IDGenerator, grounded on google/uuid
// (an indirect dependency of the teacher repo, and a direct dependency of
// rand-pedantic_raven elsewhere in the retrieval pack).
type UUIDGenerator struct{}

// NextPaneID returns a fresh random (version 4) UUID as a PaneId.
func (UUIDGenerator) NextPaneID() model.PaneId {
	return model.PaneId(uuid.NewString())
}

// SeededGenerator produces a reproducible sequence of PaneIds from a fixed
// seed, for tests that assert on exact ids across execute/undo/redo (spec
// scenario 2: "Pane ids p2 equal across execute/undo/redo"). Undo never
// calls NextPaneID, and Redo reuses the id the first Execute recorded —
// only that first Execute consumes an id — so the sequence a test observes
// is stable however many times a command is undone and redone.
type SeededGenerator struct {
	rnd    *rand.Rand
	prefix string
	count  int
}

// NewSeededGenerator returns a SeededGenerator that produces ids of the
// form "<prefix>-<n>-<salt>" in the order NextPaneID is called, seeded
// deterministically so repeated test runs see the same sequence.
func NewSeededGenerator(seed int64, prefix string) *SeededGenerator {
	if prefix == "" {
		prefix = "pane"
	}
	return &SeededGenerator{rnd: rand.New(rand.NewSource(seed)), prefix: prefix}
}

// NextPaneID returns the next id in the deterministic sequence.
func (g *SeededGenerator) NextPaneID() model.PaneId {
	g.count++
	salt := g.rnd.Int63() & 0xff
	return model.PaneId(fmt.Sprintf("%s-%d-%x", g.prefix, g.count, salt))
}
