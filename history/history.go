// Package history implements snapshot-based undo and redo for a grid.
//
// The journal is manual: a mutating operation calls Checkpoint before it
// touches the grid. WithCheckpoint bundles the two steps so entry points do
// not have to repeat them. Snapshots carry their own shape, so undoing a
// resize brings back the old dimensions along with every cell.
package history

import (
	"github.com/lixenwraith/pixgrid/grid"
)

// Stack holds the undo and redo snapshot stacks; both are unbounded
type Stack struct {
	undo []grid.Snapshot
	redo []grid.Snapshot
	seq  uint64 // bumped on every change to either stack
}

// New returns an empty stack
func New() *Stack {
	return &Stack{}
}

// Checkpoint records the current grid state and drops the redo stack
func (s *Stack) Checkpoint(g *grid.Grid) {
	s.undo = append(s.undo, g.State())
	s.redo = s.redo[:0]
	s.seq++
}

// Undo restores the most recent checkpoint, saving the current state for redo
// Returns false without touching the grid when there is nothing to undo
func (s *Stack) Undo(g *grid.Grid) bool {
	if len(s.undo) == 0 {
		return false
	}
	s.redo = append(s.redo, g.State())
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	restore(g, prev)
	s.seq++
	return true
}

// Redo re-applies the most recently undone state
// Returns false without touching the grid when there is nothing to redo
func (s *Stack) Redo(g *grid.Grid) bool {
	if len(s.redo) == 0 {
		return false
	}
	s.undo = append(s.undo, g.State())
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	restore(g, next)
	s.seq++
	return true
}

// restore puts snap back on g, rebuilding g first when the shapes differ
func restore(g *grid.Grid, snap grid.Snapshot) {
	if rows, cols := snap.Rows(), snap.Cols(); rows > 0 && cols > 0 && (rows != g.Rows() || cols != g.Cols()) {
		g.Resize(rows, cols) //nolint:errcheck
	}
	g.SetState(snap)
}

// CanUndo reports whether Undo would do anything
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would do anything
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks
func (s *Stack) Depth() (undo, redo int) {
	return len(s.undo), len(s.redo)
}

// WithCheckpoint checkpoints g and then applies mutate to it
func WithCheckpoint(s *Stack, g *grid.Grid, mutate func(*grid.Grid)) {
	s.Checkpoint(g)
	mutate(g)
}
