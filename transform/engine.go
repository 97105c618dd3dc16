package transform

import (
	"time"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/history"
)

// Engine applies transforms to one grid, checkpointing each change
// Operations that would change nothing return false and take no checkpoint
type Engine struct {
	Grid    *grid.Grid
	History *history.Stack
	Burst   *history.Coalescer
}

// NewEngine wires an engine; a nil burst gets the default window
func NewEngine(g *grid.Grid, h *history.Stack, burst *history.Coalescer) *Engine {
	if burst == nil {
		burst = history.NewCoalescer(0)
	}
	return &Engine{Grid: g, History: h, Burst: burst}
}

// Translate performs one checkpointed clipping translate
func (e *Engine) Translate(dir Direction) {
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		Translate(g, dir)
	})
}

// TranslateRepeat is the key-repeat path: consecutive calls in the same
// direction within the burst window share one checkpoint
func (e *Engine) TranslateRepeat(dir Direction, now time.Time) {
	e.Burst.Apply(e.History, e.Grid, "translate:"+dir.String(), now, func(g *grid.Grid) {
		Translate(g, dir)
	})
}

// MoveRowBlock moves the selected row span up or down
func (e *Engine) MoveRowBlock(sel *Selection, dir Direction) bool {
	sel.Clip(e.Grid.Rows(), e.Grid.Cols())
	if _, _, ok := rowBlockSpan(e.Grid, sel, dir); !ok {
		return false
	}
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		MoveRowBlock(g, sel, dir)
	})
	return true
}

// MoveColBlock moves the selected column span left or right
func (e *Engine) MoveColBlock(sel *Selection, dir Direction) bool {
	sel.Clip(e.Grid.Rows(), e.Grid.Cols())
	if _, _, ok := colBlockSpan(e.Grid, sel, dir); !ok {
		return false
	}
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		MoveColBlock(g, sel, dir)
	})
	return true
}

// ShiftRowBlock rotates each selected row left or right
func (e *Engine) ShiftRowBlock(sel *Selection, dir Direction) bool {
	sel.Clip(e.Grid.Rows(), e.Grid.Cols())
	if dir.Axis() != Horizontal || len(sel.rows) == 0 {
		return false
	}
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		ShiftRowBlock(g, sel, dir)
	})
	return true
}

// ShiftColBlock rotates each selected column up or down
func (e *Engine) ShiftColBlock(sel *Selection, dir Direction) bool {
	sel.Clip(e.Grid.Rows(), e.Grid.Cols())
	if dir.Axis() != Vertical || len(sel.cols) == 0 {
		return false
	}
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		ShiftColBlock(g, sel, dir)
	})
	return true
}

// ShiftIntersection rotates the cells at the cross of both selections
func (e *Engine) ShiftIntersection(sel *Selection, dir Direction) bool {
	sel.Clip(e.Grid.Rows(), e.Grid.Cols())
	if len(sel.rows) == 0 || len(sel.cols) == 0 {
		return false
	}
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		ShiftIntersection(g, sel, dir)
	})
	return true
}

// Flip mirrors the grid across axis
func (e *Engine) Flip(axis Axis) {
	history.WithCheckpoint(e.History, e.Grid, func(g *grid.Grid) {
		Flip(g, axis)
	})
}
