// Package grid is the in-memory cell matrix of the editor.
//
// A Grid is mutated in place by the operations below. Callers that want the
// change to be undoable take a history checkpoint first; the grid itself
// keeps no journal.
package grid

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/pixgrid/palette"
)

// ErrOutOfRange is returned for coordinates outside the grid
var ErrOutOfRange = errors.New("cell out of range")

// ErrBadSize is returned for dimensions below 1x1
var ErrBadSize = errors.New("grid dimensions must be at least 1x1")

// Grid is a rows x cols matrix of cells stored row-major
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// New creates an all-off grid
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}, nil
}

// Rows returns the row count
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column count
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (r, c) addresses a cell
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the cell at (r, c), the off cell when out of range
func (g *Grid) At(r, c int) Cell {
	if !g.InBounds(r, c) {
		return Off
	}
	return g.cells[r*g.cols+c]
}

// Set overwrites one cell
func (g *Grid) Set(r, c int, cell Cell) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, r, c, g.rows, g.cols)
	}
	g.cells[r*g.cols+c] = cell.normalize()
	return nil
}

// Toggle turns an off cell on with color, or an on cell off
func (g *Grid) Toggle(r, c int, color palette.RGB) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, r, c, g.rows, g.cols)
	}
	i := r*g.cols + c
	if g.cells[i].On {
		g.cells[i] = Off
	} else {
		g.cells[i] = OnCell(color)
	}
	return nil
}

// Paint turns a cell on with color regardless of its current state
func (g *Grid) Paint(r, c int, color palette.RGB) error {
	return g.Set(r, c, OnCell(color))
}

// State returns a deep copy of the current cells
func (g *Grid) State() Snapshot {
	rows := make([][]Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		rows[r] = append([]Cell(nil), g.cells[r*g.cols:(r+1)*g.cols]...)
	}
	return Snapshot{rows: rows}
}

// SetState overwrites the cells both s and the grid cover
// Per row the overlap is min(s.Rows, g.Rows) x min(s.RowLen(r), g.Cols);
// every cell outside it keeps its current value
func (g *Grid) SetState(s Snapshot) {
	rows := min(s.Rows(), g.rows)
	for r := 0; r < rows; r++ {
		n := min(len(s.rows[r]), g.cols)
		for c := 0; c < n; c++ {
			g.cells[r*g.cols+c] = s.rows[r][c].normalize()
		}
	}
}

// Reset turns every cell off
func (g *Grid) Reset() {
	clear(g.cells)
}

// Resize rebuilds the grid at a new size with every cell off
func (g *Grid) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, rows, cols)
	}
	g.rows = rows
	g.cols = cols
	g.cells = make([]Cell, rows*cols)
	return nil
}

// Recolor gives every on cell the same color
func (g *Grid) Recolor(color palette.RGB) {
	for i := range g.cells {
		if g.cells[i].On {
			g.cells[i].Color = color
		}
	}
}

// Quantize snaps every on cell to its nearest palette color
// Off cells are untouched; applying it twice equals applying it once
func (g *Grid) Quantize() {
	for i := range g.cells {
		if g.cells[i].On {
			g.cells[i].Color = palette.Snap(g.cells[i].Color)
		}
	}
}

// OnCount returns the number of on cells
func (g *Grid) OnCount() int {
	n := 0
	for _, cell := range g.cells {
		if cell.On {
			n++
		}
	}
	return n
}
