// Package transform moves cells around a grid: the clipping translate, the
// row and column block rotations driven by a Selection, intersection shifts
// and flips.
//
// The package-level functions mutate a grid directly and take no checkpoint.
// Engine wraps each of them in a history checkpoint.
package transform

import (
	"fmt"

	"github.com/lixenwraith/pixgrid/grid"
)

// Direction is a one-step movement
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Axis is the orientation a direction moves along
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Axis returns Horizontal for Left/Right and Vertical for Up/Down
func (d Direction) Axis() Axis {
	if d == Up || d == Down {
		return Vertical
	}
	return Horizontal
}

// ParseDirection accepts "left", "right", "up", "down"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Translate moves every on cell one step in dir
// Cells pushed past an edge are dropped and vacated cells become off
func Translate(g *grid.Grid, dir Direction) {
	rows, cols := g.Rows(), g.Cols()
	cur := g.State()
	next := make([][]grid.Cell, rows)
	for r := range next {
		next[r] = make([]grid.Cell, cols)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := cur.At(r, c)
			if !cell.On {
				continue
			}
			nr, nc := r, c
			switch dir {
			case Left:
				nc--
			case Right:
				nc++
			case Up:
				nr--
			case Down:
				nr++
			}
			if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
				next[nr][nc] = cell
			}
		}
	}
	g.SetState(grid.NewSnapshot(next))
}

// rowBlockSpan returns the block span when a MoveRowBlock in dir would change anything
func rowBlockSpan(g *grid.Grid, sel *Selection, dir Direction) (start, end int, ok bool) {
	start, end, ok = sel.RowSpan()
	if !ok || start < 0 || end >= g.Rows() {
		return 0, 0, false
	}
	switch dir {
	case Up:
		return start, end, start > 0
	case Down:
		return start, end, end < g.Rows()-1
	}
	return 0, 0, false
}

// colBlockSpan is the column analogue of rowBlockSpan
func colBlockSpan(g *grid.Grid, sel *Selection, dir Direction) (start, end int, ok bool) {
	start, end, ok = sel.ColSpan()
	if !ok || start < 0 || end >= g.Cols() {
		return 0, 0, false
	}
	switch dir {
	case Left:
		return start, end, start > 0
	case Right:
		return start, end, end < g.Cols()-1
	}
	return 0, 0, false
}

// MoveRowBlock moves the span of selected rows one row up or down
// The row adjacent to the span wraps to its opposite end and the selection
// follows the moved rows. Returns false, changing nothing, when the span
// already touches the edge in dir or dir is not Up/Down
func MoveRowBlock(g *grid.Grid, sel *Selection, dir Direction) bool {
	start, end, ok := rowBlockSpan(g, sel, dir)
	if !ok {
		return false
	}
	if dir == Up {
		rotateRows(g, start-1, end, -1)
		sel.shiftRows(-1)
	} else {
		rotateRows(g, start, end+1, 1)
		sel.shiftRows(1)
	}
	return true
}

// MoveColBlock moves the span of selected columns one column left or right
func MoveColBlock(g *grid.Grid, sel *Selection, dir Direction) bool {
	start, end, ok := colBlockSpan(g, sel, dir)
	if !ok {
		return false
	}
	if dir == Left {
		rotateCols(g, start-1, end, -1)
		sel.shiftCols(-1)
	} else {
		rotateCols(g, start, end+1, 1)
		sel.shiftCols(1)
	}
	return true
}

// ShiftRowBlock circularly rotates each selected row by one cell
// dir must be Left or Right; unselected rows are untouched
func ShiftRowBlock(g *grid.Grid, sel *Selection, dir Direction) bool {
	if dir.Axis() != Horizontal || len(sel.rows) == 0 {
		return false
	}
	cols := allIndices(g.Cols())
	changed := false
	for _, r := range sel.rows {
		if r < 0 || r >= g.Rows() {
			continue
		}
		rotateLine(g, []int{r}, cols, Horizontal, dir == Right)
		changed = true
	}
	return changed
}

// ShiftColBlock circularly rotates each selected column by one cell
// dir must be Up or Down
func ShiftColBlock(g *grid.Grid, sel *Selection, dir Direction) bool {
	if dir.Axis() != Vertical || len(sel.cols) == 0 {
		return false
	}
	rows := allIndices(g.Rows())
	changed := false
	for _, c := range sel.cols {
		if c < 0 || c >= g.Cols() {
			continue
		}
		rotateLine(g, rows, []int{c}, Vertical, dir == Down)
		changed = true
	}
	return changed
}

// ShiftIntersection rotates only the cells at selected rows x selected columns
// Left/Right rotate each selected row's intersection cells in column order,
// Up/Down rotate each selected column's intersection cells in row order.
// Needs both a row and a column selection
func ShiftIntersection(g *grid.Grid, sel *Selection, dir Direction) bool {
	rows := inRange(sel.rows, g.Rows())
	cols := inRange(sel.cols, g.Cols())
	if len(rows) == 0 || len(cols) == 0 {
		return false
	}
	forward := dir == Right || dir == Down
	if dir.Axis() == Horizontal {
		for _, r := range rows {
			rotateLine(g, []int{r}, cols, Horizontal, forward)
		}
	} else {
		for _, c := range cols {
			rotateLine(g, rows, []int{c}, Vertical, forward)
		}
	}
	return true
}

// Flip mirrors the whole grid across the given axis
// Horizontal mirrors left-right, Vertical mirrors top-bottom
func Flip(g *grid.Grid, axis Axis) {
	cur := g.State()
	rows, cols := g.Rows(), g.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sr, sc := r, c
			if axis == Horizontal {
				sc = cols - 1 - c
			} else {
				sr = rows - 1 - r
			}
			g.Set(r, c, cur.At(sr, sc))
		}
	}
}

// rotateRows rotates whole rows lo..hi by one position
// step -1 moves every row up (row lo wraps to hi), +1 moves down
func rotateRows(g *grid.Grid, lo, hi, step int) {
	rows := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rows = append(rows, r)
	}
	for c := 0; c < g.Cols(); c++ {
		rotateLine(g, rows, []int{c}, Vertical, step > 0)
	}
}

// rotateCols rotates whole columns lo..hi by one position
func rotateCols(g *grid.Grid, lo, hi, step int) {
	cols := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		cols = append(cols, c)
	}
	for r := 0; r < g.Rows(); r++ {
		rotateLine(g, []int{r}, cols, Horizontal, step > 0)
	}
}

// rotateLine circularly rotates the cells of one line by one position
// Horizontal walks cols on rows[0], Vertical walks rows on cols[0].
// forward moves each value toward the higher index
func rotateLine(g *grid.Grid, rows, cols []int, axis Axis, forward bool) {
	var pos [][2]int
	if axis == Horizontal {
		for _, c := range cols {
			pos = append(pos, [2]int{rows[0], c})
		}
	} else {
		for _, r := range rows {
			pos = append(pos, [2]int{r, cols[0]})
		}
	}
	n := len(pos)
	if n < 2 {
		return
	}
	vals := make([]grid.Cell, n)
	for i, p := range pos {
		vals[i] = g.At(p[0], p[1])
	}
	for i, p := range pos {
		src := i + 1
		if forward {
			src = i - 1
		}
		src = (src + n) % n
		g.Set(p[0], p[1], vals[src])
	}
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func inRange(v []int, n int) []int {
	out := make([]int, 0, len(v))
	for _, x := range v {
		if x >= 0 && x < n {
			out = append(out, x)
		}
	}
	return out
}
