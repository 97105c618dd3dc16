package grid

// Snapshot is an immutable deep copy of cell contents
// Rows may differ in length when built from decoded files
type Snapshot struct {
	rows [][]Cell
}

// NewSnapshot copies rows into a snapshot; the caller keeps ownership of rows
func NewSnapshot(rows [][]Cell) Snapshot {
	out := make([][]Cell, len(rows))
	for r, row := range rows {
		cp := make([]Cell, len(row))
		for c, cell := range row {
			cp[c] = cell.normalize()
		}
		out[r] = cp
	}
	return Snapshot{rows: out}
}

// Rows returns the number of rows
func (s Snapshot) Rows() int {
	return len(s.rows)
}

// RowLen returns the number of cells in row r, 0 when r is out of range
func (s Snapshot) RowLen(r int) int {
	if r < 0 || r >= len(s.rows) {
		return 0
	}
	return len(s.rows[r])
}

// Cols returns the longest row length
func (s Snapshot) Cols() int {
	n := 0
	for _, row := range s.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// At returns the cell at (r, c), the off cell when out of range
func (s Snapshot) At(r, c int) Cell {
	if r < 0 || r >= len(s.rows) || c < 0 || c >= len(s.rows[r]) {
		return Off
	}
	return s.rows[r][c]
}

// Cells returns a fresh copy of the cell matrix
func (s Snapshot) Cells() [][]Cell {
	out := make([][]Cell, len(s.rows))
	for r, row := range s.rows {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether both snapshots have the same shape and every cell
// matches per Cell.Equal
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.rows) != len(o.rows) {
		return false
	}
	for r := range s.rows {
		if len(s.rows[r]) != len(o.rows[r]) {
			return false
		}
		for c := range s.rows[r] {
			if !s.rows[r][c].Equal(o.rows[r][c]) {
				return false
			}
		}
	}
	return true
}

// OnCount returns the number of on cells
func (s Snapshot) OnCount() int {
	n := 0
	for _, row := range s.rows {
		for _, cell := range row {
			if cell.On {
				n++
			}
		}
	}
	return n
}
