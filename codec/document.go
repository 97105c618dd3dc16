package codec

import (
	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/palette"
)

// docCell is a decoded cell; hasColor is false when the file gave an on cell
// no usable color (missing #colors entry, out-of-range palette index)
type docCell struct {
	on       bool
	color    palette.RGB
	hasColor bool
}

// Document is a fully decoded file, not yet applied to any grid
type Document struct {
	Format Format
	Origin Origin
	rows   [][]docCell
}

// Rows returns the number of decoded rows
func (d *Document) Rows() int { return len(d.rows) }

// Cols returns the longest decoded row
func (d *Document) Cols() int {
	n := 0
	for _, row := range d.rows {
		n = max(n, len(row))
	}
	return n
}

func (c docCell) resolve(def palette.RGB) grid.Cell {
	if !c.on {
		return grid.Off
	}
	if c.hasColor {
		return grid.OnCell(c.color)
	}
	return grid.OnCell(def)
}

// Snapshot is the replace-mode view of the file
// On cells without a color take def
func (d *Document) Snapshot(def palette.RGB) grid.Snapshot {
	rows := make([][]grid.Cell, len(d.rows))
	for r, row := range d.rows {
		rows[r] = make([]grid.Cell, len(row))
		for c, cell := range row {
			rows[r][c] = cell.resolve(def)
		}
	}
	return grid.NewSnapshot(rows)
}

// Merge combines the file with cur over their overlap
// Off cells in the file keep the current cell; on cells take the file color,
// or def when the file has none. A current on cell is never turned off
func (d *Document) Merge(cur grid.Snapshot, def palette.RGB) grid.Snapshot {
	n := min(len(d.rows), cur.Rows())
	rows := make([][]grid.Cell, n)
	for r := 0; r < n; r++ {
		width := min(len(d.rows[r]), cur.RowLen(r))
		rows[r] = make([]grid.Cell, width)
		for c := 0; c < width; c++ {
			in := d.rows[r][c]
			if in.on {
				rows[r][c] = in.resolve(def)
			} else {
				rows[r][c] = cur.At(r, c)
			}
		}
	}
	return grid.NewSnapshot(rows)
}
