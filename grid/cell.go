package grid

import (
	"github.com/lixenwraith/pixgrid/palette"
)

// Cell is one grid position: an on/off flag plus a color that is only
// meaningful while on
type Cell struct {
	On    bool
	Color palette.RGB
}

// Off is the canonical off cell
var Off = Cell{}

// OnCell returns an on cell with the given color
func OnCell(c palette.RGB) Cell {
	return Cell{On: true, Color: c}
}

// RGB returns the cell color and true when on; off cells report no color
func (c Cell) RGB() (palette.RGB, bool) {
	if !c.On {
		return palette.RGB{}, false
	}
	return c.Color, true
}

// Equal compares occupancy, and color only when both are on
func (c Cell) Equal(o Cell) bool {
	if c.On != o.On {
		return false
	}
	return !c.On || c.Color == o.Color
}

// normalize clears the placeholder color of off cells
func (c Cell) normalize() Cell {
	if !c.On {
		return Off
	}
	return c
}
