package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/pixgrid/palette"
)

// Each grid cell takes two terminal columns so pixels look square
const cellWidth = 2

const (
	BlockFull = '█'
	DotMiddle = '·'
)

var (
	ColorBg       = tcell.NewRGBColor(16, 16, 20)
	ColorPixelOff = tcell.NewRGBColor(60, 60, 70)
	ColorSelected = tcell.NewRGBColor(45, 45, 70)
	ColorText     = tcell.NewRGBColor(200, 200, 220)
	ColorDim      = tcell.NewRGBColor(100, 100, 110)
	ColorSuccess  = tcell.NewRGBColor(50, 200, 100)
	ColorError    = tcell.NewRGBColor(200, 50, 50)
)

const helpLine = "arrows/hjkl move  space click  p paint  e eyedrop  1-8 color  r/c select  " +
	"S-arrow translate  C-arrow move  M-arrow shift  u/U undo/redo  o/O import  w export  I image  t text  z resize  q quit"

func rgbColor(c palette.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// gridRows and gridCols are how many grid cells fit on screen
func (e *Editor) gridRows() int { return max(e.height-2, 1) }
func (e *Editor) gridCols() int { return max(e.width/cellWidth, 1) }

// scroll keeps the cursor inside the viewport
func (e *Editor) scroll() {
	vr, vc := e.gridRows(), e.gridCols()
	if e.curR < e.top {
		e.top = e.curR
	} else if e.curR >= e.top+vr {
		e.top = e.curR - vr + 1
	}
	if e.curC < e.left {
		e.left = e.curC
	} else if e.curC >= e.left+vc {
		e.left = e.curC - vc + 1
	}
}

func (e *Editor) draw() {
	e.screen.Clear()
	e.scroll()
	e.drawHeader()
	e.drawGrid()
	e.drawFooter()
	e.screen.Show()
}

// drawText writes s at (x, y) clipped to the screen width; returns the end column
func (e *Editor) drawText(x, y int, s string, style tcell.Style) int {
	s = runewidth.Truncate(s, max(e.width-x, 0), "…")
	for _, r := range s {
		e.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (e *Editor) drawHeader() {
	g := e.sess.Grid
	undo, redo := e.sess.History.Depth()
	mode := "toggle"
	if e.sess.PaintMode {
		mode = "paint"
	}
	header := fmt.Sprintf(" PIXGRID │ %dx%d │ %s │ %s %s │ (%d,%d) │ undo %d redo %d │ sel r%d c%d ",
		g.Rows(), g.Cols(), e.sess.Format, mode, e.sess.PaintColor.Hex(),
		e.curR, e.curC, undo, redo,
		len(e.sess.Selection.Rows()), len(e.sess.Selection.Cols()))
	e.drawText(0, 0, header, tcell.StyleDefault.Foreground(ColorText).Background(ColorBg).Bold(true))
}

func (e *Editor) drawGrid() {
	g := e.sess.Grid
	sel := e.sess.Selection
	rows := min(e.gridRows(), g.Rows()-e.top)
	cols := min(e.gridCols(), g.Cols()-e.left)

	for vr := 0; vr < rows; vr++ {
		r := e.top + vr
		for vc := 0; vc < cols; vc++ {
			c := e.left + vc
			style := tcell.StyleDefault.Background(ColorBg)
			if sel.HasRow(r) || sel.HasCol(c) {
				style = style.Background(ColorSelected)
			}

			glyph, fill := DotMiddle, ' '
			if col, on := g.At(r, c).RGB(); on {
				glyph, fill = BlockFull, BlockFull
				style = style.Foreground(rgbColor(col))
			} else {
				style = style.Foreground(ColorPixelOff)
			}
			if r == e.curR && c == e.curC {
				style = style.Reverse(true)
			}

			x, y := vc*cellWidth, vr+1
			e.screen.SetContent(x, y, glyph, nil, style)
			e.screen.SetContent(x+1, y, fill, nil, style)
		}
	}
}

func (e *Editor) drawFooter() {
	y := e.height - 1
	if e.prompt != promptNone {
		style := tcell.StyleDefault.Foreground(ColorText).Background(ColorBg)
		x := e.drawText(0, y, promptLabels[e.prompt]+string(e.input), style)
		e.screen.ShowCursor(x, y)
		return
	}
	e.screen.HideCursor()

	if e.statusMsg == "" {
		e.drawText(0, y, helpLine, tcell.StyleDefault.Foreground(ColorDim).Background(ColorBg))
		return
	}
	bg := tcell.NewRGBColor(60, 60, 80)
	switch e.statusType {
	case statusOK:
		bg = ColorSuccess
	case statusErr:
		bg = ColorError
	}
	e.drawText(0, y, " "+e.statusMsg+" ", tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg).Bold(true))
}
