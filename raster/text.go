package raster

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/palette"
)

// inkThreshold is the mean channel brightness below which a pixel counts as ink
const inkThreshold = 240

// DefaultFace is used when TextOptions.Face is nil
var DefaultFace font.Face = basicfont.Face7x13

// TextOptions configures a text overlay
type TextOptions struct {
	Text  string
	Face  font.Face
	Color palette.RGB
	// Extra pixels between lines and between characters
	LineSpacing   int
	LetterSpacing int
}

// Text draws opts.Text one character at a time from the top-left corner and
// returns a cols x rows snapshot with ink cells on in opts.Color
// Characters past the right edge and lines past the bottom are dropped
func Text(opts TextOptions, cols, rows int) grid.Snapshot {
	canvas := newCanvas(cols, rows)
	if canvas == nil {
		return grid.Snapshot{}
	}

	face := opts.Face
	if face == nil {
		face = DefaultFace
	}
	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()
	d := &font.Drawer{Dst: canvas, Src: image.Black, Face: face}

	y := 0
	for _, ln := range strings.Split(opts.Text, "\n") {
		x := 0
		for _, ch := range strings.TrimRight(ln, "\r") {
			s := string(ch)
			d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + m.Ascent}
			d.DrawString(s)
			x += font.MeasureString(face, s).Ceil() + opts.LetterSpacing
			if x >= cols {
				break
			}
		}
		y += lineHeight + opts.LineSpacing
		if y >= rows {
			break
		}
	}

	on := grid.OnCell(opts.Color)
	return sample(canvas, func(c palette.RGB) grid.Cell {
		if int(c.R)+int(c.G)+int(c.B) < 3*inkThreshold {
			return on
		}
		return grid.Off
	})
}

// LoadFace opens a TrueType or OpenType font at size pixels per em
// An empty path selects Go Regular
func LoadFace(path string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, errors.New("font size must be positive")
	}

	data := goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
