// Package raster turns images and text into grid snapshots.
//
// Both paths draw onto a white canvas the size of the grid, one pixel per
// cell, then sample the canvas back into cells.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/palette"
)

// LoadImage decodes any registered image format
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FromImage scales img to fit cols x rows preserving aspect ratio, centres it,
// and maps each pixel to a cell. Pure white and pure black pixels are off,
// anything else is on with the sampled color.
//
// Scaled pixels are composited over white before they are classified: a
// partly transparent pixel samples as its blend with white and a fully
// transparent one is white, hence off.
func FromImage(img image.Image, cols, rows int) grid.Snapshot {
	canvas := newCanvas(cols, rows)
	if canvas == nil {
		return grid.Snapshot{}
	}

	src := img.Bounds()
	if src.Dx() > 0 && src.Dy() > 0 {
		dst := fitRect(src.Dx(), src.Dy(), cols, rows)
		scaled := image.NewNRGBA(dst)
		draw.NearestNeighbor.Scale(scaled, dst, img, src, draw.Src, nil)
		draw.Draw(canvas, dst, scaled, dst.Min, draw.Over)
	}

	return sample(canvas, func(c palette.RGB) grid.Cell {
		if c == palette.RGBWhite || c == palette.RGBBlack {
			return grid.Off
		}
		return grid.OnCell(c)
	})
}

// fitRect returns the largest centred rectangle of the source aspect ratio
// that fits the canvas, at least one pixel on each side
func fitRect(sw, sh, cols, rows int) image.Rectangle {
	scale := min(float64(cols)/float64(sw), float64(rows)/float64(sh))
	w := min(max(int(float64(sw)*scale+0.5), 1), cols)
	h := min(max(int(float64(sh)*scale+0.5), 1), rows)
	x := (cols - w) / 2
	y := (rows - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// newCanvas returns a white cols x rows image, or nil for an empty size
func newCanvas(cols, rows int) *image.RGBA {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	canvas := image.NewRGBA(image.Rect(0, 0, cols, rows))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	return canvas
}

// sample converts every canvas pixel through cell
func sample(canvas *image.RGBA, cell func(palette.RGB) grid.Cell) grid.Snapshot {
	b := canvas.Bounds()
	cells := make([][]grid.Cell, b.Dy())
	for y := range cells {
		cells[y] = make([]grid.Cell, b.Dx())
		for x := range cells[y] {
			cells[y][x] = cell(toRGB(canvas.RGBAAt(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return grid.NewSnapshot(cells)
}

func toRGB(c color.RGBA) palette.RGB {
	return palette.RGB{R: c.R, G: c.G, B: c.B}
}
