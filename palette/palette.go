// Package palette holds the RGB color type and the fixed eight-entry
// reference palette used for quantization and the Colored file encoding.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// RGBWhite is full-intensity white
var RGBWhite = RGB{255, 255, 255}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String formats as "R,G,B", the token used by the #colors block
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Hex formats as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Entry is a named palette color
type Entry struct {
	Name  string
	Color RGB
}

// Size is the fixed number of palette entries
const Size = 8

// Palette index constants
const (
	Black = iota
	Red
	Green
	Blue
	Yellow
	Cyan
	Pink
	White
)

// Palette is the fixed reference table; indices never change
var Palette = [Size]Entry{
	Black:  {"black", RGB{0, 0, 0}},
	Red:    {"red", RGB{255, 0, 0}},
	Green:  {"green", RGB{0, 255, 0}},
	Blue:   {"blue", RGB{0, 0, 255}},
	Yellow: {"yellow", RGB{255, 255, 0}},
	Cyan:   {"cyan", RGB{0, 255, 255}},
	Pink:   {"pink", RGB{255, 0, 255}},
	White:  {"white", RGB{255, 255, 255}},
}

// At returns the palette color for index i and whether i is in range
func At(i int) (RGB, bool) {
	if i < 0 || i >= Size {
		return RGB{}, false
	}
	return Palette[i].Color, true
}

// Lookup finds a palette entry by name, case-insensitive
func Lookup(name string) (int, bool) {
	for i, e := range Palette {
		if strings.EqualFold(e.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// ParseColor accepts a palette name ("cyan") or a hex string ("#00ffff")
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if i, ok := Lookup(s); ok {
		return Palette[i].Color, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}
