package session

import (
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/raster"
)

// fail logs err, plays the error tone and returns err
func (s *Session) fail(msg string, err error, fields ...zap.Field) error {
	s.log().Error(msg, append(fields, zap.Error(err))...)
	s.feedback.Error()
	return err
}

func (s *Session) ok(msg string, fields ...zap.Field) {
	s.log().Debug(msg, fields...)
	s.feedback.Confirm()
}

// ImportFile decodes path fully and applies it as one undo step
// On any error the grid and history are untouched
func (s *Session) ImportFile(path string, mode codec.Mode) (*codec.Document, error) {
	doc, err := codec.ReadFile(path)
	if err != nil {
		return nil, s.fail("import failed", err, zap.String("path", path))
	}
	codec.Apply(s.History, s.Grid, doc, mode, s.DefaultColor)
	s.ok("imported",
		zap.String("path", path),
		zap.Stringer("format", doc.Format),
		zap.Stringer("origin", doc.Origin),
		zap.Stringer("mode", mode),
		zap.Int("rows", doc.Rows()),
		zap.Int("cols", doc.Cols()))
	return doc, nil
}

// ExportFile writes the grid in the session format
// opts may restrict the row range
func (s *Session) ExportFile(path string, opts ...codec.Option) error {
	if err := codec.WriteFile(path, s.Grid.State(), s.Format, opts...); err != nil {
		return s.fail("export failed", err, zap.String("path", path))
	}
	s.ok("exported", zap.String("path", path), zap.Stringer("format", s.Format))
	return nil
}

// ImportImage rasterizes an image file onto the grid, replacing its contents
func (s *Session) ImportImage(path string) error {
	img, err := raster.LoadImage(path)
	if err != nil {
		return s.fail("image import failed", err, zap.String("path", path))
	}
	snap := raster.FromImage(img, s.Grid.Cols(), s.Grid.Rows())
	s.edit(func(g *grid.Grid) { g.SetState(snap) })
	s.ok("image imported", zap.String("path", path), zap.Int("on", snap.OnCount()))
	return nil
}

// ApplyText renders text with the session text settings, replacing the grid
// A font that fails to load falls back to the built-in bitmap face
func (s *Session) ApplyText(text string) {
	face, err := raster.LoadFace(s.Text.Font, s.Text.Size)
	if err != nil {
		s.log().Warn("font unavailable, using fallback", zap.String("font", s.Text.Font), zap.Error(err))
		face = raster.DefaultFace
	} else {
		defer closeFace(face)
	}

	snap := raster.Text(raster.TextOptions{
		Text:          text,
		Face:          face,
		Color:         s.Text.Color,
		LineSpacing:   s.Text.LineSpacing,
		LetterSpacing: s.Text.LetterSpacing,
	}, s.Grid.Cols(), s.Grid.Rows())
	s.edit(func(g *grid.Grid) { g.SetState(snap) })
	s.ok("text applied", zap.Int("chars", len([]rune(text))), zap.Int("on", snap.OnCount()))
}

func closeFace(f font.Face) { _ = f.Close() }
