// Package session is the editing session behind the terminal editor.
//
// Every user action has one method here. Methods that change cells go
// through history.WithCheckpoint (directly or via transform.Engine or
// codec.Apply), so each action is exactly one undo step.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/config"
	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/history"
	"github.com/lixenwraith/pixgrid/logger"
	"github.com/lixenwraith/pixgrid/palette"
	"github.com/lixenwraith/pixgrid/transform"
)

// Feedback is notified after user-visible successes and failures
// *sound.Player satisfies it
type Feedback interface {
	Confirm()
	Error()
}

type silent struct{}

func (silent) Confirm() {}
func (silent) Error()   {}

// TextSettings are the text overlay parameters
type TextSettings struct {
	Font          string
	Size          float64
	LineSpacing   int
	LetterSpacing int
	Color         palette.RGB
}

type Session struct {
	ctx context.Context

	Grid      *grid.Grid
	History   *history.Stack
	Engine    *transform.Engine
	Selection *transform.Selection

	// DefaultColor is used by Toggle and for imported cells without a color
	DefaultColor palette.RGB
	// PaintColor is used by Paint and set by Eyedrop
	PaintColor palette.RGB
	// PaintMode makes Click paint instead of toggle
	PaintMode bool
	Format    codec.Format
	Text      TextSettings

	feedback Feedback
}

// New builds a session sized and coloured from cfg; fb may be nil
func New(ctx context.Context, cfg *config.Config, fb Feedback) (*Session, error) {
	g, err := grid.New(cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return nil, fmt.Errorf("new grid: %w", err)
	}
	if fb == nil {
		fb = silent{}
	}
	h := history.New()
	return &Session{
		ctx:          ctx,
		Grid:         g,
		History:      h,
		Engine:       transform.NewEngine(g, h, history.NewCoalescer(cfg.TranslateBurst)),
		Selection:    transform.NewSelection(nil, nil),
		DefaultColor: cfg.DefaultColor(),
		PaintColor:   cfg.PaintColor(),
		Format:       cfg.ExportFormat(),
		Text: TextSettings{
			Font:          cfg.Text.Font,
			Size:          cfg.Text.Size,
			LineSpacing:   cfg.Text.LineSpacing,
			LetterSpacing: cfg.Text.LetterSpacing,
			Color:         cfg.TextColor(),
		},
		feedback: fb,
	}, nil
}

func (s *Session) log() *zap.Logger { return logger.L(s.ctx) }

// edit checkpoints and runs mutate
func (s *Session) edit(mutate func(*grid.Grid)) {
	history.WithCheckpoint(s.History, s.Grid, mutate)
}

// Click is the primary cell action: paint in paint mode, toggle otherwise
func (s *Session) Click(r, c int) error {
	if s.PaintMode {
		return s.Paint(r, c)
	}
	return s.Toggle(r, c)
}

// Toggle flips a cell, turning it on with the default color
func (s *Session) Toggle(r, c int) error {
	if !s.Grid.InBounds(r, c) {
		return fmt.Errorf("toggle (%d,%d): %w", r, c, grid.ErrOutOfRange)
	}
	s.edit(func(g *grid.Grid) { g.Toggle(r, c, s.DefaultColor) })
	return nil
}

// Paint turns a cell on with the paint color
func (s *Session) Paint(r, c int) error {
	if !s.Grid.InBounds(r, c) {
		return fmt.Errorf("paint (%d,%d): %w", r, c, grid.ErrOutOfRange)
	}
	s.edit(func(g *grid.Grid) { g.Paint(r, c, s.PaintColor) })
	return nil
}

// Eyedrop copies a cell color into the paint color; off cells give black
func (s *Session) Eyedrop(r, c int) (palette.RGB, error) {
	if !s.Grid.InBounds(r, c) {
		return palette.RGB{}, fmt.Errorf("eyedrop (%d,%d): %w", r, c, grid.ErrOutOfRange)
	}
	col, ok := s.Grid.At(r, c).RGB()
	if !ok {
		col = palette.RGBBlack
	}
	s.PaintColor = col
	return col, nil
}

// RecolorAll gives every on cell the paint color
func (s *Session) RecolorAll() {
	s.edit(func(g *grid.Grid) { g.Recolor(s.PaintColor) })
}

// SnapToPalette quantizes every on cell to the fixed palette
func (s *Session) SnapToPalette() {
	s.edit(func(g *grid.Grid) { g.Quantize() })
}

// Reset turns every cell off
func (s *Session) Reset() {
	s.edit(func(g *grid.Grid) { g.Reset() })
}

// Resize rebuilds the grid at a new size with every cell off
// The selection is clipped to the new bounds
func (s *Session) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("resize %dx%d: %w", rows, cols, grid.ErrBadSize)
	}
	s.edit(func(g *grid.Grid) { g.Resize(rows, cols) })
	s.Selection.Clip(rows, cols)
	s.log().Debug("resized", zap.Int("rows", rows), zap.Int("cols", cols))
	return nil
}

// Undo and Redo may change the grid's shape, so the selection is clipped after
func (s *Session) Undo() bool {
	ok := s.History.Undo(s.Grid)
	s.Selection.Clip(s.Grid.Rows(), s.Grid.Cols())
	return ok
}

func (s *Session) Redo() bool {
	ok := s.History.Redo(s.Grid)
	s.Selection.Clip(s.Grid.Rows(), s.Grid.Cols())
	return ok
}

// Translate moves the whole drawing one step, clipping at the edges
func (s *Session) Translate(dir transform.Direction) {
	s.Engine.Translate(dir)
}

// TranslateRepeat is Translate for held keys; a burst is one undo step
func (s *Session) TranslateRepeat(dir transform.Direction, now time.Time) {
	s.Engine.TranslateRepeat(dir, now)
}

// MoveBlock moves the selected row block (Up/Down) or column block (Left/Right)
func (s *Session) MoveBlock(dir transform.Direction) bool {
	if dir.Axis() == transform.Vertical {
		return s.Engine.MoveRowBlock(s.Selection, dir)
	}
	return s.Engine.MoveColBlock(s.Selection, dir)
}

// ShiftBlock rotates selected rows (Left/Right) or selected columns (Up/Down)
func (s *Session) ShiftBlock(dir transform.Direction) bool {
	if dir.Axis() == transform.Horizontal {
		return s.Engine.ShiftRowBlock(s.Selection, dir)
	}
	return s.Engine.ShiftColBlock(s.Selection, dir)
}

// ShiftIntersection rotates only the cells where selected rows and columns cross
func (s *Session) ShiftIntersection(dir transform.Direction) bool {
	return s.Engine.ShiftIntersection(s.Selection, dir)
}

func (s *Session) Flip(axis transform.Axis) {
	s.Engine.Flip(axis)
}
