package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/config"
	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/palette"
	"github.com/lixenwraith/pixgrid/session"
)

func newTestEditor(t *testing.T, rows, cols int) *Editor {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	cfg := config.Default()
	cfg.Grid = config.GridConfig{Rows: rows, Cols: cols}
	sess, err := session.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEditor(screen, sess)
	e.width, e.height = 80, 24
	return e
}

func typeString(e *Editor, s string) {
	for _, r := range s {
		e.handleKey(tcell.KeyRune, r, 0)
	}
}

func TestSpaceTogglesCellUnderCursor(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	e.handleKey(tcell.KeyRight, 0, 0)
	e.handleKey(tcell.KeyDown, 0, 0)
	e.handleKey(tcell.KeyRune, ' ', 0)

	if e.sess.Grid.At(1, 1) != grid.OnCell(e.sess.DefaultColor) {
		t.Fatalf("cell (1,1) = %+v", e.sess.Grid.At(1, 1))
	}

	e.draw()
	r, _, _, _ := e.screen.GetContent(1*cellWidth, 1+1)
	if r != BlockFull {
		t.Errorf("screen rune = %q, want %q", r, BlockFull)
	}
	r, _, _, _ = e.screen.GetContent(0, 1)
	if r != DotMiddle {
		t.Errorf("off cell rune = %q, want %q", r, DotMiddle)
	}
}

func TestCursorClampsToGrid(t *testing.T) {
	e := newTestEditor(t, 3, 3)
	for i := 0; i < 10; i++ {
		e.handleKey(tcell.KeyRune, 'l', 0)
		e.handleKey(tcell.KeyRune, 'j', 0)
	}
	if e.curR != 2 || e.curC != 2 {
		t.Errorf("cursor = (%d,%d), want (2,2)", e.curR, e.curC)
	}
	e.handleKey(tcell.KeyRune, 'g', 0)
	e.handleKey(tcell.KeyRune, '0', 0)
	if e.curR != 0 || e.curC != 0 {
		t.Errorf("cursor = (%d,%d), want origin", e.curR, e.curC)
	}
}

func TestShiftArrowTranslatesAsOneBurst(t *testing.T) {
	e := newTestEditor(t, 1, 6)
	e.sess.Grid.Paint(0, 0, palette.RGBWhite)
	clock := time.Unix(0, 0)
	e.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		e.handleKey(tcell.KeyRight, 0, tcell.ModShift)
		clock = clock.Add(100 * time.Millisecond)
	}
	if !e.sess.Grid.At(0, 3).On {
		t.Fatal("cell did not translate three steps")
	}
	e.handleKey(tcell.KeyRune, 'u', 0)
	if !e.sess.Grid.At(0, 0).On {
		t.Error("single undo should revert the burst")
	}
}

func TestCtrlArrowMovesSelectedRow(t *testing.T) {
	e := newTestEditor(t, 3, 3)
	e.handleKey(tcell.KeyDown, 0, 0)
	e.handleKey(tcell.KeyRune, ' ', 0)
	e.handleKey(tcell.KeyRune, 'r', 0)
	e.handleKey(tcell.KeyUp, 0, tcell.ModCtrl)

	if !e.sess.Grid.At(0, 0).On || e.sess.Grid.At(1, 0).On {
		t.Error("selected row did not move up")
	}
	if !e.sess.Selection.HasRow(0) {
		t.Error("selection did not follow the row")
	}
}

func TestPaintModeAndPaletteKeys(t *testing.T) {
	e := newTestEditor(t, 2, 2)
	typeString(e, "4p ")
	if e.sess.Grid.At(0, 0) != grid.OnCell(palette.RGB{B: 255}) {
		t.Errorf("painted cell = %+v", e.sess.Grid.At(0, 0))
	}
	e.handleKey(tcell.KeyRight, 0, 0)
	typeString(e, "e")
	if e.sess.PaintColor != palette.RGBBlack {
		t.Errorf("eyedrop of off cell = %v", e.sess.PaintColor)
	}
}

func TestExportPromptWritesFile(t *testing.T) {
	e := newTestEditor(t, 2, 2)
	typeString(e, " ")
	path := filepath.Join(t.TempDir(), "out.txt")

	typeString(e, "w")
	if e.prompt != promptExport {
		t.Fatal("export prompt not open")
	}
	typeString(e, path)
	e.handleKey(tcell.KeyEnter, 0, 0)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), codec.TagPrefix+"Formatted\n0b10,\n") {
		t.Errorf("export = %q", data)
	}
	if e.statusType != statusOK {
		t.Errorf("status = %q", e.statusMsg)
	}
}

func TestImportPromptFailureKeepsGrid(t *testing.T) {
	e := newTestEditor(t, 2, 2)
	typeString(e, " ")
	before := e.sess.Grid.State()

	typeString(e, "o")
	typeString(e, filepath.Join(t.TempDir(), "missing.txt"))
	e.handleKey(tcell.KeyEnter, 0, 0)

	if e.statusType != statusErr {
		t.Errorf("status = %q, want an error", e.statusMsg)
	}
	if !e.sess.Grid.State().Equal(before) {
		t.Error("failed import changed the grid")
	}
}

func TestPromptEscapeCancels(t *testing.T) {
	e := newTestEditor(t, 2, 2)
	typeString(e, "zab")
	e.handleKey(tcell.KeyBackspace2, 0, 0)
	if got := string(e.input); got != "2 2a" {
		t.Errorf("input = %q", got)
	}
	e.handleKey(tcell.KeyEscape, 0, 0)
	if e.prompt != promptNone {
		t.Error("escape did not close the prompt")
	}
}

func TestResizePrompt(t *testing.T) {
	e := newTestEditor(t, 4, 4)
	typeString(e, "G$z")
	e.input = nil
	typeString(e, "2 3")
	e.handleKey(tcell.KeyEnter, 0, 0)

	if e.sess.Grid.Rows() != 2 || e.sess.Grid.Cols() != 3 {
		t.Fatalf("grid = %dx%d", e.sess.Grid.Rows(), e.sess.Grid.Cols())
	}
	if e.curR != 1 || e.curC != 2 {
		t.Errorf("cursor = (%d,%d), want clamped to (1,2)", e.curR, e.curC)
	}
}

func TestUndoResizeKeepsCursorInGrid(t *testing.T) {
	e := newTestEditor(t, 2, 2)
	typeString(e, "z")
	e.input = nil
	typeString(e, "5 5")
	e.handleKey(tcell.KeyEnter, 0, 0)
	typeString(e, "G$")
	if e.curR != 4 || e.curC != 4 {
		t.Fatalf("cursor = (%d,%d), want (4,4)", e.curR, e.curC)
	}

	typeString(e, "u")
	if e.sess.Grid.Rows() != 2 || e.sess.Grid.Cols() != 2 {
		t.Fatalf("grid = %dx%d after undo", e.sess.Grid.Rows(), e.sess.Grid.Cols())
	}
	if e.curR != 1 || e.curC != 1 {
		t.Errorf("cursor = (%d,%d), want clamped to (1,1)", e.curR, e.curC)
	}
}

func TestParseExport(t *testing.T) {
	if path, opts, err := parseExport("a.txt"); err != nil || path != "a.txt" || len(opts) != 0 {
		t.Errorf("plain path: %q %d %v", path, len(opts), err)
	}
	if _, opts, err := parseExport("a.txt 2 4"); err != nil || len(opts) != 1 {
		t.Errorf("ranged: %d %v", len(opts), err)
	}
	if _, _, err := parseExport("a.txt 2"); err == nil {
		t.Error("expected usage error")
	}
}

func TestQuitKeys(t *testing.T) {
	e := newTestEditor(t, 1, 1)
	e.handleKey(tcell.KeyRune, 'q', 0)
	if e.running {
		t.Error("q did not stop the editor")
	}
}
