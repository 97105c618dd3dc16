package transform

import (
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/history"
	"github.com/lixenwraith/pixgrid/palette"
)

// tag encodes a cell's original coordinates in its color
func tag(r, c int) palette.RGB {
	return palette.RGB{R: uint8(r), G: uint8(c), B: 1}
}

// labelled returns a grid whose every cell is on and tagged with its position
func labelled(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Paint(r, c, tag(r, c))
		}
	}
	return g
}

// origin reports the original position of the cell now at (r, c)
func origin(g *grid.Grid, r, c int) [2]int {
	col := g.At(r, c).Color
	return [2]int{int(col.R), int(col.G)}
}

func TestTranslateSingleRowVertical(t *testing.T) {
	for _, dir := range []Direction{Up, Down} {
		g := labelled(t, 1, 4)
		Translate(g, dir)
		if g.OnCount() != 0 {
			t.Errorf("translate %s on a 1-row grid left %d cells on", dir, g.OnCount())
		}
	}
}

func TestTranslateDropsAtEdge(t *testing.T) {
	g, _ := grid.New(3, 3)
	g.Paint(1, 0, tag(1, 0))
	Translate(g, Left)
	if g.OnCount() != 0 {
		t.Error("cell at column 0 should be dropped by translate left")
	}
}

func TestTranslateMovesAndVacates(t *testing.T) {
	g, _ := grid.New(3, 3)
	g.Paint(0, 0, tag(0, 0))
	g.Paint(1, 1, tag(1, 1))

	Translate(g, Right)
	if !g.At(0, 1).On || !g.At(1, 2).On {
		t.Fatal("cells did not move right")
	}
	if g.At(0, 0).On || g.At(1, 1).On {
		t.Error("vacated cells should be off")
	}
	if origin(g, 1, 2) != [2]int{1, 1} {
		t.Error("moved cell lost its color")
	}

	Translate(g, Down)
	if !g.At(1, 1).On || !g.At(2, 2).On || g.OnCount() != 2 {
		t.Error("translate down misplaced cells")
	}
	Translate(g, Down)
	if g.OnCount() != 1 || !g.At(2, 1).On {
		t.Error("bottom row cell should be dropped, other kept")
	}
}

// TestMoveRowBlockSingleRow verifies a single row swaps with the one above
func TestMoveRowBlockSingleRow(t *testing.T) {
	g := labelled(t, 4, 2)
	sel := NewSelection([]int{2}, nil)

	if !MoveRowBlock(g, sel, Up) {
		t.Fatal("MoveRowBlock returned false")
	}
	if origin(g, 1, 0) != [2]int{2, 0} || origin(g, 2, 0) != [2]int{1, 0} {
		t.Error("rows 1 and 2 not swapped")
	}
	if origin(g, 0, 0) != [2]int{0, 0} || origin(g, 3, 0) != [2]int{3, 0} {
		t.Error("rows outside the block moved")
	}
	if !slices.Equal(sel.Rows(), []int{1}) {
		t.Errorf("selection = %v, want [1]", sel.Rows())
	}
}

// TestMoveRowBlockSpan verifies a non-contiguous selection moves its whole span
func TestMoveRowBlockSpan(t *testing.T) {
	g := labelled(t, 5, 1)
	sel := NewSelection([]int{1, 3}, nil)

	MoveRowBlock(g, sel, Down)
	// span [1,3] extended to [1,4]: row 4 wraps to row 1
	want := []int{0, 4, 1, 2, 3}
	for r, src := range want {
		if got := origin(g, r, 0)[0]; got != src {
			t.Errorf("row %d holds original row %d, want %d", r, got, src)
		}
	}
	if !slices.Equal(sel.Rows(), []int{2, 4}) {
		t.Errorf("selection = %v, want [2 4]", sel.Rows())
	}
}

func TestMoveRowBlockEdgesNoop(t *testing.T) {
	g := labelled(t, 3, 2)
	before := g.State()

	if MoveRowBlock(g, NewSelection([]int{0, 1}, nil), Up) {
		t.Error("move up including row 0 should be a no-op")
	}
	if MoveRowBlock(g, NewSelection([]int{2}, nil), Down) {
		t.Error("move down including the last row should be a no-op")
	}
	if MoveRowBlock(g, NewSelection(nil, nil), Down) {
		t.Error("empty selection should be a no-op")
	}
	if !g.State().Equal(before) {
		t.Error("no-op moves changed the grid")
	}
}

func TestMoveColBlock(t *testing.T) {
	g := labelled(t, 1, 4)
	sel := NewSelection(nil, []int{1, 2})

	MoveColBlock(g, sel, Left)
	want := []int{1, 2, 0, 3}
	for c, src := range want {
		if got := origin(g, 0, c)[1]; got != src {
			t.Errorf("col %d holds original col %d, want %d", c, got, src)
		}
	}
	if !slices.Equal(sel.Cols(), []int{0, 1}) {
		t.Errorf("selection = %v, want [0 1]", sel.Cols())
	}
	if MoveColBlock(g, sel, Left) {
		t.Error("move left including column 0 should be a no-op")
	}
}

func TestShiftRowBlockWraps(t *testing.T) {
	g := labelled(t, 2, 3)
	sel := NewSelection([]int{0}, nil)

	ShiftRowBlock(g, sel, Left)
	want := []int{1, 2, 0}
	for c, src := range want {
		if got := origin(g, 0, c)[1]; got != src {
			t.Errorf("left: col %d holds %d, want %d", c, got, src)
		}
	}
	for c := 0; c < 3; c++ {
		if origin(g, 1, c) != [2]int{1, c} {
			t.Error("unselected row changed")
		}
	}

	ShiftRowBlock(g, sel, Right)
	for c := 0; c < 3; c++ {
		if origin(g, 0, c) != [2]int{0, c} {
			t.Error("right did not undo left")
		}
	}
}

func TestShiftColBlock(t *testing.T) {
	g := labelled(t, 3, 2)
	sel := NewSelection(nil, []int{1})

	ShiftColBlock(g, sel, Down)
	want := []int{2, 0, 1}
	for r, src := range want {
		if got := origin(g, r, 1)[0]; got != src {
			t.Errorf("down: row %d holds %d, want %d", r, got, src)
		}
		if origin(g, r, 0) != [2]int{r, 0} {
			t.Error("unselected column changed")
		}
	}
	if ShiftColBlock(g, sel, Left) {
		t.Error("ShiftColBlock with a horizontal direction should be rejected")
	}
}

// TestShiftIntersectionHorizontal verifies only the crossing cells rotate
func TestShiftIntersectionHorizontal(t *testing.T) {
	g := labelled(t, 3, 4)
	sel := NewSelection([]int{0, 2}, []int{0, 1, 3})

	ShiftIntersection(g, sel, Left)
	for _, r := range []int{0, 2} {
		// columns 0,1,3 rotate left: 0<-1, 1<-3, 3<-0
		if origin(g, r, 0)[1] != 1 || origin(g, r, 1)[1] != 3 || origin(g, r, 3)[1] != 0 {
			t.Errorf("row %d intersection not rotated", r)
		}
		if origin(g, r, 2) != [2]int{r, 2} {
			t.Errorf("row %d column 2 (unselected) moved", r)
		}
	}
	for c := 0; c < 4; c++ {
		if origin(g, 1, c) != [2]int{1, c} {
			t.Error("unselected row changed")
		}
	}
}

func TestShiftIntersectionVertical(t *testing.T) {
	g := labelled(t, 3, 3)
	sel := NewSelection([]int{0, 2}, []int{1})

	ShiftIntersection(g, sel, Down)
	if origin(g, 0, 1) != [2]int{2, 1} || origin(g, 2, 1) != [2]int{0, 1} {
		t.Error("vertical intersection not rotated")
	}
	if origin(g, 1, 1) != [2]int{1, 1} {
		t.Error("row 1 is not selected and must not move")
	}
}

func TestShiftIntersectionNeedsBoth(t *testing.T) {
	g := labelled(t, 2, 2)
	if ShiftIntersection(g, NewSelection([]int{0}, nil), Left) {
		t.Error("intersection with no columns should be a no-op")
	}
}

func TestFlip(t *testing.T) {
	g := labelled(t, 2, 3)
	Flip(g, Horizontal)
	if origin(g, 0, 0) != [2]int{0, 2} || origin(g, 1, 1) != [2]int{1, 1} {
		t.Error("horizontal flip wrong")
	}
	Flip(g, Vertical)
	if origin(g, 0, 0) != [2]int{1, 2} {
		t.Error("vertical flip wrong")
	}
}

// TestEngineCheckpoints verifies engine ops are undoable and no-ops are not recorded
func TestEngineCheckpoints(t *testing.T) {
	g := labelled(t, 3, 3)
	h := history.New()
	e := NewEngine(g, h, nil)
	before := g.State()

	if e.MoveRowBlock(NewSelection([]int{0}, nil), Up) {
		t.Error("edge move should report false")
	}
	if u, _ := h.Depth(); u != 0 {
		t.Fatalf("no-op recorded %d checkpoints", u)
	}

	e.ShiftRowBlock(NewSelection([]int{1}, nil), Right)
	e.Translate(Down)
	if u, _ := h.Depth(); u != 2 {
		t.Fatalf("undo depth = %d, want 2", u)
	}
	h.Undo(g)
	h.Undo(g)
	if !g.State().Equal(before) {
		t.Error("undo did not restore the original grid")
	}
}

// TestEngineTranslateRepeat verifies a held key is one undo step
func TestEngineTranslateRepeat(t *testing.T) {
	g, _ := grid.New(1, 5)
	g.Paint(0, 0, tag(0, 0))
	h := history.New()
	e := NewEngine(g, h, history.NewCoalescer(time.Second))
	before := g.State()

	now := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		e.TranslateRepeat(Right, now.Add(time.Duration(i)*10*time.Millisecond))
	}
	if !g.At(0, 3).On {
		t.Fatal("cell should have moved three steps")
	}
	if u, _ := h.Depth(); u != 1 {
		t.Fatalf("undo depth = %d, want 1", u)
	}
	h.Undo(g)
	if !g.State().Equal(before) {
		t.Error("undo should revert the whole burst")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Left, Right, Up, Down} {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
