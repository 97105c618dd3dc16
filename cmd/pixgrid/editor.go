package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/palette"
	"github.com/lixenwraith/pixgrid/session"
	"github.com/lixenwraith/pixgrid/transform"
)

const statusTTL = 3 * time.Second

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusErr
)

// promptKind names what a submitted prompt line is for
type promptKind int

const (
	promptNone promptKind = iota
	promptImport
	promptMerge
	promptExport
	promptImage
	promptText
	promptResize
)

var promptLabels = map[promptKind]string{
	promptImport: "import (replace): ",
	promptMerge:  "import (merge): ",
	promptExport: "export [first last]: ",
	promptImage:  "image: ",
	promptText:   "text (\\n for newline): ",
	promptResize: "resize rows cols: ",
}

type Editor struct {
	screen  tcell.Screen
	sess    *session.Session
	running bool
	width   int
	height  int

	// Cursor and viewport, in grid cells
	curR, curC int
	top, left  int

	prompt   promptKind
	input    []rune
	lastPath string

	statusMsg   string
	statusType  statusKind
	statusTimer time.Time

	now func() time.Time
}

func NewEditor(screen tcell.Screen, sess *session.Session) *Editor {
	e := &Editor{
		screen:  screen,
		sess:    sess,
		running: true,
		now:     time.Now,
	}
	e.width, e.height = screen.Size()
	return e
}

func (e *Editor) Run() {
	e.draw()
	for e.running {
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}

		if !e.statusTimer.IsZero() && e.now().After(e.statusTimer) {
			e.statusMsg = ""
			e.statusTimer = time.Time{}
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			e.width, e.height = ev.Size()
			e.screen.Sync()
		case *tcell.EventKey:
			e.handleKey(ev.Key(), ev.Rune(), ev.Modifiers())
		}
		e.draw()
	}
}

func (e *Editor) setStatus(kind statusKind, format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusType = kind
	e.statusTimer = e.now().Add(statusTTL)
}

var arrows = map[tcell.Key]transform.Direction{
	tcell.KeyLeft:  transform.Left,
	tcell.KeyRight: transform.Right,
	tcell.KeyUp:    transform.Up,
	tcell.KeyDown:  transform.Down,
}

func (e *Editor) handleKey(key tcell.Key, r rune, mod tcell.ModMask) {
	if e.prompt != promptNone {
		e.handlePromptKey(key, r)
		return
	}

	if dir, ok := arrows[key]; ok {
		e.handleArrow(dir, mod)
		return
	}

	switch key {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		e.running = false
	case tcell.KeyEscape:
		e.sess.Selection.Clear()
		e.setStatus(statusInfo, "Selection cleared")
	case tcell.KeyCtrlZ:
		e.undo()
	case tcell.KeyCtrlY:
		e.redo()
	case tcell.KeyCtrlR:
		e.sess.Reset()
		e.setStatus(statusOK, "Reset")
	case tcell.KeyCtrlF:
		e.recolor()
	case tcell.KeyEnter:
		e.sess.Paint(e.curR, e.curC)
	case tcell.KeyRune:
		e.handleRune(r)
	}
}

// handleArrow: plain moves the cursor, Shift translates, Ctrl moves the
// selected block, Alt rotates selected rows or columns, Ctrl+Alt rotates
// the selection intersection
func (e *Editor) handleArrow(dir transform.Direction, mod tcell.ModMask) {
	switch {
	case mod&tcell.ModCtrl != 0 && mod&tcell.ModAlt != 0:
		e.report(e.sess.ShiftIntersection(dir), "Shifted intersection "+dir.String(), "Select rows and columns first")
	case mod&tcell.ModCtrl != 0:
		e.report(e.sess.MoveBlock(dir), "Moved block "+dir.String(), "Nothing to move")
	case mod&tcell.ModAlt != 0:
		e.report(e.sess.ShiftBlock(dir), "Shifted block "+dir.String(), "Nothing to shift")
	case mod&tcell.ModShift != 0:
		e.sess.TranslateRepeat(dir, e.now())
	default:
		switch dir {
		case transform.Left:
			e.moveCursor(0, -1)
		case transform.Right:
			e.moveCursor(0, 1)
		case transform.Up:
			e.moveCursor(-1, 0)
		case transform.Down:
			e.moveCursor(1, 0)
		}
	}
}

func (e *Editor) report(ok bool, done, noop string) {
	if ok {
		e.setStatus(statusOK, "%s", done)
		return
	}
	e.setStatus(statusErr, "%s", noop)
}

func (e *Editor) handleRune(r rune) {
	switch r {
	case 'q':
		e.running = false

	// Navigation
	case 'h':
		e.moveCursor(0, -1)
	case 'l':
		e.moveCursor(0, 1)
	case 'k':
		e.moveCursor(-1, 0)
	case 'j':
		e.moveCursor(1, 0)
	case '0':
		e.curC = 0
	case '$':
		e.curC = e.sess.Grid.Cols() - 1
	case 'g':
		e.curR = 0
	case 'G':
		e.curR = e.sess.Grid.Rows() - 1

	// Cells
	case ' ':
		e.sess.Click(e.curR, e.curC)
	case 'p':
		e.sess.PaintMode = !e.sess.PaintMode
		e.setStatus(statusInfo, "Paint mode %v", e.sess.PaintMode)
	case 'e':
		if col, err := e.sess.Eyedrop(e.curR, e.curC); err == nil {
			e.setStatus(statusInfo, "Paint color %s", col.Hex())
		}
	case '1', '2', '3', '4', '5', '6', '7', '8':
		entry := palette.Palette[r-'1']
		e.sess.PaintColor = entry.Color
		e.setStatus(statusInfo, "Paint color %s", entry.Name)

	// Selection
	case 'r':
		e.sess.Selection.ToggleRow(e.curR)
	case 'c':
		e.sess.Selection.ToggleCol(e.curC)

	// Whole grid
	case 'u':
		e.undo()
	case 'U':
		e.redo()
	case 'R':
		e.sess.Reset()
		e.setStatus(statusOK, "Reset")
	case 'f':
		e.recolor()
	case 'S':
		e.sess.SnapToPalette()
		e.setStatus(statusOK, "Snapped to palette")
	case '<':
		e.sess.Translate(transform.Left)
	case '>':
		e.sess.Translate(transform.Right)
	case '^':
		e.sess.Translate(transform.Up)
	case 'v':
		e.sess.Translate(transform.Down)
	case '|':
		e.sess.Flip(transform.Horizontal)
		e.setStatus(statusOK, "Flipped horizontal")
	case '_':
		e.sess.Flip(transform.Vertical)
		e.setStatus(statusOK, "Flipped vertical")
	case 'F':
		e.sess.Format = (e.sess.Format + 1) % 3
		e.setStatus(statusInfo, "Export format %s", e.sess.Format)

	// Prompts
	case 'o':
		e.openPrompt(promptImport, e.lastPath)
	case 'O':
		e.openPrompt(promptMerge, e.lastPath)
	case 'w':
		e.openPrompt(promptExport, e.lastPath)
	case 'I':
		e.openPrompt(promptImage, "")
	case 't':
		e.openPrompt(promptText, "")
	case 'z':
		e.openPrompt(promptResize, fmt.Sprintf("%d %d", e.sess.Grid.Rows(), e.sess.Grid.Cols()))
	}
}

func (e *Editor) undo() {
	if e.sess.Undo() {
		e.moveCursor(0, 0)
		e.setStatus(statusOK, "Undo")
		return
	}
	e.setStatus(statusInfo, "Nothing to undo")
}

func (e *Editor) redo() {
	if e.sess.Redo() {
		e.moveCursor(0, 0)
		e.setStatus(statusOK, "Redo")
		return
	}
	e.setStatus(statusInfo, "Nothing to redo")
}

func (e *Editor) recolor() {
	e.sess.RecolorAll()
	e.setStatus(statusOK, "Recolored to %s", e.sess.PaintColor.Hex())
}

func (e *Editor) moveCursor(dr, dc int) {
	e.curR = clamp(e.curR+dr, 0, e.sess.Grid.Rows()-1)
	e.curC = clamp(e.curC+dc, 0, e.sess.Grid.Cols()-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (e *Editor) openPrompt(kind promptKind, initial string) {
	e.prompt = kind
	e.input = []rune(initial)
}

func (e *Editor) handlePromptKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		e.prompt = promptNone
	case tcell.KeyEnter:
		kind, line := e.prompt, strings.TrimSpace(string(e.input))
		e.prompt = promptNone
		if line != "" {
			e.submit(kind, line)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(e.input); n > 0 {
			e.input = e.input[:n-1]
		}
	case tcell.KeyRune:
		e.input = append(e.input, r)
	}
}

func (e *Editor) submit(kind promptKind, line string) {
	switch kind {
	case promptImport, promptMerge:
		mode := codec.ModeReplace
		if kind == promptMerge {
			mode = codec.ModeMerge
		}
		doc, err := e.sess.ImportFile(line, mode)
		if err != nil {
			e.setStatus(statusErr, "Import failed: %v", err)
			return
		}
		e.lastPath = line
		e.setStatus(statusOK, "Imported %s (%s, %s)", line, doc.Format, mode)

	case promptExport:
		path, opts, err := parseExport(line)
		if err != nil {
			e.setStatus(statusErr, "%v", err)
			return
		}
		if err := e.sess.ExportFile(path, opts...); err != nil {
			e.setStatus(statusErr, "Export failed: %v", err)
			return
		}
		e.lastPath = path
		e.setStatus(statusOK, "Exported %s as %s", path, e.sess.Format)

	case promptImage:
		if err := e.sess.ImportImage(line); err != nil {
			e.setStatus(statusErr, "Image failed: %v", err)
			return
		}
		e.setStatus(statusOK, "Imported image %s", line)

	case promptText:
		e.sess.ApplyText(strings.ReplaceAll(line, `\n`, "\n"))
		e.setStatus(statusOK, "Applied text")

	case promptResize:
		var rows, cols int
		if _, err := fmt.Sscan(line, &rows, &cols); err != nil {
			e.setStatus(statusErr, "Resize needs two numbers")
			return
		}
		if err := e.sess.Resize(rows, cols); err != nil {
			e.setStatus(statusErr, "%v", err)
			return
		}
		e.moveCursor(0, 0)
		e.top, e.left = 0, 0
		e.setStatus(statusOK, "Resized to %dx%d", rows, cols)
	}
}

// parseExport reads "path" or "path first last" with 1-based inclusive rows
func parseExport(line string) (string, []codec.Option, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return fields[0], nil, nil
	case 3:
		first, err1 := strconv.Atoi(fields[1])
		last, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return "", nil, fmt.Errorf("row range must be two numbers")
		}
		return fields[0], []codec.Option{codec.WithRows(first-1, last-1)}, nil
	}
	return "", nil, fmt.Errorf("usage: path [first last]")
}
