package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/history"
	"github.com/lixenwraith/pixgrid/palette"
)

// Mode selects how an import combines with the current grid
type Mode uint8

const (
	// ModeReplace overwrites the overlap with the file contents
	ModeReplace Mode = iota
	// ModeMerge only turns cells on or recolors them
	ModeMerge
)

func (m Mode) String() string {
	if m == ModeMerge {
		return "merge"
	}
	return "replace"
}

// Apply checkpoints g once and applies doc to it in the given mode
func Apply(h *history.Stack, g *grid.Grid, doc *Document, mode Mode, def palette.RGB) {
	var next grid.Snapshot
	if mode == ModeMerge {
		next = doc.Merge(g.State(), def)
	} else {
		next = doc.Snapshot(def)
	}
	history.WithCheckpoint(h, g, func(g *grid.Grid) {
		g.SetState(next)
	})
}

// Import decodes r completely and only then applies it
// On any read or parse error the grid and history are left untouched
func Import(h *history.Stack, g *grid.Grid, r io.Reader, mode Mode, def palette.RGB) (*Document, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	Apply(h, g, doc, mode, def)
	return doc, nil
}

// ReadFile decodes the file at path
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes s fully in memory, then writes it to path
func WriteFile(path string, s grid.Snapshot, f Format, opts ...Option) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s, f, opts...); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
