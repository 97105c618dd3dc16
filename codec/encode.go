package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/palette"
)

// Option adjusts an export
type Option func(*encodeOptions)

type encodeOptions struct {
	start, end int
	ranged     bool
}

// WithRows limits the export to the inclusive row range [start, end]
// A reversed range is swapped and the range is clamped to the snapshot
func WithRows(start, end int) Option {
	return func(o *encodeOptions) {
		if start > end {
			start, end = end, start
		}
		o.start, o.end, o.ranged = start, end, true
	}
}

// Encode writes s in format f, header line first
func Encode(w io.Writer, s grid.Snapshot, f Format, opts ...Option) error {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	first, last := 0, s.Rows()-1
	if o.ranged {
		first = max(o.start, 0)
		last = min(o.end, s.Rows()-1)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(TagPrefix + f.String() + "\n")

	for r := first; r <= last; r++ {
		switch f {
		case Plain:
			bw.WriteString(plainRow(s, r))
		case Formatted:
			bw.WriteString(formattedRow(s, r))
		case Colored:
			bw.WriteString(coloredRow(s, r))
		}
		bw.WriteByte('\n')
	}

	if f.HasColorBlock() {
		bw.WriteString("\n" + ColorsMarker + "\n")
		for r := first; r <= last; r++ {
			bw.WriteString(colorRow(s, r))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func bit(c grid.Cell) string {
	if c.On {
		return "1"
	}
	return "0"
}

// plainRow: "1 0 1"
func plainRow(s grid.Snapshot, r int) string {
	tokens := make([]string, s.RowLen(r))
	for c := range tokens {
		tokens[c] = bit(s.At(r, c))
	}
	return strings.Join(tokens, " ")
}

// formattedRow: "0b10100000, 0b1,"; the last group may be short
func formattedRow(s grid.Snapshot, r int) string {
	n := s.RowLen(r)
	var groups []string
	for start := 0; start < n; start += groupSize {
		var sb strings.Builder
		sb.WriteString(groupPrefix)
		for c := start; c < min(start+groupSize, n); c++ {
			sb.WriteString(bit(s.At(r, c)))
		}
		groups = append(groups, sb.String())
	}
	return strings.Join(groups, ", ") + ","
}

// coloredRow: "1,7,-" with off cells as "-"
func coloredRow(s grid.Snapshot, r int) string {
	tokens := make([]string, s.RowLen(r))
	for c := range tokens {
		cell := s.At(r, c)
		if !cell.On {
			tokens[c] = offToken
			continue
		}
		tokens[c] = strconv.Itoa(palette.NearestIndex(cell.Color))
	}
	return strings.Join(tokens, ",")
}

// colorRow: "10,20,30 0,0,0" with off cells as black
func colorRow(s grid.Snapshot, r int) string {
	tokens := make([]string, s.RowLen(r))
	for c := range tokens {
		col, ok := s.At(r, c).RGB()
		if !ok {
			col = palette.RGBBlack
		}
		tokens[c] = col.String()
	}
	return strings.Join(tokens, " ")
}
