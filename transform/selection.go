package transform

import (
	"slices"
)

// Selection is the set of selected row indices and column indices
// Both sets are kept sorted and free of duplicates
type Selection struct {
	rows []int
	cols []int
}

// NewSelection builds a selection from arbitrary, possibly unsorted indices
func NewSelection(rows, cols []int) *Selection {
	s := &Selection{}
	s.SetRows(rows...)
	s.SetCols(cols...)
	return s
}

// Rows returns a copy of the selected rows in ascending order
func (s *Selection) Rows() []int { return slices.Clone(s.rows) }

// Cols returns a copy of the selected columns in ascending order
func (s *Selection) Cols() []int { return slices.Clone(s.cols) }

// SetRows replaces the row selection
func (s *Selection) SetRows(rows ...int) { s.rows = normalize(rows) }

// SetCols replaces the column selection
func (s *Selection) SetCols(cols ...int) { s.cols = normalize(cols) }

// ToggleRow adds or removes one row
func (s *Selection) ToggleRow(r int) { s.rows = toggle(s.rows, r) }

// ToggleCol adds or removes one column
func (s *Selection) ToggleCol(c int) { s.cols = toggle(s.cols, c) }

// HasRow reports whether r is selected
func (s *Selection) HasRow(r int) bool {
	_, ok := slices.BinarySearch(s.rows, r)
	return ok
}

// HasCol reports whether c is selected
func (s *Selection) HasCol(c int) bool {
	_, ok := slices.BinarySearch(s.cols, c)
	return ok
}

// Clear empties both sets
func (s *Selection) Clear() {
	s.rows = nil
	s.cols = nil
}

// Empty reports whether nothing is selected
func (s *Selection) Empty() bool {
	return len(s.rows) == 0 && len(s.cols) == 0
}

// Clip drops indices outside a rows x cols grid
func (s *Selection) Clip(rows, cols int) {
	s.rows = slices.DeleteFunc(s.rows, func(r int) bool { return r < 0 || r >= rows })
	s.cols = slices.DeleteFunc(s.cols, func(c int) bool { return c < 0 || c >= cols })
}

// RowSpan returns the inclusive span from the lowest to the highest selected row
func (s *Selection) RowSpan() (start, end int, ok bool) {
	return span(s.rows)
}

// ColSpan returns the inclusive span from the lowest to the highest selected column
func (s *Selection) ColSpan() (start, end int, ok bool) {
	return span(s.cols)
}

func (s *Selection) shiftRows(d int) {
	for i := range s.rows {
		s.rows[i] += d
	}
}

func (s *Selection) shiftCols(d int) {
	for i := range s.cols {
		s.cols[i] += d
	}
}

func normalize(v []int) []int {
	out := slices.Clone(v)
	slices.Sort(out)
	return slices.Compact(out)
}

func toggle(v []int, x int) []int {
	i, ok := slices.BinarySearch(v, x)
	if ok {
		return slices.Delete(v, i, i+1)
	}
	return slices.Insert(v, i, x)
}

func span(v []int) (int, int, bool) {
	if len(v) == 0 {
		return 0, 0, false
	}
	return v[0], v[len(v)-1], true
}
