// Package codec reads and writes grid snapshots as text.
//
// Three encodings exist. Plain and Formatted carry occupancy plus a #colors
// block with the exact RGB of every cell; Colored carries palette indices
// only and is lossy. Every export starts with a format tag line; imports
// without one are sniffed.
//
// Colored rows hold palette indices 0..7 for on cells and "-" for off cells,
// so occupancy survives even though colors are quantized.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Format selects a text encoding
type Format uint8

const (
	Plain Format = iota
	Formatted
	Colored
)

// TagPrefix starts the header line of every export
const TagPrefix = "#export_format:"

// ColorsMarker separates the occupancy body from the color block
const ColorsMarker = "#colors"

// Bit-group prefixes of the Formatted encoding; legacyGroupPrefix is what
// older exports wrote and is still accepted on import
const (
	groupPrefix       = "0b"
	legacyGroupPrefix = "2b"
	groupSize         = 8
)

// offToken marks an off cell in the Colored encoding
const offToken = "-"

// ErrUnknownFormat is wrapped by errors for unrecognized format names
var ErrUnknownFormat = errors.New("unknown export format")

func (f Format) String() string {
	switch f {
	case Plain:
		return "Plain"
	case Formatted:
		return "Formatted"
	case Colored:
		return "Colored"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat maps a format name to a Format, ignoring case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return Plain, nil
	case "formatted":
		return Formatted, nil
	case "colored":
		return Colored, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// HasColorBlock reports whether the format writes a #colors block
func (f Format) HasColorBlock() bool {
	return f == Plain || f == Formatted
}

// Origin records how the decoder decided on a format
type Origin uint8

const (
	// OriginTag: the file began with an #export_format line
	OriginTag Origin = iota
	// OriginBitPrefix: untagged, the first row started with a bit-group prefix
	OriginBitPrefix
	// OriginPlainFallback: untagged and unprefixed, read as Plain
	OriginPlainFallback
)

func (o Origin) String() string {
	switch o {
	case OriginTag:
		return "tag"
	case OriginBitPrefix:
		return "bit-prefix"
	case OriginPlainFallback:
		return "plain-fallback"
	}
	return fmt.Sprintf("Origin(%d)", uint8(o))
}

// ParseError reports malformed input with its 1-based line number
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
