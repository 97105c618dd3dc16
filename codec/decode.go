package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/pixgrid/palette"
)

// maxLineBytes bounds a single input line
const maxLineBytes = 1 << 20

// line is one input line with its 1-based position
type line struct {
	no   int
	text string
}

// Decode reads a whole file into a Document
// Nothing is applied anywhere; a malformed file yields a *ParseError
func Decode(r io.Reader) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	tagged := false
	if len(lines) > 0 && strings.HasPrefix(lines[0].text, TagPrefix) {
		name := strings.TrimPrefix(lines[0].text, TagPrefix)
		f, err := ParseFormat(name)
		if err != nil {
			return nil, &ParseError{Line: lines[0].no, Msg: err.Error(), Err: err}
		}
		doc.Format, doc.Origin, tagged = f, OriginTag, true
		lines = lines[1:]
	}

	body, colors := splitColors(lines)

	if !tagged {
		doc.Format, doc.Origin = Plain, OriginPlainFallback
		if len(body) > 0 && hasGroupPrefix(strings.TrimSpace(body[0].text)) {
			doc.Format, doc.Origin = Formatted, OriginBitPrefix
		}
	}

	for _, ln := range body {
		var row []docCell
		switch doc.Format {
		case Plain:
			row, err = decodePlainRow(ln)
		case Formatted:
			row, err = decodeFormattedRow(ln)
		case Colored:
			row, err = decodeColoredRow(ln)
		}
		if err != nil {
			return nil, err
		}
		doc.rows = append(doc.rows, row)
	}

	if doc.Format.HasColorBlock() {
		for i, ln := range colors {
			if i >= len(doc.rows) {
				break
			}
			if err := applyColorRow(doc.rows[i], ln); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// readLines splits input into lines, stripping \r and skipping blank lines
func readLines(r io.Reader) ([]line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var out []line
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, line{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return out, nil
}

// splitColors separates body lines from the lines after the #colors marker
func splitColors(lines []line) (body, colors []line) {
	for i, ln := range lines {
		if strings.TrimSpace(ln.text) == ColorsMarker {
			return lines[:i], lines[i+1:]
		}
	}
	return lines, nil
}

func hasGroupPrefix(s string) bool {
	return strings.HasPrefix(s, groupPrefix) || strings.HasPrefix(s, legacyGroupPrefix)
}

func decodeBit(ln line, tok string) (bool, error) {
	switch tok {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, parseErr(ln.no, "bad cell token %q", tok)
}

func decodePlainRow(ln line) ([]docCell, error) {
	fields := strings.Fields(ln.text)
	row := make([]docCell, len(fields))
	for i, tok := range fields {
		on, err := decodeBit(ln, tok)
		if err != nil {
			return nil, err
		}
		row[i].on = on
	}
	return row, nil
}

func decodeFormattedRow(ln line) ([]docCell, error) {
	var row []docCell
	for _, grp := range strings.Split(ln.text, ",") {
		grp = strings.TrimSpace(grp)
		if grp == "" {
			continue
		}
		if !hasGroupPrefix(grp) {
			return nil, parseErr(ln.no, "bit group %q lacks %s prefix", grp, groupPrefix)
		}
		digits := grp[len(groupPrefix):]
		if len(digits) == 0 || len(digits) > groupSize {
			return nil, parseErr(ln.no, "bit group %q must hold 1 to %d digits", grp, groupSize)
		}
		for _, d := range digits {
			on, err := decodeBit(ln, string(d))
			if err != nil {
				return nil, err
			}
			row = append(row, docCell{on: on})
		}
	}
	return row, nil
}

func decodeColoredRow(ln line) ([]docCell, error) {
	tokens := strings.Split(ln.text, ",")
	if n := len(tokens); n > 1 && strings.TrimSpace(tokens[n-1]) == "" {
		tokens = tokens[:n-1]
	}
	row := make([]docCell, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == offToken {
			continue
		}
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return nil, parseErr(ln.no, "bad palette index %q", tok)
		}
		row[i].on = true
		if col, ok := palette.At(idx); ok {
			row[i].color, row[i].hasColor = col, true
		}
	}
	return row, nil
}

// applyColorRow fills colors for the on cells of row from one #colors line
// Tokens past the row's end are validated but ignored
func applyColorRow(row []docCell, ln line) error {
	for c, tok := range strings.Fields(ln.text) {
		col, err := parseRGB(ln, tok)
		if err != nil {
			return err
		}
		if c < len(row) && row[c].on {
			row[c].color, row[c].hasColor = col, true
		}
	}
	return nil
}

func parseRGB(ln line, tok string) (palette.RGB, error) {
	parts := strings.Split(tok, ",")
	if len(parts) != 3 {
		return palette.RGB{}, parseErr(ln.no, "color %q needs three channels", tok)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return palette.RGB{}, parseErr(ln.no, "bad channel %q in color %q", p, tok)
		}
		ch[i] = uint8(v)
	}
	return palette.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
