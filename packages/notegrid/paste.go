package notegrid

import "fmt"

// Paste writes a block of delimited text into the grid anchored at the
// origin and stabilizes once. the delimiter is detected with
// DetectPasteDelimiter.
//
// the block covers lines x widest line. every field is written with the
// same rules as SetCell, and positions past the end of a short line are
// cleared so the whole rectangle reflects the block. the total extent
// grows to cover the rectangle
func (g *Grid) Paste(text string, originRow, originCol int) error {
	return g.PasteDelimited(text, originRow, originCol, DetectPasteDelimiter(text))
}

// PasteAt is Paste addressed by an A1-style reference
func (g *Grid) PasteAt(text string, ref string) error {
	row, col, err := ParseCellRef(ref)
	if err != nil {
		return err
	}
	return g.Paste(text, row, col)
}

// PasteDelimited is Paste with an explicit delimiter
func (g *Grid) PasteDelimited(text string, originRow, originCol int, delim rune) error {
	if err := g.checkCoordinate(originRow, originCol); err != nil {
		return err
	}

	rows := ReadDelimited(text, delim)
	width := 0
	for _, fields := range rows {
		width = max(width, len(fields))
	}

	// validate the far corner before writing anything
	lastRow := originRow + len(rows) - 1
	lastCol := originCol + width - 1
	if err := g.checkCoordinate(lastRow, lastCol); err != nil {
		return NewApplicationError(OutOfRange, fmt.Sprintf("pasted block of %dx%d at %s does not fit: %v",
			len(rows), width, CellName(originRow, originCol), err))
	}

	g.grow(lastRow+1, lastCol+1)

	for r, fields := range rows {
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(fields) {
				raw = fields[c]
			}
			g.writeCell(originRow+r, originCol+c, raw)
		}
	}

	g.Stabilize()
	return nil
}
