package notegrid

// ExportMode selects what is written for each cell
type ExportMode int

const (
	// ExportFormulas writes formula text (with '=') for formula cells and
	// the stringified value for literal cells. re-pasting the output
	// rebuilds the grid
	ExportFormulas ExportMode = iota

	// ExportValues writes the stringified computed value of every cell
	ExportValues
)

// ExportOptions controls Export
type ExportOptions struct {
	Region    *Region // nil exports the whole total extent
	Header    bool    // prepend a row of column letters
	Mode      ExportMode
	Delimiter rune // zero means comma
}

// Export encodes a region of the grid as delimited text, one row per line
// without a trailing newline. fields containing the delimiter, a quote or
// a line break are quoted with inner quotes doubled
func (g *Grid) Export(opts ExportOptions) string {
	region := FullRegion(g.rows, g.cols)
	if opts.Region != nil {
		region = *opts.Region
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = charComma
	}

	var rows [][]string

	if opts.Header {
		header := make([]string, 0, region.Cols())
		for col := region.StartCol; col <= region.EndCol; col++ {
			header = append(header, ColumnLabel(col))
		}
		rows = append(rows, header)
	}

	for cells := range g.Region(region).IterateRows() {
		fields := make([]string, len(cells))
		for i, cell := range cells {
			fields[i] = exportField(cell, opts.Mode)
		}
		rows = append(rows, fields)
	}

	return WriteDelimited(rows, delim)
}

func exportField(cell Cell, mode ExportMode) string {
	if mode == ExportFormulas && cell.IsFormula {
		return cell.Formula
	}
	return cell.Value.String()
}

// ExportCSV produces the human readable artifact: a header row of column
// letters followed by every row of the total extent, with formula text for
// formula cells
func (g *Grid) ExportCSV() string {
	return g.Export(ExportOptions{Header: true, Mode: ExportFormulas})
}

// ExportSubmissionText produces the text sent with a submitted form: no
// header and the computed value of every cell of the total extent
func (g *Grid) ExportSubmissionText() string {
	return g.Export(ExportOptions{Mode: ExportValues})
}

// ExportCanonical produces headerless formula text. pasting it at the
// origin of an empty grid of the same size reproduces every value
func (g *Grid) ExportCanonical() string {
	return g.Export(ExportOptions{Mode: ExportFormulas})
}
