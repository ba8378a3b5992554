package notegrid

import (
	"fmt"
	"iter"
	"strings"
)

// Region is a rectangle of cells with inclusive bounds. a region whose end
// lies before its start is empty
type Region struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// FullRegion returns the region covering rows x cols from the origin
func FullRegion(rows, cols int) Region {
	return Region{StartRow: 0, StartCol: 0, EndRow: rows - 1, EndCol: cols - 1}
}

// ParseRegion parses an A1-style region such as "A1:C10". a single
// reference is a one-cell region. corners may be given in any order
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 2 {
		return Region{}, NewApplicationError(InvalidArgument, fmt.Sprintf("invalid region: %s", s))
	}

	startRow, startCol, err := ParseCellRef(parts[0])
	if err != nil {
		return Region{}, err
	}
	endRow, endCol := startRow, startCol
	if len(parts) == 2 {
		endRow, endCol, err = ParseCellRef(parts[1])
		if err != nil {
			return Region{}, err
		}
	}

	// normalize the region so start is always less than or equal to end
	return Region{
		StartRow: min(startRow, endRow),
		StartCol: min(startCol, endCol),
		EndRow:   max(startRow, endRow),
		EndCol:   max(startCol, endCol),
	}, nil
}

// IsEmpty reports whether the region holds no cells
func (r Region) IsEmpty() bool {
	return r.EndRow < r.StartRow || r.EndCol < r.StartCol
}

// Rows returns the number of rows in the region
func (r Region) Rows() int {
	if r.IsEmpty() {
		return 0
	}
	return r.EndRow - r.StartRow + 1
}

// Cols returns the number of columns in the region
func (r Region) Cols() int {
	if r.IsEmpty() {
		return 0
	}
	return r.EndCol - r.StartCol + 1
}

// Contains checks if a cell is within the region
func (r Region) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow &&
		col >= r.StartCol && col <= r.EndCol
}

// Intersect clips the region to another one
func (r Region) Intersect(other Region) Region {
	return Region{
		StartRow: max(r.StartRow, other.StartRow),
		StartCol: max(r.StartCol, other.StartCol),
		EndRow:   min(r.EndRow, other.EndRow),
		EndCol:   min(r.EndCol, other.EndCol),
	}
}

func (r Region) String() string {
	if r.IsEmpty() {
		return ""
	}
	return CellName(r.StartRow, r.StartCol) + ":" + CellName(r.EndRow, r.EndCol)
}

// CellRange is a lazy view over a region of a grid
type CellRange struct {
	region Region
	cells  *Store
}

// Region returns a lazy view over a region of the grid
func (g *Grid) Region(r Region) *CellRange {
	return &CellRange{region: r, cells: g.storage.cells}
}

// GetBounds returns the range boundaries
func (r *CellRange) GetBounds() Region {
	return r.region
}

// Iterate returns an iterator over all cells in the range in row-major
// order. never-written cells are yielded as empty cells
func (r *CellRange) Iterate() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		if r.region.IsEmpty() {
			return
		}
		for row := r.region.StartRow; row <= r.region.EndRow; row++ {
			for col := r.region.StartCol; col <= r.region.EndCol; col++ {
				if !yield(r.cells.GetCell(row, col)) {
					return
				}
			}
		}
	}
}

// IterateValues returns an iterator over cell values in the range
func (r *CellRange) IterateValues() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for cell := range r.Iterate() {
			if !yield(cell.Value) {
				return
			}
		}
	}
}

// IterateRows returns an iterator over the rows of the range
func (r *CellRange) IterateRows() iter.Seq[[]Cell] {
	return func(yield func([]Cell) bool) {
		if r.region.IsEmpty() {
			return
		}
		for row := r.region.StartRow; row <= r.region.EndRow; row++ {
			cells := make([]Cell, 0, r.region.Cols())
			for col := r.region.StartCol; col <= r.region.EndCol; col++ {
				cells = append(cells, r.cells.GetCell(row, col))
			}
			if !yield(cells) {
				return
			}
		}
	}
}

// Cells collects the range into a slice
func (r *CellRange) Cells() []Cell {
	cells := make([]Cell, 0, r.region.Rows()*r.region.Cols())
	for cell := range r.Iterate() {
		cells = append(cells, cell)
	}
	return cells
}
