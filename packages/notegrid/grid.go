package notegrid

import (
	"fmt"
	"log/slog"
)

// AppErrorCode represents gRPC-style error codes for application-level errors.
// note that we are skipping error codes that don't make sense for our use-case,
// like unauthenticated, or permission denied.
type AppErrorCode int

const (
	// OK indicates the operation completed successfully.
	OK AppErrorCode = 0

	// InvalidArgument indicates client specified an invalid argument, such
	// as a negative coordinate or a malformed column label.
	InvalidArgument AppErrorCode = 3

	// NotFound means some requested entity (e.g., a notes file) was not found.
	NotFound AppErrorCode = 5

	// OutOfRange means operation was attempted past the valid range, such
	// as writing beyond the maximum grid extent.
	OutOfRange AppErrorCode = 11
)

// AppError represents errors at the application level (not
// formula errors, which are stored in cells as values)
type AppError struct {
	Code    AppErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewApplicationError creates a new application error
func NewApplicationError(code AppErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Grid is a growable two-dimensional grid of cells holding literals and
// arithmetic formulas, kept stabilized after every edit.
//
// the grid tracks two extents. the visible extent is what the host renders
// and can shrink. the total extent is the high-water mark of every
// coordinate touched by an edit, a paste or a visible resize, and never
// shrinks. formula references are bounded by the total extent.
//
// a Grid is not safe for concurrent use. the host serializes access
type Grid struct {
	storage *Storage

	rows        int // total extent
	cols        int
	visibleRows int // visible extent
	visibleCols int
	maxRows     int // hard limit on the total extent
	maxCols     int

	sweepLimit int
	logger     *slog.Logger
}

// Editor is the contract a host form drives the grid through
type Editor interface {
	SetCell(row, col int, raw string) error
	Paste(text string, originRow, originCol int) error
	GetCell(row, col int) Cell
	Resize(rowsDelta, colsDelta int)
	ExportCSV() string
	ExportSubmissionText() string
}

var _ Editor = (*Grid)(nil)

// Grid is the snapshot formulas are evaluated against
var _ Snapshot = (*Grid)(nil)

// NewGrid creates a grid with the given initial size. the visible and
// total extents both start at rows x cols
func NewGrid(rows, cols int, opts ...Option) *Grid {
	rows = max(rows, 0)
	cols = max(cols, 0)

	g := &Grid{
		storage:     NewStorage(),
		rows:        rows,
		cols:        cols,
		visibleRows: rows,
		visibleCols: cols,
		maxRows:     DefaultMaxRows,
		maxCols:     DefaultMaxCols,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(g)
	}

	// the initial size always fits
	g.maxRows = max(g.maxRows, rows)
	g.maxCols = max(g.maxCols, cols)

	return g
}

// Rows returns the total row extent
func (g *Grid) Rows() int { return g.rows }

// Cols returns the total column extent
func (g *Grid) Cols() int { return g.cols }

// VisibleRows returns the visible row extent
func (g *Grid) VisibleRows() int { return g.visibleRows }

// VisibleCols returns the visible column extent
func (g *Grid) VisibleCols() int { return g.visibleCols }

// Bounds returns the total extent
func (g *Grid) Bounds() (rows, cols int) {
	return g.rows, g.cols
}

// ValueAt returns the computed value of a cell. never-written cells are
// empty
func (g *Grid) ValueAt(row, col int) Value {
	return g.storage.cells.Value(row, col)
}

// checkCoordinate validates a coordinate against the hard extent limit
func (g *Grid) checkCoordinate(row, col int) error {
	if row < 0 || col < 0 {
		return NewApplicationError(InvalidArgument, fmt.Sprintf("invalid coordinate: row %d, col %d", row, col))
	}
	if row >= g.maxRows || col >= g.maxCols {
		return NewApplicationError(OutOfRange, fmt.Sprintf("coordinate %s is outside the maximum grid extent %dx%d", CellName(row, col), g.maxRows, g.maxCols))
	}
	return nil
}

// grow extends the total extent to cover rows x cols
func (g *Grid) grow(rows, cols int) {
	g.rows = max(g.rows, rows)
	g.cols = max(g.cols, cols)
}

// SetCell replaces the raw input of one cell and stabilizes the grid. an
// input starting with '=' (after trimming) is a formula; anything else is
// a literal, numeric when it parses fully as a number. an empty input
// clears the cell
func (g *Grid) SetCell(row, col int, raw string) error {
	if err := g.checkCoordinate(row, col); err != nil {
		return err
	}

	g.writeCell(row, col, raw)
	g.Stabilize()
	return nil
}

// SetCellAt is SetCell addressed by an A1-style reference
func (g *Grid) SetCellAt(ref string, raw string) error {
	row, col, err := ParseCellRef(ref)
	if err != nil {
		return err
	}
	return g.SetCell(row, col, raw)
}

// writeCell stores raw input without stabilizing. the coordinate must
// already be validated
func (g *Grid) writeCell(row, col int, raw string) {
	g.grow(row+1, col+1)

	addr := CellAddress{Row: row, Col: col}

	if isFormulaInput(raw) {
		expr := formulaExpression(raw)
		g.storage.formulas.InternFormula(expr, addr)
		// keep the previous result until the formula is evaluated
		previous := g.storage.cells.Value(row, col)
		g.storage.cells.Put(row, col, raw, true, previous)
		return
	}

	g.storage.formulas.RemoveCellReference(addr)
	g.storage.cells.Put(row, col, raw, false, literalValue(raw))
}

// GetCell returns a view of one cell. coordinates never written, including
// those outside every extent, read as empty cells
func (g *Grid) GetCell(row, col int) Cell {
	return g.storage.cells.GetCell(row, col)
}

// GetCellAt is GetCell addressed by an A1-style reference
func (g *Grid) GetCellAt(ref string) (Cell, error) {
	row, col, err := ParseCellRef(ref)
	if err != nil {
		return Cell{}, err
	}
	return g.GetCell(row, col), nil
}

// Resize changes the visible extent by the given deltas. the visible
// extent never drops below zero or exceeds the hard limit. shrinking
// keeps all data; growing past the total extent grows the total extent
// too and restabilizes, since references into the new area stop being
// reference errors
func (g *Grid) Resize(rowsDelta, colsDelta int) {
	g.visibleRows = min(max(g.visibleRows+rowsDelta, 0), g.maxRows)
	g.visibleCols = min(max(g.visibleCols+colsDelta, 0), g.maxCols)

	if g.visibleRows > g.rows || g.visibleCols > g.cols {
		g.grow(g.visibleRows, g.visibleCols)
		g.Stabilize()
	}
}

// Eval evaluates an ad-hoc expression against the grid without storing
// it. a leading '=' is optional
func (g *Grid) Eval(expr string) Value {
	return Evaluate(formulaExpression(expr), g)
}

// Cells returns every cell of the total extent in row-major order,
// including empty ones
func (g *Grid) Cells() []Cell {
	return g.Region(FullRegion(g.rows, g.cols)).Cells()
}

// TotalCells returns the number of cells holding raw input
func (g *Grid) TotalCells() int {
	return g.storage.cells.GetTotalCells()
}

// GetDependencyGraph returns the dependency graph of the last
// stabilization for diagnostic purposes
func (g *Grid) GetDependencyGraph() *DependencyGraph {
	return g.storage.dependencyGraph
}
