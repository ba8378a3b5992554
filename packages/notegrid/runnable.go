package notegrid

import (
	"fmt"
	"sort"
)

// RunnableGrid provides a chainable interface for grid operations
// addressed by A1-style references. wraps the standard Grid and tracks
// errors internally
type RunnableGrid struct {
	grid    *Grid
	err     error
	printLn func(string)
}

// NewRunnableGrid creates a new RunnableGrid over a fresh grid. printLn is
// used by CheckError and may be nil
func NewRunnableGrid(rows, cols int, printLn func(string), opts ...Option) *RunnableGrid {
	return WrapGrid(NewGrid(rows, cols, opts...), printLn)
}

// WrapGrid creates a RunnableGrid over an existing grid
func WrapGrid(grid *Grid, printLn func(string)) *RunnableGrid {
	if printLn == nil {
		printLn = func(string) {}
	}
	return &RunnableGrid{
		grid:    grid,
		err:     nil,
		printLn: printLn,
	}
}

// Set sets the raw input of a cell (chainable)
func (r *RunnableGrid) Set(address string, raw string) *RunnableGrid {
	if r.err != nil {
		return r // no-op if there's already an error
	}
	r.err = r.grid.SetCellAt(address, raw)
	return r
}

// Get retrieves a cell value (chainable)
func (r *RunnableGrid) Get(address string) (*RunnableGrid, Value) {
	if r.err != nil {
		return r, EmptyValue() // no-op if there's already an error
	}
	cell, err := r.grid.GetCellAt(address)
	if err != nil {
		r.err = err
	}
	return r, cell.Value
}

// Clear empties a cell (chainable)
func (r *RunnableGrid) Clear(address string) *RunnableGrid {
	return r.Set(address, "")
}

// Paste pastes a block of delimited text anchored at an address (chainable)
func (r *RunnableGrid) Paste(address string, text string) *RunnableGrid {
	if r.err != nil {
		return r // no-op if there's already an error
	}
	r.err = r.grid.PasteAt(text, address)
	return r
}

// Resize changes the visible extent (chainable)
func (r *RunnableGrid) Resize(rowsDelta, colsDelta int) *RunnableGrid {
	if r.err != nil {
		return r // no-op if there's already an error
	}
	r.grid.Resize(rowsDelta, colsDelta)
	return r
}

// SetBatch sets multiple cells at once (chainable). cells are written in
// row-major order so the result does not depend on map iteration
func (r *RunnableGrid) SetBatch(cells map[string]string) *RunnableGrid {
	if r.err != nil {
		return r // no-op if there's already an error
	}

	type entry struct {
		row, col int
		raw      string
	}
	entries := make([]entry, 0, len(cells))
	for address, raw := range cells {
		row, col, err := ParseCellRef(address)
		if err != nil {
			r.err = err
			return r
		}
		entries = append(entries, entry{row: row, col: col, raw: raw})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].row != entries[j].row {
			return entries[i].row < entries[j].row
		}
		return entries[i].col < entries[j].col
	})

	for _, e := range entries {
		if err := r.grid.SetCell(e.row, e.col, e.raw); err != nil {
			r.err = err
			return r
		}
	}
	return r
}

// Run executes a final stabilization and returns the grid and any error.
// typically the last method in the chain
func (r *RunnableGrid) Run() (*Grid, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.grid.Stabilize()
	return r.grid, nil
}

// RunOrPanic executes a final stabilization and panics if there's an
// error. useful for examples and tests where you want to fail fast
func (r *RunnableGrid) RunOrPanic() *Grid {
	grid, err := r.Run()
	if err != nil {
		panic(err)
	}
	return grid
}

// Error returns the current error state
func (r *RunnableGrid) Error() error {
	return r.err
}

// CheckError logs the current error using the printLn function (chainable)
func (r *RunnableGrid) CheckError() *RunnableGrid {
	if r.err != nil {
		r.printLn(fmt.Sprintf("ERROR: %v", r.err))
	} else {
		r.printLn("No errors")
	}
	return r
}

// Grid returns the underlying grid. use with caution as it bypasses error
// tracking.
func (r *RunnableGrid) Grid() *Grid {
	return r.grid
}

// Reset clears the error state (chainable)
func (r *RunnableGrid) Reset() *RunnableGrid {
	r.err = nil
	return r
}

// Then allows conditional execution based on current error state
func (r *RunnableGrid) Then(fn func(*RunnableGrid) *RunnableGrid) *RunnableGrid {
	if r.err != nil {
		return r // skip if there's an error
	}
	return fn(r)
}

// OnError allows error handling in the chain
func (r *RunnableGrid) OnError(fn func(error) error) *RunnableGrid {
	if r.err != nil {
		r.err = fn(r.err)
	}
	return r
}

// Must panics if there's an error (chainable). useful for ensuring
// critical operations succeed
func (r *RunnableGrid) Must() *RunnableGrid {
	if r.err != nil {
		panic(r.err)
	}
	return r
}
