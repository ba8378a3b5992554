package notegrid

import "log/slog"

const (
	// DefaultMaxRows and DefaultMaxCols bound the total extent. edits and
	// pastes past them fail with OutOfRange instead of growing the grid
	DefaultMaxRows = 10000
	DefaultMaxCols = 702 // A through ZZ
)

// Option configures a Grid
type Option func(*Grid)

// WithLogger sets the logger used for recomputation diagnostics. the
// default logger discards everything
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSweepLimit caps the number of verification sweeps a stabilization
// may run. zero or a negative limit restores the default of one sweep per
// cell of the total extent, plus one
func WithSweepLimit(limit int) Option {
	return func(g *Grid) {
		g.sweepLimit = limit
	}
}

// WithMaxExtent sets the hard limit on the total extent
func WithMaxExtent(rows, cols int) Option {
	return func(g *Grid) {
		if rows > 0 {
			g.maxRows = rows
		}
		if cols > 0 {
			g.maxCols = cols
		}
	}
}
