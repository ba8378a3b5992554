package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/vogtb/notegrid/packages/notegrid"
)

// loadGrid reads the notes file into a fresh grid of at least rows x cols.
// a missing file yields an empty grid when create is set and a NotFound
// error otherwise
func (a *app) loadGrid(create bool) (*notegrid.Grid, error) {
	grid := notegrid.NewGrid(a.rows, a.cols, notegrid.WithLogger(a.logger))

	content, err := os.ReadFile(a.file)
	if errors.Is(err, fs.ErrNotExist) {
		if !create {
			return nil, notegrid.NewApplicationError(notegrid.NotFound,
				fmt.Sprintf("notes file %s does not exist", a.file))
		}
		a.logger.Debug("starting empty notes", slog.String("file", a.file))
		return grid, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", a.file, err)
	}

	if len(content) > 0 {
		// the file is always written with commas
		if err := grid.PasteDelimited(string(content), 0, 0, ','); err != nil {
			return nil, fmt.Errorf("loading %s: %w", a.file, err)
		}
	}

	// show everything the file holds
	grid.Resize(max(grid.Rows()-grid.VisibleRows(), 0), max(grid.Cols()-grid.VisibleCols(), 0))

	a.logger.Debug("loaded notes",
		slog.String("file", a.file),
		slog.Int("rows", grid.Rows()),
		slog.Int("cols", grid.Cols()),
		slog.Int("cells", grid.TotalCells()))
	return grid, nil
}

// saveGrid writes the grid as headerless formula CSV. the trailing
// newline keeps a last blank row of a single column grid
func (a *app) saveGrid(grid *notegrid.Grid) error {
	content := grid.ExportCanonical() + "\n"
	if err := os.WriteFile(a.file, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.file, err)
	}
	a.logger.Debug("saved notes", slog.String("file", a.file), slog.Int("bytes", len(content)))
	return nil
}
