package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/vogtb/notegrid/packages/notegrid"
)

const (
	fileEnv     = "NOTEGRID_FILE"
	defaultFile = "notes.csv"
	defaultRows = 20
	defaultCols = 6
)

// app holds the state shared by every subcommand
type app struct {
	file    string
	rows    int
	cols    int
	verbose bool

	logger        *slog.Logger
	readClipboard func() (string, error)
}

func newApp() *app {
	return &app{
		logger:        slog.New(slog.DiscardHandler),
		readClipboard: clipboard.ReadAll,
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notegrid",
		Short: "Edit quotation notes kept as a small formula grid",
		Long: `Edit quotation notes kept as a small formula grid.

Cells hold numbers, labels or formulas such as =A1*(1+10%).
Formulas support + - * / and parentheses, references in A1 form
and percent literals. The grid is saved as headerless CSV with
formula text, so the file can be pasted back as is.

Commands:
  show    Render the grid as a table.
  set     Change one cell.
  paste   Paste a block of tab or comma separated text.
  export  Print the CSV or submission text.
  eval    Evaluate a formula against the grid without storing it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			if a.rows < 0 || a.cols < 0 {
				return notegrid.NewApplicationError(notegrid.InvalidArgument,
					fmt.Sprintf("grid size must not be negative: %dx%d", a.rows, a.cols))
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.file, "file", "f", envOr(fileEnv, defaultFile), "notes file (env "+fileEnv+")")
	flags.IntVar(&a.rows, "rows", defaultRows, "minimum number of rows")
	flags.IntVar(&a.cols, "cols", defaultCols, "minimum number of columns")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log recomputation details to stderr")

	cmd.AddCommand(newShowCommand(a))
	cmd.AddCommand(newSetCommand(a))
	cmd.AddCommand(newPasteCommand(a))
	cmd.AddCommand(newExportCommand(a))
	cmd.AddCommand(newEvalCommand(a))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
