package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vogtb/notegrid/packages/notegrid"
)

func newPasteCommand(a *app) *cobra.Command {
	var (
		at            string
		fromClipboard bool
		delimiter     string
	)

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Paste a block of tab or comma separated text",
		Long: `Paste a block of text into the grid and save the notes file.

The block is read from stdin, or from the system clipboard with
--clipboard. Cells copied from a spreadsheet application arrive tab
separated; text exported by notegrid is comma separated. The delimiter
is detected unless --delimiter is given.`,
		Example: `  pbpaste | notegrid paste --at B2
  notegrid paste --clipboard
  notegrid export --mode csv | tail -n +2 | notegrid paste -f copy.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var text string
			if fromClipboard {
				clip, err := a.readClipboard()
				if err != nil {
					return fmt.Errorf("reading clipboard: %w", err)
				}
				text = clip
			} else {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(in)
			}

			delim, err := parseDelimiter(delimiter, text)
			if err != nil {
				return err
			}

			row, col, err := notegrid.ParseCellRef(at)
			if err != nil {
				return err
			}

			grid, err := a.loadGrid(true)
			if err != nil {
				return err
			}
			if err := grid.PasteDelimited(text, row, col, delim); err != nil {
				return fmt.Errorf("pasting at %s: %w", at, err)
			}
			if err := a.saveGrid(grid); err != nil {
				return err
			}

			block := notegrid.ReadDelimited(text, delim)
			fmt.Fprintf(cmd.OutOrStdout(), "pasted %d rows at %s\n", len(block), notegrid.CellName(row, col))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "A1", "top-left cell of the pasted block")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "read the block from the system clipboard")
	cmd.Flags().StringVar(&delimiter, "delimiter", "auto", "field delimiter: auto, tab or comma")
	return cmd
}

func parseDelimiter(name, text string) (rune, error) {
	switch name {
	case "auto", "":
		return notegrid.DetectPasteDelimiter(text), nil
	case "tab":
		return '\t', nil
	case "comma":
		return ',', nil
	}
	return 0, notegrid.NewApplicationError(notegrid.InvalidArgument,
		fmt.Sprintf("unknown delimiter %q, want auto, tab or comma", name))
}
