package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <cell> <input>",
		Short: "Change one cell",
		Long: `Change one cell and save the notes file.

An input starting with '=' is a formula, anything else is a number or a
label. An empty input clears the cell. Use -- before inputs that start
with a dash.`,
		Example: `  notegrid set A1 qty
  notegrid set B2 "=A2*(1+10%)"
  notegrid set C3 -- -5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, raw := args[0], args[1]

			grid, err := a.loadGrid(true)
			if err != nil {
				return err
			}
			if err := grid.SetCellAt(ref, raw); err != nil {
				return fmt.Errorf("setting %s: %w", ref, err)
			}
			if err := a.saveGrid(grid); err != nil {
				return err
			}

			cell, err := grid.GetCellAt(ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", ref, cell.Value.String())
			return nil
		},
	}
}
