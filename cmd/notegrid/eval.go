package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEvalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "eval <formula>",
		Short:   "Evaluate a formula against the grid without storing it",
		Example: `  notegrid eval "B2*C2*(1+10%)"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := a.loadGrid(true)
			if err != nil {
				return err
			}
			value := grid.Eval(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), value.String())
			return nil
		},
	}
}
