package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vogtb/notegrid/packages/notegrid"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		mode   string
		region string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the CSV or submission text",
		Long: `Print the grid as delimited text.

Modes:
  csv         column letter header, formula text for formula cells
  submission  no header, computed value of every cell
  canonical   no header, formula text (the notes file format)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := a.loadGrid(false)
			if err != nil {
				return err
			}

			opts := notegrid.ExportOptions{}
			switch mode {
			case "csv":
				opts.Header = true
				opts.Mode = notegrid.ExportFormulas
			case "submission":
				opts.Mode = notegrid.ExportValues
			case "canonical":
				opts.Mode = notegrid.ExportFormulas
			default:
				return notegrid.NewApplicationError(notegrid.InvalidArgument,
					fmt.Sprintf("unknown export mode %q, want csv, submission or canonical", mode))
			}

			if region != "" {
				r, err := notegrid.ParseRegion(region)
				if err != nil {
					return err
				}
				opts.Region = &r
			}

			fmt.Fprintln(cmd.OutOrStdout(), grid.Export(opts))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "csv", "export mode: csv, submission or canonical")
	cmd.Flags().StringVar(&region, "range", "", "export only a range such as A1:C10")
	return cmd
}
