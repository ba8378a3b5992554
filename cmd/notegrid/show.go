package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vogtb/notegrid/packages/notegrid"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newShowCommand(a *app) *cobra.Command {
	var formulas bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the grid as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := a.loadGrid(false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderGrid(grid, formulas))
			return nil
		},
	}

	cmd.Flags().BoolVar(&formulas, "formulas", false, "show formula text instead of computed values")
	return cmd
}

// renderGrid draws the visible extent with column letters across the top
// and row numbers down the side
func renderGrid(grid *notegrid.Grid, formulas bool) string {
	rows, cols := grid.VisibleRows(), grid.VisibleCols()

	headers := make([]string, cols+1)
	for col := 0; col < cols; col++ {
		headers[col+1] = notegrid.ColumnLabel(col)
	}

	data := make([][]string, rows)
	types := make([][]notegrid.CellType, rows)
	for row := 0; row < rows; row++ {
		data[row] = make([]string, cols+1)
		types[row] = make([]notegrid.CellType, cols+1)
		data[row][0] = strconv.Itoa(row + 1)
		for col := 0; col < cols; col++ {
			cell := grid.GetCell(row, col)
			text := cell.Value.String()
			if formulas && cell.IsFormula {
				text = cell.Formula
			}
			data[row][col+1] = text
			types[row][col+1] = cell.Value.Type
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			case row < 0 || row >= len(types) || col >= len(types[row]):
				return cellStyle
			}
			switch types[row][col] {
			case notegrid.CellValueTypeError:
				return errorStyle
			case notegrid.CellValueTypeNumber:
				return numberStyle
			default:
				return cellStyle
			}
		})

	return t.Render()
}
