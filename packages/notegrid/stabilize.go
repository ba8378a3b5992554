package notegrid

import (
	"log/slog"
	"strings"
)

// StabilizeReport summarizes one recomputation pass
type StabilizeReport struct {
	Formulas      int           // formula cells in the grid
	Evaluated     int           // formula evaluations performed
	Sweeps        int           // verification sweeps run after the ordered pass
	Cyclic        []CellAddress // cells on a reference cycle, set to #ERROR
	NonConvergent []CellAddress // cells still changing at the sweep limit, set to #ERROR
}

// Stabilize recomputes every formula cell until the grid reaches a fixed
// point.
//
// the pass works in three steps:
//  1. cells on a reference cycle are set to #ERROR and left out
//  2. the remaining formula cells are evaluated once in dependency order
//  3. row-major sweeps re-evaluate them until a sweep changes nothing
//
// step 3 normally finishes after a single sweep. it exists for references
// the graph cannot see ahead of time and is capped by the sweep limit;
// cells still changing on the last permitted sweep are set to #ERROR
func (g *Grid) Stabilize() StabilizeReport {
	formulaCells := g.storage.cells.FormulaCells()
	report := StabilizeReport{Formulas: len(formulaCells)}

	graph := BuildDependencyGraph(formulaCells, g.storage.formulas)
	g.storage.dependencyGraph = graph

	order, cyclic := graph.GetCalculationOrder()

	// cycles never converge to anything meaningful
	for _, cell := range formulaCells {
		if _, isCyclic := cyclic[cell]; isCyclic {
			g.storage.cells.SetValue(cell.Row, cell.Col, ErrorValue(ErrorCodeOther))
			report.Cyclic = append(report.Cyclic, cell)
		}
	}

	// ordered pass
	for _, cell := range order {
		g.evaluateCell(cell)
		report.Evaluated++
	}

	// verification sweeps in row-major order
	sweepCells := make([]CellAddress, len(order))
	copy(sweepCells, order)
	sortRowMajor(sweepCells)

	limit := g.effectiveSweepLimit()
	for len(sweepCells) > 0 && report.Sweeps < limit {
		report.Sweeps++

		var changed []CellAddress
		for _, cell := range sweepCells {
			if g.evaluateCell(cell) {
				changed = append(changed, cell)
			}
			report.Evaluated++
		}

		if len(changed) == 0 {
			break
		}

		if report.Sweeps == limit {
			for _, cell := range changed {
				g.storage.cells.SetValue(cell.Row, cell.Col, ErrorValue(ErrorCodeOther))
			}
			report.NonConvergent = changed
		}
	}

	g.logReport(report)
	return report
}

// effectiveSweepLimit returns the configured limit, defaulting to one
// sweep per cell of the total extent plus one
func (g *Grid) effectiveSweepLimit() int {
	if g.sweepLimit > 0 {
		return g.sweepLimit
	}
	return g.rows*g.cols + 1
}

// evaluateCell re-evaluates one formula cell against the current grid
// state and stores the result. returns true if the value changed
func (g *Grid) evaluateCell(cell CellAddress) bool {
	id, exists := g.storage.formulas.GetFormulaAtCell(cell)
	if !exists {
		return false
	}
	expr, _ := g.storage.formulas.GetExpression(id)

	next := Evaluate(expr, g)
	current := g.storage.cells.Value(cell.Row, cell.Col)
	if current.Equal(next) {
		return false
	}

	g.storage.cells.SetValue(cell.Row, cell.Col, next)
	return true
}

func (g *Grid) logReport(report StabilizeReport) {
	if len(report.Cyclic) > 0 {
		g.logger.Warn("circular references set to #ERROR",
			slog.Int("count", len(report.Cyclic)),
			slog.String("cells", cellNames(report.Cyclic)))
	}
	if len(report.NonConvergent) > 0 {
		g.logger.Warn("formulas did not converge within the sweep limit",
			slog.Int("count", len(report.NonConvergent)),
			slog.Int("sweep_limit", g.effectiveSweepLimit()),
			slog.String("cells", cellNames(report.NonConvergent)))
	}
	g.logger.Debug("stabilized",
		slog.Int("formulas", report.Formulas),
		slog.Int("evaluated", report.Evaluated),
		slog.Int("sweeps", report.Sweeps))
}

// cellNames joins addresses as "A1,B2" for log attributes
func cellNames(cells []CellAddress) string {
	names := make([]string, len(cells))
	for i, cell := range cells {
		names[i] = CellName(cell.Row, cell.Col)
	}
	return strings.Join(names, ",")
}
