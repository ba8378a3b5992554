package notegrid

import (
	"sort"
	"strings"
)

// FormulaKey is the trimmed text of a formula used for deduplication.
// inner whitespace is significant: "C 3" is the number 3, not a reference
type FormulaKey string

// FormulaTable stores distinct formulas centrally together with the cell
// references each one makes, so references are extracted once per distinct
// formula rather than once per cell and per recomputation.
type FormulaTable struct {
	// core formula storage

	keyIndex   map[FormulaKey]uint32    // normalized text -> formula ID
	expression map[uint32]string        // formula ID -> expression as first seen
	references map[uint32][]CellAddress // formula ID -> cached referenced cells
	refCounts  map[uint32]int           // formula ID -> cells using it

	// cell tracking

	cellsUsingFormula map[uint32]map[CellAddress]struct{} // formula ID -> cells using it
	formulaAtCell     map[CellAddress]uint32              // cell -> formula ID (reverse index)

	nextID uint32
}

// NewFormulaTable creates a new formula table
func NewFormulaTable() *FormulaTable {
	return &FormulaTable{
		keyIndex:          make(map[FormulaKey]uint32),
		expression:        make(map[uint32]string),
		references:        make(map[uint32][]CellAddress),
		refCounts:         make(map[uint32]int),
		cellsUsingFormula: make(map[uint32]map[CellAddress]struct{}),
		formulaAtCell:     make(map[CellAddress]uint32),
		nextID:            1, // start at 1, reserve 0 for no formula
	}
}

// normalizeFormula builds the deduplication key for an expression
func normalizeFormula(expr string) FormulaKey {
	return FormulaKey(strings.TrimSpace(expr))
}

// InternFormula records that a cell holds the given expression (without
// the leading '='). any formula previously held by the cell is released
// first. returns the formula ID
func (ft *FormulaTable) InternFormula(expr string, cell CellAddress) uint32 {
	ft.RemoveCellReference(cell)

	key := normalizeFormula(expr)

	id, exists := ft.keyIndex[key]
	if !exists {
		id = ft.nextID
		ft.keyIndex[key] = id
		ft.expression[id] = expr
		ft.references[id] = extractReferences(expr)
		ft.nextID++
	}

	ft.refCounts[id]++
	if ft.cellsUsingFormula[id] == nil {
		ft.cellsUsingFormula[id] = make(map[CellAddress]struct{})
	}
	ft.cellsUsingFormula[id][cell] = struct{}{}
	ft.formulaAtCell[cell] = id

	return id
}

// RemoveCellReference releases the formula held by a cell. returns true
// if the formula was removed due to zero references.
func (ft *FormulaTable) RemoveCellReference(cell CellAddress) bool {
	formulaID, exists := ft.formulaAtCell[cell]
	if !exists {
		return false
	}

	if cells, exists := ft.cellsUsingFormula[formulaID]; exists {
		delete(cells, cell)
		if len(cells) == 0 {
			delete(ft.cellsUsingFormula, formulaID)
		}
	}
	delete(ft.formulaAtCell, cell)

	ft.refCounts[formulaID]--
	if ft.refCounts[formulaID] <= 0 {
		ft.removeFormula(formulaID)
		return true
	}

	return false
}

// removeFormula removes a formula and all its tracking data
func (ft *FormulaTable) removeFormula(formulaID uint32) {
	if expr, exists := ft.expression[formulaID]; exists {
		delete(ft.keyIndex, normalizeFormula(expr))
	}

	delete(ft.expression, formulaID)
	delete(ft.references, formulaID)
	delete(ft.refCounts, formulaID)
	delete(ft.cellsUsingFormula, formulaID)
}

// References returns the cells a formula refers to, in order of first
// appearance and without duplicates
func (ft *FormulaTable) References(id uint32) []CellAddress {
	return ft.references[id]
}

// ReferencesAtCell returns the cells referenced by the formula in a cell
func (ft *FormulaTable) ReferencesAtCell(cell CellAddress) []CellAddress {
	id, exists := ft.formulaAtCell[cell]
	if !exists {
		return nil
	}
	return ft.references[id]
}

// GetExpression returns the expression stored for a formula ID
func (ft *FormulaTable) GetExpression(id uint32) (string, bool) {
	expr, exists := ft.expression[id]
	return expr, exists
}

// GetFormulaID returns the ID for an expression if it is interned
func (ft *FormulaTable) GetFormulaID(expr string) (uint32, bool) {
	id, exists := ft.keyIndex[normalizeFormula(expr)]
	return id, exists
}

// GetReferenceCount returns the reference count for a formula
func (ft *FormulaTable) GetReferenceCount(id uint32) int {
	return ft.refCounts[id]
}

// GetCellsUsingFormula returns all cells using a specific formula in
// row-major order
func (ft *FormulaTable) GetCellsUsingFormula(formulaID uint32) []CellAddress {
	cells := ft.cellsUsingFormula[formulaID]
	result := make([]CellAddress, 0, len(cells))
	for cell := range cells {
		result = append(result, cell)
	}
	sortRowMajor(result)
	return result
}

// GetFormulaAtCell returns the formula ID at a specific cell
func (ft *FormulaTable) GetFormulaAtCell(cell CellAddress) (uint32, bool) {
	id, exists := ft.formulaAtCell[cell]
	return id, exists
}

// Count returns the number of unique formulas
func (ft *FormulaTable) Count() int {
	return len(ft.keyIndex)
}

// TotalReferences returns the total number of cells holding formulas
func (ft *FormulaTable) TotalReferences() int {
	total := 0
	for _, count := range ft.refCounts {
		total += count
	}
	return total
}

// Clear removes all formulas from the table
func (ft *FormulaTable) Clear() {
	ft.keyIndex = make(map[FormulaKey]uint32)
	ft.expression = make(map[uint32]string)
	ft.references = make(map[uint32][]CellAddress)
	ft.refCounts = make(map[uint32]int)
	ft.cellsUsingFormula = make(map[uint32]map[CellAddress]struct{})
	ft.formulaAtCell = make(map[CellAddress]uint32)
	ft.nextID = 1
}

// extractReferences lists the cells an expression refers to, scanning
// the raw text with the same pattern the evaluator substitutes. labels
// like "qty2" count as references exactly as they do at evaluation time.
// matches that cannot address a cell (row 0, overlong column labels) are
// skipped; the evaluator reports those
func extractReferences(expr string) []CellAddress {
	seen := make(map[CellAddress]struct{})
	var refs []CellAddress
	for _, match := range cellRefPattern.FindAllString(expr, -1) {
		row, col, err := ParseCellRef(match)
		if err != nil {
			continue
		}
		addr := CellAddress{Row: row, Col: col}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		refs = append(refs, addr)
	}
	return refs
}

// sortRowMajor orders addresses by row, then column
func sortRowMajor(cells []CellAddress) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
