package notegrid

// DependencyNode represents a cell in the dependency graph
type DependencyNode struct {
	// address of *THIS* node
	Row int
	Col int

	// cell-to-cell dependencies
	CellPrecedents map[CellAddress]*DependencyNode // cells this cell depends on
	CellDependents map[CellAddress]*DependencyNode // cells that depend on this cell

	// literal cells only appear in the graph as precedents
	IsFormula bool
	Formula   string
}

// DependencyGraph manages cell dependencies and calculation order. it is
// rebuilt from the formula table on every stabilization, which keeps it
// trivially consistent with the cells
type DependencyGraph struct {
	nodes map[CellAddress]*DependencyNode // all nodes in the graph
}

// NewDependencyGraph creates a new dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[CellAddress]*DependencyNode),
	}
}

// BuildDependencyGraph creates the graph for the given formula cells,
// taking each cell's references from the formula table
func BuildDependencyGraph(cells []CellAddress, formulas *FormulaTable) *DependencyGraph {
	dg := NewDependencyGraph()
	for _, cell := range cells {
		id, exists := formulas.GetFormulaAtCell(cell)
		if !exists {
			continue
		}
		expr, _ := formulas.GetExpression(id)
		dg.SetFormula(cell, expr)
		for _, ref := range formulas.References(id) {
			dg.AddCellDependency(cell, ref)
		}
	}
	return dg
}

// GetOrCreateNode gets an existing node or creates a new one
func (dg *DependencyGraph) GetOrCreateNode(addr CellAddress) *DependencyNode {
	if node, exists := dg.nodes[addr]; exists {
		return node
	}

	node := &DependencyNode{
		Row:            addr.Row,
		Col:            addr.Col,
		CellPrecedents: make(map[CellAddress]*DependencyNode),
		CellDependents: make(map[CellAddress]*DependencyNode),
	}
	dg.nodes[addr] = node
	return node
}

// GetNode retrieves a node if it exists
func (dg *DependencyGraph) GetNode(addr CellAddress) (*DependencyNode, bool) {
	node, exists := dg.nodes[addr]
	return node, exists
}

// AddCellDependency adds a cell-to-cell dependency (from depends on to)
func (dg *DependencyGraph) AddCellDependency(from, to CellAddress) {
	fromNode := dg.GetOrCreateNode(from)
	toNode := dg.GetOrCreateNode(to)

	// mark dep
	fromNode.CellPrecedents[to] = toNode
	toNode.CellDependents[from] = fromNode
}

// SetFormula sets the formula for a node (creates node if needed)
func (dg *DependencyGraph) SetFormula(addr CellAddress, formula string) {
	node := dg.GetOrCreateNode(addr)
	node.IsFormula = true
	node.Formula = formula
}

// GetFormula retrieves the formula for a cell
func (dg *DependencyGraph) GetFormula(addr CellAddress) (string, bool) {
	if node, exists := dg.nodes[addr]; exists && node.IsFormula {
		return node.Formula, true
	}
	return "", false
}

// GetDirectDependents returns cells directly depending on this cell in
// row-major order
func (dg *DependencyGraph) GetDirectDependents(addr CellAddress) []CellAddress {
	node, exists := dg.nodes[addr]
	if !exists {
		return nil
	}

	result := make([]CellAddress, 0, len(node.CellDependents))
	for dependentAddr := range node.CellDependents {
		result = append(result, dependentAddr)
	}
	sortRowMajor(result)
	return result
}

// GetAllDependents returns all cells affected by this cell (transitive closure)
func (dg *DependencyGraph) GetAllDependents(addr CellAddress) []CellAddress {
	visited := make(map[CellAddress]struct{})
	var result []CellAddress

	dg.collectDependents(addr, visited, &result)
	sortRowMajor(result)
	return result
}

// collectDependents recursively collects all dependents
func (dg *DependencyGraph) collectDependents(addr CellAddress, visited map[CellAddress]struct{}, result *[]CellAddress) {
	if _, alreadyVisited := visited[addr]; alreadyVisited {
		return
	}
	visited[addr] = struct{}{}

	node, exists := dg.nodes[addr]
	if !exists {
		return
	}

	for dependentAddr := range node.CellDependents {
		if _, alreadyVisited := visited[dependentAddr]; !alreadyVisited {
			*result = append(*result, dependentAddr)
			dg.collectDependents(dependentAddr, visited, result)
		}
	}
}

// GetDirectPrecedents returns cells this cell directly depends on in
// row-major order
func (dg *DependencyGraph) GetDirectPrecedents(addr CellAddress) []CellAddress {
	node, exists := dg.nodes[addr]
	if !exists {
		return nil
	}

	result := make([]CellAddress, 0, len(node.CellPrecedents))
	for precedentAddr := range node.CellPrecedents {
		result = append(result, precedentAddr)
	}
	sortRowMajor(result)
	return result
}

// GetCalculationOrder returns the formula cells ordered so that every
// cell comes after the cells it depends on, together with the set of
// formula cells that sit on a cycle. cyclic cells are left out of the
// order. a cycle is a strongly connected component with more than one
// cell, or a cell referring to itself.
//
// components are found with tarjan's algorithm, which emits each
// component only after every component it depends on, so the emission
// order is already a valid calculation order. nodes are visited in
// row-major order to keep the result deterministic
func (dg *DependencyGraph) GetCalculationOrder() ([]CellAddress, map[CellAddress]struct{}) {
	addrs := make([]CellAddress, 0, len(dg.nodes))
	for addr := range dg.nodes {
		addrs = append(addrs, addr)
	}
	sortRowMajor(addrs)

	index := make(map[CellAddress]int)
	lowLink := make(map[CellAddress]int)
	onStack := make(map[CellAddress]bool)
	var stack []CellAddress
	next := 0

	var order []CellAddress
	cyclic := make(map[CellAddress]struct{})

	var visit func(addr CellAddress)
	visit = func(addr CellAddress) {
		index[addr] = next
		lowLink[addr] = next
		next++
		stack = append(stack, addr)
		onStack[addr] = true

		node := dg.nodes[addr]
		for _, precedentAddr := range dg.GetDirectPrecedents(addr) {
			if _, visited := index[precedentAddr]; !visited {
				visit(precedentAddr)
				lowLink[addr] = min(lowLink[addr], lowLink[precedentAddr])
			} else if onStack[precedentAddr] {
				lowLink[addr] = min(lowLink[addr], index[precedentAddr])
			}
		}

		if lowLink[addr] != index[addr] {
			return
		}

		// addr is the root of a component, pop it
		var component []CellAddress
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == addr {
				break
			}
		}

		_, selfLoop := node.CellPrecedents[addr]
		isCycle := len(component) > 1 || selfLoop

		sortRowMajor(component)
		for _, member := range component {
			if !dg.nodes[member].IsFormula {
				continue
			}
			if isCycle {
				cyclic[member] = struct{}{}
			} else {
				order = append(order, member)
			}
		}
	}

	for _, addr := range addrs {
		if _, visited := index[addr]; !visited {
			visit(addr)
		}
	}

	return order, cyclic
}

// HasCycle checks if there are circular dependencies
func (dg *DependencyGraph) HasCycle() bool {
	_, cyclic := dg.GetCalculationOrder()
	return len(cyclic) > 0
}

// NodeCount returns the number of nodes in the graph
func (dg *DependencyGraph) NodeCount() int {
	return len(dg.nodes)
}

// Clear removes all nodes and dependencies from the graph
func (dg *DependencyGraph) Clear() {
	dg.nodes = make(map[CellAddress]*DependencyNode)
}
