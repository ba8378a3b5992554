package notegrid

// Storage holds references to shared tables needed by storage operations
type Storage struct {
	cells           *Store
	strings         *StringTable
	formulas        *FormulaTable
	dependencyGraph *DependencyGraph // graph of the last stabilization
}

// NewStorage creates empty tables wired to each other
func NewStorage() *Storage {
	strings := NewStringTable()
	return &Storage{
		cells:           NewStore(strings),
		strings:         strings,
		formulas:        NewFormulaTable(),
		dependencyGraph: NewDependencyGraph(),
	}
}
