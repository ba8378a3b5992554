package notegrid

// ChunkKey represents the key for indexing chunks in Store
type ChunkKey struct {
	ChunkRow int
	ChunkCol int
}

const (
	ChunkRows = 32                    // rows per chunk
	ChunkCols = 32                    // columns per chunk
	ChunkSize = ChunkRows * ChunkCols // 1024 cells per chunk
)

// Store is the sparse cell container behind a Grid.
//
// architecture:
// - cells are partitioned into 32x32 chunks, materialized on first write
// - each chunk allocates value arrays lazily based on the value types present
// - raw inputs and text values are interned through the StringTable
// - a chunk is released once every cell in it has been cleared
//
// quotation notes are tens of rows by a handful of columns, so a single
// chunk usually holds the whole grid
type Store struct {
	chunks      map[ChunkKey]*Chunk // sparse map of chunks indexed by ChunkKey
	strings     *StringTable
	totalCells  int    // cells holding raw input
	cellsByType [4]int // values by type for diagnostic use
}

// Chunk represents a 32x32 region of cells using a structure-of-arrays
// layout. only Types and the bitmaps exist initially.
type Chunk struct {
	// always allocated fields.

	Types          []uint8  // value type for each position
	NonEmptyCount  int      // count of cells holding raw input
	OccupiedBitmap []uint64 // cells holding raw input
	FormulaBitmap  []uint64 // cells whose raw input is a formula

	// lazily allocated fields.

	RawIDs     []uint32  // interned raw input
	Numbers    []float64 // numeric values
	TextIDs    []uint32  // interned text values
	ErrorCodes []uint8   // error sentinels
}

// NewStore creates an empty store interning through the given table
func NewStore(strings *StringTable) *Store {
	return &Store{
		chunks:  make(map[ChunkKey]*Chunk),
		strings: strings,
	}
}

// locate splits a coordinate into its chunk key and in-chunk index.
// row-first indexing keeps a row's cells adjacent
func locate(row, col int) (ChunkKey, int) {
	key := ChunkKey{ChunkRow: row / ChunkRows, ChunkCol: col / ChunkCols}
	idx := (row%ChunkRows)*ChunkCols + col%ChunkCols
	return key, idx
}

// getChunk retrieves or creates a chunk
func (s *Store) getChunk(key ChunkKey) *Chunk {
	chunk, exists := s.chunks[key]
	if !exists {
		chunk = &Chunk{
			Types:          make([]uint8, ChunkSize),
			OccupiedBitmap: make([]uint64, (ChunkSize+63)/64),
			FormulaBitmap:  make([]uint64, (ChunkSize+63)/64),
		}
		s.chunks[key] = chunk
	}
	return chunk
}

func bitSet(bitmap []uint64, idx int) bool {
	return bitmap[idx/64]&(1<<(idx%64)) != 0
}

func setBit(bitmap []uint64, idx int, on bool) {
	if on {
		bitmap[idx/64] |= 1 << (idx % 64)
	} else {
		bitmap[idx/64] &^= 1 << (idx % 64)
	}
}

// GetCell returns a view of the cell at the given coordinate. cells that
// were never written come back empty
func (s *Store) GetCell(row, col int) Cell {
	cell := Cell{Row: row, Col: col}
	if row < 0 || col < 0 {
		return cell
	}

	key, idx := locate(row, col)
	chunk, exists := s.chunks[key]
	if !exists {
		return cell
	}

	if chunk.RawIDs != nil {
		cell.Raw, _ = s.strings.GetString(chunk.RawIDs[idx])
	}
	cell.IsFormula = bitSet(chunk.FormulaBitmap, idx)
	if cell.IsFormula {
		cell.Formula = "=" + formulaExpression(cell.Raw)
	}
	cell.Value = s.valueAt(chunk, idx)

	return cell
}

// Value returns the computed value at a coordinate
func (s *Store) Value(row, col int) Value {
	if row < 0 || col < 0 {
		return EmptyValue()
	}
	key, idx := locate(row, col)
	chunk, exists := s.chunks[key]
	if !exists {
		return EmptyValue()
	}
	return s.valueAt(chunk, idx)
}

func (s *Store) valueAt(chunk *Chunk, idx int) Value {
	switch CellType(chunk.Types[idx]) {
	case CellValueTypeNumber:
		return NumberValue(chunk.Numbers[idx])
	case CellValueTypeString:
		text, _ := s.strings.GetString(chunk.TextIDs[idx])
		return TextValue(text)
	case CellValueTypeError:
		return ErrorValue(ErrorCode(chunk.ErrorCodes[idx]))
	default:
		return EmptyValue()
	}
}

// Put replaces the raw input, formula flag and value of a cell in one
// step. writing an empty raw input with an empty value clears the cell
func (s *Store) Put(row, col int, raw string, isFormula bool, value Value) {
	key, idx := locate(row, col)

	if raw == "" && value.IsEmpty() {
		s.clear(key, idx)
		return
	}

	chunk := s.getChunk(key)
	wasOccupied := bitSet(chunk.OccupiedBitmap, idx)

	// release the previous raw input
	if chunk.RawIDs != nil && chunk.RawIDs[idx] != 0 {
		s.strings.RemoveReference(chunk.RawIDs[idx])
		chunk.RawIDs[idx] = 0
	}

	if raw != "" {
		if chunk.RawIDs == nil {
			chunk.RawIDs = make([]uint32, ChunkSize)
		}
		chunk.RawIDs[idx] = s.strings.Intern(raw)
	}

	occupied := raw != ""
	if occupied && !wasOccupied {
		chunk.NonEmptyCount++
		s.totalCells++
	} else if !occupied && wasOccupied {
		chunk.NonEmptyCount--
		s.totalCells--
	}
	setBit(chunk.OccupiedBitmap, idx, occupied)
	setBit(chunk.FormulaBitmap, idx, isFormula && occupied)

	s.storeValue(chunk, idx, value)
}

// SetValue overwrites only the computed value of an existing cell. it is
// used by recomputation and never creates cells
func (s *Store) SetValue(row, col int, value Value) {
	key, idx := locate(row, col)
	chunk, exists := s.chunks[key]
	if !exists {
		return
	}
	s.storeValue(chunk, idx, value)
}

func (s *Store) storeValue(chunk *Chunk, idx int, value Value) {
	oldType := CellType(chunk.Types[idx])

	// release the previous text value
	if oldType == CellValueTypeString && chunk.TextIDs[idx] != 0 {
		s.strings.RemoveReference(chunk.TextIDs[idx])
		chunk.TextIDs[idx] = 0
	}

	switch value.Type {
	case CellValueTypeNumber:
		if chunk.Numbers == nil {
			chunk.Numbers = make([]float64, ChunkSize)
		}
		chunk.Numbers[idx] = value.Number

	case CellValueTypeString:
		if chunk.TextIDs == nil {
			chunk.TextIDs = make([]uint32, ChunkSize)
		}
		if value.Text != "" {
			chunk.TextIDs[idx] = s.strings.Intern(value.Text)
		}

	case CellValueTypeError:
		if chunk.ErrorCodes == nil {
			chunk.ErrorCodes = make([]uint8, ChunkSize)
		}
		chunk.ErrorCodes[idx] = uint8(value.Error)
	}

	chunk.Types[idx] = uint8(value.Type)

	if oldType != value.Type {
		s.cellsByType[oldType]--
		s.cellsByType[value.Type]++
	}
}

// clear empties a cell and drops its chunk once nothing is left in it
func (s *Store) clear(key ChunkKey, idx int) {
	chunk, exists := s.chunks[key]
	if !exists {
		return
	}

	if chunk.RawIDs != nil && chunk.RawIDs[idx] != 0 {
		s.strings.RemoveReference(chunk.RawIDs[idx])
		chunk.RawIDs[idx] = 0
	}
	if bitSet(chunk.OccupiedBitmap, idx) {
		chunk.NonEmptyCount--
		s.totalCells--
	}
	setBit(chunk.OccupiedBitmap, idx, false)
	setBit(chunk.FormulaBitmap, idx, false)
	s.storeValue(chunk, idx, EmptyValue())

	if chunk.NonEmptyCount == 0 {
		delete(s.chunks, key)
	}
}

// FormulaCells returns the address of every formula cell in row-major order
func (s *Store) FormulaCells() []CellAddress {
	var cells []CellAddress
	for key, chunk := range s.chunks {
		for idx := 0; idx < ChunkSize; idx++ {
			if !bitSet(chunk.FormulaBitmap, idx) {
				continue
			}
			cells = append(cells, CellAddress{
				Row: key.ChunkRow*ChunkRows + idx/ChunkCols,
				Col: key.ChunkCol*ChunkCols + idx%ChunkCols,
			})
		}
	}

	sortRowMajor(cells)
	return cells
}

// GetTotalCells returns the number of cells holding raw input
func (s *Store) GetTotalCells() int {
	return s.totalCells
}

// GetCellTypeCount returns the count of cells holding a value of the
// given type
func (s *Store) GetCellTypeCount(cellType CellType) int {
	if int(cellType) < len(s.cellsByType) {
		return s.cellsByType[cellType]
	}
	return 0
}

// ChunkCount returns the number of materialized chunks
func (s *Store) ChunkCount() int {
	return len(s.chunks)
}
