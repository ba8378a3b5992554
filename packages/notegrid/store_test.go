package notegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutAndGet(t *testing.T) {
	s := NewStore(NewStringTable())

	s.Put(0, 0, "42", false, NumberValue(42))
	s.Put(2, 3, "qty", false, TextValue("qty"))
	s.Put(5, 1, " = a1 * 2 ", true, NumberValue(84))

	cell := s.GetCell(0, 0)
	assert.Equal(t, "42", cell.Raw)
	assert.False(t, cell.IsFormula)
	assert.Equal(t, "", cell.Formula)
	assert.Equal(t, NumberValue(42), cell.Value)

	cell = s.GetCell(2, 3)
	assert.Equal(t, TextValue("qty"), cell.Value)
	assert.Equal(t, 2, cell.Row)
	assert.Equal(t, 3, cell.Col)

	cell = s.GetCell(5, 1)
	assert.True(t, cell.IsFormula)
	assert.Equal(t, "=a1 * 2", cell.Formula)
	assert.Equal(t, " = a1 * 2 ", cell.Raw)
	assert.Equal(t, NumberValue(84), cell.Value)

	assert.Equal(t, 3, s.GetTotalCells())
	assert.Equal(t, 1, s.ChunkCount())
	assert.Equal(t, 2, s.GetCellTypeCount(CellValueTypeNumber))
	assert.Equal(t, 1, s.GetCellTypeCount(CellValueTypeString))
}

func TestStoreNeverWritten(t *testing.T) {
	s := NewStore(NewStringTable())

	assert.Equal(t, Cell{Row: 7, Col: 9}, s.GetCell(7, 9))
	assert.Equal(t, Cell{Row: -1, Col: 0}, s.GetCell(-1, 0))
	assert.True(t, s.Value(-3, -3).IsEmpty())

	// recomputation never creates cells
	s.SetValue(100, 100, NumberValue(1))
	assert.True(t, s.Value(100, 100).IsEmpty())
	assert.Equal(t, 0, s.ChunkCount())
}

func TestStoreChunks(t *testing.T) {
	s := NewStore(NewStringTable())

	s.Put(0, 0, "1", false, NumberValue(1))
	s.Put(31, 31, "2", false, NumberValue(2))
	assert.Equal(t, 1, s.ChunkCount())

	s.Put(32, 0, "3", false, NumberValue(3))
	s.Put(40, 40, "4", false, NumberValue(4))
	assert.Equal(t, 3, s.ChunkCount())
	assert.Equal(t, NumberValue(4), s.Value(40, 40))

	// clearing every cell of a chunk releases it
	s.Put(40, 40, "", false, EmptyValue())
	assert.Equal(t, 2, s.ChunkCount())
	s.Put(0, 0, "", false, EmptyValue())
	s.Put(31, 31, "", false, EmptyValue())
	assert.Equal(t, 1, s.ChunkCount())
	assert.Equal(t, 1, s.GetTotalCells())
}

func TestStoreStringInterning(t *testing.T) {
	strings := NewStringTable()
	s := NewStore(strings)

	s.Put(0, 0, "qty", false, TextValue("qty"))
	s.Put(1, 0, "qty", false, TextValue("qty"))

	id, exists := strings.Contains("qty")
	require.True(t, exists)
	// raw input and text value of both cells
	assert.Equal(t, 4, strings.GetReferenceCount(id))
	assert.Equal(t, 1, strings.Count())

	s.Put(0, 0, "", false, EmptyValue())
	assert.Equal(t, 2, strings.GetReferenceCount(id))

	s.Put(1, 0, "7", false, NumberValue(7))
	_, exists = strings.Contains("qty")
	assert.False(t, exists)
	assert.Equal(t, 1, strings.Count())
}

func TestStoreValueReplacement(t *testing.T) {
	s := NewStore(NewStringTable())

	s.Put(0, 0, "=A2", true, EmptyValue())
	assert.Equal(t, 1, s.GetTotalCells())

	s.SetValue(0, 0, ErrorValue(ErrorCodeRef))
	assert.Equal(t, ErrorValue(ErrorCodeRef), s.Value(0, 0))
	assert.Equal(t, 1, s.GetCellTypeCount(CellValueTypeError))

	s.SetValue(0, 0, NumberValue(3))
	assert.Equal(t, NumberValue(3), s.Value(0, 0))
	assert.Equal(t, 0, s.GetCellTypeCount(CellValueTypeError))
	assert.Equal(t, 1, s.GetCellTypeCount(CellValueTypeNumber))

	// the raw input survives value updates
	assert.Equal(t, "=A2", s.GetCell(0, 0).Raw)
}

func TestStoreFormulaCells(t *testing.T) {
	s := NewStore(NewStringTable())

	s.Put(33, 1, "=1", true, EmptyValue())
	s.Put(0, 40, "=2", true, EmptyValue())
	s.Put(0, 5, "=3", true, EmptyValue())
	s.Put(0, 0, "4", false, NumberValue(4))

	assert.Equal(t, []CellAddress{{Row: 0, Col: 5}, {Row: 0, Col: 40}, {Row: 33, Col: 1}}, s.FormulaCells())

	s.Put(0, 40, "5", false, NumberValue(5))
	assert.Equal(t, []CellAddress{{Row: 0, Col: 5}, {Row: 33, Col: 1}}, s.FormulaCells())
}

func TestStringTable(t *testing.T) {
	st := NewStringTable()

	id1 := st.Intern("hello")
	id2 := st.Intern("world")
	id3 := st.Intern("hello")

	assert.Equal(t, id1, id3)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, st.GetReferenceCount(id1))

	s, ok := st.GetString(0)
	assert.True(t, ok)
	assert.Equal(t, "", s)

	s, ok = st.GetString(id2)
	assert.True(t, ok)
	assert.Equal(t, "world", s)

	assert.False(t, st.RemoveReference(id1))
	assert.True(t, st.RemoveReference(id1))
	_, ok = st.GetString(id1)
	assert.False(t, ok)
	assert.False(t, st.RemoveReference(id1))

	st.Clear()
	assert.Equal(t, 0, st.Count())
}
