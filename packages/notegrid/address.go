package notegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// maxColumnLabelLength bounds label parsing so the index cannot overflow.
// seven letters already address more than eight billion columns
const maxColumnLabelLength = 7

// ColumnIndex converts a column label to its zero-based index using
// bijective base-26 (A=0, Z=25, AA=26, AZ=51, BA=52). labels are case
// insensitive. returns -1 and an InvalidArgument error for empty or
// non-alphabetic labels
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return -1, NewApplicationError(InvalidArgument, "column label is empty")
	}
	if len(label) > maxColumnLabelLength {
		return -1, NewApplicationError(OutOfRange, fmt.Sprintf("column label too long: %s", label))
	}

	index := 0
	for _, ch := range label {
		switch {
		case ch >= 'A' && ch <= 'Z':
			index = index*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			index = index*26 + int(ch-'a') + 1
		default:
			return -1, NewApplicationError(InvalidArgument, fmt.Sprintf("invalid column label: %s", label))
		}
	}

	return index - 1, nil
}

// ColumnLabel converts a zero-based column index to its letter label.
// negative indices have no label
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	var letters []byte
	for n := index + 1; n > 0; {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}

	// digits were produced least significant first
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ParseCellRef parses an A1-style address like "B12" into zero-based row
// and column indices
func ParseCellRef(ref string) (row int, col int, err error) {
	ref = strings.TrimSpace(ref)

	// find where letters end and numbers begin
	letterEnd := 0
	for i, ch := range ref {
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			letterEnd = i + 1
		} else {
			break
		}
	}

	if letterEnd == 0 || letterEnd == len(ref) {
		return 0, 0, NewApplicationError(InvalidArgument, fmt.Sprintf("invalid cell reference: %s", ref))
	}

	col, err = ColumnIndex(ref[:letterEnd])
	if err != nil {
		return 0, 0, err
	}

	rowStr := ref[letterEnd:]
	for _, ch := range rowStr {
		if ch < '0' || ch > '9' {
			return 0, 0, NewApplicationError(InvalidArgument, fmt.Sprintf("invalid row number: %s", rowStr))
		}
	}

	rowNum, err := strconv.ParseInt(rowStr, 10, 32)
	if err != nil {
		return 0, 0, NewApplicationError(OutOfRange, fmt.Sprintf("invalid row number: %s", rowStr))
	}
	if rowNum < 1 {
		return 0, 0, NewApplicationError(OutOfRange, fmt.Sprintf("row number must be positive: %d", rowNum))
	}

	return int(rowNum - 1), col, nil
}

// CellName formats zero-based coordinates as an A1-style address
func CellName(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}
