package notegrid

import (
	"regexp"
	"strconv"
	"strings"
)

// ErrorCode represents the in-band error sentinels a computed value can
// hold. they are stored like any other value and never unwind past the
// evaluator
type ErrorCode uint8

const (
	ErrorCodeRef   ErrorCode = 1 // #REF! - reference outside the grid bounds
	ErrorCodeOther ErrorCode = 2 // #ERROR - malformed or non-finite arithmetic, cycles
)

// ErrorMapper maps error codes to their display strings
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeRef:   "#REF!",
	ErrorCodeOther: "#ERROR",
}

// SpreadsheetError is returned by the arithmetic parser and evaluator. the
// grid converts it into an error Value before storing it
type SpreadsheetError struct {
	ErrorCode ErrorCode
	Message   string
}

func (e *SpreadsheetError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrorMapper[e.ErrorCode]
}

func NewSpreadsheetError(code ErrorCode, message string) *SpreadsheetError {
	if message == "" {
		message = ErrorMapper[code]
	}
	return &SpreadsheetError{
		ErrorCode: code,
		Message:   message,
	}
}

// CellType tags the variant held by a Value
type CellType uint8

const (
	CellValueTypeEmpty  CellType = 0
	CellValueTypeNumber CellType = 1
	CellValueTypeString CellType = 2
	CellValueTypeError  CellType = 3
)

// Value is a computed cell value. exactly one of Number, Text or Error is
// meaningful, selected by Type
type Value struct {
	Type   CellType
	Number float64
	Text   string
	Error  ErrorCode
}

func EmptyValue() Value {
	return Value{Type: CellValueTypeEmpty}
}

func NumberValue(n float64) Value {
	return Value{Type: CellValueTypeNumber, Number: n}
}

func TextValue(s string) Value {
	return Value{Type: CellValueTypeString, Text: s}
}

func ErrorValue(code ErrorCode) Value {
	return Value{Type: CellValueTypeError, Error: code}
}

func (v Value) IsEmpty() bool  { return v.Type == CellValueTypeEmpty }
func (v Value) IsNumber() bool { return v.Type == CellValueTypeNumber }
func (v Value) IsError() bool  { return v.Type == CellValueTypeError }

// AsNumber resolves the value the way a cell reference sees it: numbers
// pass through, numeric text is parsed, everything else (blank, labels,
// sentinels) is zero
func (v Value) AsNumber() float64 {
	switch v.Type {
	case CellValueTypeNumber:
		return v.Number
	case CellValueTypeString:
		if n, ok := parseNumericLiteral(v.Text); ok {
			return n
		}
	}
	return 0
}

// String renders the value for export and display
func (v Value) String() string {
	switch v.Type {
	case CellValueTypeNumber:
		return formatNumber(v.Number)
	case CellValueTypeString:
		return v.Text
	case CellValueTypeError:
		return ErrorMapper[v.Error]
	default:
		return ""
	}
}

// Equal reports whether two values are the same variant with the same payload
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case CellValueTypeNumber:
		return v.Number == other.Number
	case CellValueTypeString:
		return v.Text == other.Text
	case CellValueTypeError:
		return v.Error == other.Error
	}
	return true
}

// CellAddress is a zero-based (row, column) coordinate
type CellAddress struct {
	Row int
	Col int
}

// Cell is a read-only view of one grid slot
type Cell struct {
	Row       int
	Col       int
	Raw       string // literal text as typed
	IsFormula bool   // trimmed raw starts with '='
	Formula   string // trimmed raw including the leading '=', empty for literals
	Value     Value
}

var numericLiteralPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseNumericLiteral accepts plain decimal literals only. hex, inf and nan
// are labels, not numbers
func parseNumericLiteral(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numericLiteralPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// literalValue computes the value of a non-formula cell from its raw input
func literalValue(raw string) Value {
	if raw == "" {
		return EmptyValue()
	}
	if n, ok := parseNumericLiteral(raw); ok {
		return NumberValue(n)
	}
	return TextValue(raw)
}

// isFormulaInput reports whether raw input should be treated as a formula
func isFormulaInput(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "=")
}

// formulaExpression strips the display '=' and surrounding whitespace,
// leaving the text the evaluator sees
func formulaExpression(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "="))
}

// formatNumber renders a number in shortest round-trip decimal form
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
