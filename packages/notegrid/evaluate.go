package notegrid

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Snapshot is the read-only view of the grid an expression is evaluated
// against. Bounds reports the total extent; references beyond it are
// reference errors
type Snapshot interface {
	Bounds() (rows, cols int)
	ValueAt(row, col int) Value
}

var (
	// cellRefPattern finds A1-style references anywhere in a formula
	cellRefPattern = regexp.MustCompile(`[A-Za-z]+[0-9]+`)

	// loneRefPattern matches a formula that is nothing but one reference
	loneRefPattern = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

	// percentPattern matches a number immediately followed by '%'
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d*)?|\.\d+)%`)

	// bareNumberPattern matches a fully substituted single number
	bareNumberPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)\s*$`)

	// disallowedPattern matches everything the arithmetic lexer never sees
	disallowedPattern = regexp.MustCompile(`[^0-9+\-*/().\s]`)
)

// resolveReference maps a reference token to its numeric contribution.
// ok is false when the reference cannot be resolved inside the bounds
func resolveReference(ref string, snap Snapshot) (float64, bool) {
	row, col, err := ParseCellRef(ref)
	if err != nil {
		return 0, false
	}
	rows, cols := snap.Bounds()
	if row >= rows || col >= cols {
		return 0, false
	}
	return snap.ValueAt(row, col).AsNumber(), true
}

// Evaluate computes the value of a formula expression (without its leading
// '=') against a snapshot of the grid. failures are returned in-band as
// error values, never as Go errors or panics
func Evaluate(expr string, snap Snapshot) Value {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return EmptyValue()
	}

	// a lone reference copies the referenced value as a number
	if loneRefPattern.MatchString(expr) {
		n, ok := resolveReference(expr, snap)
		if !ok {
			return ErrorValue(ErrorCodeRef)
		}
		return finiteValue(n)
	}

	// substitute every reference with its numeric text
	outOfBounds := false
	substituted := cellRefPattern.ReplaceAllStringFunc(expr, func(ref string) string {
		n, ok := resolveReference(ref, snap)
		if !ok {
			outOfBounds = true
			return "0"
		}
		return formatNumber(n)
	})
	if outOfBounds {
		return ErrorValue(ErrorCodeRef)
	}

	substituted = percentPattern.ReplaceAllString(substituted, "($1/100)")

	if bareNumberPattern.MatchString(substituted) {
		n, err := strconv.ParseFloat(strings.TrimSpace(substituted), 64)
		if err != nil {
			return ErrorValue(ErrorCodeOther)
		}
		return finiteValue(n)
	}

	sanitized := disallowedPattern.ReplaceAllString(substituted, "")
	if strings.TrimSpace(sanitized) == "" {
		return ErrorValue(ErrorCodeOther)
	}

	return evaluateArithmetic(sanitized)
}

// evaluateArithmetic parses and evaluates a sanitized arithmetic
// expression. the parser is total over its input, the recover only guards
// against defects
func evaluateArithmetic(expr string) (result Value) {
	defer func() {
		if r := recover(); r != nil {
			result = ErrorValue(ErrorCodeOther)
		}
	}()

	node, err := ParseExpression(expr)
	if err != nil {
		return ErrorValue(ErrorCodeOther)
	}
	n, err := node.Eval()
	if err != nil {
		return ErrorValue(ErrorCodeOther)
	}
	return finiteValue(n)
}

func finiteValue(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ErrorValue(ErrorCodeOther)
	}
	return NumberValue(n)
}
