package notegrid

import (
	"math"
	"testing"
)

func parseArithmetic(expr string) bool {
	lexer := NewLexer(expr)
	tokens, lexErrors := lexer.Tokenize()

	if len(lexErrors) > 0 {
		return false
	}

	if len(tokens) == 0 {
		return false
	}

	_, err := NewParser(tokens).Parse()
	return err == nil
}

func TestParserBasicExpressions(t *testing.T) {
	validExpressions := []string{
		"1+2",
		"1 + 2",
		"1-2",
		"2*3",
		"6/3",
		"42",
		"3.14",
		".5",
		"5.",
		"-1",
		"+1",
		"--1",
		"-+-1",
		"5--3",
		"2*-3",
		"(1)",
		"((1))",
		"(1+2)*3",
		"-(1+2)",
		"1+(2*(3-4))/5",
		"  7  ",
		"1\t+\n2",
	}

	for _, expr := range validExpressions {
		t.Run(expr, func(t *testing.T) {
			if !parseArithmetic(expr) {
				t.Errorf("Expected %q to parse successfully", expr)
			}
		})
	}
}

func TestParserInvalidExpressions(t *testing.T) {
	invalidExpressions := []string{
		"",
		"   ",
		"1+",
		"*2",
		"/2",
		"1 2",
		"(1",
		"1)",
		"()",
		"(1+2",
		"((1)",
		"1+*2",
		"1**2",
		"1//2",
		".",
		"1..2",
		"A1",
		"1%",
		"1,2",
	}

	for _, expr := range invalidExpressions {
		t.Run(expr, func(t *testing.T) {
			if parseArithmetic(expr) {
				t.Errorf("Expected %q to fail parsing", expr)
			}
		})
	}
}

func TestParserEvaluation(t *testing.T) {
	tests := []struct {
		expr     string
		expected float64
	}{
		{"1+2", 3},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"24/4/3", 2},
		{"-2*3", -6},
		{"2*-3", -6},
		{"5--3", 8},
		{"--4", 4},
		{"-(1+2)", -3},
		{".5+5.", 5.5},
		{"1/4", 0.25},
		{"(100/100)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			node, err := ParseExpression(tt.expr)
			if err != nil {
				t.Fatalf("ParseExpression(%q) failed: %v", tt.expr, err)
			}
			got, err := node.Eval()
			if err != nil {
				t.Fatalf("Eval(%q) failed: %v", tt.expr, err)
			}
			if math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.expected)
			}
		})
	}
}

func TestParserDivisionByZero(t *testing.T) {
	for _, expr := range []string{"1/0", "0/0", "1/(2-2)"} {
		node, err := ParseExpression(expr)
		if err != nil {
			t.Fatalf("ParseExpression(%q) failed: %v", expr, err)
		}
		_, err = node.Eval()
		spreadsheetErr, ok := err.(*SpreadsheetError)
		if !ok {
			t.Errorf("Eval(%q) error = %v, want SpreadsheetError", expr, err)
			continue
		}
		if spreadsheetErr.ErrorCode != ErrorCodeOther {
			t.Errorf("Eval(%q) error code = %v, want %v", expr, spreadsheetErr.ErrorCode, ErrorCodeOther)
		}
	}
}

func TestLexerTokens(t *testing.T) {
	tokens, errs := NewLexer("-1 + (2.5*-3)").Tokenize()
	if len(errs) > 0 {
		t.Fatalf("Tokenize failed: %v", errs)
	}

	expected := []TokenType{
		TokenUnaryPrefixOp,
		TokenNumber,
		TokenBinaryOp,
		TokenLeftParen,
		TokenNumber,
		TokenBinaryOp,
		TokenUnaryPrefixOp,
		TokenNumber,
		TokenRightParen,
		TokenEOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, tok := range tokens {
		if tok.Type != expected[i] {
			t.Errorf("token %d (%q) type = %v, want %v", i, tok.Value, tok.Type, expected[i])
		}
	}
	if tokens[4].Value != "2.5" || tokens[4].Pos != 6 {
		t.Errorf("token 4 = %q at %d, want \"2.5\" at 6", tokens[4].Value, tokens[4].Pos)
	}
}

func TestNodeToString(t *testing.T) {
	node, err := ParseExpression("1+2*-3")
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if node.ToString() == "" {
		t.Errorf("ToString() returned empty string")
	}
	pos := node.GetPosition()
	if pos.Start != 0 || pos.End != 6 {
		t.Errorf("GetPosition() = %+v, want 0..6", pos)
	}
}
