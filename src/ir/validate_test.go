package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name string
		cu   *CompUnit
		msg  string // Expected error substring. Empty if the tree is valid.
	}{
		{"valid", mainUnit(bin(OpAdd, lit(1), un(OpNeg, lit(2)))), ""},
		{"nil tree", nil, "<nil>"},
		{"no functions", &CompUnit{}, "no functions"},
		{"duplicate", unit(fn("main", lit(1)), fn("main", lit(2))), "already defined"},
		{"wrong type", unit(&FuncDef{Type: "void", Name: "main", Body: &Block{Ret: &Return{Value: lit(1)}}}), "must return int"},
		{"no return", unit(&FuncDef{Type: "int", Name: "main", Body: &Block{}}), "no return statement"},
		{"no value", unit(fn("main", nil)), "has no value"},
		{"bad unary", mainUnit(un(UnaryOp(9), lit(1))), "unexpected unary operator"},
		{"bad binary", mainUnit(bin(BinaryOp(-1), lit(1), lit(1))), "unexpected binary operator"},
		{"missing operand", mainUnit(bin(OpAdd, lit(1), nil)), "missing an operand"},
		{"unary operand", mainUnit(&Unary{Op: OpNeg}), "no operand"},
		{"overflow", mainUnit(bin(OpAdd, lit(1), lit(1<<31))), "does not fit"},
		{"min int", mainUnit(lit(-1 << 31)), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTree(tt.cu)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPrint(t *testing.T) {
	buf := bytes.Buffer{}
	mainUnit(bin(OpAdd, lit(1), un(OpNeg, lit(2)))).Print(&buf)
	exp := "COMP_UNIT\n" +
		"  FUNCTION [\"main\"] int\n" +
		"    RETURN_STATEMENT\n" +
		"      BINARY_EXPRESSION [\"+\"]\n" +
		"        INTEGER_DATA [1]\n" +
		"        UNARY_EXPRESSION [\"-\"]\n" +
		"          INTEGER_DATA [2]\n"
	assert.Equal(t, exp, buf.String())
}
