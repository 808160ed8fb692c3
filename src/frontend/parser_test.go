package frontend

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprc/src/ir"
)

// exprOf parses src and returns the returned expression of its only function.
func exprOf(t *testing.T, src string) ir.Expr {
	t.Helper()
	cu, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, cu.Funcs, 1)
	return cu.Funcs[0].Body.Ret.Value
}

// dump prints the syntax tree of src.
func dump(t *testing.T, src string) string {
	t.Helper()
	cu, err := Parse(src)
	require.NoError(t, err)
	buf := bytes.Buffer{}
	cu.Print(&buf)
	return buf.String()
}

func TestParseLiteral(t *testing.T) {
	e := exprOf(t, "int main() { return 5; }")
	n, ok := e.(*ir.Integer)
	require.True(t, ok)
	assert.Equal(t, int64(5), n.Value)
	line, pos := n.Position()
	assert.Equal(t, 1, line)
	assert.Equal(t, 21, pos)
}

func TestParsePrecedence(t *testing.T) {
	e := exprOf(t, "int main() { return 1 + 2 * 3; }")
	add, ok := e.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.OpAdd, add.Op)
	assert.Equal(t, int64(1), add.X.(*ir.Integer).Value)
	mul, ok := add.Y.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.OpMul, mul.Op)
}

func TestParseTree(t *testing.T) {
	exp := "COMP_UNIT\n" +
		"  FUNCTION [\"main\"] int\n" +
		"    RETURN_STATEMENT\n" +
		"      BINARY_EXPRESSION [\"||\"]\n" +
		"        BINARY_EXPRESSION [\"&&\"]\n" +
		"          BINARY_EXPRESSION [\"==\"]\n" +
		"            BINARY_EXPRESSION [\"<\"]\n" +
		"              INTEGER_DATA [1]\n" +
		"              INTEGER_DATA [2]\n" +
		"            BINARY_EXPRESSION [\"-\"]\n" +
		"              BINARY_EXPRESSION [\"-\"]\n" +
		"                INTEGER_DATA [3]\n" +
		"                INTEGER_DATA [4]\n" +
		"              INTEGER_DATA [5]\n" +
		"          UNARY_EXPRESSION [\"!\"]\n" +
		"            UNARY_EXPRESSION [\"-\"]\n" +
		"              INTEGER_DATA [6]\n" +
		"        BINARY_EXPRESSION [\"%\"]\n" +
		"          INTEGER_DATA [15]\n" +
		"          INTEGER_DATA [8]\n"
	assert.Equal(t, exp, dump(t, "int main() {\n  return 1 < 2 == 3 - 4 - 5 && !-6 || 0xF % 010;\n}\n"))
}

func TestParseParentheses(t *testing.T) {
	exp := "COMP_UNIT\n" +
		"  FUNCTION [\"main\"] int\n" +
		"    RETURN_STATEMENT\n" +
		"      BINARY_EXPRESSION [\"*\"]\n" +
		"        BINARY_EXPRESSION [\"+\"]\n" +
		"          INTEGER_DATA [1]\n" +
		"          INTEGER_DATA [2]\n" +
		"        UNARY_EXPRESSION [\"+\"]\n" +
		"          INTEGER_DATA [3]\n"
	assert.Equal(t, exp, dump(t, "int main() { return ((1 + 2)) * +(3); }"))
}

func TestParseFunctions(t *testing.T) {
	cu, err := Parse("int main() { return 0; }\n// helper\nint f() { return 1; }\n")
	require.NoError(t, err)
	require.Len(t, cu.Funcs, 2)
	assert.Equal(t, "main", cu.Funcs[0].Name)
	assert.Equal(t, "f", cu.Funcs[1].Name)
	assert.Equal(t, 3, cu.Funcs[1].Line)
	assert.NoError(t, ir.ValidateTree(cu))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "", "expected INT, got end of file"},
		{"missing semicolon", "int main() { return 1 }", "expected ';'"},
		{"missing operand", "int main() { return 1 + ; }", "expected expression"},
		{"unbalanced", "int main() { return (1 + 2; }", "expected ')'"},
		{"void", "void main() { return 0; }", "keyword \"void\" is not supported"},
		{"missing return", "int main() { }", "expected RETURN"},
		{"trailing", "int main() { return 0; } x", "expected INT"},
		{"lexer error", "int main() { return 1 ^ 2; }", "unexpected character"},
		{"octal", "int main() { return 09; }", "malformed integer 09"},
		{"range", "int main() { return 99999999999999999999; }", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, errStop)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
