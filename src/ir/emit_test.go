package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprc/src/ir/lir"
	"exprc/src/ir/lir/types"
)

// lit, un and bin are short constructors for hand-built trees.
func lit(v int64) Expr { return &Integer{Value: v} }
func un(op UnaryOp, x Expr) Expr { return &Unary{Op: op, X: x} }
func bin(op BinaryOp, x, y Expr) Expr { return &Binary{Op: op, X: x, Y: y} }
func mainUnit(e Expr) *CompUnit { return unit(fn("main", e)) }
func unit(fs ...*FuncDef) *CompUnit { return &CompUnit{Funcs: fs} }
func fn(name string, e Expr) *FuncDef {
	return &FuncDef{Type: "int", Name: name, Body: &Block{Ret: &Return{Value: e}}}
}

// TestEmit verifies the textual LIR of single function programs.
func TestEmit(t *testing.T) {
	tests := []struct {
		name string
		tree Expr
		exp  string
	}{
		{
			name: "literal",
			tree: lit(5),
			exp:  "fun @main(): i32 {\n%entry:\n  ret 5\n}\n",
		},
		{
			name: "negate",
			tree: un(OpNeg, lit(3)),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = sub 0, 3\n  ret %0\n}\n",
		},
		{
			name: "not",
			tree: un(OpNot, lit(0)),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = eq 0, 0\n  ret %0\n}\n",
		},
		{
			name: "identity",
			tree: un(OpPlus, un(OpPlus, lit(7))),
			exp:  "fun @main(): i32 {\n%entry:\n  ret 7\n}\n",
		},
		{
			name: "identity of computed",
			tree: un(OpPlus, un(OpNeg, lit(7))),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = sub 0, 7\n  ret %0\n}\n",
		},
		{
			name: "precedence",
			tree: bin(OpAdd, lit(1), bin(OpMul, lit(2), lit(3))),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = mul 2, 3\n  %1 = add 1, %0\n  ret %1\n}\n",
		},
		{
			name: "left before right",
			tree: bin(OpSub, un(OpNeg, lit(1)), un(OpNot, lit(2))),
			exp: "fun @main(): i32 {\n%entry:\n  %0 = sub 0, 1\n  %1 = eq 2, 0\n" +
				"  %2 = sub %0, %1\n  ret %2\n}\n",
		},
		{
			name: "division and modulo",
			tree: bin(OpMod, bin(OpDiv, lit(9), lit(2)), lit(4)),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = sdiv 9, 2\n  %1 = srem %0, 4\n  ret %1\n}\n",
		},
		{
			name: "comparisons",
			tree: bin(OpNeq, bin(OpLe, lit(1), lit(2)), bin(OpGe, lit(3), lit(4))),
			exp: "fun @main(): i32 {\n%entry:\n  %0 = le 1, 2\n  %1 = ge 3, 4\n" +
				"  %2 = ne %0, %1\n  ret %2\n}\n",
		},
		{
			name: "logical and",
			tree: bin(OpLAnd, lit(2), lit(0)),
			exp: "fun @main(): i32 {\n%entry:\n  %0 = ne 2, 0\n  %1 = ne 0, 0\n" +
				"  %2 = and %0, %1\n  ret %2\n}\n",
		},
		{
			name: "logical or",
			tree: bin(OpLOr, bin(OpLt, lit(1), lit(2)), lit(5)),
			exp: "fun @main(): i32 {\n%entry:\n  %0 = lt 1, 2\n  %1 = ne %0, 0\n  %2 = ne 5, 0\n" +
				"  %3 = or %1, %2\n  ret %3\n}\n",
		},
		{
			name: "negative literal",
			tree: bin(OpGt, lit(-2147483648), lit(0)),
			exp:  "fun @main(): i32 {\n%entry:\n  %0 = gt -2147483648, 0\n  ret %0\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Emit(mainUnit(tt.tree))
			require.NoError(t, err)
			assert.Equal(t, tt.exp, p.String())
		})
	}
}

// TestEmitDeterministic verifies that emitting the same tree twice yields identical text.
func TestEmitDeterministic(t *testing.T) {
	cu := mainUnit(bin(OpEq, un(OpNeg, lit(4)), bin(OpMul, lit(2), un(OpNot, lit(1)))))
	a, err := Emit(cu)
	require.NoError(t, err)
	b, err := Emit(cu)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

// TestEmitIdentities verifies that temporaries are numbered in post-order without gaps or repeats.
func TestEmitIdentities(t *testing.T) {
	tree := bin(OpAdd,
		bin(OpMul, un(OpNeg, lit(1)), lit(2)),
		bin(OpSub, lit(3), un(OpNot, un(OpPlus, lit(4)))))
	p, err := Emit(mainUnit(tree))
	require.NoError(t, err)
	body := p.Functions[0].Body
	require.Len(t, body, 5)

	seen := make(map[int]bool, len(body))
	for i1, e1 := range body {
		assert.Equal(t, i1, e1.Dst)
		for _, e2 := range []Operand{e1.Lhs, e1.Rhs} {
			if e2.IsTemp {
				assert.Less(t, e2.Temp, e1.Dst, "operand must be defined before use")
				assert.True(t, seen[e2.Temp])
			}
		}
		seen[e1.Dst] = true
	}
	assert.Equal(t, []types.BinaryOp{types.Sub, types.Mul, types.Eq, types.Sub, types.Add},
		[]types.BinaryOp{body[0].Op, body[1].Op, body[2].Op, body[3].Op, body[4].Op})
	assert.Equal(t, Operand{Temp: 4, IsTemp: true}, p.Functions[0].Ret)
}

// TestEmitPerFunctionIdentities verifies that every function numbers its temporaries from zero.
func TestEmitPerFunctionIdentities(t *testing.T) {
	cu := unit(
		fn("main", un(OpNeg, lit(1))),
		fn("f", bin(OpAdd, un(OpNeg, lit(2)), lit(3))),
	)
	p, err := Emit(cu)
	require.NoError(t, err)
	exp := "fun @main(): i32 {\n%entry:\n  %0 = sub 0, 1\n  ret %0\n}\n\n" +
		"fun @f(): i32 {\n%entry:\n  %0 = sub 0, 2\n  %1 = add %0, 3\n  ret %1\n}\n"
	assert.Equal(t, exp, p.String())
}

// TestEmitRoundTrip verifies that the emitted text is accepted by the LIR parser and printed back unchanged.
func TestEmitRoundTrip(t *testing.T) {
	cu := unit(
		fn("main", bin(OpLOr, bin(OpDiv, lit(8), un(OpNeg, lit(2))), un(OpNot, lit(0)))),
		fn("zero", lit(0)),
	)
	p, err := Emit(cu)
	require.NoError(t, err)
	m, err := lir.Parse(p.String())
	require.NoError(t, err)
	assert.Equal(t, p.String(), m.String())
}

// TestEmitErrors verifies that broken trees are reported instead of lowered.
func TestEmitErrors(t *testing.T) {
	_, err := Emit(nil)
	assert.Error(t, err)

	_, err = Emit(unit(&FuncDef{Type: "int", Name: "main", Body: &Block{}}))
	assert.ErrorContains(t, err, "no return value")

	_, err = Emit(mainUnit(un(UnaryOp(42), lit(1))))
	assert.ErrorContains(t, err, "unexpected unary operator")

	_, err = Emit(mainUnit(bin(BinaryOp(42), lit(1), lit(2))))
	assert.ErrorContains(t, err, "unexpected binary operator")
}
