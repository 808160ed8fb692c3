// Package ir provides the syntax tree produced by the frontend, its validation, and the emitter that lowers it
// into textual LIR.
package ir

import (
	"fmt"
	"io"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// UnaryOp differentiates the unary operators.
type UnaryOp int

// BinaryOp differentiates the binary operators.
type BinaryOp int

// Expr is an expression node: one of *Integer, *Unary or *Binary. The set is closed; nodes are immutable once
// constructed and each operand is owned by exactly one parent.
type Expr interface {
	Position() (int, int) // Line and position of the node in source code.
	String() string       // Print friendly representation of the node itself, without children.
	exprNode()
}

// Integer is an integer literal.
type Integer struct {
	Value int64 // Literal value. Range is checked by ValidateTree.
	Line  int   // Line in source code the literal is declared.
	Pos   int   // Position on the line in source code the literal is declared.
}

// Unary is a unary operation on a single operand.
type Unary struct {
	Op   UnaryOp
	X    Expr
	Line int
	Pos  int
}

// Binary is a binary operation on two operands.
type Binary struct {
	Op   BinaryOp
	X, Y Expr
	Line int
	Pos  int
}

// CompUnit is the root of the syntax tree: all function definitions of one source file.
type CompUnit struct {
	Funcs []*FuncDef
}

// FuncDef is a function definition returning int.
type FuncDef struct {
	Type string // Return type as written in source code.
	Name string
	Body *Block
	Line int
	Pos  int
}

// Block is a function body. The language has exactly one statement per body: return.
type Block struct {
	Ret *Return
}

// Return is the return statement terminating a function body.
type Return struct {
	Value Expr
	Line  int
	Pos   int
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	OpPlus UnaryOp = iota // Identity: +x.
	OpNeg                 // Negate: -x.
	OpNot                 // Logical not: !x.
)

const (
	OpMul  BinaryOp = iota // x * y.
	OpDiv                  // x / y.
	OpMod                  // x % y.
	OpAdd                  // x + y.
	OpSub                  // x - y.
	OpEq                   // x == y.
	OpNeq                  // x != y.
	OpLt                   // x < y.
	OpGt                   // x > y.
	OpLe                   // x <= y.
	OpGe                   // x >= y.
	OpLAnd                 // x && y.
	OpLOr                  // x || y.
)

// -------------------
// ----- Globals -----
// -------------------

// ut provides the source tokens of UnaryOp constants.
var ut = [...]string{
	"+",
	"-",
	"!",
}

// bt provides the source tokens of BinaryOp constants.
var bt = [...]string{
	"*",
	"/",
	"%",
	"+",
	"-",
	"==",
	"!=",
	"<",
	">",
	"<=",
	">=",
	"&&",
	"||",
}

// ----------------------
// ----- functions ------
// ----------------------

// String returns the source token of the UnaryOp.
func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(ut) {
		return fmt.Sprintf("UnaryOp(%d)", int(op))
	}
	return ut[op]
}

// Valid returns true if op is a known unary operator.
func (op UnaryOp) Valid() bool {
	return op >= 0 && int(op) < len(ut)
}

// String returns the source token of the BinaryOp.
func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(bt) {
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
	return bt[op]
}

// Valid returns true if op is a known binary operator.
func (op BinaryOp) Valid() bool {
	return op >= 0 && int(op) < len(bt)
}

func (n *Integer) exprNode() {}
func (n *Unary) exprNode()   {}
func (n *Binary) exprNode()  {}

// Position returns the line and position of the literal.
func (n *Integer) Position() (int, int) { return n.Line, n.Pos }

// Position returns the line and position of the operator.
func (n *Unary) Position() (int, int) { return n.Line, n.Pos }

// Position returns the line and position of the operator.
func (n *Binary) Position() (int, int) { return n.Line, n.Pos }

func (n *Integer) String() string {
	return fmt.Sprintf("INTEGER_DATA [%d]", n.Value)
}

func (n *Unary) String() string {
	return fmt.Sprintf("UNARY_EXPRESSION [%q]", n.Op.String())
}

func (n *Binary) String() string {
	return fmt.Sprintf("BINARY_EXPRESSION [%q]", n.Op.String())
}

// Print writes the syntax tree to w, indenting every level by two spaces.
func (cu *CompUnit) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "COMP_UNIT")
	for _, e1 := range cu.Funcs {
		_, _ = fmt.Fprintf(w, "%*cFUNCTION [%q] %s\n", 2, ' ', e1.Name, e1.Type)
		if e1.Body == nil || e1.Body.Ret == nil {
			_, _ = fmt.Fprintf(w, "%*c---> NIL\n", 4, ' ')
			continue
		}
		_, _ = fmt.Fprintf(w, "%*cRETURN_STATEMENT\n", 4, ' ')
		printExpr(w, e1.Body.Ret.Value, 3)
	}
}

// printExpr recursively prints the expression n and its operands at the given depth.
func printExpr(w io.Writer, n Expr, depth int) {
	if n == nil {
		_, _ = fmt.Fprintf(w, "%*c---> NIL\n", depth<<1, ' ')
		return
	}
	_, _ = fmt.Fprintf(w, "%*c%s\n", depth<<1, ' ', n.String())
	switch e := n.(type) {
	case *Unary:
		printExpr(w, e.X, depth+1)
	case *Binary:
		printExpr(w, e.X, depth+1)
		printExpr(w, e.Y, depth+1)
	}
}
