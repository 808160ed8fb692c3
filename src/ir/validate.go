package ir

import (
	"errors"
	"fmt"
	"math"
)

// ----------------------
// ----- Functions ------
// ----------------------

// ValidateTree checks the structure of the syntax tree before it is lowered: every function has a unique name, an
// int return type and a return statement, every operator is known and every literal fits in 32 bits.
func ValidateTree(cu *CompUnit) error {
	if cu == nil {
		return errors.New("syntax tree is <nil>")
	}
	if len(cu.Funcs) == 0 {
		return errors.New("syntax tree has no functions")
	}
	names := make(map[string]*FuncDef, len(cu.Funcs))
	for _, e1 := range cu.Funcs {
		if e1 == nil {
			return errors.New("function definition is <nil>")
		}
		if prev, ok := names[e1.Name]; ok {
			return fmt.Errorf("line %d:%d: function %q already defined at line %d:%d",
				e1.Line, e1.Pos, e1.Name, prev.Line, prev.Pos)
		}
		names[e1.Name] = e1
		if e1.Type != "int" {
			return fmt.Errorf("line %d:%d: function %q must return int, got %q", e1.Line, e1.Pos, e1.Name, e1.Type)
		}
		if e1.Body == nil || e1.Body.Ret == nil {
			return fmt.Errorf("line %d:%d: function %q has no return statement", e1.Line, e1.Pos, e1.Name)
		}
		if e1.Body.Ret.Value == nil {
			return fmt.Errorf("line %d:%d: return statement of %q has no value",
				e1.Body.Ret.Line, e1.Body.Ret.Pos, e1.Name)
		}
		if err := validateExpr(e1.Body.Ret.Value); err != nil {
			return err
		}
	}
	return nil
}

// validateExpr recursively checks the expression n.
func validateExpr(n Expr) error {
	switch e := n.(type) {
	case *Integer:
		if e.Value < math.MinInt32 || e.Value > math.MaxInt32 {
			return fmt.Errorf("line %d:%d: integer %d does not fit in 32 bits", e.Line, e.Pos, e.Value)
		}
	case *Unary:
		if !e.Op.Valid() {
			return fmt.Errorf("line %d:%d: unexpected unary operator %s", e.Line, e.Pos, e.Op)
		}
		if e.X == nil {
			return fmt.Errorf("line %d:%d: unary %s has no operand", e.Line, e.Pos, e.Op)
		}
		return validateExpr(e.X)
	case *Binary:
		if !e.Op.Valid() {
			return fmt.Errorf("line %d:%d: unexpected binary operator %s", e.Line, e.Pos, e.Op)
		}
		if e.X == nil || e.Y == nil {
			return fmt.Errorf("line %d:%d: binary %s is missing an operand", e.Line, e.Pos, e.Op)
		}
		if err := validateExpr(e.X); err != nil {
			return err
		}
		return validateExpr(e.Y)
	case nil:
		return errors.New("expression is <nil>")
	default:
		return fmt.Errorf("unexpected expression node %T", n)
	}
	return nil
}
