package lir

import (
	"fmt"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Binary defines a binary instruction that leaves its result in a new temporary.
type Binary struct {
	b        *Block         // b is the basic block element that owns this instruction.
	id       int            // id is the unique identifier of this instruction in function body.
	name     string         // name is the temporary written by the instruction, including the % prefix.
	op       types.BinaryOp // op defines the operator of this instruction.
	lhs, rhs Value          // lhs and rhs holds the first and second operands respectively.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Id returns the unique identifier of the Binary inst.
func (inst *Binary) Id() int {
	return inst.id
}

// Name returns the temporary written by the Binary inst.
func (inst *Binary) Name() string {
	return inst.name
}

// Kind returns types.BinaryKind.
func (inst *Binary) Kind() types.ValueKind {
	return types.BinaryKind
}

// String returns the LIR textual representation of the Binary inst.
func (inst *Binary) String() string {
	return fmt.Sprintf("%s = %s %s, %s", inst.name, inst.op.String(), inst.lhs.Name(), inst.rhs.Name())
}

// Block returns the basic block that owns the Binary inst.
func (inst *Binary) Block() *Block {
	return inst.b
}

// Op returns the operator of the Binary inst.
func (inst *Binary) Op() types.BinaryOp {
	return inst.op
}

// Lhs returns the first operand of the Binary inst.
func (inst *Binary) Lhs() Value {
	return inst.lhs
}

// Rhs returns the second operand of the Binary inst.
func (inst *Binary) Rhs() Value {
	return inst.rhs
}
