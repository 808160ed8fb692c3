package lir

import (
	"fmt"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Return defines the return instruction that terminates a basic block. The returned value is optional.
type Return struct {
	b   *Block // b is the basic block element that owns this instruction.
	id  int    // id is the unique identifier of this instruction in function body.
	val Value  // val is the returned value, or <nil>.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelReturn defines the textual LIR return mnemonic.
const labelReturn = "ret"

// ---------------------
// ----- Functions -----
// ---------------------

// Id returns the unique identifier of the Return inst.
func (inst *Return) Id() int {
	return inst.id
}

// Name returns the mnemonic of the Return inst, because ret does not write a temporary.
func (inst *Return) Name() string {
	return labelReturn
}

// Kind returns types.ReturnKind.
func (inst *Return) Kind() types.ValueKind {
	return types.ReturnKind
}

// String returns the LIR textual representation of the Return inst.
func (inst *Return) String() string {
	if inst.val == nil {
		return labelReturn
	}
	return fmt.Sprintf("%s %s", labelReturn, inst.val.Name())
}

// Block returns the basic block terminated by the Return inst.
func (inst *Return) Block() *Block {
	return inst.b
}

// Value returns the returned value of the Return inst, or <nil> if it returns nothing.
func (inst *Return) Value() Value {
	return inst.val
}
