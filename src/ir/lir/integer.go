package lir

import (
	"strconv"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Integer defines a 32-bit integer constant. Every use of a constant in the textual LIR creates its own Integer.
type Integer struct {
	b   *Block // b is the basic block the constant was created for.
	id  int    // id is the unique identifier of this value in function body.
	val int32  // val holds the constant's data value.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Id returns the unique id of the Integer.
func (inst *Integer) Id() int {
	return inst.id
}

// Name returns the decimal text of the Integer, which is how constants are written as operands.
func (inst *Integer) Name() string {
	return strconv.FormatInt(int64(inst.val), 10)
}

// Kind returns types.IntegerKind.
func (inst *Integer) Kind() types.ValueKind {
	return types.IntegerKind
}

// String returns the textual LIR representation of the Integer.
func (inst *Integer) String() string {
	return inst.Name()
}

// Block returns the basic block the Integer was created for.
func (inst *Integer) Block() *Block {
	return inst.b
}

// Value returns the integer value of Integer inst.
func (inst *Integer) Value() int32 {
	return inst.val
}
