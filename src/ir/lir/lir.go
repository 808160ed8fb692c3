// Package lir provides the light intermediate representation (LIR): an in-memory container of functions, basic blocks
// and single-assignment instructions, together with a reader for its textual form.
//
// A Module owns Functions in layout order. A Function owns Blocks in layout order and a Block owns its instructions in
// layout order. Integer constants are values that can be used as operands but are not part of any block's layout.
package lir

import (
	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Value defines an LIR value handle. Values are compared by identity, which makes them usable as map keys by the
// backends.
type Value interface {
	Id() int               // Unique identifier of the value within its function.
	Name() string          // Name is the textual operand form of the value, either %<name> or a decimal constant.
	Kind() types.ValueKind // Kind of value: integer, binary or return.
	String() string        // LIR textual representation of the value.
	Block() *Block         // Block the value was created in.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelTemporary defines the textual prefix of temporaries and block labels.
const labelTemporary = "%"

// labelFunction defines the textual prefix of function names.
const labelFunction = "@"

// -------------------
// ----- Globals -----
// -------------------

// ---------------------
// ----- Functions -----
// ---------------------
