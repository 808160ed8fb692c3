// Package types defines LIR value kinds and binary operators.
package types

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// ValueKind defines the different kinds of LIR values.
type ValueKind uint

// BinaryOp defines the binary operators of the LIR binary instruction.
type BinaryOp uint

// ---------------------
// ----- Constants -----
// ---------------------

const (
	IntegerKind ValueKind = iota // IntegerKind identifies a 32-bit integer constant.
	BinaryKind                   // BinaryKind identifies a binary instruction %n = op a, b.
	ReturnKind                   // ReturnKind identifies the ret terminator.
)

const (
	Ne   BinaryOp = iota // Ne identifies a = b != c.
	Eq                   // Eq identifies a = b == c.
	Gt                   // Gt identifies a = b > c.
	Lt                   // Lt identifies a = b < c.
	Ge                   // Ge identifies a = b >= c.
	Le                   // Le identifies a = b <= c.
	Add                  // Add identifies a = b + c.
	Sub                  // Sub identifies a = b - c.
	Mul                  // Mul identifies a = b * c.
	SDiv                 // SDiv identifies the signed division a = b / c.
	SRem                 // SRem identifies the signed remainder a = b % c.
	And                  // And identifies the bitwise a = b & c.
	Or                   // Or identifies the bitwise a = b | c.
	Xor                  // Xor identifies the bitwise a = b ^ c.
	Shl                  // Shl identifies a = b << c.
	Shr                  // Shr identifies the logical a = b >> c.
	Sar                  // Sar identifies the arithmetic a = b >> c.
)

// -------------------
// ----- Globals -----
// -------------------

// kTyp provides string literals for ValueKind constants.
var kTyp = [...]string{
	"Integer",
	"Binary",
	"Return",
}

// bTyp provides the textual LIR mnemonics for BinaryOp constants.
var bTyp = [...]string{
	"ne",
	"eq",
	"gt",
	"lt",
	"ge",
	"le",
	"add",
	"sub",
	"mul",
	"sdiv",
	"srem",
	"and",
	"or",
	"xor",
	"shl",
	"shr",
	"sar",
}

// ---------------------
// ----- Functions -----
// ---------------------

// String provides a print friendly string representation of the ValueKind.
func (k ValueKind) String() string {
	if int(k) < len(kTyp) {
		return kTyp[k]
	}
	return fmt.Sprintf("ValueKind(%d)", uint(k))
}

// String returns the textual LIR mnemonic of the BinaryOp.
func (op BinaryOp) String() string {
	if int(op) < len(bTyp) {
		return bTyp[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", uint(op))
}

// LookupBinaryOp returns the BinaryOp with the textual mnemonic s. The second return value is false if s is not
// a binary operator.
func LookupBinaryOp(s string) (BinaryOp, bool) {
	for i1, e1 := range bTyp {
		if e1 == s {
			return BinaryOp(i1), true
		}
	}
	return 0, false
}
