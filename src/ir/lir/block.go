package lir

import (
	"fmt"
	"strings"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Block defines a basic block. A basic block is a sequence of instructions that is terminated by a return
// instruction.
type Block struct {
	f            *Function // Parent function that owns the basic block.
	id           int       // Unique identifier of basic block.
	name         string    // Label of the basic block, including the % prefix.
	term         *Return   // Return instruction that terminates the block.
	instructions []Value   // Instructions in the basic block, in layout order.
}

// ---------------------
// ----- Constants -----
// ---------------------

// labelBlockPrefix defines the label prefix of basic blocks created without a name.
const labelBlockPrefix = "bb"

// ---------------------
// ----- functions -----
// ---------------------

// Id returns the uniquely assigned identifier of Block b.
func (b *Block) Id() int {
	return b.id
}

// Name returns the textual LIR label of Block b.
func (b *Block) Name() string {
	return b.name
}

// Function returns the function that owns Block b.
func (b *Block) Function() *Function {
	return b.f
}

// String returns the textual LIR representation of all instructions in Block b.
func (b *Block) String() string {
	sb := strings.Builder{}
	sb.WriteString(b.name)
	sb.WriteString(":\n")
	for _, e1 := range b.instructions {
		sb.WriteString("  ")
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Instructions returns the instructions of the basic Block b in layout order.
func (b *Block) Instructions() []Value {
	return b.instructions
}

// Terminator returns the return instruction of Block b, or <nil> if b is not terminated yet.
func (b *Block) Terminator() *Return {
	return b.term
}

// CreateInteger creates an integer constant for use as an operand in Block b. The constant is not part of the
// block's layout.
func (b *Block) CreateInteger(val int32) *Integer {
	return &Integer{
		b:   b,
		id:  b.f.getId(),
		val: val,
	}
}

// CreateBinary creates a binary instruction %name = op lhs, rhs. If name is empty a fresh temporary name is
// assigned.
func (b *Block) CreateBinary(op types.BinaryOp, lhs, rhs Value, name string) *Binary {
	b.checkOpen()
	checkOperand(lhs, "CreateBinary")
	checkOperand(rhs, "CreateBinary")
	inst := &Binary{
		b:   b,
		id:  b.f.getId(),
		op:  op,
		lhs: lhs,
		rhs: rhs,
	}
	if len(name) > 0 {
		inst.name = name
	} else {
		inst.name = fmt.Sprintf("%s%d", labelTemporary, b.f.getTemp())
	}
	b.instructions = append(b.instructions, inst)
	return inst
}

// CreateReturn creates a return instruction, effectively terminating Block b. Value val may be <nil>.
func (b *Block) CreateReturn(val Value) *Return {
	b.checkOpen()
	if val != nil {
		checkOperand(val, "CreateReturn")
	}
	inst := &Return{
		b:   b,
		id:  b.f.getId(),
		val: val,
	}
	b.instructions = append(b.instructions, inst)
	b.term = inst
	return inst
}

// checkOpen panics if Block b is already terminated.
func (b *Block) checkOpen() {
	if b.term != nil {
		panic(fmt.Sprintf("function %s, block %s: cannot add instructions after return",
			b.f.Name(), b.name))
	}
}

// checkOperand panics if v cannot be used as an instruction operand.
func checkOperand(v Value, caller string) {
	if v == nil {
		panic(fmt.Sprintf("operand is <nil>, cannot use it as input to %s", caller))
	}
	if v.Kind() != types.IntegerKind && v.Kind() != types.BinaryKind {
		panic(fmt.Sprintf("operand is not a value, cannot use %s as input to %s", v.Kind().String(), caller))
	}
}
