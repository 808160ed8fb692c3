// Package riscv generates RISC-V assembler from the in-memory LIR. Registers are claimed from a pool front to back
// and never freed within a function; a binary result stays in the register it was computed into.

package riscv

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"exprc/src/backend/regfile"
	"exprc/src/ir/lir"
	"exprc/src/ir/lir/types"
	"exprc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// parent tells a value generator in which context its result is consumed.
type parent int

// operand describes where a generated value ended up.
type operand struct {
	reg  string          // Register holding the value. The zero register for an elided literal 0.
	kind types.ValueKind // Kind of the value that was generated.
}

// isa holds the mnemonics that differ between the 32-bit and 64-bit base ISAs. On RV64 the word variants keep
// i32 arithmetic sign-extended.
type isa struct {
	add, sub, mul, div, rem string
}

// context is the state of one function's generation pass. It is created fresh for every function.
type context struct {
	f    *lir.Function
	rf   regfile.RegisterFile
	isa  isa
	regs map[lir.Value]string // Register holding the result of each generated binary instruction.
	asm  *function            // Instructions generated so far.
}

// ---------------------
// ----- Constants -----
// ---------------------

// Contexts a value can be generated in.
const (
	parentNone   parent = iota // Top level walk of a block.
	parentBinary               // Operand of a binary instruction.
	parentReturn               // Operand of a return instruction.
)

const zero = "x0" // Hardwired zero register.
const ret = "a0"  // Return value register.

// -------------------
// ----- Globals -----
// -------------------

// ErrUnsupported is returned for LIR the generator cannot translate.
var ErrUnsupported = errors.New("unsupported LIR")

// Registers is the default allocation order: temporaries first, then argument registers.
var Registers = []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7"}

// reserved holds registers that must never be handed out as scratch registers.
var reserved = map[string]bool{
	"x0": true, "zero": true,
	"x1": true, "ra": true,
	"x2": true, "sp": true,
	"x3": true, "gp": true,
	"x4": true, "tp": true,
}

// abi holds the ABI names of the allocatable integer registers.
var abi = map[string]bool{
	"t0": true, "t1": true, "t2": true, "t3": true, "t4": true, "t5": true, "t6": true,
	"a0": true, "a1": true, "a2": true, "a3": true, "a4": true, "a5": true, "a6": true, "a7": true,
	"s0": true, "s1": true, "s2": true, "s3": true, "s4": true, "s5": true,
	"s6": true, "s7": true, "s8": true, "s9": true, "s10": true, "s11": true, "fp": true,
}

var rv32 = isa{add: "add", sub: "sub", mul: "mul", div: "div", rem: "rem"}
var rv64 = isa{add: "addw", sub: "subw", mul: "mulw", div: "divw", rem: "remw"}

// ---------------------
// ----- Functions -----
// ---------------------

// NewRegisterFile returns a register pool over regs, or over Registers if regs is empty.
func NewRegisterFile(regs []string) (*regfile.Pool, error) {
	if len(regs) == 0 {
		regs = Registers
	}
	for _, e1 := range regs {
		if reserved[e1] {
			return nil, fmt.Errorf("register %s is reserved", e1)
		}
		if !abi[e1] && !isNumeric(e1) {
			return nil, fmt.Errorf("unknown register %q", e1)
		}
	}
	return regfile.NewPool(zero, ret, regs)
}

// isNumeric returns true if r is one of the numeric register names x0 to x31.
func isNumeric(r string) bool {
	var n int
	if _, err := fmt.Sscanf(r, "x%d", &n); err != nil {
		return false
	}
	return n >= 0 && n < 32 && r == fmt.Sprintf("x%d", n)
}

// GenRiscv generates RISC-V assembler for every function of Module m and writes it to w.
func GenRiscv(opt util.Options, m *lir.Module, w io.Writer) error {
	rf, err := NewRegisterFile(opt.Registers)
	if err != nil {
		return err
	}
	set := rv32
	if opt.TargetArch == util.Riscv64 {
		set = rv64
	}

	p := program{funcs: make([]*function, 0, len(m.Functions()))}
	for _, e1 := range m.Functions() {
		rf.Reset()
		c := context{
			f:    e1,
			rf:   rf,
			isa:  set,
			regs: make(map[lir.Value]string, 16),
			asm:  &function{name: e1.Name()},
		}
		if err := genFunction(&c); err != nil {
			return fmt.Errorf("function %s: %w", e1.Name(), err)
		}
		slog.Debug("generated function", "function", e1.Name(), "instructions", len(c.asm.body),
			"registers", rf.Used(), "pool", rf.Size())
		p.funcs = append(p.funcs, c.asm)
	}

	wr := util.Writer{}
	p.render(&wr)
	_, err = wr.WriteTo(w)
	return err
}

// reusable returns true if the operand is a literal that was loaded into a scratch register of its own, so the
// register may be overwritten by the instruction consuming it.
func (o operand) reusable() bool {
	return o.kind == types.IntegerKind && o.reg != zero
}
