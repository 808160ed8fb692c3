// print.go records generated instructions as typed entries and renders them as assembler text in a separate pass.

package riscv

import (
	"exprc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// form tells how an instruction's operands are printed.
type form int

// instruction is one generated assembler line.
type instruction struct {
	form form
	op   string // Mnemonic, or label name for labels.
	rd   string
	rs1  string
	rs2  string
	imm  int32
}

// function is the generated body of one function.
type function struct {
	name string
	body []instruction
}

// program holds the generated functions in layout order.
type program struct {
	funcs []*function
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	formNone  form = iota // op
	formImm               // op rd, imm
	formReg2              // op rd, rs1
	formReg3              // op rd, rs1, rs2
	formLabel             // op:
)

// ---------------------
// ----- Functions -----
// ---------------------

func (f *function) op(op string) {
	f.body = append(f.body, instruction{form: formNone, op: op})
}

func (f *function) imm(op, rd string, imm int32) {
	f.body = append(f.body, instruction{form: formImm, op: op, rd: rd, imm: imm})
}

func (f *function) r2(op, rd, rs1 string) {
	f.body = append(f.body, instruction{form: formReg2, op: op, rd: rd, rs1: rs1})
}

func (f *function) r3(op, rd, rs1, rs2 string) {
	f.body = append(f.body, instruction{form: formReg3, op: op, rd: rd, rs1: rs1, rs2: rs2})
}

func (f *function) label(name string) {
	f.body = append(f.body, instruction{form: formLabel, op: name})
}

// render writes the text section header and then every function, each under a label carrying its name.
func (p *program) render(wr *util.Writer) {
	wr.Directive(".text")
	for _, e1 := range p.funcs {
		wr.Directive(".global", e1.name)
	}
	for _, e1 := range p.funcs {
		wr.Label(e1.name)
		for _, e2 := range e1.body {
			e2.render(wr)
		}
	}
}

func (inst instruction) render(wr *util.Writer) {
	switch inst.form {
	case formNone:
		wr.Ins0(inst.op)
	case formImm:
		wr.Ins1imm(inst.op, inst.rd, int(inst.imm))
	case formReg2:
		wr.Ins2(inst.op, inst.rd, inst.rs1)
	case formReg3:
		wr.Ins3(inst.op, inst.rd, inst.rs1, inst.rs2)
	case formLabel:
		wr.Label(inst.op)
	}
}
