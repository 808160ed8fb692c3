package riscv

import (
	"fmt"

	"exprc/src/ir/lir"
	"exprc/src/ir/lir/types"
)

// genValue generates the value v in context p and returns where its result lives.
func genValue(c *context, v lir.Value, p parent) (operand, error) {
	switch x := v.(type) {
	case *lir.Integer:
		return genInteger(c, x, p)
	case *lir.Binary:
		if r, ok := c.regs[x]; ok {
			return operand{reg: r, kind: types.BinaryKind}, nil
		}
		return genBinary(c, x)
	case *lir.Return:
		return operand{}, genReturn(c, x)
	case nil:
		return operand{}, fmt.Errorf("%w: value is <nil>", ErrUnsupported)
	default:
		return operand{}, fmt.Errorf("%w: value %s of kind %s", ErrUnsupported, v.Name(), v.Kind())
	}
}

// genInteger materialises an integer constant. A zero consumed by a binary instruction is read from the zero
// register. A returned constant is loaded straight into the return register, even when it is zero.
func genInteger(c *context, x *lir.Integer, p parent) (operand, error) {
	switch p {
	case parentBinary:
		if x.Value() == 0 {
			return operand{reg: c.rf.Zero(), kind: types.IntegerKind}, nil
		}
	case parentReturn:
		c.asm.imm("li", c.rf.Ret(), x.Value())
		return operand{reg: c.rf.Ret(), kind: types.IntegerKind}, nil
	}
	rd, err := c.rf.Next()
	if err != nil {
		return operand{}, err
	}
	c.asm.imm("li", rd, x.Value())
	return operand{reg: rd, kind: types.IntegerKind}, nil
}

// genBinary generates the binary instruction x. The destination is the register of a non-zero literal operand if
// there is one, left operand first, or else a fresh register.
func genBinary(c *context, x *lir.Binary) (operand, error) {
	lhs, err := genValue(c, x.Lhs(), parentBinary)
	if err != nil {
		return operand{}, err
	}
	rhs, err := genValue(c, x.Rhs(), parentBinary)
	if err != nil {
		return operand{}, err
	}

	var rd string
	switch {
	case lhs.reusable():
		rd = lhs.reg
	case rhs.reusable():
		rd = rhs.reg
	default:
		if rd, err = c.rf.Next(); err != nil {
			return operand{}, err
		}
	}

	switch x.Op() {
	case types.Add:
		c.asm.r3(c.isa.add, rd, lhs.reg, rhs.reg)
	case types.Sub:
		c.asm.r3(c.isa.sub, rd, lhs.reg, rhs.reg)
	case types.Mul:
		c.asm.r3(c.isa.mul, rd, lhs.reg, rhs.reg)
	case types.SDiv:
		c.asm.r3(c.isa.div, rd, lhs.reg, rhs.reg)
	case types.SRem:
		c.asm.r3(c.isa.rem, rd, lhs.reg, rhs.reg)
	case types.And:
		c.asm.r3("and", rd, lhs.reg, rhs.reg)
	case types.Or:
		c.asm.r3("or", rd, lhs.reg, rhs.reg)
	case types.Xor:
		c.asm.r3("xor", rd, lhs.reg, rhs.reg)
	case types.Eq:
		c.asm.r3("xor", rd, lhs.reg, rhs.reg)
		c.asm.r2("seqz", rd, rd)
	case types.Ne:
		c.asm.r3("xor", rd, lhs.reg, rhs.reg)
		c.asm.r2("snez", rd, rd)
	case types.Lt:
		c.asm.r3("slt", rd, lhs.reg, rhs.reg)
	case types.Gt:
		c.asm.r3("sgt", rd, lhs.reg, rhs.reg)
	case types.Le:
		// a <= b is !(a > b).
		c.asm.r3("sgt", rd, lhs.reg, rhs.reg)
		c.asm.r2("seqz", rd, rd)
	case types.Ge:
		// a >= b is !(a < b).
		c.asm.r3("slt", rd, lhs.reg, rhs.reg)
		c.asm.r2("seqz", rd, rd)
	default:
		return operand{}, fmt.Errorf("%w: operator %s in %s", ErrUnsupported, x.Op(), x.String())
	}

	c.regs[x] = rd
	return operand{reg: rd, kind: types.BinaryKind}, nil
}
