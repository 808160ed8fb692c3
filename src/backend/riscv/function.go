package riscv

import (
	"fmt"
	"strings"

	"exprc/src/ir/lir"
)

// genFunction generates every basic block of the function in context c. Blocks after the first are labelled
// locally; since every block ends in ret no block falls through into the next.
func genFunction(c *context) error {
	for i1, e1 := range c.f.Blocks() {
		if i1 > 0 {
			c.asm.label(fmt.Sprintf(".L%s_%s", c.f.Name(), strings.TrimPrefix(e1.Name(), "%")))
		}
		for _, e2 := range e1.Instructions() {
			// Binary instructions already generated as an operand of an earlier instruction are not generated twice.
			if _, ok := c.regs[e2]; ok {
				continue
			}
			if _, err := genValue(c, e2, parentNone); err != nil {
				return err
			}
		}
	}
	return nil
}

// genReturn generates the return instruction x. The returned value is moved into the return register unless it was
// computed there.
func genReturn(c *context, x *lir.Return) error {
	if x.Value() != nil {
		o, err := genValue(c, x.Value(), parentReturn)
		if err != nil {
			return err
		}
		if o.reg != c.rf.Ret() {
			c.asm.r2("mv", c.rf.Ret(), o.reg)
		}
	}
	c.asm.op("ret")
	return nil
}
