// Package regfile provides the register pool used by the assembly generators.
package regfile

import (
	"errors"
	"fmt"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// RegisterFile defines an interface for a register file as seen by a code generator.
// Registers are handed out front to back and are never freed within one function.
type RegisterFile interface {
	Zero() string          // Returns the hardwired zero register.
	Ret() string           // Returns the return value register.
	Next() (string, error) // Claims the next unused scratch register.
	Reset()                // Releases every claimed register. Called once per function.
	Used() int             // Number of registers claimed since the last Reset.
	Size() int             // Number of scratch registers in the pool.
}

// Pool is a RegisterFile over a fixed ordered list of register names, consumed through a single cursor.
type Pool struct {
	zero string   // Zero register.
	ret  string   // Return value register.
	regs []string // Scratch registers in allocation order.
	next int      // Index of the next register to hand out.
}

// -------------------
// ----- Globals -----
// -------------------

// ErrPoolExhausted is returned when every register of the pool is claimed. Spilling is not supported.
var ErrPoolExhausted = errors.New("register pool exhausted")

// ---------------------
// ----- Functions -----
// ---------------------

// NewPool returns a Pool handing out regs in order. The zero register must not be part of regs and no register may
// be listed twice.
func NewPool(zero, ret string, regs []string) (*Pool, error) {
	if len(regs) == 0 {
		return nil, errors.New("register pool is empty")
	}
	seen := make(map[string]bool, len(regs))
	for _, e1 := range regs {
		if e1 == zero {
			return nil, fmt.Errorf("zero register %s cannot be allocated", zero)
		}
		if seen[e1] {
			return nil, fmt.Errorf("register %s is listed twice", e1)
		}
		seen[e1] = true
	}
	p := &Pool{
		zero: zero,
		ret:  ret,
		regs: make([]string, len(regs)),
	}
	copy(p.regs, regs)
	return p, nil
}

// Zero returns the hardwired zero register.
func (p *Pool) Zero() string {
	return p.zero
}

// Ret returns the return value register.
func (p *Pool) Ret() string {
	return p.ret
}

// Next claims the next register. It returns ErrPoolExhausted once every register is claimed.
func (p *Pool) Next() (string, error) {
	if p.next >= len(p.regs) {
		return "", fmt.Errorf("%w: all %d registers are in use", ErrPoolExhausted, len(p.regs))
	}
	r := p.regs[p.next]
	p.next++
	return r, nil
}

// Reset rewinds the cursor so every register can be claimed again.
func (p *Pool) Reset() {
	p.next = 0
}

// Used returns the number of registers claimed since the last Reset.
func (p *Pool) Used() int {
	return p.next
}

// Size returns the number of registers in the pool.
func (p *Pool) Size() int {
	return len(p.regs)
}
