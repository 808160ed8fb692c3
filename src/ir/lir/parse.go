package lir

import (
	"fmt"
	"strconv"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// reader builds a Module from the items of textual LIR.
type reader struct {
	items []item           // Items scanned by the lexer.
	pos   int              // Index of the next item.
	m     *Module          // Module being built.
	f     *Function        // Function being built.
	b     *Block           // Block being built.
	temps map[string]Value // Temporaries defined so far in the current function.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Parse builds a Module from textual LIR of the form
//
//	fun @main(): i32 {
//	%entry:
//	  %0 = sub 0, 3
//	  ret %0
//	}
//
// Temporaries must be defined exactly once before they are used, and every block must end with ret.
func Parse(src string) (*Module, error) {
	r := reader{
		items: lex(src),
		m:     CreateModule(""),
	}
	for {
		i := r.peek(0)
		switch i.typ {
		case itemEOF:
			return r.m, nil
		case itemError:
			return nil, fmt.Errorf("%s", i.val)
		}
		if err := r.function(); err != nil {
			return nil, err
		}
	}
}

// peek returns the item n positions ahead without consuming anything.
func (r *reader) peek(n int) item {
	if r.pos+n >= len(r.items) {
		return r.items[len(r.items)-1]
	}
	return r.items[r.pos+n]
}

// next consumes and returns the next item.
func (r *reader) next() item {
	i := r.peek(0)
	if r.pos < len(r.items)-1 {
		r.pos++
	}
	return i
}

// expect consumes the next item and returns an error if it is not of type typ.
func (r *reader) expect(typ itemType, what string) (item, error) {
	i := r.next()
	if i.typ == itemError {
		return i, fmt.Errorf("%s", i.val)
	}
	if i.typ != typ {
		return i, fmt.Errorf("line %d: expected %s, got %s", i.line, what, i.String())
	}
	return i, nil
}

// expectWord consumes the next item and returns an error if it is not the word w.
func (r *reader) expectWord(w string) error {
	i, err := r.expect(itemWord, fmt.Sprintf("%q", w))
	if err != nil {
		return err
	}
	if i.val != w {
		return fmt.Errorf("line %d: expected %q, got %s", i.line, w, i.String())
	}
	return nil
}

// function reads one function definition.
func (r *reader) function() error {
	if err := r.expectWord("fun"); err != nil {
		return err
	}
	g, err := r.expect(itemGlobal, "function name")
	if err != nil {
		return err
	}
	if _, err := r.expect('(', "'('"); err != nil {
		return err
	}
	if _, err := r.expect(')', "')'"); err != nil {
		return err
	}
	typ := TypeI32
	if r.peek(0).typ == ':' {
		r.next()
		t, err := r.expect(itemWord, "return type")
		if err != nil {
			return err
		}
		typ = t.val
	}
	if _, err := r.expect('{', "'{'"); err != nil {
		return err
	}

	if r.f, err = r.m.CreateFunction(g.val[len(labelFunction):], typ); err != nil {
		return fmt.Errorf("line %d: %s", g.line, err)
	}
	r.temps = make(map[string]Value, 16)

	for r.peek(0).typ != '}' {
		if err := r.block(); err != nil {
			return err
		}
	}
	end := r.next()
	if len(r.f.blocks) == 0 {
		return fmt.Errorf("line %d: function %s has no basic blocks", end.line, g.val)
	}
	return nil
}

// block reads one labelled basic block up to and including its ret instruction.
func (r *reader) block() error {
	lbl, err := r.expect(itemLocal, "block label")
	if err != nil {
		return err
	}
	if _, err := r.expect(':', "':'"); err != nil {
		return err
	}
	r.b = r.f.CreateBlock(lbl.val)

	for {
		i := r.peek(0)
		switch {
		case i.typ == itemWord && i.val == labelReturn:
			r.next()
			var val Value
			if n := r.peek(0); n.typ == itemInt || (n.typ == itemLocal && r.peek(1).typ != ':') {
				if val, err = r.value(); err != nil {
					return err
				}
			}
			r.b.CreateReturn(val)
			return nil
		case i.typ == itemLocal && r.peek(1).typ != ':':
			if err := r.binary(); err != nil {
				return err
			}
		case i.typ == itemError:
			return fmt.Errorf("%s", i.val)
		default:
			return fmt.Errorf("line %d: block %s is not terminated by %s", i.line, r.b.name, labelReturn)
		}
	}
}

// binary reads an instruction of the form %name = op lhs, rhs.
func (r *reader) binary() error {
	dst := r.next()
	if _, ok := r.temps[dst.val]; ok {
		return fmt.Errorf("line %d: temporary %s is defined twice", dst.line, dst.val)
	}
	if _, err := r.expect('=', "'='"); err != nil {
		return err
	}
	mn, err := r.expect(itemWord, "instruction")
	if err != nil {
		return err
	}
	op, ok := types.LookupBinaryOp(mn.val)
	if !ok {
		return fmt.Errorf("line %d: unknown instruction %q", mn.line, mn.val)
	}
	lhs, err := r.value()
	if err != nil {
		return err
	}
	if _, err := r.expect(',', "','"); err != nil {
		return err
	}
	rhs, err := r.value()
	if err != nil {
		return err
	}
	r.temps[dst.val] = r.b.CreateBinary(op, lhs, rhs, dst.val)
	return nil
}

// value reads an operand: either an integer constant or a previously defined temporary.
func (r *reader) value() (Value, error) {
	i := r.next()
	switch i.typ {
	case itemInt:
		v, err := strconv.ParseInt(i.val, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: integer %s does not fit in %s", i.line, i.val, TypeI32)
		}
		return r.b.CreateInteger(int32(v)), nil
	case itemLocal:
		if v, ok := r.temps[i.val]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("line %d: undefined temporary %s", i.line, i.val)
	case itemError:
		return nil, fmt.Errorf("%s", i.val)
	default:
		return nil, fmt.Errorf("line %d: expected operand, got %s", i.line, i.String())
	}
}
