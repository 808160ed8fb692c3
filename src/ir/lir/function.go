package lir

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Function represents a function. It has a name, a return type and basic blocks in layout order.
type Function struct {
	m      *Module  // Parent module. Used for requesting sequence numbers.
	id     int      // Unique identifier assigned to this function.
	name   string   // Name of function, without the @ prefix.
	typ    string   // Textual return type of function.
	blocks []*Block // Basic blocks in function body.
	seq    int      // Sequence number for generating unique identifiers for all children of function.
	tmp    int      // Sequence number for naming temporaries created without a name.
}

// ---------------------
// ----- Constants -----
// ---------------------

// TypeI32 is the only return type known to the LIR.
const TypeI32 = "i32"

// ----------------------------
// ----- Function methods -----
// ----------------------------

// Id returns the unique sequence number assigned to Function f when it was created.
func (f *Function) Id() int {
	return f.id
}

// Name returns the name of Function f without the @ prefix.
func (f *Function) Name() string {
	return f.name
}

// Type returns the return type of Function f.
func (f *Function) Type() string {
	return f.typ
}

// String returns the textual LIR representation of Function f.
func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("fun %s%s(): %s {\n", labelFunction, f.name, f.typ))
	for _, e1 := range f.blocks {
		sb.WriteString(e1.String())
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Blocks returns the basic blocks of Function f in layout order.
func (f *Function) Blocks() []*Block {
	return f.blocks
}

// CreateBlock creates a new Block for Function f. If name is empty a label is generated. The name must include
// the % prefix.
func (f *Function) CreateBlock(name string) *Block {
	b := &Block{
		f:            f,
		id:           f.m.getId(),
		instructions: make([]Value, 0, 16),
	}
	if len(name) > 0 {
		b.name = name
	} else {
		b.name = fmt.Sprintf("%s%s%d", labelTemporary, labelBlockPrefix, b.id)
	}
	f.blocks = append(f.blocks, b)
	return b
}

// getId returns a unique identifier for any child of Function f.
func (f *Function) getId() int {
	id := f.seq
	f.seq++
	return id
}

// getTemp returns the next number for an unnamed temporary of Function f.
func (f *Function) getTemp() int {
	t := f.tmp
	f.tmp++
	return t
}
