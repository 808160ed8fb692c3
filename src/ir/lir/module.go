package lir

import (
	"fmt"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Module defines a program that contains functions in layout order.
type Module struct {
	Name      string               // Name of module. Not important.
	functions []*Function          // Functions in layout order.
	index     map[string]*Function // Functions by name.
	seq       int                  // Sequence number used for assigning unique identifiers to every child of module.
}

// ---------------------
// ----- functions -----
// ---------------------

// CreateModule creates a new empty module with the given optional name.
func CreateModule(name string) *Module {
	m := Module{
		functions: make([]*Function, 0, 4),
		index:     make(map[string]*Function, 4),
	}
	if len(name) > 0 {
		m.Name = name
	} else {
		m.Name = "LIR Module"
	}
	return &m
}

// String returns the textual LIR representation of the module. Functions are separated by one empty line.
func (m *Module) String() string {
	sb := strings.Builder{}
	for i1, e1 := range m.functions {
		if i1 > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(e1.String())
	}
	return sb.String()
}

// CreateFunction creates a new empty function with the given name and return type typ. The name must be unique
// within the module.
func (m *Module) CreateFunction(name, typ string) (*Function, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("cannot create function without a name")
	}
	if typ != TypeI32 {
		return nil, fmt.Errorf("cannot create function %s because return type %q is not %s", name, typ, TypeI32)
	}
	if _, ok := m.index[name]; ok {
		return nil, fmt.Errorf("function %s%s is already defined", labelFunction, name)
	}
	f := &Function{
		m:      m,
		id:     m.getId(),
		name:   name,
		typ:    typ,
		blocks: make([]*Block, 0, 1),
	}
	m.functions = append(m.functions, f)
	m.index[name] = f
	return f, nil
}

// Functions returns a slice of all functions declared in Module m, in layout order.
func (m *Module) Functions() []*Function {
	return m.functions
}

// GetFunction returns a named function of Module m, if it exits. If no function with the given
// name exits, nil is returned.
func (m *Module) GetFunction(name string) *Function {
	return m.index[name]
}

// getId returns a unique sequence number that can be assigned to any data object in the Module m.
func (m *Module) getId() int {
	res := m.seq
	m.seq++
	return res
}
