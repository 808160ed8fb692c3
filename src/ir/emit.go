// emit.go lowers the syntax tree into LIR. Lowering first records typed instructions per function and then renders
// them in a separate pass, so what is computed stays independent of how it is printed.

package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"exprc/src/ir/lir/types"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Operand is an instruction operand: either an inlined literal or a reference to a temporary.
type Operand struct {
	Temp   int   // Identity of the referenced temporary. Valid if IsTemp is true.
	Imm    int32 // Literal value. Valid if IsTemp is false.
	IsTemp bool  // True if the operand references a temporary.
}

// Instruction is a recorded three-address instruction %Dst = Op Lhs, Rhs.
type Instruction struct {
	Dst      int
	Op       types.BinaryOp
	Lhs, Rhs Operand
}

// Function is the lowered form of one function definition.
type Function struct {
	Name string        // Function name without the @ prefix.
	Type string        // LIR return type.
	Body []Instruction // Instructions of the entry block in emission order.
	Ret  Operand       // Returned operand.
}

// Program is the lowered form of a compilation unit.
type Program struct {
	Functions []*Function
}

// emitter lowers one function. It owns the temporary counter, which therefore starts at zero for every function.
type emitter struct {
	seq  int           // Next temporary identity.
	body []Instruction // Instructions emitted so far.
}

// ---------------------
// ----- Constants -----
// ---------------------

// entryLabel is the label of the single basic block of every function.
const entryLabel = "%entry"

// -------------------
// ----- Globals -----
// -------------------

// binaryOps maps source operators to LIR operators. The logical operators are lowered separately.
var binaryOps = map[BinaryOp]types.BinaryOp{
	OpMul: types.Mul,
	OpDiv: types.SDiv,
	OpMod: types.SRem,
	OpAdd: types.Add,
	OpSub: types.Sub,
	OpEq:  types.Eq,
	OpNeq: types.Ne,
	OpLt:  types.Lt,
	OpGt:  types.Gt,
	OpLe:  types.Le,
	OpGe:  types.Ge,
}

// ---------------------
// ----- Functions -----
// ---------------------

// String returns the operand as written in textual LIR.
func (o Operand) String() string {
	if o.IsTemp {
		return "%" + strconv.Itoa(o.Temp)
	}
	return strconv.FormatInt(int64(o.Imm), 10)
}

// String returns the instruction as written in textual LIR.
func (inst Instruction) String() string {
	return fmt.Sprintf("%%%d = %s %s, %s", inst.Dst, inst.Op.String(), inst.Lhs.String(), inst.Rhs.String())
}

// String renders Function f as textual LIR.
func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("fun @%s(): %s {\n", f.Name, f.Type))
	sb.WriteString(entryLabel)
	sb.WriteString(":\n")
	for _, e1 := range f.Body {
		sb.WriteString("  ")
		sb.WriteString(e1.String())
		sb.WriteRune('\n')
	}
	sb.WriteString("  ret ")
	sb.WriteString(f.Ret.String())
	sb.WriteString("\n}\n")
	return sb.String()
}

// String renders Program p as textual LIR. Functions are separated by one empty line.
func (p *Program) String() string {
	sb := strings.Builder{}
	for i1, e1 := range p.Functions {
		if i1 > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(e1.String())
	}
	return sb.String()
}

// Emit lowers every function of the compilation unit cu. The tree is expected to have passed ValidateTree.
func Emit(cu *CompUnit) (*Program, error) {
	if cu == nil {
		return nil, errors.New("syntax tree is <nil>")
	}
	p := &Program{Functions: make([]*Function, 0, len(cu.Funcs))}
	for _, e1 := range cu.Funcs {
		f, err := emitFunction(e1)
		if err != nil {
			return nil, err
		}
		p.Functions = append(p.Functions, f)
	}
	return p, nil
}

// emitFunction lowers the function definition fd with a fresh emitter.
func emitFunction(fd *FuncDef) (*Function, error) {
	if fd.Body == nil || fd.Body.Ret == nil || fd.Body.Ret.Value == nil {
		return nil, fmt.Errorf("line %d:%d: function %q has no return value", fd.Line, fd.Pos, fd.Name)
	}
	e := emitter{body: make([]Instruction, 0, 16)}
	ret, err := e.expr(fd.Body.Ret.Value)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", fd.Name, err)
	}
	return &Function{
		Name: fd.Name,
		Type: "i32",
		Body: e.body,
		Ret:  ret,
	}, nil
}

// emit records the instruction %n = op lhs, rhs for a new temporary n and returns a reference to it.
func (e *emitter) emit(op types.BinaryOp, lhs, rhs Operand) Operand {
	dst := e.seq
	e.seq++
	e.body = append(e.body, Instruction{Dst: dst, Op: op, Lhs: lhs, Rhs: rhs})
	return Operand{Temp: dst, IsTemp: true}
}

// expr lowers the expression n in post-order and returns the operand holding its result.
func (e *emitter) expr(n Expr) (Operand, error) {
	switch x := n.(type) {
	case *Integer:
		return Operand{Imm: int32(x.Value)}, nil
	case *Unary:
		op, err := e.expr(x.X)
		if err != nil {
			return Operand{}, err
		}
		switch x.Op {
		case OpPlus:
			return op, nil
		case OpNeg:
			return e.emit(types.Sub, Operand{}, op), nil
		case OpNot:
			return e.emit(types.Eq, op, Operand{}), nil
		}
		return Operand{}, fmt.Errorf("line %d:%d: unexpected unary operator %s", x.Line, x.Pos, x.Op)
	case *Binary:
		lhs, err := e.expr(x.X)
		if err != nil {
			return Operand{}, err
		}
		rhs, err := e.expr(x.Y)
		if err != nil {
			return Operand{}, err
		}
		switch x.Op {
		case OpLAnd, OpLOr:
			// Normalise both operands to 0/1 so the bitwise operator yields a boolean.
			lhs = e.emit(types.Ne, lhs, Operand{})
			rhs = e.emit(types.Ne, rhs, Operand{})
			if x.Op == OpLAnd {
				return e.emit(types.And, lhs, rhs), nil
			}
			return e.emit(types.Or, lhs, rhs), nil
		}
		if op, ok := binaryOps[x.Op]; ok {
			return e.emit(op, lhs, rhs), nil
		}
		return Operand{}, fmt.Errorf("line %d:%d: unexpected binary operator %s", x.Line, x.Pos, x.Op)
	case nil:
		return Operand{}, errors.New("expression is <nil>")
	default:
		return Operand{}, fmt.Errorf("unexpected expression node %T", n)
	}
}
