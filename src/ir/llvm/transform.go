// Package llvm provides means to transform the in-memory LIR into LLVM IR for the system installed LLVM runtime.
package llvm

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"tinygo.org/x/go-llvm"

	"exprc/src/ir/lir"
	"exprc/src/ir/lir/types"
	"exprc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// funcState holds the LLVM values generated so far for one LIR function.
type funcState struct {
	b    llvm.Builder
	vals map[lir.Value]llvm.Value
}

// -------------------
// ----- globals -----
// -------------------

// predicates maps LIR comparison operators to signed LLVM integer predicates.
var predicates = map[types.BinaryOp]llvm.IntPredicate{
	types.Eq: llvm.IntEQ,
	types.Ne: llvm.IntNE,
	types.Lt: llvm.IntSLT,
	types.Gt: llvm.IntSGT,
	types.Le: llvm.IntSLE,
	types.Ge: llvm.IntSGE,
}

// ---------------------
// ----- functions -----
// ---------------------

// GenLLVM lowers Module m into an LLVM module, verifies it and returns its textual LLVM IR.
func GenLLVM(opt util.Options, m *lir.Module) (string, error) {
	if m == nil {
		return "", errors.New("LIR module is <nil>")
	}

	ctx := llvm.NewContext()
	defer ctx.Dispose()

	b := ctx.NewBuilder()
	defer b.Dispose()

	// Set module name equal file name without file extension.
	name := strings.TrimSuffix(filepath.Base(opt.Src), filepath.Ext(opt.Src))
	if len(opt.Src) == 0 {
		name = m.Name
	}
	mod := ctx.NewModule(name)
	defer mod.Dispose()
	if t := targetTriple(opt); len(t) > 0 {
		mod.SetTarget(t)
	}

	i32 := ctx.Int32Type()
	ftyp := llvm.FunctionType(i32, nil, false)

	// Declare every function before generating bodies.
	funcs := make([]llvm.Value, len(m.Functions()))
	for i1, e1 := range m.Functions() {
		funcs[i1] = llvm.AddFunction(mod, e1.Name(), ftyp)
	}

	for i1, e1 := range m.Functions() {
		fs := funcState{
			b:    b,
			vals: make(map[lir.Value]llvm.Value, 16),
		}
		if err := fs.genFunction(ctx, funcs[i1], e1, i32); err != nil {
			return "", fmt.Errorf("function %s: %w", e1.Name(), err)
		}
	}

	if err := llvm.VerifyModule(mod, llvm.ReturnStatusAction); err != nil {
		return "", fmt.Errorf("LLVM module verification failed: %w", err)
	}

	s := mod.String()
	slog.Debug("generated LLVM module", "module", name, "functions", len(funcs), "bytes", len(s))
	return s, nil
}

// genFunction generates the body of LIR function f into the LLVM function fun.
func (fs *funcState) genFunction(ctx llvm.Context, fun llvm.Value, f *lir.Function, i32 llvm.Type) error {
	for _, e1 := range f.Blocks() {
		bb := ctx.AddBasicBlock(fun, strings.TrimPrefix(e1.Name(), "%"))
		fs.b.SetInsertPointAtEnd(bb)
		for _, e2 := range e1.Instructions() {
			switch x := e2.(type) {
			case *lir.Binary:
				if _, err := fs.genValue(x, i32); err != nil {
					return err
				}
			case *lir.Return:
				if x.Value() == nil {
					// Functions return i32, so a bare ret returns 0.
					fs.b.CreateRet(llvm.ConstInt(i32, 0, false))
					continue
				}
				v, err := fs.genValue(x.Value(), i32)
				if err != nil {
					return err
				}
				fs.b.CreateRet(v)
			default:
				return fmt.Errorf("unexpected instruction %s of kind %s", e2.Name(), e2.Kind())
			}
		}
	}
	return nil
}

// genValue returns the LLVM value of the LIR value v, generating it first if needed.
func (fs *funcState) genValue(v lir.Value, i32 llvm.Type) (llvm.Value, error) {
	if val, ok := fs.vals[v]; ok {
		return val, nil
	}
	switch x := v.(type) {
	case *lir.Integer:
		return llvm.ConstInt(i32, uint64(int64(x.Value())), true), nil
	case *lir.Binary:
		op1, err := fs.genValue(x.Lhs(), i32)
		if err != nil {
			return llvm.Value{}, err
		}
		op2, err := fs.genValue(x.Rhs(), i32)
		if err != nil {
			return llvm.Value{}, err
		}
		name := "t" + strings.TrimPrefix(x.Name(), "%")
		var res llvm.Value
		switch x.Op() {
		case types.Add:
			res = fs.b.CreateAdd(op1, op2, name)
		case types.Sub:
			res = fs.b.CreateSub(op1, op2, name)
		case types.Mul:
			res = fs.b.CreateMul(op1, op2, name)
		case types.SDiv:
			res = fs.b.CreateSDiv(op1, op2, name)
		case types.SRem:
			res = fs.b.CreateSRem(op1, op2, name)
		case types.And:
			res = fs.b.CreateAnd(op1, op2, name)
		case types.Or:
			res = fs.b.CreateOr(op1, op2, name)
		case types.Xor:
			res = fs.b.CreateXor(op1, op2, name)
		case types.Shl:
			res = fs.b.CreateShl(op1, op2, name)
		case types.Shr:
			res = fs.b.CreateLShr(op1, op2, name)
		case types.Sar:
			res = fs.b.CreateAShr(op1, op2, name)
		default:
			p, ok := predicates[x.Op()]
			if !ok {
				return llvm.Value{}, fmt.Errorf("unexpected operator %s", x.Op())
			}
			// Comparisons yield i1, widen to the i32 the LIR expects.
			cmp := fs.b.CreateICmp(p, op1, op2, "")
			res = fs.b.CreateZExt(cmp, i32, name)
		}
		fs.vals[v] = res
		return res, nil
	default:
		return llvm.Value{}, fmt.Errorf("unexpected operand %s of kind %s", v.Name(), v.Kind())
	}
}

// targetTriple returns the LLVM target triple for the target architecture of opt, or an empty string for the host
// default.
func targetTriple(opt util.Options) string {
	switch opt.TargetArch {
	case util.Riscv32:
		return "riscv32-unknown-none-elf"
	case util.Riscv64:
		return "riscv64-unknown-linux-gnu"
	case util.Aarch64:
		return "aarch64-unknown-linux-gnu"
	case util.X86_64:
		return "x86_64-pc-linux-gnu"
	case util.X86_32:
		return "i386-pc-linux-gnu"
	default:
		return ""
	}
}
