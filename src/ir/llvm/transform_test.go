package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprc/src/ir/lir"
	"exprc/src/util"
)

func TestGenLLVM(t *testing.T) {
	m, err := lir.Parse("fun @main(): i32 {\n%entry:\n  %0 = mul 2, 3\n  %1 = add 1, %0\n  %2 = le %1, 7\n  ret %2\n}\n\n" +
		"fun @neg(): i32 {\n%entry:\n  %0 = sub 0, 3\n  %1 = srem %0, 2\n  ret %1\n}\n")
	require.NoError(t, err)

	s, err := GenLLVM(util.Options{Src: "prog.c", TargetArch: util.Riscv32}, m)
	require.NoError(t, err)

	assert.Contains(t, s, "; ModuleID = 'prog'")
	assert.Contains(t, s, `target triple = "riscv32-unknown-none-elf"`)
	assert.Contains(t, s, "define i32 @main()")
	assert.Contains(t, s, "define i32 @neg()")
	// Every operand is a constant, so the builder folds both bodies: (1 + 2*3) <= 7 and -3 % 2.
	assert.Contains(t, s, "ret i32 1")
	assert.Contains(t, s, "ret i32 -1")
}

func TestGenLLVMLiteralReturn(t *testing.T) {
	m, err := lir.Parse("fun @main(): i32 {\n%entry:\n  ret 5\n}\n")
	require.NoError(t, err)
	s, err := GenLLVM(util.Options{}, m)
	require.NoError(t, err)
	assert.Contains(t, s, "ret i32 5")

	_, err = GenLLVM(util.Options{}, nil)
	assert.Error(t, err)
}
