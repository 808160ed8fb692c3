package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprc/src/util"
)

// srcPath is the relative path from the src package to the bundled sample programs.
const srcPath = "../resources/c"

// samples lists the sample programs that have golden output for every mode in testdata/golden.
var samples = []string{"return5", "zero", "neg", "not", "precedence", "arith", "logic", "multi"}

// execute runs the root command with args and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(normaliseArgs(args))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestGolden compiles every sample program in koopa and riscv mode and compares the output to its golden file.
func TestGolden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	for _, e1 := range samples {
		for _, mode := range []string{"koopa", "riscv"} {
			t.Run(e1+"/"+mode, func(t *testing.T) {
				out, _, err := execute(t, "-"+mode, filepath.Join(srcPath, e1+".c"))
				require.NoError(t, err)
				g.Assert(t, e1+"."+mode, []byte(out))
			})
		}
	}
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, util.AppVersion, cmd.Version)

	for _, e1 := range []struct {
		name      string
		shorthand string
		def       string
	}{
		{"output", "o", ""},
		{"verbose", "v", "false"},
		{"arch", "", ""},
		{"config", "", ""},
		{"registers", "", "[]"},
		{"tokens", "", "false"},
		{"tree", "", "false"},
	} {
		f := cmd.Flags().Lookup(e1.name)
		require.NotNil(t, f, e1.name)
		assert.Equal(t, e1.shorthand, f.Shorthand, e1.name)
		assert.Equal(t, e1.def, f.DefValue, e1.name)
	}
}

func TestNormaliseArgs(t *testing.T) {
	tests := []struct {
		in  []string
		exp []string
	}{
		{[]string{"-koopa", "a.c", "-o", "a.koopa"}, []string{"koopa", "a.c", "-o", "a.koopa"}},
		{[]string{"-v", "--riscv", "a.c"}, []string{"-v", "riscv", "a.c"}},
		{[]string{"llvm", "-"}, []string{"llvm", "-"}},
		{[]string{"-perf", "a.c"}, []string{"-perf", "a.c"}},
		{[]string{"--", "-koopa"}, []string{"--", "-koopa"}},
	}
	for _, tt := range tests {
		in := append([]string(nil), tt.in...)
		assert.Equal(t, tt.exp, normaliseArgs(tt.in))
		assert.Equal(t, in, tt.in, "input is not modified")
	}
}

func TestOutputFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "neg.S")
	out, _, err := execute(t, "-riscv", filepath.Join(srcPath, "neg.c"), "-o", p)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "  .text\n  .global main\nmain:\n  li    t0, 3\n  sub   t0, x0, t0\n  mv    a0, t0\n  ret\n", string(b))
}

func TestArchitectures(t *testing.T) {
	out, _, err := execute(t, "riscv", filepath.Join(srcPath, "arith.c"), "--arch", "riscv64")
	require.NoError(t, err)
	assert.Contains(t, out, "  subw  t1, t1, t0\n")
	assert.Contains(t, out, "  divw  t2, t1, t2\n")
	assert.Contains(t, out, "  remw  t3, t2, t3\n")

	_, _, err = execute(t, "riscv", filepath.Join(srcPath, "arith.c"), "--arch", "aarch64")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code generation error")
	assert.Contains(t, err.Error(), "unsupported output architecture aarch64")

	_, _, err = execute(t, "riscv", filepath.Join(srcPath, "arith.c"), "--arch", "z80")
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "exprc.yaml")
	require.NoError(t, os.WriteFile(p, []byte("arch: riscv32\nregisters: [s1, s2]\n"), 0o644))

	out, _, err := execute(t, "riscv", filepath.Join(srcPath, "neg.c"), "--config", p)
	require.NoError(t, err)
	assert.Contains(t, out, "  li    s1, 3\n  sub   s1, x0, s1\n  mv    a0, s1\n")

	// Flags win over the config file.
	out, _, err = execute(t, "riscv", filepath.Join(srcPath, "neg.c"), "--config", p, "--registers", "t3")
	require.NoError(t, err)
	assert.Contains(t, out, "  li    t3, 3\n")

	require.NoError(t, os.WriteFile(p, []byte("arch: riscv32\nthreads: 4\n"), 0o644))
	_, _, err = execute(t, "riscv", filepath.Join(srcPath, "neg.c"), "--config", p)
	assert.Error(t, err)
}

func TestTokensAndTree(t *testing.T) {
	out, _, err := execute(t, "koopa", filepath.Join(srcPath, "neg.c"), "--tokens")
	require.NoError(t, err)
	assert.Contains(t, out, "RETURN")
	assert.NotContains(t, out, "fun @main")

	out, stderr, err := execute(t, "koopa", filepath.Join(srcPath, "neg.c"), "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "fun @main")
	assert.Contains(t, stderr, "UNARY_EXPRESSION [\"-\"]")
}

func TestVerbose(t *testing.T) {
	_, stderr, err := execute(t, "riscv", filepath.Join(srcPath, "multi.c"), "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "functions=2")
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
		return p
	}

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown mode", []string{"perf", write("a.c", "int main() { return 0; }")}, "unknown mode"},
		{"missing input", []string{"koopa"}, "accepts 2 arg(s)"},
		{"missing file", []string{"koopa", filepath.Join(dir, "missing.c")}, "could not read source code"},
		{"syntax", []string{"koopa", write("b.c", "int main() { return 1 +; }")}, "parse error"},
		{"duplicate", []string{"koopa", write("c.c", "int f() { return 0; }\nint f() { return 1; }")}, "already defined"},
		{"range", []string{"riscv", write("d.c", "int main() { return 4294967296; }")}, "syntax tree error"},
		{"tokens", []string{"koopa", write("e.c", "int main() { return $; }"), "--tokens"}, "syntax error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLLVM(t *testing.T) {
	out, _, err := execute(t, "-llvm", filepath.Join(srcPath, "multi.c"))
	require.NoError(t, err)
	assert.Contains(t, out, "define i32 @main()")
	assert.Contains(t, out, "define i32 @helper()")
}
