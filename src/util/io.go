package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Writer buffers assembler text in a strings.Builder. Instructions are written with the mnemonic padded to a fixed
// column, the way the generated RISC-V listing is laid out.
type Writer struct {
	sb strings.Builder
}

// ---------------------
// ----- Constants -----
// ---------------------

// stdinTimeout is how long ReadSource waits for input on stdin.
const stdinTimeout = 500 * time.Millisecond

// ---------------------
// ----- Functions -----
// ---------------------

// Write writes a format string to the Writer's buffer.
func (w *Writer) Write(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
}

// Directive writes an assembler directive such as .text.
func (w *Writer) Directive(name string, args ...string) {
	if len(args) == 0 {
		w.sb.WriteString(fmt.Sprintf("  %s\n", name))
		return
	}
	w.sb.WriteString(fmt.Sprintf("  %s %s\n", name, strings.Join(args, ", ")))
}

// Ins0 writes a one-line instruction without operands.
func (w *Writer) Ins0(op string) {
	w.sb.WriteString(fmt.Sprintf("  %s\n", op))
}

// Ins1 writes a one-line instruction using the operator and single operand.
func (w *Writer) Ins1(op, rs1 string) {
	w.sb.WriteString(fmt.Sprintf("  %-6s%s\n", op, rs1))
}

// Ins1imm writes a one-line instruction using the operator, destination register and signed immediate.
func (w *Writer) Ins1imm(op, rd string, imm int) {
	w.sb.WriteString(fmt.Sprintf("  %-6s%s, %d\n", op, rd, imm))
}

// Ins2 writes a one-line instruction using the operator, destination register and single source register.
func (w *Writer) Ins2(op, rd, rs1 string) {
	w.sb.WriteString(fmt.Sprintf("  %-6s%s, %s\n", op, rd, rs1))
}

// Ins3 writes a one-line instruction using the operator, destination register and two source registers.
func (w *Writer) Ins3(op, rd, rs1, rs2 string) {
	w.sb.WriteString(fmt.Sprintf("  %-6s%s, %s, %s\n", op, rd, rs1, rs2))
}

// Label writes a one-line label with the given name.
func (w *Writer) Label(name string) {
	w.sb.WriteString(fmt.Sprintf("%s:\n", name))
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.sb.String()
}

// WriteTo writes the buffered text to out and empties the buffer.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.sb.String())
	w.sb.Reset()
	return int64(n), err
}

// ReadSource reads source code from file or stdin.
// If the Options structure holds a path the file is read. Else the function waits for a short period for input on
// stdin. If no input on stdin is provided the function returns an error.
func ReadSource(opt Options) (string, error) {
	if len(opt.Src) > 0 && opt.Src != "-" {
		b, err := os.ReadFile(opt.Src)
		if err != nil {
			return "", fmt.Errorf("could not read source: %w", err)
		}
		return string(b), nil
	}

	c := make(chan string, 1)
	cerr := make(chan error, 1)

	// Concurrently wait for input on stdin.
	go func() {
		b, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			cerr <- err
			return
		}
		c <- string(b)
	}()

	select {
	case <-time.After(stdinTimeout):
		return "", errors.New("expected input from stdin, got none")
	case err := <-cerr:
		return "", fmt.Errorf("could not read stdin: %w", err)
	case s := <-c:
		return s, nil
	}
}

// WriteOutput writes s to the output file named by opt, or to stdout if opt names no output file.
func WriteOutput(opt Options, s string, stdout io.Writer) error {
	if len(opt.Out) == 0 {
		_, err := io.WriteString(stdout, s)
		return err
	}
	f, err := os.Create(opt.Out)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(s); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
