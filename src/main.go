package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"exprc/src/backend"
	"exprc/src/frontend"
	"exprc/src/ir"
	"exprc/src/ir/lir"
	"exprc/src/ir/llvm"
	"exprc/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// flags holds the raw command line flags before they are resolved into util.Options.
type flags struct {
	out       string
	arch      string
	config    string
	registers []string
	verbose   bool
	tokens    bool
	tree      bool
}

// ---------------------
// ----- Functions -----
// ---------------------

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(normaliseArgs(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand creates the exprc command. It takes the output mode and the source path as positional arguments.
func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "exprc <koopa|riscv|llvm> <input>",
		Short: "exprc - compiles integer return expressions",
		Long: "Compiles a C subset of int functions returning one integer expression into textual LIR, " +
			"RISC-V assembler or LLVM IR. Use - as input to read from stdin.",
		Version:       util.AppVersion,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := f.options(args)
			if err != nil {
				return err
			}
			slog.SetDefault(util.NewLogger(cmd.ErrOrStderr(), opt.Verbose))
			return run(opt, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&f.out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&f.arch, "arch", "", "target architecture (riscv32|riscv64)")
	cmd.Flags().StringVar(&f.config, "config", "", "path to YAML config file")
	cmd.Flags().StringSliceVar(&f.registers, "registers", nil, "register pool used by the RISC-V generator")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline statistics to stderr")
	cmd.Flags().BoolVar(&f.tokens, "tokens", false, "write the token stream and exit")
	cmd.Flags().BoolVar(&f.tree, "tree", false, "print the syntax tree to stderr")

	return cmd
}

// normaliseArgs strips the leading dash of a mode word given as "-koopa", so the flag parser treats it as the
// positional mode argument. Only the first mode word is touched.
func normaliseArgs(args []string) []string {
	res := make([]string, len(args))
	copy(res, args)
	for i1, e1 := range res {
		if e1 == "--" {
			break
		}
		if !strings.HasPrefix(e1, "-") || e1 == "-" {
			continue
		}
		if _, err := util.ParseMode(e1); err == nil {
			res[i1] = strings.TrimLeft(e1, "-")
			break
		}
	}
	return res
}

// options resolves the flags, the positional arguments and the optional config file into compiler options.
func (f *flags) options(args []string) (util.Options, error) {
	mode, err := util.ParseMode(args[0])
	if err != nil {
		return util.Options{}, err
	}
	opt := util.Options{
		Src:         args[1],
		Out:         f.out,
		Mode:        mode,
		Verbose:     f.verbose,
		TokenStream: f.tokens,
		PrintTree:   f.tree,
		Config:      f.config,
		Registers:   f.registers,
	}
	if len(f.arch) > 0 {
		if opt.TargetArch, err = util.ParseArch(f.arch); err != nil {
			return opt, err
		}
	}
	if len(opt.Config) > 0 {
		cfg, err := util.LoadConfig(opt.Config)
		if err != nil {
			return opt, err
		}
		if err := opt.Merge(cfg); err != nil {
			return opt, err
		}
	}
	if opt.TargetArch == util.UnknownArch {
		opt.TargetArch = util.Riscv32
	}
	return opt, nil
}

// run reads the source named by opt and writes the compiled result, or the token stream, to the output.
func run(opt util.Options, stdout, stderr io.Writer) error {
	src, err := util.ReadSource(opt)
	if err != nil {
		return fmt.Errorf("could not read source code: %w", err)
	}

	if opt.TokenStream {
		buf := bytes.Buffer{}
		if err := frontend.TokenStream(src, &buf); err != nil {
			return fmt.Errorf("syntax error: %w", err)
		}
		return util.WriteOutput(opt, buf.String(), stdout)
	}

	s, err := compile(opt, src, stderr)
	if err != nil {
		return err
	}
	return util.WriteOutput(opt, s, stdout)
}

// compile runs the pipeline on src up to the stage selected by opt.Mode and returns the resulting text.
func compile(opt util.Options, src string, stderr io.Writer) (string, error) {
	cu, err := frontend.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}
	if opt.PrintTree {
		cu.Print(stderr)
	}
	if err := ir.ValidateTree(cu); err != nil {
		return "", fmt.Errorf("syntax tree error: %w", err)
	}

	p, err := ir.Emit(cu)
	if err != nil {
		return "", fmt.Errorf("IR error: %w", err)
	}
	text := p.String()
	slog.Debug("emitted LIR", "functions", len(p.Functions))
	if opt.Mode == util.ModeKoopa {
		return text, nil
	}

	m, err := lir.Parse(text)
	if err != nil {
		return "", fmt.Errorf("IR error: %w", err)
	}

	switch opt.Mode {
	case util.ModeRiscv:
		buf := bytes.Buffer{}
		if err := backend.GenerateAssembler(opt, m, &buf); err != nil {
			return "", fmt.Errorf("code generation error: %w", err)
		}
		return buf.String(), nil
	case util.ModeLLVM:
		s, err := llvm.GenLLVM(opt, m)
		if err != nil {
			return "", fmt.Errorf("error reported by LLVM: %w", err)
		}
		return s, nil
	default:
		return "", fmt.Errorf("%w %q", util.ErrUnknownMode, opt.Mode)
	}
}
