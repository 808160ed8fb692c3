package util

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Mode selects how far the pipeline runs.
type Mode int

// Options holds the compiler configuration collected from command line flags and the optional config file.
type Options struct {
	Src         string   // Path to source file.
	Out         string   // Path to output file. Empty means stdout.
	Mode        Mode     // Output mode.
	Verbose     bool     // Set true if compiler should log debug statistics to stderr.
	TokenStream bool     // Set true if compiler should output token stream and exit.
	PrintTree   bool     // Set true if compiler should print the syntax tree to stderr.
	TargetArch  int      // Output target architecture.
	Config      string   // Path to YAML config file. Empty if none.
	Registers   []string // Register pool override for the assembly generator. Empty means the target's default.
}

// Config is the on-disk YAML configuration. Every field is optional; flags given on the command line win.
type Config struct {
	Arch      string   `yaml:"arch"`
	Registers []string `yaml:"registers"`
	Verbose   bool     `yaml:"verbose"`
}

// ---------------------
// ----- Constants -----
// ---------------------

// AppVersion is reported by the version flag.
const AppVersion = "exprc 1.0"

// Output modes.
const (
	ModeUnknown Mode = iota
	ModeKoopa        // Stop after emitting textual LIR.
	ModeRiscv        // Continue through RISC-V assembly generation.
	ModeLLVM         // Lower the LIR to LLVM IR.
)

// Target machine architectures.
const (
	UnknownArch = iota
	X86_64
	X86_32
	Aarch64
	Riscv64
	Riscv32
)

// -------------------
// ----- Globals -----
// -------------------

// ErrUnknownMode is returned by ParseMode for unrecognised mode words.
var ErrUnknownMode = errors.New("unknown mode")

// modes maps mode words to modes.
var modes = map[string]Mode{
	"koopa": ModeKoopa,
	"riscv": ModeRiscv,
	"llvm":  ModeLLVM,
}

// arches maps architecture identifiers to target architectures.
var arches = map[string]int{
	"aarch64": Aarch64,
	"riscv64": Riscv64,
	"riscv32": Riscv32,
	"x86_64":  X86_64,
	"x86_32":  X86_32,
}

// ---------------------
// ----- functions -----
// ---------------------

// String returns the mode word of m.
func (m Mode) String() string {
	switch m {
	case ModeKoopa:
		return "koopa"
	case ModeRiscv:
		return "riscv"
	case ModeLLVM:
		return "llvm"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode word. The word may carry leading dashes, so "-koopa" and "koopa" are the same mode.
func ParseMode(s string) (Mode, error) {
	if m, ok := modes[strings.TrimLeft(s, "-")]; ok {
		return m, nil
	}
	return ModeUnknown, fmt.Errorf("%w %q, expected one of koopa, riscv or llvm", ErrUnknownMode, s)
}

// ParseArch parses an architecture identifier such as riscv64.
func ParseArch(s string) (int, error) {
	if a, ok := arches[strings.ToLower(s)]; ok {
		return a, nil
	}
	return UnknownArch, fmt.Errorf("unexpected architecture identifier: %s", s)
}

// ArchName returns the identifier of the target architecture arch.
func ArchName(arch int) string {
	for k, v := range arches {
		if v == arch {
			return k
		}
	}
	return "unknown"
}

// LoadConfig reads and decodes the YAML config file at path. Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF and yields the zero Config.
		if len(bytes.TrimSpace(b)) == 0 {
			return Config{}, nil
		}
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge fills every option not set on the command line from cfg.
func (opt *Options) Merge(cfg Config) error {
	if opt.TargetArch == UnknownArch && len(cfg.Arch) > 0 {
		a, err := ParseArch(cfg.Arch)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		opt.TargetArch = a
	}
	if len(opt.Registers) == 0 {
		opt.Registers = cfg.Registers
	}
	opt.Verbose = opt.Verbose || cfg.Verbose
	return nil
}
