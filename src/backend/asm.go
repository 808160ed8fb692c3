package backend

import (
	"errors"
	"fmt"
	"io"

	"exprc/src/backend/riscv"
	"exprc/src/ir/lir"
	"exprc/src/util"
)

// ---------------------
// ----- Functions -----
// ---------------------

// GenerateAssembler generates assembler for Module m and writes it to w. The architecture is defined by opt.
func GenerateAssembler(opt util.Options, m *lir.Module, w io.Writer) error {
	if m == nil {
		return errors.New("LIR module is <nil>")
	}
	switch opt.TargetArch {
	case util.Riscv64, util.Riscv32:
		return riscv.GenRiscv(opt, m, w)
	case util.UnknownArch:
		return errors.New("no output architecture set")
	default:
		return fmt.Errorf("unsupported output architecture %s", util.ArchName(opt.TargetArch))
	}
}
