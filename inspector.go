package shade

import (
	"fmt"
	"io"

	"github.com/gogpu/shade/driver"
)

// PrintCode writes the kernel's assembled GLSL to w.
func (k *Kernel) PrintCode(w io.Writer) error {
	_, err := io.WriteString(w, k.Code())
	return err
}

// Compile performs a dry-run compile against the driver, returning
// the compiler's diagnostics on failure. Useful for validating a
// kernel without dispatching it.
func (k *Kernel) Compile() error {
	if err := driver.Ensure(); err != nil {
		return err
	}
	restore := driver.Guard()
	defer restore()
	if _, err := driver.ComputeProgram(k.ctx.CompleteCode()); err != nil {
		return fmt.Errorf("shade: compile %s: %w", k.name, err)
	}
	return nil
}
