package shade

import (
	"io"

	"github.com/gogpu/shade/driver"
)

// EnableProfiling toggles GPU span collection for kernels recorded
// with WithProfiling.
func EnableProfiling(on bool) {
	driver.GlobalProfiler().SetEnabled(on)
}

// ProfileReport writes the aggregated per-kernel GPU timing table:
// count, min, avg, max, total and share of measured time, sorted by
// total descending.
func ProfileReport(w io.Writer) error {
	return driver.GlobalProfiler().Report(w)
}

// ResetProfile discards collected timing samples.
func ResetProfile() {
	driver.GlobalProfiler().Reset()
}
