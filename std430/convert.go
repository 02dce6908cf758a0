package std430

// copyOp is one contiguous byte range copied between layouts.
type copyOp struct {
	hostOff int
	gpuOff  int
	size    int
}

// Converter translates arrays of a described struct between the host
// memory layout and std430.
type Converter struct {
	s           *Struct
	stride      int
	transparent bool
	ops         []copyOp
}

// NewConverter builds the converter for a described struct.
func NewConverter(s *Struct) *Converter {
	c := &Converter{s: s, stride: s.Stride()}
	c.ops = appendOps(c.ops, s, 0, 0)
	c.transparent = c.stride == s.HostSize
	if c.transparent {
		for _, op := range c.ops {
			if op.hostOff != op.gpuOff {
				c.transparent = false
				break
			}
		}
	}
	return c
}

// appendOps flattens a struct into per-range copy operations.
// Matrices decompose into one range per column because std430 pads
// each column to the column alignment while the host packs columns
// tightly.
func appendOps(ops []copyOp, s *Struct, hostBase, gpuBase int) []copyOp {
	off := 0
	for _, f := range s.Fields {
		fs, fa := fieldLayout(f)
		off = alignUp(off, fa)
		switch {
		case f.Kind == KindStruct:
			ops = appendOps(ops, f.Struct, hostBase+f.HostOffset, gpuBase+off)
		case f.Kind.isMatrix():
			cols, rows := f.Kind.matShape()
			colStride, _ := columnLayout(rows)
			for c := 0; c < cols; c++ {
				ops = append(ops, copyOp{
					hostOff: hostBase + f.HostOffset + c*rows*4,
					gpuOff:  gpuBase + off + c*colStride,
					size:    rows * 4,
				})
			}
		default:
			ops = append(ops, copyOp{
				hostOff: hostBase + f.HostOffset,
				gpuOff:  gpuBase + off,
				size:    min(f.HostSize, fs),
			})
		}
		off += fs
	}
	return ops
}

func (k Kind) isMatrix() bool {
	cols, _ := k.matShape()
	return cols != 0
}

// NeedsConversion reports whether the host layout differs from
// std430. When false, callers may upload host memory directly.
func (c *Converter) NeedsConversion() bool { return !c.transparent }

// GPULayoutSize returns the std430 stride of one array element.
func (c *Converter) GPULayoutSize() int { return c.stride }

// HostSize returns the host size of one array element.
func (c *Converter) HostSize() int { return c.s.HostSize }

// ConvertToGPU copies count elements from host layout into out, which
// must hold at least count*GPULayoutSize() bytes.
func (c *Converter) ConvertToGPU(host, out []byte, count int) {
	for i := 0; i < count; i++ {
		hb := i * c.s.HostSize
		gb := i * c.stride
		for _, op := range c.ops {
			copy(out[gb+op.gpuOff:gb+op.gpuOff+op.size], host[hb+op.hostOff:hb+op.hostOff+op.size])
		}
	}
}

// ConvertFromGPU copies count elements from std430 layout into out,
// which must hold at least count*HostSize() bytes.
func (c *Converter) ConvertFromGPU(gpu, out []byte, count int) {
	for i := 0; i < count; i++ {
		hb := i * c.s.HostSize
		gb := i * c.stride
		for _, op := range c.ops {
			copy(out[hb+op.hostOff:hb+op.hostOff+op.size], gpu[gb+op.gpuOff:gb+op.gpuOff+op.size])
		}
	}
}
