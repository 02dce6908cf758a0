package shade

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/gogpu/shade/driver"
	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/ir"
	"github.com/gogpu/shade/std430"
)

// Access declares how kernels use a storage buffer.
type Access int

const (
	// ReadWrite lets kernels both load and store elements.
	ReadWrite Access = iota
	// ReadOnly marks the buffer readonly in the shader.
	ReadOnly
	// WriteOnly marks the buffer writeonly in the shader.
	WriteOnly
)

func (a Access) qualifier() string {
	switch a {
	case ReadOnly:
		return "readonly"
	case WriteOnly:
		return "writeonly"
	}
	return ""
}

// converterFor builds the std430 converter of a buffer element type.
// Primitive tags are wrapped in a synthetic single-field struct so one
// code path covers both; struct tags register through Describe.
func converterFor(t reflect.Type) (*std430.Converter, error) {
	if k, ok := layoutKind(t); ok {
		s := &std430.Struct{
			Fields:   []std430.Field{{Name: "v", Kind: k, HostOffset: 0, HostSize: int(t.Size())}},
			HostSize: int(t.Size()),
		}
		return std430.NewConverter(s), nil
	}
	if t.Kind() == reflect.Struct {
		s, err := std430.Describe(t, layoutKind)
		if err != nil {
			return nil, err
		}
		return std430.NewConverter(s), nil
	}
	return nil, fmt.Errorf("shade: %v is not a storage buffer element type", t)
}

// Buffer is a typed shader storage buffer. T is a scalar, vector,
// matrix or registered struct tag; elements convert between the host
// layout and std430 automatically on Upload and Download.
//
// The GPU object is created lazily on first upload or dispatch, so
// buffers may be built before any context exists.
type Buffer[T any] struct {
	count  int
	access Access
	conv   *std430.Converter
	handle uint32
	made   bool
}

// NewBuffer creates a buffer of count elements. The contents are
// undefined until uploaded or written by a kernel.
func NewBuffer[T any](count int, access Access) (*Buffer[T], error) {
	if count < 0 {
		return nil, fmt.Errorf("shade: buffer count %d", count)
	}
	var zero T
	conv, err := converterFor(reflect.TypeOf(zero))
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{count: count, access: access, conv: conv}, nil
}

// NewBufferFrom creates a buffer sized and initialised from data.
func NewBufferFrom[T any](data []T, access Access) (*Buffer[T], error) {
	b, err := NewBuffer[T](len(data), access)
	if err != nil {
		return nil, err
	}
	if err := b.Upload(data); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// Count returns the element count.
func (b *Buffer[T]) Count() int { return b.count }

// Stride returns the std430 stride of one element in bytes.
func (b *Buffer[T]) Stride() int { return b.conv.GPULayoutSize() }

// deviceHandle creates the GPU buffer on first use.
func (b *Buffer[T]) deviceHandle() (uint32, error) {
	if b.made {
		return b.handle, nil
	}
	h, err := driver.CreateBuffer(b.count * b.conv.GPULayoutSize())
	if err != nil {
		return 0, err
	}
	b.handle = h
	b.made = true
	return h, nil
}

// Handle returns the GPU buffer object, creating it if needed.
func (b *Buffer[T]) Handle() (uint32, error) { return b.deviceHandle() }

// hostBytes views a slice's backing memory as bytes.
func hostBytes[T any](data []T, elemSize int) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*elemSize)
}

// Upload copies elements to the GPU, converting to std430. Slices
// longer than the buffer are clamped to its capacity.
func (b *Buffer[T]) Upload(data []T) error {
	n := min(len(data), b.count)
	if n == 0 {
		return nil
	}
	handle, err := b.deviceHandle()
	if err != nil {
		return err
	}
	host := hostBytes(data, b.conv.HostSize())
	if !b.conv.NeedsConversion() {
		return driver.UploadBuffer(handle, 0, host[:n*b.conv.HostSize()])
	}
	gpu := make([]byte, n*b.conv.GPULayoutSize())
	b.conv.ConvertToGPU(host, gpu, n)
	return driver.UploadBuffer(handle, 0, gpu)
}

// Download copies elements back from the GPU, converting from std430.
// Slices longer than the buffer are clamped to its capacity.
func (b *Buffer[T]) Download(out []T) error {
	n := min(len(out), b.count)
	if n == 0 {
		return nil
	}
	handle, err := b.deviceHandle()
	if err != nil {
		return err
	}
	host := hostBytes(out, b.conv.HostSize())
	if !b.conv.NeedsConversion() {
		return driver.DownloadBuffer(handle, 0, host[:n*b.conv.HostSize()])
	}
	gpu := make([]byte, n*b.conv.GPULayoutSize())
	if err := driver.DownloadBuffer(handle, 0, gpu); err != nil {
		return err
	}
	b.conv.ConvertFromGPU(gpu, host, n)
	return nil
}

// Release frees the GPU buffer. The Buffer may be reused; the next
// upload or dispatch recreates the object.
func (b *Buffer[T]) Release() {
	if b.made && b.handle != 0 {
		driver.DeleteBuffer(b.handle)
	}
	b.handle = 0
	b.made = false
}

// Bind declares the buffer in the recording context and returns the
// in-kernel accessor. Each Bind call allocates the next storage
// binding slot; bind once per kernel and reuse the accessor.
func (b *Buffer[T]) Bind() *BufferVar[T] {
	ctx := current()
	if ctx == nil {
		Logger().Warn("shade: buffer bound outside a kernel")
		return &BufferVar[T]{}
	}
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Struct && !isPrimitiveTag(t) {
		if _, err := ctx.registerStruct(t); err != nil {
			Logger().Error("shade: buffer element struct", "err", err)
			return &BufferVar[T]{}
		}
	}
	_, name := ctx.registerBuffer(glslTypeName[T](), b.access.qualifier(), b)
	return &BufferVar[T]{name: name}
}

// BufferVar is the in-kernel face of a bound buffer: an unsized
// element array addressed by int expressions.
type BufferVar[T any] struct {
	name string
}

// At subscripts the buffer, yielding an element lvalue.
func (v *BufferVar[T]) At(i Operand[int32]) *Var[T] {
	if v.name == "" {
		return &Var[T]{}
	}
	text := glsl.Expr(ir.ArrayAccess{Base: ir.Load{Name: v.name}, Index: node(i)})
	return &Var[T]{name: text, external: true}
}

// Get reads an element.
func (v *BufferVar[T]) Get(i Operand[int32]) Expr[T] { return v.At(i).Load() }

// Set stores an element.
func (v *BufferVar[T]) Set(i Operand[int32], val Operand[T]) { v.At(i).Set(val) }

// Len returns the runtime element count of the bound range.
func (v *BufferVar[T]) Len() Expr[int32] {
	if v.name == "" {
		return Expr[int32]{}
	}
	return Raw[int32](v.name + ".length()")
}
