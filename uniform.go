package shade

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/shade/driver"
	"github.com/gogpu/shade/ir"
)

// uniformCounter feeds auto-generated uniform names. Global so
// uniforms created for different kernels never collide.
var uniformCounter atomic.Int64

// Uniform is a host-settable shader parameter. Load records a read in
// the active kernel and registers the uniform for declaration and
// upload; Set changes the value seen by the next dispatch without
// re-recording the kernel.
type Uniform[T any] struct {
	name  string
	value T
}

// NewUniform creates a uniform with an auto-generated name.
func NewUniform[T any](initial T) *Uniform[T] {
	return NewNamedUniform(fmt.Sprintf("u%d", uniformCounter.Add(1)-1), initial)
}

// NewNamedUniform creates a uniform with an explicit GLSL name.
func NewNamedUniform[T any](name string, initial T) *Uniform[T] {
	return &Uniform[T]{name: name, value: initial}
}

// Name returns the uniform's GLSL name.
func (u *Uniform[T]) Name() string { return u.name }

// Set stores the value uploaded at the next dispatch.
func (u *Uniform[T]) Set(v T) { u.value = v }

// Get returns the current host value.
func (u *Uniform[T]) Get() T { return u.value }

// Load records a read of the uniform in the active kernel.
func (u *Uniform[T]) Load() Expr[T] {
	if ctx := current(); ctx != nil {
		ctx.registerUniform(u)
	}
	return exprOf[T](ir.Load{Name: u.name})
}

func (u *Uniform[T]) uniformName() string { return u.name }

func (u *Uniform[T]) uniformType() string { return glslTypeName[T]() }

// upload pushes the current value into the bound program.
func (u *Uniform[T]) upload(prog uint32) error {
	loc := driver.UniformLocation(prog, u.name)
	switch v := any(u.value).(type) {
	case float32:
		driver.Uniform1f(loc, v)
	case int32:
		driver.Uniform1i(loc, v)
	case bool:
		b := int32(0)
		if v {
			b = 1
		}
		driver.Uniform1i(loc, b)
	case Vec2:
		driver.Uniform2fv(loc, []float32{v.X, v.Y})
	case Vec3:
		driver.Uniform3fv(loc, []float32{v.X, v.Y, v.Z})
	case Vec4:
		driver.Uniform4fv(loc, []float32{v.X, v.Y, v.Z, v.W})
	case IVec2:
		driver.Uniform2iv(loc, []int32{v.X, v.Y})
	case IVec3:
		driver.Uniform3iv(loc, []int32{v.X, v.Y, v.Z})
	case IVec4:
		driver.Uniform4iv(loc, []int32{v.X, v.Y, v.Z, v.W})
	case Mat2:
		driver.UniformMatrix(loc, 2, 2, matFloats(v[0], v[1]))
	case Mat2x3:
		driver.UniformMatrix(loc, 2, 3, matFloats(v[0], v[1]))
	case Mat2x4:
		driver.UniformMatrix(loc, 2, 4, matFloats(v[0], v[1]))
	case Mat3x2:
		driver.UniformMatrix(loc, 3, 2, matFloats(v[0], v[1], v[2]))
	case Mat3:
		driver.UniformMatrix(loc, 3, 3, matFloats(v[0], v[1], v[2]))
	case Mat3x4:
		driver.UniformMatrix(loc, 3, 4, matFloats(v[0], v[1], v[2]))
	case Mat4x2:
		driver.UniformMatrix(loc, 4, 2, matFloats(v[0], v[1], v[2], v[3]))
	case Mat4x3:
		driver.UniformMatrix(loc, 4, 3, matFloats(v[0], v[1], v[2], v[3]))
	case Mat4:
		driver.UniformMatrix(loc, 4, 4, matFloats(v[0], v[1], v[2], v[3]))
	default:
		return fmt.Errorf("shade: uniform %s: unsupported type %T", u.name, u.value)
	}
	return nil
}

// matFloats flattens matrix columns into column-major scalars.
func matFloats(cols ...any) []float32 {
	var out []float32
	for _, c := range cols {
		out = append(out, vecFloats(c)...)
	}
	return out
}
