package shade

import (
	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/ir"
)

// ArrayVar is a fixed-size local array declared inside a kernel.
// Elements are addressed with At and behave like ordinary variables.
type ArrayVar[T any] struct {
	name  string
	count int
}

// NewArray declares a local array of count elements in the active
// context. Outside a recording context the handle is inert.
func NewArray[T any](count int) *ArrayVar[T] {
	ctx := current()
	if ctx == nil || count <= 0 {
		return &ArrayVar[T]{}
	}
	a := &ArrayVar[T]{name: ctx.newName(), count: count}
	emitStatement(ir.DeclArray{Name: a.name, TypeName: glslTypeName[T](), Count: count})
	return a
}

// Len returns the declared element count.
func (a *ArrayVar[T]) Len() int { return a.count }

// At subscripts the array, yielding an element lvalue.
func (a *ArrayVar[T]) At(i Operand[int32]) *Var[T] {
	if a.name == "" {
		return &Var[T]{}
	}
	text := glsl.Expr(ir.ArrayAccess{Base: ir.Load{Name: a.name}, Index: node(i)})
	return &Var[T]{name: text, external: true}
}
