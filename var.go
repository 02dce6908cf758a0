package shade

import (
	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/ir"
)

// Var is an lvalue in the generated code. Declaring a Var emits a
// variable-declaration statement into the active recording context;
// assigning to it emits a store. Unlike Expr, a Var may be read any
// number of times: each read loads the variable by name.
//
// A Var is valid only for the lifetime of the context it was
// declared in.
type Var[T any] struct {
	name     string
	external bool
}

// NewVar declares a fresh variable in the active context and returns
// a handle bound to it. Outside a recording context the handle is
// inert.
func NewVar[T any]() *Var[T] {
	ctx := current()
	if ctx == nil {
		return &Var[T]{}
	}
	v := &Var[T]{name: ctx.newName()}
	emitStatement(ir.DeclVar{Name: v.name, TypeName: glslTypeName[T]()})
	return v
}

// NewVarFrom declares a fresh variable initialised from an operand.
// This denotes an independent GLSL variable, not a host alias: it
// emits a declaration plus a store.
func NewVarFrom[T any](o Operand[T]) *Var[T] {
	v := NewVar[T]()
	v.Set(o)
	return v
}

// BindVar binds to an existing GLSL lvalue (a built-in or a uniform)
// without emitting a declaration.
func BindVar[T any](name string) *Var[T] {
	return &Var[T]{name: name, external: true}
}

// Name returns the variable's GLSL name.
func (v *Var[T]) Name() string { return v.name }

// Load returns an expression reading the variable.
func (v *Var[T]) Load() Expr[T] {
	if v.name == "" {
		return Expr[T]{}
	}
	return exprOf[T](ir.Load{Name: v.name})
}

func (v *Var[T]) toExpr() Expr[T] { return v.Load() }

// Set emits a store of the operand into the variable.
func (v *Var[T]) Set(o Operand[T]) {
	if v.name == "" {
		return
	}
	emitStatement(ir.Store{Dst: ir.Load{Name: v.name}, Src: node(o)})
}

// SetVal emits a store of a host literal into the variable.
func (v *Var[T]) SetVal(val T) { v.Set(C(val)) }

// AddAssign emits `v += o`.
func (v *Var[T]) AddAssign(o Operand[T]) { v.compound(ir.OpAdd, o) }

// SubAssign emits `v -= o`.
func (v *Var[T]) SubAssign(o Operand[T]) { v.compound(ir.OpSub, o) }

// MulAssign emits `v *= o`.
func (v *Var[T]) MulAssign(o Operand[T]) { v.compound(ir.OpMul, o) }

// DivAssign emits `v /= o`.
func (v *Var[T]) DivAssign(o Operand[T]) { v.compound(ir.OpDiv, o) }

func (v *Var[T]) compound(op ir.Opcode, o Operand[T]) {
	if v.name == "" {
		return
	}
	emitStatement(ir.CompoundAssign{Code: op, Dst: ir.Load{Name: v.name}, Src: node(o)})
}

// Inc emits a prefix increment statement.
func (v *Var[T]) Inc() { v.incDec(false) }

// Dec emits a prefix decrement statement.
func (v *Var[T]) Dec() { v.incDec(true) }

func (v *Var[T]) incDec(dec bool) {
	if v.name == "" {
		return
	}
	emitStatement(ir.IncDec{Dst: ir.Load{Name: v.name}, Decrement: dec, Prefix: true})
}

// PostInc returns an expression of the variable's old value while
// incrementing it in place.
func (v *Var[T]) PostInc() Expr[T] {
	if v.name == "" {
		return Expr[T]{}
	}
	return exprOf[T](ir.IncDec{Dst: ir.Load{Name: v.name}})
}

// PostDec returns an expression of the variable's old value while
// decrementing it in place.
func (v *Var[T]) PostDec() Expr[T] {
	if v.name == "" {
		return Expr[T]{}
	}
	return exprOf[T](ir.IncDec{Dst: ir.Load{Name: v.name}, Decrement: true})
}

// VarIndex subscripts a vector or matrix variable, yielding an lvalue
// of the element type E that may be read and assigned. The element
// type is chosen by the caller:
//
//	col := shade.VarIndex[shade.Vec3](m, shade.I(1)) // column of a Mat3 Var
//	col.Set(...)
func VarIndex[E any, T any](v *Var[T], i Operand[int32]) *Var[E] {
	if v.name == "" {
		return &Var[E]{}
	}
	text := glsl.Expr(ir.ArrayAccess{Base: ir.Load{Name: v.name}, Index: node(i)})
	return &Var[E]{name: text, external: true}
}

// Field selects a struct member of a variable as an lvalue of the
// field's tag type.
func Field[E any, T any](v *Var[T], field string) *Var[E] {
	if v.name == "" {
		return &Var[E]{}
	}
	text := glsl.Expr(ir.MemberAccess{Base: ir.Load{Name: v.name}, Field: field})
	return &Var[E]{name: text, external: true}
}
