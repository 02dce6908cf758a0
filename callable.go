package shade

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/shade/ir"
)

// callableCounter feeds globally unique mangled names.
var callableCounter atomic.Int64

// callableGen is the type-erased generator behind a Callable. Its
// pointer identity keys per-context state, so copies of a Callable
// share one declaration and one body per kernel.
type callableGen struct {
	base       string
	retType    string
	paramTypes []string
	emitBody   func()
}

func (g *callableGen) nextName() string {
	return fmt.Sprintf("%s_%d", g.base, callableCounter.Add(1)-1)
}

// callCallable registers the callable on first use in the active
// context and records a user-call node over the argument subtrees.
// Void calls emit a statement and return an empty expression.
func callCallable[R any](g *callableGen, args ...ir.Node) Expr[R] {
	ctx := current()
	if ctx == nil {
		return Expr[R]{}
	}
	name := ctx.registerCallable(g)
	call := ir.Call{Name: name, Args: args}
	if g.retType == "void" {
		emitStatement(call)
		return Expr[R]{}
	}
	return exprOf[R](call)
}

// Callable1 is a user-defined GLSL function of one parameter. The
// host body runs once per kernel, during the deferred body-generation
// phase, recording the function's statements; call sites before that
// refer to the function through its forward declaration. Use Return
// inside the body to produce the result.
type Callable1[R any, A any] struct {
	gen *callableGen
}

// NewCallable1 captures a one-parameter function body. An empty base
// name defaults to "fn"; the emitted name is the base plus a global
// counter.
func NewCallable1[R any, A any](name string, body func(a *Var[A])) Callable1[R, A] {
	g := newGen(name, glslTypeName[R](), glslTypeName[A]())
	g.emitBody = func() { body(BindVar[A]("p0")) }
	return Callable1[R, A]{gen: g}
}

// Call records an invocation.
func (f Callable1[R, A]) Call(a Operand[A]) Expr[R] {
	return callCallable[R](f.gen, node(a))
}

// Callable2 is a user-defined GLSL function of two parameters.
type Callable2[R any, A any, B any] struct {
	gen *callableGen
}

// NewCallable2 captures a two-parameter function body.
func NewCallable2[R any, A any, B any](name string, body func(a *Var[A], b *Var[B])) Callable2[R, A, B] {
	g := newGen(name, glslTypeName[R](), glslTypeName[A](), glslTypeName[B]())
	g.emitBody = func() { body(BindVar[A]("p0"), BindVar[B]("p1")) }
	return Callable2[R, A, B]{gen: g}
}

// Call records an invocation.
func (f Callable2[R, A, B]) Call(a Operand[A], b Operand[B]) Expr[R] {
	return callCallable[R](f.gen, node(a), node(b))
}

// Callable3 is a user-defined GLSL function of three parameters.
type Callable3[R any, A any, B any, C any] struct {
	gen *callableGen
}

// NewCallable3 captures a three-parameter function body.
func NewCallable3[R any, A any, B any, C any](name string, body func(a *Var[A], b *Var[B], c *Var[C])) Callable3[R, A, B, C] {
	g := newGen(name, glslTypeName[R](), glslTypeName[A](), glslTypeName[B](), glslTypeName[C]())
	g.emitBody = func() { body(BindVar[A]("p0"), BindVar[B]("p1"), BindVar[C]("p2")) }
	return Callable3[R, A, B, C]{gen: g}
}

// Call records an invocation.
func (f Callable3[R, A, B, C]) Call(a Operand[A], b Operand[B], c Operand[C]) Expr[R] {
	return callCallable[R](f.gen, node(a), node(b), node(c))
}

func newGen(base, retType string, paramTypes ...string) *callableGen {
	if base == "" {
		base = "fn"
	}
	return &callableGen{base: base, retType: retType, paramTypes: paramTypes}
}
