package shade

import "github.com/gogpu/shade/ir"

// Value owns exactly one recorded IR node root. Values transfer
// ownership when consumed: an operation that uses a Value takes its
// node, leaving it empty. Release transfers the node out explicitly.
type Value struct {
	node ir.Node
}

// NewValue wraps a node root.
func NewValue(n ir.Node) Value { return Value{node: n} }

// Release transfers the owned node out of the Value.
func (v *Value) Release() ir.Node {
	n := v.node
	v.node = nil
	return n
}

// Empty reports whether the Value no longer owns a node.
func (v *Value) Empty() bool { return v.node == nil }

// Expr is a Value typed by a scalar, vector or matrix tag.
//
// Expressions are conceptually linear: the first operation that
// consumes an Expr owns its subtree. Use Clone when the same
// expression must be composed twice.
type Expr[T any] struct {
	node ir.Node
}

// exprOf wraps a node as a typed expression.
func exprOf[T any](n ir.Node) Expr[T] { return Expr[T]{node: n} }

// Node returns the expression's root node without copying.
func (e Expr[T]) Node() ir.Node { return e.node }

// Clone returns an independent deep copy of the expression, for use
// when the same subtree must appear in more than one place.
func (e Expr[T]) Clone() Expr[T] {
	if e.node == nil {
		return e
	}
	return Expr[T]{node: e.node.Clone()}
}

// Empty reports whether the expression carries no subtree, as happens
// for operations recorded outside an active context.
func (e Expr[T]) Empty() bool { return e.node == nil }

func (e Expr[T]) toExpr() Expr[T] { return e }

// Operand is anything usable as a typed operand of a DSL operation: a
// typed expression, a recorded variable, or a literal wrapped with C,
// F, I or B.
type Operand[T any] interface {
	toExpr() Expr[T]
}

// node extracts the IR subtree of an operand.
func node[T any](o Operand[T]) ir.Node {
	if o == nil {
		return nil
	}
	return o.toExpr().node
}

// C lifts a host value into a literal expression of the same tag.
func C[T any](v T) Expr[T] {
	return exprOf[T](ir.LoadUniform{Text: litFor(v)})
}

// F lifts a float literal.
func F(v float32) Expr[float32] { return C(v) }

// I lifts an int literal.
func I(v int32) Expr[int32] { return C(v) }

// B lifts a bool literal.
func B(v bool) Expr[bool] { return C(v) }

// Raw wraps verbatim GLSL text as an expression of the given tag. It
// is the escape hatch the built-in bindings use and is occasionally
// useful for driver-specific extensions.
func Raw[T any](text string) Expr[T] {
	return exprOf[T](ir.LoadUniform{Text: text})
}
