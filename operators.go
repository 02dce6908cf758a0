package shade

import "github.com/gogpu/shade/ir"

// The operator surface. Go has no operator overloading, so the
// recording operators are package-level functions with type-set
// constraints pinning each operator family to its valid operand
// shapes. Every function consumes its operands and returns a fresh
// expression owning the combined subtree.

func binOp[R any, T any](op ir.Opcode, a, b Operand[T]) Expr[R] {
	return exprOf[R](ir.Op{Code: op, Left: node(a), Right: node(b)})
}

func unOp[T any](op ir.Opcode, a Operand[T]) Expr[T] {
	return exprOf[T](ir.Op{Code: op, Left: node(a)})
}

// Add records `a + b`.
func Add[T Numeric](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpAdd, a, b) }

// Sub records `a - b`.
func Sub[T Numeric](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpSub, a, b) }

// Mul records `a * b` for operands of one shape. Matrix-vector and
// rectangular matrix products live in matmul.go; scalar broadcasts in
// Scale, AddScalar and their variants.
func Mul[T Numeric](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpMul, a, b) }

// Div records `a / b`.
func Div[T Numeric](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpDiv, a, b) }

// Mod records `a % b`. GLSL defines % for integer operands only; use
// the Fmod intrinsic for floats.
func Mod[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpMod, a, b) }

// broadcast records `v <op> s`, GLSL's componentwise mixing of a
// vector or matrix with a scalar.
func broadcast[T any, S any](op ir.Opcode, v Operand[T], s Operand[S]) Expr[T] {
	return exprOf[T](ir.Op{Code: op, Left: node(v), Right: node(s)})
}

// Scale records the broadcast `v * s` of a float vector or matrix by
// a float scalar.
func Scale[T interface{ FloatVec | Matrix }](v Operand[T], s Operand[float32]) Expr[T] {
	return broadcast(ir.OpMul, v, s)
}

// AddScalar records the broadcast `v + s`.
func AddScalar[T interface{ FloatVec | Matrix }](v Operand[T], s Operand[float32]) Expr[T] {
	return broadcast(ir.OpAdd, v, s)
}

// SubScalar records the broadcast `v - s`.
func SubScalar[T interface{ FloatVec | Matrix }](v Operand[T], s Operand[float32]) Expr[T] {
	return broadcast(ir.OpSub, v, s)
}

// DivScalar records the broadcast `v / s`.
func DivScalar[T interface{ FloatVec | Matrix }](v Operand[T], s Operand[float32]) Expr[T] {
	return broadcast(ir.OpDiv, v, s)
}

// ScaleI records the broadcast `v * s` of an integer vector by an int
// scalar.
func ScaleI[T IntVec](v Operand[T], s Operand[int32]) Expr[T] {
	return broadcast(ir.OpMul, v, s)
}

// AddScalarI records the broadcast `v + s` of an integer vector.
func AddScalarI[T IntVec](v Operand[T], s Operand[int32]) Expr[T] {
	return broadcast(ir.OpAdd, v, s)
}

// SubScalarI records the broadcast `v - s` of an integer vector.
func SubScalarI[T IntVec](v Operand[T], s Operand[int32]) Expr[T] {
	return broadcast(ir.OpSub, v, s)
}

// DivScalarI records the broadcast `v / s` of an integer vector.
func DivScalarI[T IntVec](v Operand[T], s Operand[int32]) Expr[T] {
	return broadcast(ir.OpDiv, v, s)
}

// BitAnd records `a & b`.
func BitAnd[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpBitAnd, a, b) }

// BitOr records `a | b`.
func BitOr[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpBitOr, a, b) }

// BitXor records `a ^ b`.
func BitXor[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpBitXor, a, b) }

// Shl records `a << b`.
func Shl[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpShl, a, b) }

// Shr records `a >> b`.
func Shr[T IntLike](a, b Operand[T]) Expr[T] { return binOp[T](ir.OpShr, a, b) }

// Lt records `a < b`.
func Lt[T Ordered](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpLt, a, b) }

// Le records `a <= b`.
func Le[T Ordered](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpLe, a, b) }

// Gt records `a > b`.
func Gt[T Ordered](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpGt, a, b) }

// Ge records `a >= b`.
func Ge[T Ordered](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpGe, a, b) }

// Eq records `a == b`.
func Eq[T Scalar](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpEq, a, b) }

// Ne records `a != b`.
func Ne[T Scalar](a, b Operand[T]) Expr[bool] { return binOp[bool](ir.OpNe, a, b) }

// And records `a && b`.
func And(a, b Operand[bool]) Expr[bool] { return binOp[bool](ir.OpLogicAnd, a, b) }

// Or records `a || b`.
func Or(a, b Operand[bool]) Expr[bool] { return binOp[bool](ir.OpLogicOr, a, b) }

// Not records `!a`.
func Not(a Operand[bool]) Expr[bool] { return unOp(ir.OpLogicNot, a) }

// Neg records unary `-a`.
func Neg[T Numeric](a Operand[T]) Expr[T] { return unOp(ir.OpNeg, a) }

// BitNot records `~a`.
func BitNot[T IntLike](a Operand[T]) Expr[T] { return unOp(ir.OpBitNot, a) }

// CompAt subscripts a float vector expression, yielding the component
// as an rvalue. Subscripts on expressions are rvalue-only; subscript
// a Var (VarIndex) to obtain an assignable component.
func CompAt[T FloatVec](v Operand[T], i Operand[int32]) Expr[float32] {
	return exprOf[float32](ir.ArrayAccess{Base: node(v), Index: node(i)})
}

// ICompAt subscripts an integer vector expression.
func ICompAt[T IntVec](v Operand[T], i Operand[int32]) Expr[int32] {
	return exprOf[int32](ir.ArrayAccess{Base: node(v), Index: node(i)})
}

// Col subscripts a matrix expression, yielding the column vector
// chosen by the caller-supplied tag:
//
//	c := shade.Col[shade.Vec3](m, shade.I(0)) // Mat3 column
func Col[C any, M Matrix](m Operand[M], i Operand[int32]) Expr[C] {
	return exprOf[C](ir.ArrayAccess{Base: node(m), Index: node(i)})
}
