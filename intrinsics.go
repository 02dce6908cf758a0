package shade

import "github.com/gogpu/shade/ir"

// GLSL built-in functions and constructor expressions. Each wrapper
// records an intrinsic-call node; nothing is evaluated host-side.

func intrinsic[R any](name string, args ...ir.Node) Expr[R] {
	return exprOf[R](ir.Intrinsic{Name: name, Args: args})
}

// Vec2Of constructs a vec2 from scalar operands.
func Vec2Of(x, y Operand[float32]) Expr[Vec2] {
	return intrinsic[Vec2]("vec2", node(x), node(y))
}

// Vec3Of constructs a vec3 from scalar operands.
func Vec3Of(x, y, z Operand[float32]) Expr[Vec3] {
	return intrinsic[Vec3]("vec3", node(x), node(y), node(z))
}

// Vec4Of constructs a vec4 from scalar operands.
func Vec4Of(x, y, z, w Operand[float32]) Expr[Vec4] {
	return intrinsic[Vec4]("vec4", node(x), node(y), node(z), node(w))
}

// Vec4From constructs a vec4 from a vec3 and a w component.
func Vec4From(xyz Operand[Vec3], w Operand[float32]) Expr[Vec4] {
	return intrinsic[Vec4]("vec4", node(xyz), node(w))
}

// IVec2Of constructs an ivec2 from scalar operands.
func IVec2Of(x, y Operand[int32]) Expr[IVec2] {
	return intrinsic[IVec2]("ivec2", node(x), node(y))
}

// IVec3Of constructs an ivec3 from scalar operands.
func IVec3Of(x, y, z Operand[int32]) Expr[IVec3] {
	return intrinsic[IVec3]("ivec3", node(x), node(y), node(z))
}

// Mat3Of constructs a mat3 from three column vectors.
func Mat3Of(c0, c1, c2 Operand[Vec3]) Expr[Mat3] {
	return intrinsic[Mat3]("mat3", node(c0), node(c1), node(c2))
}

// Mat4Of constructs a mat4 from four column vectors.
func Mat4Of(c0, c1, c2, c3 Operand[Vec4]) Expr[Mat4] {
	return intrinsic[Mat4]("mat4", node(c0), node(c1), node(c2), node(c3))
}

// ToInt records an int(x) conversion.
func ToInt(x Operand[float32]) Expr[int32] { return intrinsic[int32]("int", node(x)) }

// ToFloat records a float(x) conversion.
func ToFloat(x Operand[int32]) Expr[float32] { return intrinsic[float32]("float", node(x)) }

// Sqrt records sqrt(x).
func Sqrt[T FloatLike](x Operand[T]) Expr[T] { return intrinsic[T]("sqrt", node(x)) }

// Abs records abs(x).
func Abs[T Numeric](x Operand[T]) Expr[T] { return intrinsic[T]("abs", node(x)) }

// Min records min(a, b).
func Min[T Numeric](a, b Operand[T]) Expr[T] { return intrinsic[T]("min", node(a), node(b)) }

// Max records max(a, b).
func Max[T Numeric](a, b Operand[T]) Expr[T] { return intrinsic[T]("max", node(a), node(b)) }

// Clamp records clamp(x, lo, hi).
func Clamp[T Numeric](x, lo, hi Operand[T]) Expr[T] {
	return intrinsic[T]("clamp", node(x), node(lo), node(hi))
}

// Mix records mix(a, b, t).
func Mix[T FloatLike](a, b, t Operand[T]) Expr[T] {
	return intrinsic[T]("mix", node(a), node(b), node(t))
}

// Floor records floor(x).
func Floor[T FloatLike](x Operand[T]) Expr[T] { return intrinsic[T]("floor", node(x)) }

// Fract records fract(x).
func Fract[T FloatLike](x Operand[T]) Expr[T] { return intrinsic[T]("fract", node(x)) }

// Sin records sin(x).
func Sin[T FloatLike](x Operand[T]) Expr[T] { return intrinsic[T]("sin", node(x)) }

// Cos records cos(x).
func Cos[T FloatLike](x Operand[T]) Expr[T] { return intrinsic[T]("cos", node(x)) }

// Pow records pow(x, y).
func Pow[T FloatLike](x, y Operand[T]) Expr[T] { return intrinsic[T]("pow", node(x), node(y)) }

// Fmod records mod(x, y), the float modulus.
func Fmod[T FloatLike](x, y Operand[T]) Expr[T] { return intrinsic[T]("mod", node(x), node(y)) }

// Dot records dot(a, b).
func Dot[T FloatVec](a, b Operand[T]) Expr[float32] {
	return intrinsic[float32]("dot", node(a), node(b))
}

// Cross records cross(a, b).
func Cross(a, b Operand[Vec3]) Expr[Vec3] { return intrinsic[Vec3]("cross", node(a), node(b)) }

// Normalize records normalize(v).
func Normalize[T FloatVec](v Operand[T]) Expr[T] { return intrinsic[T]("normalize", node(v)) }

// Length records length(v).
func Length[T FloatVec](v Operand[T]) Expr[float32] {
	return intrinsic[float32]("length", node(v))
}
