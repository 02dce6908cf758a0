package shade

import (
	"fmt"
	"strings"

	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/ir"
)

// Swizzle accessors. The accessor space is the full set of one- to
// four-character permutations of x y z w, bounded by the source
// vector's width; patterns are validated against that space rather
// than enumerated as named methods. Swizzling an expression yields an
// rvalue; swizzling a Var (SwizzleVar) yields an assignable lvalue.

// checkSwizzle panics unless pattern is a valid swizzle of the given
// length for a vector of the given width. Invalid patterns are
// programming errors.
func checkSwizzle(pattern string, length, width int) {
	if len(pattern) != length {
		panic(fmt.Sprintf("shade: swizzle %q: want %d components", pattern, length))
	}
	allowed := "xyzw"[:width]
	for _, c := range pattern {
		if !strings.ContainsRune(allowed, c) {
			panic(fmt.Sprintf("shade: swizzle %q invalid for %d-component vector", pattern, width))
		}
	}
}

// swizzleText renders the operand followed by the accessor. Compound
// expressions are parenthesised so the member access binds to the
// whole subtree.
func swizzleText(n ir.Node, pattern string) string {
	base := glsl.Expr(n)
	if _, simple := n.(ir.Load); !simple {
		base = "(" + base + ")"
	}
	return base + "." + pattern
}

func swizzle[R any, T any](v Operand[T], pattern string, length int) Expr[R] {
	var z T
	checkSwizzle(pattern, length, vecWidth(z))
	return exprOf[R](ir.LoadUniform{Text: swizzleText(node(v), pattern)})
}

// Swizzle1 selects one component of a float vector.
func Swizzle1[T FloatVec](v Operand[T], pattern string) Expr[float32] {
	return swizzle[float32](v, pattern, 1)
}

// Swizzle2 selects a two-component permutation of a float vector.
func Swizzle2[T FloatVec](v Operand[T], pattern string) Expr[Vec2] {
	return swizzle[Vec2](v, pattern, 2)
}

// Swizzle3 selects a three-component permutation of a float vector.
func Swizzle3[T FloatVec](v Operand[T], pattern string) Expr[Vec3] {
	return swizzle[Vec3](v, pattern, 3)
}

// Swizzle4 selects a four-component permutation of a float vector.
func Swizzle4[T FloatVec](v Operand[T], pattern string) Expr[Vec4] {
	return swizzle[Vec4](v, pattern, 4)
}

// ISwizzle1 selects one component of an integer vector.
func ISwizzle1[T IntVec](v Operand[T], pattern string) Expr[int32] {
	return swizzle[int32](v, pattern, 1)
}

// ISwizzle2 selects a two-component permutation of an integer vector.
func ISwizzle2[T IntVec](v Operand[T], pattern string) Expr[IVec2] {
	return swizzle[IVec2](v, pattern, 2)
}

// ISwizzle3 selects a three-component permutation of an integer vector.
func ISwizzle3[T IntVec](v Operand[T], pattern string) Expr[IVec3] {
	return swizzle[IVec3](v, pattern, 3)
}

// ISwizzle4 selects a four-component permutation of an integer vector.
func ISwizzle4[T IntVec](v Operand[T], pattern string) Expr[IVec4] {
	return swizzle[IVec4](v, pattern, 4)
}

// X selects the x component of a float vector.
func X[T FloatVec](v Operand[T]) Expr[float32] { return Swizzle1(v, "x") }

// Y selects the y component of a float vector.
func Y[T FloatVec](v Operand[T]) Expr[float32] { return Swizzle1(v, "y") }

// Z selects the z component of a float vector.
func Z[T FloatVec](v Operand[T]) Expr[float32] { return Swizzle1(v, "z") }

// W selects the w component of a float vector.
func W[T FloatVec](v Operand[T]) Expr[float32] { return Swizzle1(v, "w") }

// XY selects the xy components of a float vector.
func XY[T FloatVec](v Operand[T]) Expr[Vec2] { return Swizzle2(v, "xy") }

// XYZ selects the xyz components of a float vector.
func XYZ[T FloatVec](v Operand[T]) Expr[Vec3] { return Swizzle3(v, "xyz") }

// SwizzleVar binds an assignable swizzle of a vector variable. The
// result tag is chosen by the caller to match the pattern width:
//
//	shade.SwizzleVar[shade.Vec2](v, "xy").Set(...)
func SwizzleVar[E any, T AnyVec](v *Var[T], pattern string) *Var[E] {
	var z T
	var e E
	width := vecWidth(e)
	if width == 0 {
		width = 1
	}
	checkSwizzle(pattern, width, vecWidth(z))
	if v.name == "" {
		return &Var[E]{}
	}
	return &Var[E]{name: v.name + "." + pattern, external: true}
}
