package shade

import "github.com/gogpu/shade/ir"

// Matrix products. GLSL shape rules: a matCxR times a C-component
// vector yields an R-component vector; a matrix product is valid when
// the left operand's column count equals the right operand's row
// count, and yields a matrix with the right operand's columns and the
// left operand's rows. The table below covers the full shape space;
// it is mechanical by construction.

func mulShaped[R any, A any, B any](a Operand[A], b Operand[B]) Expr[R] {
	return exprOf[R](ir.Op{Code: ir.OpMul, Left: node(a), Right: node(b)})
}

// Matrix * vector.

func MulMat2Vec2(m Operand[Mat2], v Operand[Vec2]) Expr[Vec2] { return mulShaped[Vec2](m, v) }
func MulMat2x3Vec2(m Operand[Mat2x3], v Operand[Vec2]) Expr[Vec3] { return mulShaped[Vec3](m, v) }
func MulMat2x4Vec2(m Operand[Mat2x4], v Operand[Vec2]) Expr[Vec4] { return mulShaped[Vec4](m, v) }
func MulMat3x2Vec3(m Operand[Mat3x2], v Operand[Vec3]) Expr[Vec2] { return mulShaped[Vec2](m, v) }
func MulMat3Vec3(m Operand[Mat3], v Operand[Vec3]) Expr[Vec3] { return mulShaped[Vec3](m, v) }
func MulMat3x4Vec3(m Operand[Mat3x4], v Operand[Vec3]) Expr[Vec4] { return mulShaped[Vec4](m, v) }
func MulMat4x2Vec4(m Operand[Mat4x2], v Operand[Vec4]) Expr[Vec2] { return mulShaped[Vec2](m, v) }
func MulMat4x3Vec4(m Operand[Mat4x3], v Operand[Vec4]) Expr[Vec3] { return mulShaped[Vec3](m, v) }
func MulMat4Vec4(m Operand[Mat4], v Operand[Vec4]) Expr[Vec4] { return mulShaped[Vec4](m, v) }

// Matrix * matrix, left columns = right rows.

func MulMat2Mat2(a Operand[Mat2], b Operand[Mat2]) Expr[Mat2] { return mulShaped[Mat2](a, b) }
func MulMat2Mat3x2(a Operand[Mat2], b Operand[Mat3x2]) Expr[Mat3x2] { return mulShaped[Mat3x2](a, b) }
func MulMat2Mat4x2(a Operand[Mat2], b Operand[Mat4x2]) Expr[Mat4x2] { return mulShaped[Mat4x2](a, b) }

func MulMat2x3Mat2(a Operand[Mat2x3], b Operand[Mat2]) Expr[Mat2x3] { return mulShaped[Mat2x3](a, b) }
func MulMat2x3Mat3x2(a Operand[Mat2x3], b Operand[Mat3x2]) Expr[Mat3] { return mulShaped[Mat3](a, b) }
func MulMat2x3Mat4x2(a Operand[Mat2x3], b Operand[Mat4x2]) Expr[Mat4x3] { return mulShaped[Mat4x3](a, b) }

func MulMat2x4Mat2(a Operand[Mat2x4], b Operand[Mat2]) Expr[Mat2x4] { return mulShaped[Mat2x4](a, b) }
func MulMat2x4Mat3x2(a Operand[Mat2x4], b Operand[Mat3x2]) Expr[Mat3x4] { return mulShaped[Mat3x4](a, b) }
func MulMat2x4Mat4x2(a Operand[Mat2x4], b Operand[Mat4x2]) Expr[Mat4] { return mulShaped[Mat4](a, b) }

func MulMat3x2Mat2x3(a Operand[Mat3x2], b Operand[Mat2x3]) Expr[Mat2] { return mulShaped[Mat2](a, b) }
func MulMat3x2Mat3(a Operand[Mat3x2], b Operand[Mat3]) Expr[Mat3x2] { return mulShaped[Mat3x2](a, b) }
func MulMat3x2Mat4x3(a Operand[Mat3x2], b Operand[Mat4x3]) Expr[Mat4x2] { return mulShaped[Mat4x2](a, b) }

func MulMat3Mat2x3(a Operand[Mat3], b Operand[Mat2x3]) Expr[Mat2x3] { return mulShaped[Mat2x3](a, b) }
func MulMat3Mat3(a Operand[Mat3], b Operand[Mat3]) Expr[Mat3] { return mulShaped[Mat3](a, b) }
func MulMat3Mat4x3(a Operand[Mat3], b Operand[Mat4x3]) Expr[Mat4x3] { return mulShaped[Mat4x3](a, b) }

func MulMat3x4Mat2x3(a Operand[Mat3x4], b Operand[Mat2x3]) Expr[Mat2x4] { return mulShaped[Mat2x4](a, b) }
func MulMat3x4Mat3(a Operand[Mat3x4], b Operand[Mat3]) Expr[Mat3x4] { return mulShaped[Mat3x4](a, b) }
func MulMat3x4Mat4x3(a Operand[Mat3x4], b Operand[Mat4x3]) Expr[Mat4] { return mulShaped[Mat4](a, b) }

func MulMat4x2Mat2x4(a Operand[Mat4x2], b Operand[Mat2x4]) Expr[Mat2] { return mulShaped[Mat2](a, b) }
func MulMat4x2Mat3x4(a Operand[Mat4x2], b Operand[Mat3x4]) Expr[Mat3x2] { return mulShaped[Mat3x2](a, b) }
func MulMat4x2Mat4(a Operand[Mat4x2], b Operand[Mat4]) Expr[Mat4x2] { return mulShaped[Mat4x2](a, b) }

func MulMat4x3Mat2x4(a Operand[Mat4x3], b Operand[Mat2x4]) Expr[Mat2x3] { return mulShaped[Mat2x3](a, b) }
func MulMat4x3Mat3x4(a Operand[Mat4x3], b Operand[Mat3x4]) Expr[Mat3] { return mulShaped[Mat3](a, b) }
func MulMat4x3Mat4(a Operand[Mat4x3], b Operand[Mat4]) Expr[Mat4x3] { return mulShaped[Mat4x3](a, b) }

func MulMat4Mat2x4(a Operand[Mat4], b Operand[Mat2x4]) Expr[Mat2x4] { return mulShaped[Mat2x4](a, b) }
func MulMat4Mat3x4(a Operand[Mat4], b Operand[Mat3x4]) Expr[Mat3x4] { return mulShaped[Mat3x4](a, b) }
func MulMat4Mat4(a Operand[Mat4], b Operand[Mat4]) Expr[Mat4] { return mulShaped[Mat4](a, b) }
