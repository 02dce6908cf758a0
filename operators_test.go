package shade

import (
	"strings"
	"testing"

	"github.com/gogpu/shade/glsl"
)

func render[T any](e Expr[T]) string { return glsl.Expr(e.Node()) }

func TestScalarOperators(t *testing.T) {
	a := BindVar[float32]("a")
	b := BindVar[float32]("b")
	i := BindVar[int32]("i")
	j := BindVar[int32]("j")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"add", render(Add[float32](a, b)), "(a+b)"},
		{"sub", render(Sub[float32](a, b)), "(a-b)"},
		{"mul", render(Mul[float32](a, b)), "(a*b)"},
		{"div", render(Div[float32](a, b)), "(a/b)"},
		{"mod", render(Mod[int32](i, j)), "(i%j)"},
		{"neg", render(Neg[float32](a)), "(-a)"},
		{"bitand", render(BitAnd[int32](i, j)), "(i&j)"},
		{"shl", render(Shl[int32](i, I(2))), "(i<<2)"},
		{"bitnot", render(BitNot[int32](i)), "(~i)"},
		{"lt", render(Lt[float32](a, b)), "(a<b)"},
		{"ge", render(Ge[int32](i, j)), "(i>=j)"},
		{"eq", render(Eq[int32](i, I(0))), "(i==0)"},
		{"and", render(And(Lt[float32](a, b), B(true))), "((a<b)&&true)"},
		{"not", render(Not(B(false))), "(!false)"},
		{"literal add", render(Add(F(1), F(0.5))), "(1.0+0.5)"},
		{"nested", render(Mul(Add[float32](a, b), F(2))), "((a+b)*2.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestVectorAndMatrixOperators(t *testing.T) {
	v := BindVar[Vec3]("v")
	w := BindVar[Vec3]("w")
	m := BindVar[Mat3]("m")
	iv := BindVar[IVec3]("iv")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vec add", render(Add[Vec3](v, w)), "(v+w)"},
		{"scale", render(Scale[Vec3](v, F(2))), "(v*2.0)"},
		{"add scalar", render(AddScalar[Vec3](v, F(1))), "(v+1.0)"},
		{"sub scalar", render(SubScalar[Vec3](v, F(1))), "(v-1.0)"},
		{"div scalar", render(DivScalar[Vec3](v, F(2))), "(v/2.0)"},
		{"mat add scalar", render(AddScalar[Mat3](m, F(1))), "(m+1.0)"},
		{"mat div scalar", render(DivScalar[Mat3](m, F(2))), "(m/2.0)"},
		{"iscale", render(ScaleI[IVec3](iv, I(2))), "(iv*2)"},
		{"iadd scalar", render(AddScalarI[IVec3](iv, I(1))), "(iv+1)"},
		{"isub scalar", render(SubScalarI[IVec3](iv, I(1))), "(iv-1)"},
		{"idiv scalar", render(DivScalarI[IVec3](iv, I(2))), "(iv/2)"},
		{"matvec", render(MulMat3Vec3(m, v)), "(m*v)"},
		{"matmat", render(MulMat3Mat3(m, m)), "(m*m)"},
		{"component", render(CompAt[Vec3](v, I(1))), "v[1]"},
		{"column", render(Col[Vec3, Mat3](m, I(0))), "m[0]"},
		{"dot", render(Dot[Vec3](v, w)), "dot(v, w)"},
		{"cross", render(Cross(v, w)), "cross(v, w)"},
		{"normalize", render(Normalize[Vec3](v)), "normalize(v)"},
		{"constructor", render(Vec3Of(F(1), F(2), F(3))), "vec3(1.0, 2.0, 3.0)"},
		{"vec literal", render(C(Vec3{1, 2, 3})), "vec3(1.0, 2.0, 3.0)"},
		{"mat literal", render(C(Identity2())), "mat2(1.0, 0.0, 0.0, 1.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRectangularMatrixShapes(t *testing.T) {
	// GLSL matCxR product shapes: (AcolsxArows) * (BcolsxAcols).
	m23 := BindVar[Mat2x3]("m23") // 2 columns, 3 rows
	m42 := BindVar[Mat4x2]("m42") // 4 columns, 2 rows
	v2 := BindVar[Vec2]("v2")

	if got := render(MulMat2x3Vec2(m23, v2)); got != "(m23*v2)" {
		t.Errorf("mat2x3*vec2 = %q", got)
	}
	// mat2x3 * mat4x2 -> mat4x3.
	var r Expr[Mat4x3] = MulMat2x3Mat4x2(m23, m42)
	if got := render(r); got != "(m23*m42)" {
		t.Errorf("mat2x3*mat4x2 = %q", got)
	}
}

func TestExprClone(t *testing.T) {
	v := BindVar[float32]("v")
	sum := Add[float32](v, F(1))
	twice := Mul(sum.Clone(), sum)
	if got := render(twice); got != "((v+1.0)*(v+1.0))" {
		t.Errorf("clone composition = %q", got)
	}
}

func TestLiteralFormats(t *testing.T) {
	if got := render(C(Vec2{0.5, -1})); got != "vec2(0.5, -1.0)" {
		t.Errorf("vec2 literal = %q", got)
	}
	if got := render(C(IVec3{1, -2, 3})); got != "ivec3(1, -2, 3)" {
		t.Errorf("ivec3 literal = %q", got)
	}
	if got := render(B(true)); got != "true" {
		t.Errorf("bool literal = %q", got)
	}
	m := render(C(Identity3()))
	if !strings.HasPrefix(m, "mat3(") || strings.Count(m, ",") != 8 {
		t.Errorf("mat3 literal = %q", m)
	}
}
