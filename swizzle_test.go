package shade

import (
	"strings"
	"testing"
)

func TestSwizzleText(t *testing.T) {
	v := BindVar[Vec4]("v")
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"single", render(X[Vec4](v)), "v.x"},
		{"pair", render(XY[Vec4](v)), "v.xy"},
		{"triple", render(XYZ[Vec4](v)), "v.xyz"},
		{"repeat", render(Swizzle3[Vec4](v, "xxw")), "v.xxw"},
		{"reverse", render(Swizzle4[Vec4](v, "wzyx")), "v.wzyx"},
		{"int vector", render(ISwizzle2[IVec3](BindVar[IVec3]("iv"), "yx")), "iv.yx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSwizzleParenthesisesCompoundBase(t *testing.T) {
	v := BindVar[Vec3]("v")
	w := BindVar[Vec3]("w")
	if got := render(X[Vec3](Add[Vec3](v, w))); got != "(v+w).x" {
		t.Errorf("got %q, want %q", got, "(v+w).x")
	}
}

func TestSwizzleValidation(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
	v2 := BindVar[Vec2]("v")
	v4 := BindVar[Vec4]("v")
	expectPanic("component beyond width", func() { Swizzle1[Vec2](v2, "z") })
	expectPanic("wrong length", func() { Swizzle2[Vec4](v4, "xyz") })
	expectPanic("invalid character", func() { Swizzle1[Vec4](v4, "r") })
	expectPanic("lvalue beyond width", func() { SwizzleVar[Vec2](v2, "zw") })
}

func TestSwizzleVarAssignable(t *testing.T) {
	k := Kernel1D(func(id *Var[int32]) {
		v := NewVar[Vec4]()
		SwizzleVar[Vec2](v, "xy").Set(C(Vec2{1, 2}))
		SwizzleVar[float32](v, "w").SetVal(3)
	})
	code := k.Code()
	for _, want := range []string{
		"(v0.xy)=(vec2(1.0, 2.0));",
		"(v0.w)=(3.0);",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
}
