package shade

import (
	"math"
	"testing"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestVecMath(t *testing.T) {
	v := V3(1, 2, 2)
	if got := v.Length(); !approxEq(got, 3) {
		t.Errorf("Length = %v, want 3", got)
	}
	n := v.Normalize()
	if got := n.Length(); !approxEq(got, 1) {
		t.Errorf("normalized length = %v", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize = %v", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross = %v", got)
	}
	if got := V2(3, 4).Dot(V2(1, 2)); !approxEq(got, 11) {
		t.Errorf("Dot = %v", got)
	}
	if got := IV3(1, 2, 3).Add(IV3(4, 5, 6)); got != IV3(5, 7, 9) {
		t.Errorf("IVec3 Add = %v", got)
	}
}

func TestMatIdentity(t *testing.T) {
	v := V3(1, 2, 3)
	if got := Identity3().MulVec(v); got != v {
		t.Errorf("I*v = %v, want %v", got, v)
	}
	m := Mat3{V3(1, 2, 3), V3(4, 5, 6), V3(7, 8, 9)}
	if got := Identity3().Mul(m); got != m {
		t.Errorf("I*m = %v", got)
	}
}

func TestMatTranspose(t *testing.T) {
	m := Mat3{V3(1, 2, 3), V3(4, 5, 6), V3(7, 8, 9)}
	tt := m.Transpose()
	if tt[0] != V3(1, 4, 7) || tt[2] != V3(3, 6, 9) {
		t.Errorf("Transpose = %v", tt)
	}
	if m.Transpose().Transpose() != m {
		t.Error("double transpose differs")
	}
}

func TestMatVecColumnMajor(t *testing.T) {
	// Column-major: the first column scales X.
	m := Mat2{V2(2, 0), V2(0, 3)}
	if got := m.MulVec(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("MulVec = %v, want (2, 3)", got)
	}
}
