package shade

import (
	"strings"
	"testing"
)

func TestBufferStrides(t *testing.T) {
	checkStride := func(name string, got, want int) {
		if got != want {
			t.Errorf("%s stride = %d, want %d", name, got, want)
		}
	}
	f, _ := NewBuffer[float32](1, ReadWrite)
	checkStride("float32", f.Stride(), 4)
	v2, _ := NewBuffer[Vec2](1, ReadWrite)
	checkStride("Vec2", v2.Stride(), 8)
	v3, _ := NewBuffer[Vec3](1, ReadWrite)
	checkStride("Vec3", v3.Stride(), 16)
	v4, _ := NewBuffer[Vec4](1, ReadWrite)
	checkStride("Vec4", v4.Stride(), 16)
	m2, _ := NewBuffer[Mat2](1, ReadWrite)
	checkStride("Mat2", m2.Stride(), 16)
	m3, _ := NewBuffer[Mat3](1, ReadWrite)
	checkStride("Mat3", m3.Stride(), 48)
	m4, _ := NewBuffer[Mat4](1, ReadWrite)
	checkStride("Mat4", m4.Stride(), 64)
}

func TestBufferRejectsBadElements(t *testing.T) {
	if _, err := NewBuffer[bool](4, ReadWrite); err == nil {
		t.Error("bool element accepted")
	}
	if _, err := NewBuffer[float32](-1, ReadWrite); err == nil {
		t.Error("negative count accepted")
	}
}

func TestBufferAccessQualifiers(t *testing.T) {
	ro, _ := NewBuffer[float32](4, ReadOnly)
	wo, _ := NewBuffer[float32](4, WriteOnly)
	rw, _ := NewBuffer[float32](4, ReadWrite)
	k := Kernel1D(func(id *Var[int32]) {
		a, b, c := ro.Bind(), wo.Bind(), rw.Bind()
		b.Set(id, Add(a.Get(id), c.Get(id)))
	})
	code := k.Code()
	for _, want := range []string{
		"readonly buffer b0_t",
		"writeonly buffer b1_t",
		"binding=2) buffer b2_t",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
}

func TestBufferLength(t *testing.T) {
	buf, _ := NewBuffer[float32](4, ReadWrite)
	k := Kernel1D(func(id *Var[int32]) {
		b := buf.Bind()
		If(Lt[int32](id, b.Len()), func() {
			b.Set(id, F(0))
		})
	})
	if !strings.Contains(k.Code(), "b0.length()") {
		t.Errorf("length read missing:\n%s", k.Code())
	}
}

func TestBufferBindOutsideKernel(t *testing.T) {
	buf, _ := NewBuffer[float32](4, ReadWrite)
	bv := buf.Bind()
	if bv.At(I(0)).Name() != "" {
		t.Error("bind outside kernel produced a live accessor")
	}
	if !bv.Len().Empty() {
		t.Error("length outside kernel should be empty")
	}
}
