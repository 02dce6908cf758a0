package shade

import (
	"strings"
	"testing"
)

func TestUniformAutoNaming(t *testing.T) {
	a := NewUniform(float32(0))
	b := NewUniform(int32(0))
	if a.Name() == b.Name() {
		t.Errorf("auto names collide: %q", a.Name())
	}
	if !strings.HasPrefix(a.Name(), "u") {
		t.Errorf("auto name = %q", a.Name())
	}
}

func TestUniformDeclaredOnce(t *testing.T) {
	scale := NewNamedUniform("scale", float32(1))
	buf, _ := NewBuffer[float32](4, ReadWrite)
	k := Kernel1D(func(id *Var[int32]) {
		b := buf.Bind()
		b.Set(id, Mul(scale.Load(), Add(scale.Load(), b.Get(id))))
	})
	code := k.Code()
	if got := strings.Count(code, "uniform float scale;"); got != 1 {
		t.Errorf("%d declarations, want 1:\n%s", got, code)
	}
	if !strings.Contains(code, "(scale*(scale+") {
		t.Errorf("uniform reads missing:\n%s", code)
	}
}

func TestUniformTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  string
	}{
		{"float", NewUniform(float32(0)).uniformType()},
		{"vec3", NewUniform(Vec3{}).uniformType()},
		{"ivec2", NewUniform(IVec2{}).uniformType()},
		{"mat4", NewUniform(Mat4{}).uniformType()},
		{"bool", NewUniform(false).uniformType()},
	}
	for _, tt := range tests {
		if tt.typ != tt.name {
			t.Errorf("uniformType = %q, want %q", tt.typ, tt.name)
		}
	}
}

func TestUniformSetGet(t *testing.T) {
	u := NewNamedUniform("t", float32(1))
	u.Set(2.5)
	if u.Get() != 2.5 {
		t.Errorf("Get = %v", u.Get())
	}
}

func TestUniformsPerContext(t *testing.T) {
	// The same uniform used by two kernels is declared in both.
	u := NewNamedUniform("gain", float32(0))
	buf, _ := NewBuffer[float32](4, WriteOnly)
	record := func() string {
		return Kernel1D(func(id *Var[int32]) {
			buf.Bind().Set(id, u.Load())
		}).Code()
	}
	first, second := record(), record()
	if !strings.Contains(first, "uniform float gain;") || !strings.Contains(second, "uniform float gain;") {
		t.Error("uniform missing from one of the contexts")
	}
}
