package std430

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
	"testing"
)

type vec2 struct{ X, Y float32 }
type vec3 struct{ X, Y, Z float32 }
type vec4 struct{ X, Y, Z, W float32 }
type mat3 [3]vec3

func testMapper(t reflect.Type) (Kind, bool) {
	switch t {
	case reflect.TypeOf(float32(0)):
		return KindFloat, true
	case reflect.TypeOf(int32(0)):
		return KindInt, true
	case reflect.TypeOf(vec2{}):
		return KindVec2, true
	case reflect.TypeOf(vec3{}):
		return KindVec3, true
	case reflect.TypeOf(vec4{}):
		return KindVec4, true
	case reflect.TypeOf(mat3{}):
		return KindMat3, true
	}
	return KindInvalid, false
}

type Tight struct {
	P vec3
	R float32
}

type Padded struct {
	A float32
	P vec3
}

type WithMat struct {
	M mat3
	S float32
}

type Inner struct {
	V vec3
	F float32
}

type Outer struct {
	A float32
	I Inner
}

func describeT(t *testing.T, v any) *Struct {
	t.Helper()
	s, err := Describe(reflect.TypeOf(v), testMapper)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	return s
}

func TestLayoutVec3Packing(t *testing.T) {
	// The float after a vec3 fills the padding slot, so host and
	// std430 layouts coincide.
	s := describeT(t, Tight{})
	size, align := s.Layout()
	if size != 16 || align != 16 {
		t.Errorf("Tight layout = (%d, %d), want (16, 16)", size, align)
	}
	if c := NewConverter(s); c.NeedsConversion() {
		t.Error("Tight should convert transparently")
	}
}

func TestLayoutVec3Realignment(t *testing.T) {
	s := describeT(t, Padded{})
	size, align := s.Layout()
	if size != 32 || align != 16 {
		t.Errorf("Padded layout = (%d, %d), want (32, 16)", size, align)
	}
	c := NewConverter(s)
	if !c.NeedsConversion() {
		t.Error("Padded needs conversion: vec3 moves from offset 4 to 16")
	}
	if c.GPULayoutSize() != 32 {
		t.Errorf("stride = %d, want 32", c.GPULayoutSize())
	}
}

func TestLayoutMatrixColumns(t *testing.T) {
	// mat3 occupies three vec4-aligned columns: 48 bytes against 36
	// on the host.
	s := describeT(t, WithMat{})
	size, align := s.Layout()
	if size != 64 || align != 16 {
		t.Errorf("WithMat layout = (%d, %d), want (64, 16)", size, align)
	}
	c := NewConverter(s)
	if !c.NeedsConversion() {
		t.Error("WithMat needs conversion")
	}
}

func TestLayoutNestedStruct(t *testing.T) {
	// Inner aligns as its strictest member (vec3 → 16), so it starts
	// at offset 16 inside Outer and Outer strides at 32.
	s := describeT(t, Outer{})
	size, align := s.Layout()
	if size != 32 || align != 16 {
		t.Errorf("Outer layout = (%d, %d), want (32, 16)", size, align)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	s := describeT(t, Padded{})
	c := NewConverter(s)

	src := []Padded{
		{A: 1, P: vec3{2, 3, 4}},
		{A: 5, P: vec3{6, 7, 8}},
	}
	host := make([]byte, len(src)*c.HostSize())
	buf := &bytes.Buffer{}
	for _, e := range src {
		binary.Write(buf, binary.LittleEndian, e)
	}
	copy(host, buf.Bytes())

	gpu := make([]byte, len(src)*c.GPULayoutSize())
	c.ConvertToGPU(host, gpu, len(src))

	// Element 1's vec3 lands at stride+16.
	x := math.Float32frombits(binary.LittleEndian.Uint32(gpu[c.GPULayoutSize()+16:]))
	if x != 6 {
		t.Errorf("gpu[1].P.X = %v, want 6", x)
	}

	back := make([]byte, len(host))
	c.ConvertFromGPU(gpu, back, len(src))
	if !bytes.Equal(host, back) {
		t.Error("round trip differs from source")
	}
}

func TestMatrixColumnOps(t *testing.T) {
	s := describeT(t, WithMat{})
	c := NewConverter(s)

	m := WithMat{S: 99}
	v := float32(0)
	for col := range m.M {
		m.M[col] = vec3{v, v + 1, v + 2}
		v += 3
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, m)
	host := buf.Bytes()

	gpu := make([]byte, c.GPULayoutSize())
	c.ConvertToGPU(host, gpu, 1)

	// Column 2 starts at byte 32 in std430, byte 24 on the host.
	got := math.Float32frombits(binary.LittleEndian.Uint32(gpu[32:]))
	if got != 6 {
		t.Errorf("column 2 x = %v, want 6", got)
	}
	// The scalar after the matrix sits at byte 48.
	got = math.Float32frombits(binary.LittleEndian.Uint32(gpu[48:]))
	if got != 99 {
		t.Errorf("S = %v, want 99", got)
	}
}

func TestGLSLDecl(t *testing.T) {
	s := describeT(t, Tight{})
	want := "struct Tight {\n  vec3 P;\n  float R;\n};\n"
	if got := s.GLSLDecl(); got != want {
		t.Errorf("GLSLDecl = %q, want %q", got, want)
	}
}

func TestDescribeRejectsNonStruct(t *testing.T) {
	if _, err := Describe(reflect.TypeOf(42), testMapper); err == nil {
		t.Error("Describe(int) succeeded")
	}
}
