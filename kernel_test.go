package shade

import (
	"strings"
	"testing"
)

func TestKernel1DCode(t *testing.T) {
	x, err := NewBuffer[float32](16, ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	y, err := NewBuffer[float32](16, ReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	a := NewNamedUniform("a", float32(2))

	k := Kernel1D(func(id *Var[int32]) {
		xv, yv := x.Bind(), y.Bind()
		yv.Set(id, Add(Mul(a.Load(), xv.Get(id)), yv.Get(id)))
	}, WithName("saxpy"), WithWorkGroupSize(16, 1, 1))

	code := k.Code()
	for _, want := range []string{
		"#version 430 core\n",
		"layout(local_size_x=16, local_size_y=1, local_size_z=1) in;\n",
		"layout(std430, binding=0) readonly buffer b0_t { float b0[]; };\n",
		"layout(std430, binding=1) buffer b1_t { float b1[]; };\n",
		"uniform float a;\n",
		"void main() {\n",
		"(b1[int(gl_GlobalInvocationID.x)])=((a*b0[int(gl_GlobalInvocationID.x)])+b1[int(gl_GlobalInvocationID.x)]);",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
	if k.Name() != "saxpy" {
		t.Errorf("Name = %q", k.Name())
	}
	if k.Dims() != 1 {
		t.Errorf("Dims = %d", k.Dims())
	}
}

func TestKernelDefaultsPerDimension(t *testing.T) {
	k1 := Kernel1D(func(id *Var[int32]) {})
	if !strings.Contains(k1.Code(), "local_size_x=64, local_size_y=1, local_size_z=1") {
		t.Errorf("1D default work group:\n%s", k1.Code())
	}
	k2 := Kernel2D(func(x, y *Var[int32]) {})
	if !strings.Contains(k2.Code(), "local_size_x=8, local_size_y=8, local_size_z=1") {
		t.Errorf("2D default work group:\n%s", k2.Code())
	}
	k3 := Kernel3D(func(x, y, z *Var[int32]) {})
	if !strings.Contains(k3.Code(), "local_size_x=4, local_size_y=4, local_size_z=4") {
		t.Errorf("3D default work group:\n%s", k3.Code())
	}
}

func TestKernelContextsIndependent(t *testing.T) {
	buf, err := NewBuffer[float32](8, ReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	record := func() *Kernel {
		return Kernel1D(func(id *Var[int32]) {
			b := buf.Bind()
			v := NewVar[float32]()
			v.Set(b.Get(id))
			b.Set(id, v)
		})
	}
	first, second := record().Code(), record().Code()
	if first != second {
		t.Errorf("identical recordings differ:\n%s\n---\n%s", first, second)
	}
	// Name and binding counters restart per context.
	if !strings.Contains(first, "float v0;") || !strings.Contains(first, "binding=0") {
		t.Errorf("counters did not restart:\n%s", first)
	}
}

type particle struct {
	Pos  Vec3
	Mass float32
}

func TestStructBufferDeclaration(t *testing.T) {
	buf, err := NewBuffer[particle](4, ReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Stride() != 16 {
		t.Errorf("particle stride = %d, want 16", buf.Stride())
	}
	k := Kernel1D(func(id *Var[int32]) {
		b := buf.Bind()
		p := b.At(id)
		Field[float32](p, "Mass").SetVal(1)
	})
	code := k.Code()
	structIdx := strings.Index(code, "struct particle {")
	bufIdx := strings.Index(code, "buffer b0_t { particle b0[]; }")
	if structIdx < 0 || bufIdx < 0 {
		t.Fatalf("missing declarations:\n%s", code)
	}
	if structIdx > bufIdx {
		t.Error("struct declared after the buffer that uses it")
	}
	if !strings.Contains(code, "(b0[int(gl_GlobalInvocationID.x)].Mass)=(1.0);") {
		t.Errorf("member store missing:\n%s", code)
	}
}

func TestCallableEmittedOncePerContext(t *testing.T) {
	sq := NewCallable1[float32]("square", func(a *Var[float32]) {
		Return[float32](Mul(a, a))
	})
	out, err := NewBuffer[float32](8, WriteOnly)
	if err != nil {
		t.Fatal(err)
	}
	k := Kernel1D(func(id *Var[int32]) {
		b := out.Bind()
		b.Set(id, Add(sq.Call(F(2)), sq.Call(F(3))))
	})
	code := k.Code()
	if got := strings.Count(code, "(float p0);"); got != 1 {
		t.Errorf("%d prototypes, want 1:\n%s", got, code)
	}
	if got := strings.Count(code, "(float p0) {"); got != 1 {
		t.Errorf("%d definitions, want 1:\n%s", got, code)
	}
	if !strings.Contains(code, "return (p0*p0);") {
		t.Errorf("body missing:\n%s", code)
	}
}

func TestCallableChainDrainsToFixedPoint(t *testing.T) {
	inc := NewCallable1[float32]("inc", func(a *Var[float32]) {
		Return[float32](Add(a, F(1)))
	})
	// twice's body is generated during assembly and is the first place
	// inc is called, so inc's own body must be drained afterwards.
	twice := NewCallable1[float32]("twice", func(a *Var[float32]) {
		Return[float32](Add(inc.Call(a), inc.Call(a)))
	})
	out, err := NewBuffer[float32](8, WriteOnly)
	if err != nil {
		t.Fatal(err)
	}
	k := Kernel1D(func(id *Var[int32]) {
		b := out.Bind()
		b.Set(id, twice.Call(F(1)))
	})
	code := k.Code()
	if got := strings.Count(code, "(float p0);"); got != 2 {
		t.Errorf("%d prototypes, want 2:\n%s", got, code)
	}
	if got := strings.Count(code, "(float p0) {"); got != 2 {
		t.Errorf("%d definitions, want 2:\n%s", got, code)
	}
	if !strings.Contains(code, "return (p0+1.0);") {
		t.Errorf("inc body missing:\n%s", code)
	}
}

func TestFragmentKernelCode(t *testing.T) {
	k := FragmentKernel2D(func(fragCoord *Var[Vec2], fragColor *Var[Vec4]) {
		uv := NewVarFrom(Div(fragCoord.Load(), BindVar[Vec2]("u_resolution").Load()))
		fragColor.Set(Vec4From(Vec3Of(X(uv.Load()), Y(uv.Load()), F(0)), F(1)))
	}, WithName("uv"))
	code := k.Code()
	for _, want := range []string{
		"out vec4 fragColor;\n",
		"uniform vec2 u_resolution;\n",
		"  vec2 fragCoord = gl_FragCoord.xy;\n",
		"(fragColor)=(vec4(vec3(v0.x, v0.y, 0.0), 1.0))",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("fragment code missing %q:\n%s", want, code)
		}
	}
	if strings.Contains(code, "local_size") {
		t.Errorf("fragment code carries a compute work-group decl:\n%s", code)
	}
}

func TestControlFlowRecording(t *testing.T) {
	out, err := NewBuffer[int32](8, ReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	k := Kernel1D(func(id *Var[int32]) {
		b := out.Bind()
		total := NewVar[int32]()
		total.SetVal(0)
		For(I(0), I(10), I(2), func(i *Var[int32]) {
			If(Gt(i, I(4)), func() {
				Break()
			})
			total.AddAssign(i)
		})
		b.Set(id, total)
	})
	code := k.Code()
	for _, want := range []string{
		"for (int v1 = 0; v1 < 10; v1 += 2) {",
		"if ((v1>4)) {",
		"break;",
		"v0 += v1;",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
}

func TestPanicDuringRecordingRestoresContext(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		Kernel1D(func(id *Var[int32]) {
			NewVar[float32]()
			panic("body failure")
		})
	}()
	if current() != nil {
		t.Fatal("active context survived a compute recording panic")
	}
	func() {
		defer func() { _ = recover() }()
		FragmentKernel2D(func(fragCoord *Var[Vec2], fragColor *Var[Vec4]) {
			panic("body failure")
		})
	}()
	if current() != nil {
		t.Fatal("active context survived a fragment recording panic")
	}
	// A later recording starts clean.
	k := Kernel1D(func(id *Var[int32]) {
		NewVar[float32]().SetVal(1)
	})
	if !strings.Contains(k.Code(), "float v0;") {
		t.Errorf("post-panic recording polluted:\n%s", k.Code())
	}
}

func TestRecordingOutsideContextIsInert(t *testing.T) {
	v := NewVar[float32]()
	v.SetVal(3)
	if v.Name() != "" {
		t.Errorf("Var declared outside a kernel got name %q", v.Name())
	}
	e := Add(F(1), F(2))
	if e.Empty() {
		t.Error("pure expressions should still build outside a kernel")
	}
	sq := NewCallable1[float32]("sq", func(a *Var[float32]) {
		Return[float32](Mul(a, a))
	})
	if !sq.Call(F(2)).Empty() {
		t.Error("callable invocation outside a kernel should be empty")
	}
}
