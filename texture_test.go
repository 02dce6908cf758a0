package shade

import (
	"strings"
	"testing"
)

func TestTextureValidation(t *testing.T) {
	if _, err := NewTexture2D(0, 4, RGBA8); err == nil {
		t.Error("zero width accepted")
	}
	tex, err := NewTexture2D(4, 4, RGBA32F)
	if err != nil {
		t.Fatal(err)
	}
	if tex.PixelSize() != 16 {
		t.Errorf("RGBA32F pixel size = %d, want 16", tex.PixelSize())
	}
	if err := tex.Upload(make([]byte, 3)); err == nil {
		t.Error("short upload accepted")
	}
	if err := tex.SetImage(nil); err == nil {
		t.Error("SetImage accepted on a non-RGBA8 texture")
	}
}

func TestTextureTransferClampsOversizedSlices(t *testing.T) {
	tex, err := NewTexture2D(4, 4, R32F)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * 4 * tex.PixelSize()
	if n, err := tex.transferSize(want+32, "upload"); err != nil || n != want {
		t.Errorf("oversized upload: n=%d err=%v, want n=%d", n, err, want)
	}
	if n, err := tex.transferSize(want, "download"); err != nil || n != want {
		t.Errorf("exact download: n=%d err=%v, want n=%d", n, err, want)
	}
	if _, err := tex.transferSize(want-1, "download"); err == nil {
		t.Error("short download accepted")
	}
}

func TestImageBindingCode(t *testing.T) {
	tex, err := NewTexture2D(64, 64, RGBA32F)
	if err != nil {
		t.Fatal(err)
	}
	k := Kernel2D(func(x, y *Var[int32]) {
		img := tex.Bind()
		xy := NewVarFrom(IVec2Of(x, y))
		c := NewVarFrom(img.Load(xy))
		img.Store(xy, Scale[Vec4](c, F(2)))
	})
	code := k.Code()
	for _, want := range []string{
		"layout(rgba32f, binding=0) uniform image2D img0;\n",
		"(v1)=(imageLoad(img0, v0));",
		"imageStore(img0, v0, (v1*2.0));",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
}

func TestSamplerBindingCode(t *testing.T) {
	tex, err := NewTexture2D(64, 64, RGBA8)
	if err != nil {
		t.Fatal(err)
	}
	k := FragmentKernel2D(func(fragCoord *Var[Vec2], fragColor *Var[Vec4]) {
		s := tex.BindSampler()
		uv := NewVarFrom(Div(fragCoord.Load(), BindVar[Vec2]("u_resolution").Load()))
		fragColor.Set(s.Sample(uv))
	})
	code := k.Code()
	for _, want := range []string{
		"layout(binding=0) uniform sampler2D img0;\n",
		"(fragColor)=(texture(img0, v0));",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}
}

func TestImageAndBufferSlotsIndependent(t *testing.T) {
	tex, _ := NewTexture2D(8, 8, R32F)
	buf, _ := NewBuffer[float32](8, ReadWrite)
	k := Kernel1D(func(id *Var[int32]) {
		img := tex.Bind()
		b := buf.Bind()
		b.Set(id, X[Vec4](img.Load(C(IVec2{0, 0}))))
	})
	code := k.Code()
	// Both counters start at zero.
	if !strings.Contains(code, "layout(r32f, binding=0) uniform image2D img0;") {
		t.Errorf("image slot:\n%s", code)
	}
	if !strings.Contains(code, "layout(std430, binding=0) buffer b0_t") {
		t.Errorf("buffer slot:\n%s", code)
	}
}
