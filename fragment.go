package shade

import (
	"errors"
	"fmt"

	"github.com/gogpu/shade/driver"
	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/window"
)

// ErrNotAttached is returned by Flush before the kernel has a window.
var ErrNotAttached = errors.New("shade: fragment kernel not attached to a window")

// FragmentKernel is a recorded fragment program drawn as a
// full-screen triangle into an attached window. The body sees the
// pixel coordinate and writes the output colour; textures bound with
// BindSampler are sampled per pixel.
type FragmentKernel struct {
	ctx       *recordContext
	name      string
	profiling bool

	win        *window.Window
	prog       uint32
	compiled   bool
	resW, resH int
	resForced  bool
}

// FragmentKernel2D records a fragment kernel. The body receives
// fragCoord, the pixel centre in window coordinates, and fragColor,
// the output to assign.
func FragmentKernel2D(fn func(fragCoord *Var[Vec2], fragColor *Var[Vec4]), opts ...Option) *FragmentKernel {
	o := kernelOpts{name: "fragment"}
	for _, opt := range opts {
		opt(&o)
	}
	ctx := newRecordContext(1, 1, 1)
	ctx.fragment = true
	restore := bindContext(ctx)
	defer restore()
	fn(BindVar[Vec2]("fragCoord"), BindVar[Vec4]("fragColor"))
	return &FragmentKernel{ctx: ctx, name: o.name, profiling: o.profiling}
}

// Name returns the kernel name.
func (k *FragmentKernel) Name() string { return k.name }

// SetName renames the kernel.
func (k *FragmentKernel) SetName(name string) { k.name = name }

// Code assembles and returns the fragment shader source.
func (k *FragmentKernel) Code() string { return k.ctx.CompleteCode() }

// Attach binds the kernel to a window and reports success. A kernel
// renders into one window at a time.
func (k *FragmentKernel) Attach(win *window.Window) bool {
	if win == nil {
		return false
	}
	k.win = win
	return true
}

// Detach releases the window binding and the cached program.
func (k *FragmentKernel) Detach() {
	k.win = nil
	k.releaseProgram()
}

// SetResolution overrides the u_resolution uniform seen by the next
// flush. Without an override the window's framebuffer size is used.
func (k *FragmentKernel) SetResolution(w, h int) {
	k.resW, k.resH = w, h
	k.resForced = true
}

func (k *FragmentKernel) releaseProgram() {
	if k.compiled {
		driver.DeleteProgram(k.prog)
		k.prog = 0
		k.compiled = false
	}
}

// Flush draws one frame into the attached window and presents it.
func (k *FragmentKernel) Flush() error {
	if k.win == nil {
		return ErrNotAttached
	}
	if err := driver.Ensure(); err != nil {
		return err
	}

	if !k.compiled {
		prog, err := driver.CompileRender(glsl.FullScreenVertexShader, k.ctx.CompleteCode())
		if err != nil {
			return fmt.Errorf("shade: fragment %s: %w", k.name, err)
		}
		k.prog = prog
		k.compiled = true
	}

	k.win.Begin()
	driver.ClearScreen()
	driver.UseProgram(k.prog)

	w, h := k.win.Size()
	if k.resForced {
		w, h = k.resW, k.resH
	}
	driver.Uniform2fv(driver.UniformLocation(k.prog, "u_resolution"), []float32{float32(w), float32(h)})
	for _, u := range k.ctx.uniforms {
		if err := u.upload(k.prog); err != nil {
			return fmt.Errorf("shade: fragment %s: %w", k.name, err)
		}
	}
	if err := bindResources(k.ctx, k.prog); err != nil {
		return fmt.Errorf("shade: fragment %s: %w", k.name, err)
	}

	end := func() {}
	if k.profiling {
		end = driver.GlobalProfiler().Begin(k.name)
	}
	driver.DrawFullScreen()
	end()
	unbindResources(k.ctx)

	driver.UseProgram(0)
	k.win.Present()
	return nil
}
