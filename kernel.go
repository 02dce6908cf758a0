package shade

import (
	"fmt"

	"github.com/gogpu/shade/driver"
)

// Option configures a kernel at recording time.
type Option func(*kernelOpts)

type kernelOpts struct {
	name      string
	local     [3]int
	localSet  bool
	profiling bool
}

// WithName names the kernel for profiling and logs.
func WithName(name string) Option {
	return func(o *kernelOpts) { o.name = name }
}

// WithWorkGroupSize overrides the default local work-group size.
func WithWorkGroupSize(x, y, z int) Option {
	return func(o *kernelOpts) {
		o.local = [3]int{x, y, z}
		o.localSet = true
	}
}

// WithProfiling records GPU timing spans for each dispatch.
func WithProfiling() Option {
	return func(o *kernelOpts) { o.profiling = true }
}

// Kernel is a recorded compute program. The GLSL is assembled lazily
// on the first Code or Dispatch; dispatching compiles it through the
// driver's program cache and runs it over a grid of work groups.
type Kernel struct {
	ctx       *recordContext
	name      string
	dims      int
	profiling bool
}

var kernelDefaults = [4][3]int{
	{},
	{64, 1, 1},
	{8, 8, 1},
	{4, 4, 4},
}

func newKernel(dims int, record func(), opts []Option) *Kernel {
	o := kernelOpts{name: fmt.Sprintf("kernel%dd", dims), local: kernelDefaults[dims]}
	for _, opt := range opts {
		opt(&o)
	}
	ctx := newRecordContext(o.local[0], o.local[1], o.local[2])
	restore := bindContext(ctx)
	// Deferred so a panicking body cannot leave a dead context
	// installed.
	defer restore()
	record()
	return &Kernel{ctx: ctx, name: o.name, dims: dims, profiling: o.profiling}
}

// Kernel1D records a kernel invoked once per thread over one axis.
// The body receives the global thread id.
func Kernel1D(fn func(id *Var[int32]), opts ...Option) *Kernel {
	return newKernel(1, func() {
		fn(BindVar[int32]("int(gl_GlobalInvocationID.x)"))
	}, opts)
}

// Kernel2D records a kernel over two axes.
func Kernel2D(fn func(x, y *Var[int32]), opts ...Option) *Kernel {
	return newKernel(2, func() {
		fn(BindVar[int32]("int(gl_GlobalInvocationID.x)"),
			BindVar[int32]("int(gl_GlobalInvocationID.y)"))
	}, opts)
}

// Kernel3D records a kernel over three axes.
func Kernel3D(fn func(x, y, z *Var[int32]), opts ...Option) *Kernel {
	return newKernel(3, func() {
		fn(BindVar[int32]("int(gl_GlobalInvocationID.x)"),
			BindVar[int32]("int(gl_GlobalInvocationID.y)"),
			BindVar[int32]("int(gl_GlobalInvocationID.z)"))
	}, opts)
}

// Name returns the kernel name.
func (k *Kernel) Name() string { return k.name }

// SetName renames the kernel.
func (k *Kernel) SetName(name string) { k.name = name }

// Dims returns the kernel's dimensionality.
func (k *Kernel) Dims() int { return k.dims }

// Code assembles and returns the kernel's GLSL source.
func (k *Kernel) Code() string { return k.ctx.CompleteCode() }

// Dispatch compiles the kernel if needed and launches groupsX×groupsY
// ×groupsZ work groups. Uniform values are read at call time; bound
// buffers and textures materialise their GPU objects on first use.
// With sync set the call blocks until all writes are visible.
func (k *Kernel) Dispatch(groupsX, groupsY, groupsZ int, sync bool) error {
	if groupsX <= 0 || groupsY <= 0 || groupsZ <= 0 {
		return fmt.Errorf("shade: dispatch %s: groups %dx%dx%d", k.name, groupsX, groupsY, groupsZ)
	}
	if err := driver.Ensure(); err != nil {
		return err
	}
	restore := driver.Guard()
	defer restore()

	prog, err := driver.ComputeProgram(k.ctx.CompleteCode())
	if err != nil {
		return fmt.Errorf("shade: dispatch %s: %w", k.name, err)
	}
	driver.UseProgram(prog)
	defer driver.UseProgram(0)

	for _, u := range k.ctx.uniforms {
		if err := u.upload(prog); err != nil {
			return fmt.Errorf("shade: dispatch %s: %w", k.name, err)
		}
	}
	if err := bindResources(k.ctx, prog); err != nil {
		return fmt.Errorf("shade: dispatch %s: %w", k.name, err)
	}

	end := func() {}
	if k.profiling {
		end = driver.GlobalProfiler().Begin(k.name)
	}
	driver.DispatchCompute(groupsX, groupsY, groupsZ)
	end()
	unbindResources(k.ctx)

	if sync {
		driver.MemoryBarrier()
		driver.Finish()
	}
	return nil
}

// bindResources attaches the context's buffers and textures to their
// recorded binding slots. Samplers additionally resolve their uniform
// to the texture unit.
func bindResources(ctx *recordContext, prog uint32) error {
	for _, b := range ctx.buffers {
		handle, err := b.backing.deviceHandle()
		if err != nil {
			return err
		}
		driver.BindStorageBuffer(b.binding, handle)
	}
	for _, img := range ctx.images {
		handle, err := img.backing.deviceHandle()
		if err != nil {
			return err
		}
		if img.sampler {
			driver.BindTextureUnit(img.binding, handle)
			driver.Uniform1i(driver.UniformLocation(prog, img.name), int32(img.binding))
		} else {
			driver.BindImageUnit(img.binding, handle, formatByName(img.format))
		}
	}
	return nil
}

// unbindResources clears the binding slots bindResources populated so
// a later dispatch of a different kernel never sees stale objects.
func unbindResources(ctx *recordContext) {
	for _, b := range ctx.buffers {
		driver.BindStorageBuffer(b.binding, 0)
	}
	for _, img := range ctx.images {
		if img.sampler {
			driver.BindTextureUnit(img.binding, 0)
		} else {
			driver.BindImageUnit(img.binding, 0, formatByName(img.format))
		}
	}
}

func formatByName(glslFormat string) driver.TexFormat {
	switch glslFormat {
	case "rgba32f":
		return driver.FormatRGBA32F
	case "r32f":
		return driver.FormatR32F
	case "rg32f":
		return driver.FormatRG32F
	case "r32i":
		return driver.FormatR32I
	}
	return driver.FormatRGBA8
}
