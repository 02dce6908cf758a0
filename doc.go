// Package shade is an embedded DSL for writing GPU compute and
// fragment shaders as ordinary Go expressions.
//
// # Overview
//
// shade records typed scalar, vector and matrix operations into an
// intermediate representation instead of evaluating them, lowers the
// recorded tree to GLSL 430 source, hands the source to the OpenGL
// driver for compilation, and dispatches the result against buffers
// and textures bound at kernel definition time.
//
// # Quick Start
//
//	import "github.com/gogpu/shade"
//
//	x, _ := shade.NewBufferFrom([]float32{1, 2, 3, 4}, shade.ReadOnly)
//	y, _ := shade.NewBufferFrom([]float32{10, 20, 30, 40}, shade.ReadWrite)
//
//	k := shade.Kernel1D(func(id *shade.Var[int32]) {
//	    xv, yv := x.Bind(), y.Bind()
//	    yv.Set(id, shade.Add(shade.Mul(shade.F(2), xv.Get(id)), yv.Get(id)))
//	}, shade.WithWorkGroupSize(4, 1, 1))
//
//	if err := k.Dispatch(1, 1, 1, true); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The module is organized into:
//   - Public API: value layer (Expr, Var, operators, swizzles),
//     kernels, Buffer, Texture2D, Uniform, Callable
//   - ir: the recorded node tree
//   - glsl: node-to-source lowering and program assembly helpers
//   - std430: struct metadata and host/GPU layout conversion
//   - driver: OpenGL 4.3 runtime (context, programs, SSBOs, textures,
//     PBO readback, timer-query profiler)
//   - window: GLFW window attachment for the fragment pipeline
//
// # Recording model
//
// Constructing a kernel installs a fresh recording context; every DSL
// operation inside the kernel function either appends a statement to
// that context or returns an expression handle the caller composes
// further. Recording is single-goroutine: the active context is a
// package-level pointer saved and restored by each kernel
// constructor, so nesting works but is not a recommended pattern.
// DSL operations outside any recording context are silent no-ops.
//
// # Expression linearity
//
// An Expr owns its subtree and is conceptually consumed by the first
// operation that uses it. Use Clone when the same expression must be
// composed twice; the clone is a fully independent subtree.
package shade

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
