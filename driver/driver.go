// Package driver is the OpenGL 4.3 runtime behind shade: lazy context
// bootstrap, program compilation, storage buffers, textures,
// asynchronous readback and timer-query profiling.
//
// All entry points assume the caller serialises GPU work on one
// goroutine; the package locks that goroutine to its OS thread when
// the context is created.
package driver

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the driver logger. Pass nil to silence output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }

var (
	bootMu  sync.Mutex
	booted  bool
	bootErr error
	ctxWin  *glfw.Window
)

// Ensure creates the GPU context on first call and is idempotent
// afterwards. The context lives behind a hidden GLFW window so the
// runtime works without any visible surface.
func Ensure() error {
	bootMu.Lock()
	defer bootMu.Unlock()
	if booted {
		return bootErr
	}
	booted = true

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		bootErr = fmt.Errorf("driver: glfw init: %w", err)
		return bootErr
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(16, 16, "shade-runtime", nil, nil)
	if err != nil {
		glfw.Terminate()
		bootErr = fmt.Errorf("driver: create context window: %w", err)
		return bootErr
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		bootErr = fmt.Errorf("driver: gl init: %w", err)
		return bootErr
	}
	ctxWin = win
	logger().Info("driver: context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// ShareWindow returns the hidden context window, used as the share
// list when a visible window needs access to runtime resources.
// Ensure must have succeeded first.
func ShareWindow() *glfw.Window { return ctxWin }

// Guard makes the runtime context current on this thread and returns
// a function restoring the previous binding. Every GPU-touching entry
// point composes one.
func Guard() func() {
	prev := glfw.GetCurrentContext()
	if ctxWin != nil && prev != ctxWin {
		ctxWin.MakeContextCurrent()
	}
	return func() {
		if prev != nil && prev != ctxWin {
			prev.MakeContextCurrent()
		}
	}
}

// Finish blocks until the driver has completed all submitted work.
func Finish() { gl.Finish() }

// MemoryBarrier issues a storage and image barrier, used after a
// dispatch with sync requested.
func MemoryBarrier() {
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}

// DispatchCompute launches a compute grid.
func DispatchCompute(x, y, z int) {
	gl.DispatchCompute(uint32(x), uint32(y), uint32(z))
}
