// Package window opens a visible GLFW window that shares the shade
// runtime context, for presenting fragment kernels on screen.
package window

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/shade/driver"
)

// Option configures a Window.
type Option func(*options)

type options struct {
	title     string
	resizable bool
	vsync     bool
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithResizable allows the user to resize the window.
func WithResizable(on bool) Option {
	return func(o *options) { o.resizable = on }
}

// WithVSync synchronises SwapBuffers with the display refresh.
func WithVSync(on bool) Option {
	return func(o *options) { o.vsync = on }
}

// Window is a visible surface whose framebuffer fragment kernels
// render into. It shares GPU objects with the hidden runtime context,
// so buffers and textures created before or after opening the window
// are usable from both.
type Window struct {
	win    *glfw.Window
	width  int
	height int
}

// Open creates a visible window sharing the runtime context.
func Open(width, height int, opts ...Option) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("window: size %dx%d", width, height)
	}
	if err := driver.Ensure(); err != nil {
		return nil, err
	}
	o := options{title: "shade", vsync: true}
	for _, opt := range opts {
		opt(&o)
	}

	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if o.resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, o.title, nil, driver.ShareWindow())
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}
	w := &Window{win: win, width: width, height: height}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fw, fh int) {
		w.width, w.height = fw, fh
	})

	win.MakeContextCurrent()
	if o.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return w, nil
}

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() (int, int) { return w.width, w.height }

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Begin makes the window's context current and prepares the default
// framebuffer for a frame.
func (w *Window) Begin() {
	w.win.MakeContextCurrent()
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
}

// Present swaps buffers and pumps window events.
func (w *Window) Present() {
	w.win.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window. The runtime context stays alive.
func (w *Window) Close() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
}

// GLFW exposes the underlying window for callers wiring input
// callbacks.
func (w *Window) GLFW() *glfw.Window { return w.win }
