package driver

import "github.com/go-gl/gl/v4.3-core/gl"

// fsVAO is the empty vertex array the full-screen pass binds; the
// core profile refuses to draw without one even when the vertex
// shader synthesises its inputs from gl_VertexID.
var fsVAO uint32

// DrawFullScreen issues the three-vertex full-screen triangle.
func DrawFullScreen() {
	if fsVAO == 0 {
		gl.GenVertexArrays(1, &fsVAO)
	}
	gl.BindVertexArray(fsVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// ClearScreen clears the bound framebuffer to opaque black.
func ClearScreen() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Viewport sets the render viewport.
func Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}
