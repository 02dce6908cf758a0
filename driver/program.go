package driver

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/gogpu/shade/cache"
)

// ErrCompile wraps shader compilation and link failures; the driver
// info log follows the source excerpt in the message.
var ErrCompile = fmt.Errorf("driver: shader compile failed")

func compileShader(kind uint32, source string) (uint32, error) {
	sh := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, src, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		log := shaderInfoLog(sh)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%w: %s\n%s", ErrCompile, log, numberedSource(source))
	}
	return sh, nil
}

func shaderInfoLog(sh uint32) string {
	var n int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "(no info log)"
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

func programInfoLog(prog uint32) string {
	var n int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "(no info log)"
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// numberedSource prefixes each source line with its 1-based number so
// info-log line references are easy to follow.
func numberedSource(source string) string {
	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d: %s\n", i+1, line)
	}
	return b.String()
}

func linkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(prog, sh)
	}
	gl.LinkProgram(prog)
	for _, sh := range shaders {
		gl.DetachShader(prog, sh)
		gl.DeleteShader(sh)
	}
	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		log := programInfoLog(prog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: link: %s", ErrCompile, log)
	}
	return prog, nil
}

// CompileCompute builds a compute program from GLSL source.
func CompileCompute(source string) (uint32, error) {
	sh, err := compileShader(gl.COMPUTE_SHADER, source)
	if err != nil {
		return 0, err
	}
	return linkProgram(sh)
}

// CompileRender builds a vertex+fragment program.
func CompileRender(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	return linkProgram(vs, fs)
}

// DeleteProgram releases a program object.
func DeleteProgram(prog uint32) {
	if prog != 0 {
		gl.DeleteProgram(prog)
	}
}

// UseProgram makes a program current.
func UseProgram(prog uint32) { gl.UseProgram(prog) }

// locationCache memoises uniform-location lookups per program. Keys
// are "prog\x00name".
var locationCache = cache.NewSharded[string, int32](256, cache.StringHasher, nil)

// programCache retains compiled compute programs keyed by source, so
// re-dispatching an identical kernel skips the compiler. Evicted
// programs are released.
var programCache = cache.NewSharded[string, uint32](32, cache.StringHasher, func(_ string, prog uint32) {
	DeleteProgram(prog)
})

// ComputeProgram returns a compiled compute program for source,
// compiling on a cache miss.
func ComputeProgram(source string) (uint32, error) {
	if prog, ok := programCache.Get(source); ok {
		return prog, nil
	}
	prog, err := CompileCompute(source)
	if err != nil {
		return 0, err
	}
	programCache.Put(source, prog)
	return prog, nil
}

// Stale entries for deleted programs age out of the LRU on their own.
func locationKey(prog uint32, name string) string {
	return fmt.Sprintf("%d\x00%s", prog, name)
}

// UniformLocation resolves a uniform location, with caching. A
// missing uniform (optimised out or misspelled) returns -1, which the
// upload primitives treat as a no-op.
func UniformLocation(prog uint32, name string) int32 {
	key := locationKey(prog, name)
	if loc, ok := locationCache.Get(key); ok {
		return loc
	}
	loc := gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	locationCache.Put(key, loc)
	return loc
}

// Uniform upload primitives. All take a resolved location and skip
// silently when it is -1.

func Uniform1f(loc int32, v float32) {
	if loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func Uniform1i(loc int32, v int32) {
	if loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func Uniform2fv(loc int32, v []float32) {
	if loc >= 0 {
		gl.Uniform2fv(loc, 1, &v[0])
	}
}

func Uniform3fv(loc int32, v []float32) {
	if loc >= 0 {
		gl.Uniform3fv(loc, 1, &v[0])
	}
}

func Uniform4fv(loc int32, v []float32) {
	if loc >= 0 {
		gl.Uniform4fv(loc, 1, &v[0])
	}
}

func Uniform2iv(loc int32, v []int32) {
	if loc >= 0 {
		gl.Uniform2iv(loc, 1, &v[0])
	}
}

func Uniform3iv(loc int32, v []int32) {
	if loc >= 0 {
		gl.Uniform3iv(loc, 1, &v[0])
	}
}

func Uniform4iv(loc int32, v []int32) {
	if loc >= 0 {
		gl.Uniform4iv(loc, 1, &v[0])
	}
}

// UniformMatrix uploads a column-major matrix of the given shape.
// Data is cols*rows floats, column by column.
func UniformMatrix(loc int32, cols, rows int, data []float32) {
	if loc < 0 {
		return
	}
	p := &data[0]
	switch [2]int{cols, rows} {
	case [2]int{2, 2}:
		gl.UniformMatrix2fv(loc, 1, false, p)
	case [2]int{3, 3}:
		gl.UniformMatrix3fv(loc, 1, false, p)
	case [2]int{4, 4}:
		gl.UniformMatrix4fv(loc, 1, false, p)
	case [2]int{2, 3}:
		gl.UniformMatrix2x3fv(loc, 1, false, p)
	case [2]int{2, 4}:
		gl.UniformMatrix2x4fv(loc, 1, false, p)
	case [2]int{3, 2}:
		gl.UniformMatrix3x2fv(loc, 1, false, p)
	case [2]int{3, 4}:
		gl.UniformMatrix3x4fv(loc, 1, false, p)
	case [2]int{4, 2}:
		gl.UniformMatrix4x2fv(loc, 1, false, p)
	case [2]int{4, 3}:
		gl.UniformMatrix4x3fv(loc, 1, false, p)
	}
}
