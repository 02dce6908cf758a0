package shade

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/ir"
	"github.com/gogpu/shade/std430"
)

// resource is the dispatch-time face of a bound buffer or texture:
// the GPU object behind a recorded binding slot.
type resource interface {
	deviceHandle() (uint32, error)
}

// uniformSlot is the dispatch-time face of a uniform: the context
// records the slot at Load time and reads its current value at each
// dispatch.
type uniformSlot interface {
	uniformName() string
	uniformType() string
	upload(prog uint32) error
}

type bufferDecl struct {
	binding  int
	typeName string
	name     string
	access   string // "", "readonly" or "writeonly"
	backing  resource
}

type imageDecl struct {
	binding int
	format  string
	name    string
	sampler bool
	width   int
	height  int
	backing resource
}

// recordContext is the per-kernel scratch space: emitted text, name
// and binding counters, resource registries and callable state.
// Contexts are disjoint; every recorded statement belongs to exactly
// one of them.
type recordContext struct {
	main     strings.Builder
	captures []*strings.Builder

	nameCount  int
	bufferSlot int
	imageSlot  int

	structSeen  map[string]bool
	structDecls []string

	buffers  []bufferDecl
	images   []imageDecl
	uniforms []uniformSlot

	// Callable state: mangled name per generator identity, pending
	// prototypes, deferred body generators and their completed
	// bodies. processed remembers how many generators earlier
	// fixed-point passes have already drained.
	callables map[*callableGen]string
	protos    []string
	bodyGens  []func()
	bodies    []string
	processed int

	localSize [3]int
	fragment  bool
}

func newRecordContext(localX, localY, localZ int) *recordContext {
	return &recordContext{
		structSeen: make(map[string]bool),
		callables:  make(map[*callableGen]string),
		localSize:  [3]int{localX, localY, localZ},
	}
}

// sink returns the buffer statements are currently appended to: the
// innermost capture when one is active, the main body otherwise.
func (c *recordContext) sink() *strings.Builder {
	if n := len(c.captures); n > 0 {
		return c.captures[n-1]
	}
	return &c.main
}

// build renders a node and appends it to the active sink, with a
// statement terminator when stmt is set.
func (c *recordContext) build(n ir.Node, stmt bool) {
	if stmt {
		c.sink().WriteString(glsl.Statement(n, 0))
		return
	}
	c.sink().WriteString(glsl.Expr(n))
}

// capture redirects emission into a fresh nested buffer for the
// duration of fn and returns the collected text.
func (c *recordContext) capture(fn func()) string {
	buf := &strings.Builder{}
	c.captures = append(c.captures, buf)
	fn()
	c.captures = c.captures[:len(c.captures)-1]
	return buf.String()
}

// newName allocates the next variable name. Names are unique within
// the context by construction.
func (c *recordContext) newName() string {
	name := fmt.Sprintf("v%d", c.nameCount)
	c.nameCount++
	return name
}

// registerStruct declares a struct type in this context on first use,
// declaring nested struct fields first so every definition precedes
// its uses.
func (c *recordContext) registerStruct(t reflect.Type) (*std430.Struct, error) {
	s, err := std430.Describe(t, layoutKind)
	if err != nil {
		return nil, err
	}
	c.addStructDecl(s)
	return s, nil
}

func (c *recordContext) addStructDecl(s *std430.Struct) {
	if c.structSeen[s.GLSLName] {
		return
	}
	for _, f := range s.Fields {
		if f.Kind == std430.KindStruct {
			c.addStructDecl(f.Struct)
		}
	}
	c.structSeen[s.GLSLName] = true
	c.structDecls = append(c.structDecls, s.GLSLDecl())
}

// registerBuffer allocates the next storage-buffer binding slot.
func (c *recordContext) registerBuffer(typeName, access string, backing resource) (int, string) {
	binding := c.bufferSlot
	c.bufferSlot++
	name := fmt.Sprintf("b%d", binding)
	c.buffers = append(c.buffers, bufferDecl{
		binding:  binding,
		typeName: typeName,
		name:     name,
		access:   access,
		backing:  backing,
	})
	return binding, name
}

// registerImage allocates the next image binding slot. Textures and
// storage buffers use independent counters.
func (c *recordContext) registerImage(format string, sampler bool, w, h int, backing resource) (int, string) {
	binding := c.imageSlot
	c.imageSlot++
	name := fmt.Sprintf("img%d", binding)
	c.images = append(c.images, imageDecl{
		binding: binding,
		format:  format,
		name:    name,
		sampler: sampler,
		width:   w,
		height:  h,
		backing: backing,
	})
	return binding, name
}

// registerUniform records a uniform slot so its declaration is
// emitted and its value uploaded at dispatch. Repeat registrations of
// one slot are collapsed.
func (c *recordContext) registerUniform(u uniformSlot) {
	for _, have := range c.uniforms {
		if have.uniformName() == u.uniformName() {
			return
		}
	}
	c.uniforms = append(c.uniforms, u)
}

// registerCallable declares a callable in this context on first use:
// it allocates the mangled name, records the prototype and defers the
// body generator. It returns the mangled name.
func (c *recordContext) registerCallable(g *callableGen) string {
	if name, ok := c.callables[g]; ok {
		return name
	}
	name := g.nextName()
	c.callables[g] = name

	params := make([]string, len(g.paramTypes))
	for i, pt := range g.paramTypes {
		params[i] = fmt.Sprintf("%s p%d", pt, i)
	}
	proto := fmt.Sprintf("%s %s(%s)", g.retType, name, strings.Join(params, ", "))
	c.protos = append(c.protos, proto)

	slot := len(c.bodies)
	c.bodies = append(c.bodies, "")
	c.bodyGens = append(c.bodyGens, func() {
		c.bodies[slot] = c.capture(func() { g.emitBody() })
	})
	return name
}

// drainCallables runs pending body generators to a fixed point:
// generating a body may register further callables, which extend the
// generator list and are drained by the same loop. Completed bodies
// are kept, never re-executed.
func (c *recordContext) drainCallables() {
	for c.processed < len(c.bodyGens) {
		gen := c.bodyGens[c.processed]
		c.processed++
		gen()
	}
}

// CompleteCode assembles the full GLSL program recorded so far:
// version and work-group layout, struct definitions, image and buffer
// declarations, uniforms, callable prototypes, main, then callable
// definitions.
func (c *recordContext) CompleteCode() string {
	restore := bindContext(c)
	defer restore()
	c.drainCallables()

	var out strings.Builder
	out.WriteString(glsl.VersionDirective)
	if !c.fragment {
		out.WriteString(glsl.LocalSizeDecl(c.localSize[0], c.localSize[1], c.localSize[2]))
	} else {
		out.WriteString("out vec4 fragColor;\n")
		out.WriteString(glsl.UniformDecl("vec2", "u_resolution"))
	}
	for _, s := range c.structDecls {
		out.WriteString(s)
	}
	for _, img := range c.images {
		if img.sampler {
			out.WriteString(glsl.SamplerDecl(img.binding, img.name))
		} else {
			out.WriteString(glsl.ImageDecl(img.binding, img.format, img.name))
		}
	}
	for _, b := range c.buffers {
		out.WriteString(glsl.BufferDecl(b.binding, b.access, b.typeName, b.name))
	}
	for _, u := range c.uniforms {
		out.WriteString(glsl.UniformDecl(u.uniformType(), u.uniformName()))
	}
	for _, p := range c.protos {
		out.WriteString(p)
		out.WriteString(";\n")
	}
	out.WriteString("void main() {\n")
	if c.fragment {
		out.WriteString("  vec2 fragCoord = gl_FragCoord.xy;\n")
	}
	if body := c.main.String(); body != "" {
		out.WriteString(glsl.Statement(ir.RawCode{Text: body}, 1))
	}
	out.WriteString("}\n")
	for i, p := range c.protos {
		out.WriteString(p)
		out.WriteString(" {\n")
		if c.bodies[i] != "" {
			out.WriteString(glsl.Statement(ir.RawCode{Text: c.bodies[i]}, 1))
		}
		out.WriteString("}\n")
	}
	return out.String()
}
