// Package glsl lowers recorded ir trees to GLSL source text.
//
// The package is intentionally state-light: there is no validation
// pass, and correctness rests on the recording layer building
// well-formed trees. Emission is a switch on the node kind. Binary
// operations render as parenthesised infix, unary operations as
// parenthesised prefix, and LoadUniform nodes emit their payload
// verbatim.
package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shade/ir"
)

// opSymbols maps each opcode to its GLSL operator token.
var opSymbols = [...]string{
	ir.OpAdd:    "+",
	ir.OpSub:    "-",
	ir.OpMul:    "*",
	ir.OpDiv:    "/",
	ir.OpMod:    "%",
	ir.OpBitAnd: "&",
	ir.OpBitOr:  "|",
	ir.OpBitXor: "^",
	ir.OpShl:    "<<",
	ir.OpShr:    ">>",
	ir.OpLt:     "<",
	ir.OpLe:     "<=",
	ir.OpGt:     ">",
	ir.OpGe:     ">=",
	ir.OpEq:     "==",
	ir.OpNe:     "!=",

	ir.OpLogicAnd: "&&",
	ir.OpLogicOr:  "||",

	ir.OpNeg:      "-",
	ir.OpBitNot:   "~",
	ir.OpLogicNot: "!",
}

// OpSymbol returns the GLSL operator token for an opcode.
func OpSymbol(op ir.Opcode) string { return opSymbols[op] }

// Expr returns the GLSL expression text of a node. A nil node renders
// as the empty string so that operations recorded outside an active
// context stay harmless.
func Expr(n ir.Node) string {
	if n == nil {
		return ""
	}
	var w writer
	w.expr(n)
	return w.out.String()
}

// Statement renders a node as one statement, terminated and indented
// by the given level. Control-flow nodes recursively render their
// bodies one level deeper.
func Statement(n ir.Node, indent int) string {
	if n == nil {
		return ""
	}
	var w writer
	w.statement(n, indent)
	return w.out.String()
}

type writer struct {
	out strings.Builder
}

func (w *writer) indent(level int) {
	for i := 0; i < level; i++ {
		w.out.WriteString("  ")
	}
}

func (w *writer) expr(n ir.Node) {
	if n == nil {
		return
	}
	switch k := n.(type) {
	case ir.LoadUniform:
		w.out.WriteString(k.Text)
	case ir.Load:
		w.out.WriteString(k.Name)
	case ir.Op:
		if k.Code.IsUnary() {
			w.out.WriteString("(")
			w.out.WriteString(opSymbols[k.Code])
			w.expr(k.Left)
			w.out.WriteString(")")
			return
		}
		w.out.WriteString("(")
		w.expr(k.Left)
		w.out.WriteString(opSymbols[k.Code])
		w.expr(k.Right)
		w.out.WriteString(")")
	case ir.ArrayAccess:
		w.expr(k.Base)
		w.out.WriteString("[")
		w.expr(k.Index)
		w.out.WriteString("]")
	case ir.MemberAccess:
		w.expr(k.Base)
		w.out.WriteString(".")
		w.out.WriteString(k.Field)
	case ir.Intrinsic:
		w.call(k.Name, k.Args)
	case ir.Call:
		w.call(k.Name, k.Args)
	case ir.Store:
		w.out.WriteString("(")
		w.expr(k.Dst)
		w.out.WriteString(")=(")
		w.expr(k.Src)
		w.out.WriteString(")")
	case ir.CompoundAssign:
		w.expr(k.Dst)
		w.out.WriteString(" ")
		w.out.WriteString(opSymbols[k.Code])
		w.out.WriteString("= ")
		w.expr(k.Src)
	case ir.IncDec:
		tok := "++"
		if k.Decrement {
			tok = "--"
		}
		if k.Prefix {
			w.out.WriteString(tok)
			w.out.WriteString("(")
			w.expr(k.Dst)
			w.out.WriteString(")")
			return
		}
		w.out.WriteString("(")
		w.expr(k.Dst)
		w.out.WriteString(")")
		w.out.WriteString(tok)
	case ir.DeclVar:
		// External variables already exist in the shader and are
		// never declared locally.
		if k.External {
			return
		}
		w.out.WriteString(k.TypeName)
		w.out.WriteString(" ")
		w.out.WriteString(k.Name)
	case ir.DeclArray:
		w.out.WriteString(k.TypeName)
		w.out.WriteString(" ")
		w.out.WriteString(k.Name)
		w.out.WriteString("[")
		w.out.WriteString(strconv.Itoa(k.Count))
		w.out.WriteString("]")
	case ir.RawCode:
		w.out.WriteString(k.Text)
	default:
		// Control-flow nodes have no expression form.
	}
}

func (w *writer) call(name string, args []ir.Node) {
	w.out.WriteString(name)
	w.out.WriteString("(")
	for i, a := range args {
		if i > 0 {
			w.out.WriteString(", ")
		}
		w.expr(a)
	}
	w.out.WriteString(")")
}

func (w *writer) statement(n ir.Node, level int) {
	switch k := n.(type) {
	case ir.If:
		w.indent(level)
		w.out.WriteString("if (")
		w.expr(k.Cond)
		w.out.WriteString(") {\n")
		w.block(k.Then, level+1)
		for _, e := range k.ElseIfs {
			w.indent(level)
			w.out.WriteString("} else if (")
			w.expr(e.Cond)
			w.out.WriteString(") {\n")
			w.block(e.Body, level+1)
		}
		if k.Else != nil {
			w.indent(level)
			w.out.WriteString("} else {\n")
			w.block(k.Else, level+1)
		}
		w.indent(level)
		w.out.WriteString("}\n")
	case ir.While:
		w.indent(level)
		w.out.WriteString("while (")
		w.expr(k.Cond)
		w.out.WriteString(") {\n")
		w.block(k.Body, level+1)
		w.indent(level)
		w.out.WriteString("}\n")
	case ir.DoWhile:
		w.indent(level)
		w.out.WriteString("do {\n")
		w.block(k.Body, level+1)
		w.indent(level)
		w.out.WriteString("} while (")
		w.expr(k.Cond)
		w.out.WriteString(");\n")
	case ir.For:
		w.indent(level)
		w.out.WriteString("for (int ")
		w.out.WriteString(k.VarName)
		w.out.WriteString(" = ")
		w.expr(k.Start)
		w.out.WriteString("; ")
		w.out.WriteString(k.VarName)
		w.out.WriteString(" < ")
		w.expr(k.Bound)
		w.out.WriteString("; ")
		w.out.WriteString(k.VarName)
		w.out.WriteString(" += ")
		w.expr(k.Step)
		w.out.WriteString(") {\n")
		w.block(k.Body, level+1)
		w.indent(level)
		w.out.WriteString("}\n")
	case ir.Break:
		w.indent(level)
		w.out.WriteString("break;\n")
	case ir.Continue:
		w.indent(level)
		w.out.WriteString("continue;\n")
	case ir.Return:
		w.indent(level)
		if k.Value == nil {
			w.out.WriteString("return;\n")
			return
		}
		w.out.WriteString("return ")
		w.expr(k.Value)
		w.out.WriteString(";\n")
	case ir.RawCode:
		w.raw(k.Text, level)
	case ir.DeclVar:
		if k.External {
			return
		}
		w.indent(level)
		w.expr(n)
		w.out.WriteString(";\n")
	default:
		w.indent(level)
		w.expr(n)
		w.out.WriteString(";\n")
	}
}

func (w *writer) block(stmts []ir.Node, level int) {
	for _, s := range stmts {
		w.statement(s, level)
	}
}

// raw writes pre-rendered, possibly multi-line text with the current
// indentation applied to every line.
func (w *writer) raw(text string, level int) {
	for line := range strings.Lines(strings.TrimRight(text, "\n") + "\n") {
		w.indent(level)
		w.out.WriteString(line)
	}
}

// FloatString formats a float32 as a GLSL literal, always carrying a
// decimal point so the literal parses as a float.
func FloatString(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// IntString formats an int32 as a GLSL literal.
func IntString(v int32) string { return strconv.FormatInt(int64(v), 10) }

// BoolString formats a bool as a GLSL literal.
func BoolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// BufferDecl renders an std430 storage buffer declaration.
func BufferDecl(binding int, access, typeName, name string) string {
	qual := ""
	switch access {
	case "readonly", "writeonly":
		qual = access + " "
	}
	return fmt.Sprintf("layout(std430, binding=%d) %sbuffer %s_t { %s %s[]; };\n",
		binding, qual, name, typeName, name)
}

// ImageDecl renders an image2D declaration with its format qualifier.
func ImageDecl(binding int, format, name string) string {
	return fmt.Sprintf("layout(%s, binding=%d) uniform image2D %s;\n", format, binding, name)
}

// SamplerDecl renders a combined sampler declaration for the fragment
// pipeline.
func SamplerDecl(binding int, name string) string {
	return fmt.Sprintf("layout(binding=%d) uniform sampler2D %s;\n", binding, name)
}

// UniformDecl renders a plain uniform declaration.
func UniformDecl(typeName, name string) string {
	return fmt.Sprintf("uniform %s %s;\n", typeName, name)
}

// LocalSizeDecl renders the compute work-group size declaration.
func LocalSizeDecl(x, y, z int) string {
	return fmt.Sprintf("layout(local_size_x=%d, local_size_y=%d, local_size_z=%d) in;\n", x, y, z)
}

// VersionDirective is the version line of every generated program.
const VersionDirective = "#version 430 core\n"

// FullScreenVertexShader synthesises a full-screen triangle from
// gl_VertexID, with no vertex buffers bound.
const FullScreenVertexShader = VersionDirective + `
void main() {
  vec2 p = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
  gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`
