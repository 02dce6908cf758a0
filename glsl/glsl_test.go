package glsl

import (
	"strings"
	"testing"

	"github.com/gogpu/shade/ir"
)

func TestExpr(t *testing.T) {
	a, b := ir.Load{Name: "a"}, ir.Load{Name: "b"}
	tests := []struct {
		name string
		node ir.Node
		want string
	}{
		{"add", ir.Op{Code: ir.OpAdd, Left: a, Right: b}, "(a+b)"},
		{"shift", ir.Op{Code: ir.OpShl, Left: a, Right: ir.LoadUniform{Text: "2"}}, "(a<<2)"},
		{"neg", ir.Op{Code: ir.OpNeg, Left: a}, "(-a)"},
		{"not", ir.Op{Code: ir.OpLogicNot, Left: a}, "(!a)"},
		{"nested", ir.Op{
			Code:  ir.OpMul,
			Left:  ir.Op{Code: ir.OpAdd, Left: a, Right: b},
			Right: ir.LoadUniform{Text: "0.5"},
		}, "((a+b)*0.5)"},
		{"verbatim", ir.LoadUniform{Text: "gl_FragCoord.xy"}, "gl_FragCoord.xy"},
		{"subscript", ir.ArrayAccess{Base: a, Index: b}, "a[b]"},
		{"member", ir.MemberAccess{Base: a, Field: "pos"}, "a.pos"},
		{"intrinsic", ir.Intrinsic{Name: "min", Args: []ir.Node{a, b}}, "min(a, b)"},
		{"call", ir.Call{Name: "square_0", Args: []ir.Node{a}}, "square_0(a)"},
		{"store", ir.Store{Dst: a, Src: b}, "(a)=(b)"},
		{"compound", ir.CompoundAssign{Code: ir.OpAdd, Dst: a, Src: b}, "a += b"},
		{"preinc", ir.IncDec{Dst: a, Prefix: true}, "++(a)"},
		{"postdec", ir.IncDec{Dst: a, Decrement: true}, "(a)--"},
		{"decl", ir.DeclVar{Name: "v0", TypeName: "vec3"}, "vec3 v0"},
		{"decl array", ir.DeclArray{Name: "tmp", TypeName: "float", Count: 8}, "float tmp[8]"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expr(tt.node); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementControlFlow(t *testing.T) {
	cond := ir.Op{Code: ir.OpLt, Left: ir.Load{Name: "i"}, Right: ir.LoadUniform{Text: "4"}}

	got := Statement(ir.If{
		Cond: cond,
		Then: []ir.Node{ir.Break{}},
		Else: []ir.Node{ir.Continue{}},
	}, 0)
	want := "if ((i<4)) {\n  break;\n} else {\n  continue;\n}\n"
	if got != want {
		t.Errorf("if/else:\n got %q\nwant %q", got, want)
	}

	got = Statement(ir.For{
		VarName: "v0",
		Start:   ir.LoadUniform{Text: "0"},
		Bound:   ir.LoadUniform{Text: "8"},
		Step:    ir.LoadUniform{Text: "1"},
		Body:    []ir.Node{ir.RawCode{Text: "x += 1.0;"}},
	}, 1)
	want = "  for (int v0 = 0; v0 < 8; v0 += 1) {\n    x += 1.0;\n  }\n"
	if got != want {
		t.Errorf("for:\n got %q\nwant %q", got, want)
	}

	got = Statement(ir.DoWhile{Cond: ir.Load{Name: "go"}, Body: []ir.Node{ir.Break{}}}, 0)
	want = "do {\n  break;\n} while (go);\n"
	if got != want {
		t.Errorf("do/while:\n got %q\nwant %q", got, want)
	}
}

func TestStatementRawReindents(t *testing.T) {
	got := Statement(ir.RawCode{Text: "a = 1;\nb = 2;\n"}, 2)
	want := "    a = 1;\n    b = 2;\n"
	if got != want {
		t.Errorf("raw:\n got %q\nwant %q", got, want)
	}
}

func TestStatementExternalDeclSkipped(t *testing.T) {
	if got := Statement(ir.DeclVar{Name: "fragCoord", TypeName: "vec2", External: true}, 0); got != "" {
		t.Errorf("external decl rendered: %q", got)
	}
}

func TestFloatString(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{1, "1.0"},
		{0.5, "0.5"},
		{-2, "-2.0"},
		{0, "0.0"},
		{1e10, "1e+10"},
	}
	for _, tt := range tests {
		if got := FloatString(tt.in); got != tt.want {
			t.Errorf("FloatString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecls(t *testing.T) {
	if got := BufferDecl(1, "readonly", "float", "b1"); got != "layout(std430, binding=1) readonly buffer b1_t { float b1[]; };\n" {
		t.Errorf("BufferDecl = %q", got)
	}
	if got := BufferDecl(0, "", "Particle", "b0"); !strings.Contains(got, ") buffer b0_t { Particle b0[]; }") {
		t.Errorf("BufferDecl read-write = %q", got)
	}
	if got := ImageDecl(2, "rgba32f", "img2"); got != "layout(rgba32f, binding=2) uniform image2D img2;\n" {
		t.Errorf("ImageDecl = %q", got)
	}
	if got := LocalSizeDecl(64, 1, 1); got != "layout(local_size_x=64, local_size_y=1, local_size_z=1) in;\n" {
		t.Errorf("LocalSizeDecl = %q", got)
	}
}
