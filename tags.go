package shade

import (
	"fmt"
	"reflect"

	"github.com/gogpu/shade/glsl"
	"github.com/gogpu/shade/std430"
)

// Void is the return tag of callables that produce no value.
type Void struct{}

// Scalar covers the scalar type tags of the DSL.
type Scalar interface {
	~bool | ~int32 | ~float32
}

// FloatVec covers the float vector tags.
type FloatVec interface {
	Vec2 | Vec3 | Vec4
}

// IntVec covers the integer vector tags.
type IntVec interface {
	IVec2 | IVec3 | IVec4
}

// AnyVec covers every vector tag.
type AnyVec interface {
	FloatVec | IntVec
}

// Matrix covers the float matrix tags.
type Matrix interface {
	Mat2 | Mat2x3 | Mat2x4 | Mat3x2 | Mat3 | Mat3x4 | Mat4x2 | Mat4x3 | Mat4
}

// IntLike covers the operand tags of bitwise and shift operators.
type IntLike interface {
	~int32 | IntVec
}

// FloatLike covers the operand tags of float intrinsics.
type FloatLike interface {
	~float32 | FloatVec
}

// Numeric covers the operand tags of the arithmetic operators.
type Numeric interface {
	~int32 | ~float32 | AnyVec | Matrix
}

// Ordered covers the operand tags of the ordering comparisons.
type Ordered interface {
	~int32 | ~float32
}

// typeNameFor resolves the GLSL type name of a host value. Struct
// types fall back to their Go type name, which is also the name their
// std430 registration declares.
func typeNameFor(v any) string {
	switch v.(type) {
	case bool:
		return "bool"
	case int32:
		return "int"
	case float32:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case IVec2:
		return "ivec2"
	case IVec3:
		return "ivec3"
	case IVec4:
		return "ivec4"
	case Mat2:
		return "mat2"
	case Mat2x3:
		return "mat2x3"
	case Mat2x4:
		return "mat2x4"
	case Mat3x2:
		return "mat3x2"
	case Mat3:
		return "mat3"
	case Mat3x4:
		return "mat3x4"
	case Mat4x2:
		return "mat4x2"
	case Mat4x3:
		return "mat4x3"
	case Mat4:
		return "mat4"
	case Void:
		return "void"
	default:
		t := reflect.TypeOf(v)
		if t != nil && t.Kind() == reflect.Struct {
			return t.Name()
		}
		return ""
	}
}

// glslTypeName returns the GLSL type name of a tag type.
func glslTypeName[T any]() string {
	var z T
	return typeNameFor(z)
}

// vecWidth returns the component count of a vector tag value, or 0
// for non-vector tags.
func vecWidth(v any) int {
	switch v.(type) {
	case Vec2, IVec2:
		return 2
	case Vec3, IVec3:
		return 3
	case Vec4, IVec4:
		return 4
	}
	return 0
}

// litFor serialises a host value as a GLSL literal or constructor
// expression. Unsupported values serialise to the empty string.
func litFor(v any) string {
	switch x := v.(type) {
	case bool:
		return glsl.BoolString(x)
	case int32:
		return glsl.IntString(x)
	case float32:
		return glsl.FloatString(x)
	case Vec2:
		return fmt.Sprintf("vec2(%s, %s)", glsl.FloatString(x.X), glsl.FloatString(x.Y))
	case Vec3:
		return fmt.Sprintf("vec3(%s, %s, %s)",
			glsl.FloatString(x.X), glsl.FloatString(x.Y), glsl.FloatString(x.Z))
	case Vec4:
		return fmt.Sprintf("vec4(%s, %s, %s, %s)",
			glsl.FloatString(x.X), glsl.FloatString(x.Y), glsl.FloatString(x.Z), glsl.FloatString(x.W))
	case IVec2:
		return fmt.Sprintf("ivec2(%s, %s)", glsl.IntString(x.X), glsl.IntString(x.Y))
	case IVec3:
		return fmt.Sprintf("ivec3(%s, %s, %s)",
			glsl.IntString(x.X), glsl.IntString(x.Y), glsl.IntString(x.Z))
	case IVec4:
		return fmt.Sprintf("ivec4(%s, %s, %s, %s)",
			glsl.IntString(x.X), glsl.IntString(x.Y), glsl.IntString(x.Z), glsl.IntString(x.W))
	case Mat2:
		return matLit("mat2", vecFloats(x[0]), vecFloats(x[1]))
	case Mat2x3:
		return matLit("mat2x3", vecFloats(x[0]), vecFloats(x[1]))
	case Mat2x4:
		return matLit("mat2x4", vecFloats(x[0]), vecFloats(x[1]))
	case Mat3x2:
		return matLit("mat3x2", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]))
	case Mat3:
		return matLit("mat3", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]))
	case Mat3x4:
		return matLit("mat3x4", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]))
	case Mat4x2:
		return matLit("mat4x2", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]), vecFloats(x[3]))
	case Mat4x3:
		return matLit("mat4x3", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]), vecFloats(x[3]))
	case Mat4:
		return matLit("mat4", vecFloats(x[0]), vecFloats(x[1]), vecFloats(x[2]), vecFloats(x[3]))
	default:
		return ""
	}
}

func vecFloats(v any) []float32 {
	switch x := v.(type) {
	case Vec2:
		return []float32{x.X, x.Y}
	case Vec3:
		return []float32{x.X, x.Y, x.Z}
	case Vec4:
		return []float32{x.X, x.Y, x.Z, x.W}
	}
	return nil
}

// matLit renders a GLSL matrix constructor from column-major scalars.
func matLit(name string, cols ...[]float32) string {
	out := name + "("
	first := true
	for _, col := range cols {
		for _, f := range col {
			if !first {
				out += ", "
			}
			first = false
			out += glsl.FloatString(f)
		}
	}
	return out + ")"
}

var layoutKinds = map[reflect.Type]std430.Kind{
	reflect.TypeOf(float32(0)): std430.KindFloat,
	reflect.TypeOf(int32(0)):   std430.KindInt,
	reflect.TypeOf(Vec2{}):     std430.KindVec2,
	reflect.TypeOf(Vec3{}):     std430.KindVec3,
	reflect.TypeOf(Vec4{}):     std430.KindVec4,
	reflect.TypeOf(IVec2{}):    std430.KindIVec2,
	reflect.TypeOf(IVec3{}):    std430.KindIVec3,
	reflect.TypeOf(IVec4{}):    std430.KindIVec4,
	reflect.TypeOf(Mat2{}):     std430.KindMat2,
	reflect.TypeOf(Mat2x3{}):   std430.KindMat2x3,
	reflect.TypeOf(Mat2x4{}):   std430.KindMat2x4,
	reflect.TypeOf(Mat3x2{}):   std430.KindMat3x2,
	reflect.TypeOf(Mat3{}):     std430.KindMat3,
	reflect.TypeOf(Mat3x4{}):   std430.KindMat3x4,
	reflect.TypeOf(Mat4x2{}):   std430.KindMat4x2,
	reflect.TypeOf(Mat4x3{}):   std430.KindMat4x3,
	reflect.TypeOf(Mat4{}):     std430.KindMat4,
}

// layoutKind is the std430.Mapper used for struct registration.
func layoutKind(t reflect.Type) (std430.Kind, bool) {
	k, ok := layoutKinds[t]
	return k, ok
}

// isPrimitiveTag reports whether a tag type maps directly to a GLSL
// built-in type rather than a registered struct.
func isPrimitiveTag(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int32, reflect.Float32:
		return true
	}
	_, ok := layoutKinds[t]
	return ok
}
