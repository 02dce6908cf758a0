// Package std430 maps native Go struct layouts to the GLSL std430
// storage-buffer layout and back.
//
// A struct is described once through reflection (Describe) and the
// resulting metadata drives both the GLSL struct declaration emitted
// by the recording context and the byte-level conversion applied on
// upload and download. When the host layout already matches std430
// the converter marks itself transparent and copies degrade to a
// single memmove by the caller.
package std430

import (
	"fmt"
	"reflect"
	"sync"
)

// Kind classifies a field for layout purposes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFloat
	KindInt
	KindVec2
	KindVec3
	KindVec4
	KindIVec2
	KindIVec3
	KindIVec4
	KindMat2
	KindMat2x3
	KindMat2x4
	KindMat3x2
	KindMat3
	KindMat3x4
	KindMat4x2
	KindMat4x3
	KindMat4
	KindStruct
)

// glslNames maps kinds to their GLSL type names. Matrices follow the
// GLSL matCxR naming (C columns, R rows).
var glslNames = [...]string{
	KindFloat: "float",
	KindInt:   "int",
	KindVec2:  "vec2",
	KindVec3:  "vec3",
	KindVec4:  "vec4",
	KindIVec2: "ivec2",
	KindIVec3: "ivec3",
	KindIVec4: "ivec4",

	KindMat2:   "mat2",
	KindMat2x3: "mat2x3",
	KindMat2x4: "mat2x4",
	KindMat3x2: "mat3x2",
	KindMat3:   "mat3",
	KindMat3x4: "mat3x4",
	KindMat4x2: "mat4x2",
	KindMat4x3: "mat4x3",
	KindMat4:   "mat4",
}

// GLSLName returns the GLSL type name of a non-struct kind.
func (k Kind) GLSLName() string { return glslNames[k] }

// matShape returns columns and rows for matrix kinds, 0,0 otherwise.
func (k Kind) matShape() (cols, rows int) {
	switch k {
	case KindMat2:
		return 2, 2
	case KindMat2x3:
		return 2, 3
	case KindMat2x4:
		return 2, 4
	case KindMat3x2:
		return 3, 2
	case KindMat3:
		return 3, 3
	case KindMat3x4:
		return 3, 4
	case KindMat4x2:
		return 4, 2
	case KindMat4x3:
		return 4, 3
	case KindMat4:
		return 4, 4
	}
	return 0, 0
}

// layout returns the std430 size and alignment of a non-struct kind.
func (k Kind) layout() (size, align int) {
	switch k {
	case KindFloat, KindInt:
		return 4, 4
	case KindVec2, KindIVec2:
		return 8, 8
	case KindVec3, KindIVec3:
		// vec3 occupies 12 bytes but aligns like vec4.
		return 12, 16
	case KindVec4, KindIVec4:
		return 16, 16
	}
	if cols, rows := k.matShape(); cols != 0 {
		_, colAlign := columnLayout(rows)
		return cols * colAlign, colAlign
	}
	return 0, 0
}

// columnLayout returns the std430 array stride and alignment of a
// float column vector with the given row count.
func columnLayout(rows int) (stride, align int) {
	switch rows {
	case 2:
		return 8, 8
	case 3:
		return 16, 16
	default:
		return 16, 16
	}
}

// Field is one member of a described struct.
type Field struct {
	Name       string
	Kind       Kind
	HostOffset int
	HostSize   int

	// Struct carries nested metadata when Kind is KindStruct.
	Struct *Struct
}

// GLSLType returns the GLSL type name of the field.
func (f Field) GLSLType() string {
	if f.Kind == KindStruct {
		return f.Struct.GLSLName
	}
	return f.Kind.GLSLName()
}

// Struct is the layout description of one registered struct type.
type Struct struct {
	GLSLName string
	Fields   []Field
	HostSize int
}

// GLSLDecl renders the GLSL struct definition.
func (s *Struct) GLSLDecl() string {
	out := "struct " + s.GLSLName + " {\n"
	for _, f := range s.Fields {
		out += "  " + f.GLSLType() + " " + f.Name + ";\n"
	}
	return out + "};\n"
}

// Mapper resolves a Go type to a layout kind. Types the mapper does
// not recognise fall back to nested struct description.
type Mapper func(reflect.Type) (Kind, bool)

var (
	registryMu sync.Mutex
	registry   = map[reflect.Type]*Struct{}
)

// Describe returns the layout metadata for a host struct type,
// describing it on first use. The mapper resolves leaf field types;
// unresolved struct fields are described recursively, so a struct
// containing another registered struct lays out with the nested
// struct's std430 alignment.
func Describe(t reflect.Type, mapper Mapper) (*Struct, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	return describeLocked(t, mapper)
}

func describeLocked(t reflect.Type, mapper Mapper) (*Struct, error) {
	if s, ok := registry[t]; ok {
		return s, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("std430: %s is not a struct", t)
	}
	s := &Struct{
		GLSLName: t.Name(),
		HostSize: int(t.Size()),
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			return nil, fmt.Errorf("std430: %s.%s is unexported", t, sf.Name)
		}
		f := Field{
			Name:       sf.Name,
			HostOffset: int(sf.Offset),
			HostSize:   int(sf.Type.Size()),
		}
		if kind, ok := mapper(sf.Type); ok {
			f.Kind = kind
		} else {
			nested, err := describeLocked(sf.Type, mapper)
			if err != nil {
				return nil, fmt.Errorf("std430: field %s.%s: %w", t, sf.Name, err)
			}
			f.Kind = KindStruct
			f.Struct = nested
		}
		s.Fields = append(s.Fields, f)
	}
	registry[t] = s
	return s, nil
}

// Layout returns the std430 size (before array rounding) and
// alignment of the struct. A struct aligns to its strictest member.
func (s *Struct) Layout() (size, align int) {
	off := 0
	align = 4
	for _, f := range s.Fields {
		fs, fa := fieldLayout(f)
		off = alignUp(off, fa) + fs
		if fa > align {
			align = fa
		}
	}
	return alignUp(off, align), align
}

// Stride returns the std430 array-element stride of the struct: the
// trailing size is rounded up so array elements retain alignment.
func (s *Struct) Stride() int {
	size, align := s.Layout()
	return alignUp(size, align)
}

func fieldLayout(f Field) (size, align int) {
	if f.Kind == KindStruct {
		return f.Struct.Layout()
	}
	return f.Kind.layout()
}

func alignUp(v, a int) int { return (v + a - 1) / a * a }
