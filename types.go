package shade

import "github.com/chewxy/math32"

// Vec2 is a 2-component float vector, used both for CPU-side math and
// as a type tag in the DSL.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 { return v.X*w.X + v.Y*w.Y }

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the vector has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Mul(1 / l)
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if the vector has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Vec4 is a 4-component float vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// Add returns the sum of two vectors.
func (v Vec4) Add(w Vec4) Vec4 { return Vec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W} }

// Sub returns the difference of two vectors.
func (v Vec4) Sub(w Vec4) Vec4 { return Vec4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W} }

// Mul returns the vector scaled by a scalar.
func (v Vec4) Mul(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }

// Dot returns the dot product of two vectors.
func (v Vec4) Dot(w Vec4) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W }

// Length returns the length (magnitude) of the vector.
func (v Vec4) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// IVec2 is a 2-component signed integer vector.
type IVec2 struct {
	X, Y int32
}

// IV2 is a convenience function to create an IVec2.
func IV2(x, y int32) IVec2 { return IVec2{X: x, Y: y} }

// Add returns the sum of two vectors.
func (v IVec2) Add(w IVec2) IVec2 { return IVec2{v.X + w.X, v.Y + w.Y} }

// Sub returns the difference of two vectors.
func (v IVec2) Sub(w IVec2) IVec2 { return IVec2{v.X - w.X, v.Y - w.Y} }

// IVec3 is a 3-component signed integer vector.
type IVec3 struct {
	X, Y, Z int32
}

// IV3 is a convenience function to create an IVec3.
func IV3(x, y, z int32) IVec3 { return IVec3{X: x, Y: y, Z: z} }

// Add returns the sum of two vectors.
func (v IVec3) Add(w IVec3) IVec3 { return IVec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns the difference of two vectors.
func (v IVec3) Sub(w IVec3) IVec3 { return IVec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// IVec4 is a 4-component signed integer vector.
type IVec4 struct {
	X, Y, Z, W int32
}

// IV4 is a convenience function to create an IVec4.
func IV4(x, y, z, w int32) IVec4 { return IVec4{X: x, Y: y, Z: z, W: w} }

// Add returns the sum of two vectors.
func (v IVec4) Add(w IVec4) IVec4 { return IVec4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W} }

// Sub returns the difference of two vectors.
func (v IVec4) Sub(w IVec4) IVec4 { return IVec4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W} }

// Matrices are column-major arrays of column vectors, following the
// GLSL matCxR naming: C columns of R-component vectors. Square types
// drop the repeated dimension (Mat3 == mat3x3).

// Mat2 is a 2x2 float matrix.
type Mat2 [2]Vec2

// Mat2x3 is a matrix with 2 columns and 3 rows.
type Mat2x3 [2]Vec3

// Mat2x4 is a matrix with 2 columns and 4 rows.
type Mat2x4 [2]Vec4

// Mat3x2 is a matrix with 3 columns and 2 rows.
type Mat3x2 [3]Vec2

// Mat3 is a 3x3 float matrix.
type Mat3 [3]Vec3

// Mat3x4 is a matrix with 3 columns and 4 rows.
type Mat3x4 [3]Vec4

// Mat4x2 is a matrix with 4 columns and 2 rows.
type Mat4x2 [4]Vec2

// Mat4x3 is a matrix with 4 columns and 3 rows.
type Mat4x3 [4]Vec3

// Mat4 is a 4x4 float matrix.
type Mat4 [4]Vec4

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 {
	return Mat2{V2(1, 0), V2(0, 1)}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{V4(1, 0, 0, 0), V4(0, 1, 0, 0), V4(0, 0, 1, 0), V4(0, 0, 0, 1)}
}

// MulVec applies the matrix to a vector.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return m[0].Mul(v.X).Add(m[1].Mul(v.Y))
}

// MulVec applies the matrix to a vector.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return m[0].Mul(v.X).Add(m[1].Mul(v.Y)).Add(m[2].Mul(v.Z))
}

// MulVec applies the matrix to a vector.
func (m Mat4) MulVec(v Vec4) Vec4 {
	return m[0].Mul(v.X).Add(m[1].Mul(v.Y)).Add(m[2].Mul(v.Z)).Add(m[3].Mul(v.W))
}

// Mul multiplies two matrices.
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{m.MulVec(o[0]), m.MulVec(o[1]), m.MulVec(o[2])}
}

// Mul multiplies two matrices.
func (m Mat4) Mul(o Mat4) Mat4 {
	return Mat4{m.MulVec(o[0]), m.MulVec(o[1]), m.MulVec(o[2]), m.MulVec(o[3])}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		V3(m[0].X, m[1].X, m[2].X),
		V3(m[0].Y, m[1].Y, m[2].Y),
		V3(m[0].Z, m[1].Z, m[2].Z),
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		V4(m[0].X, m[1].X, m[2].X, m[3].X),
		V4(m[0].Y, m[1].Y, m[2].Y, m[3].Y),
		V4(m[0].Z, m[1].Z, m[2].Z, m[3].Z),
		V4(m[0].W, m[1].W, m[2].W, m[3].W),
	}
}
