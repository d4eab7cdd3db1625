package meshpipe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lengths at or below this are treated as zero by Normalize.
const degenerateLength = 1e-12

// Vector3 is an immutable 3D point or direction. Every method returns a new value.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Vec4 returns the homogeneous form of v with the given w.
func (v Vector3) Vec4(w float64) mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, w}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// ScaleComponentwise multiplies each component of v by the matching component of f.
func (v Vector3) ScaleComponentwise(f Vector3) Vector3 {
	return Vector3{v.X * f.X, v.Y * f.Y, v.Z * f.Z}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross calculates the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector pointing along v. A zero-length (or
// non-finite) vector has no direction and yields ErrDegenerate.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if length <= degenerateLength || math.IsInf(length, 0) || math.IsNaN(length) {
		return Vector3{}, ErrDegenerate
	}
	return Vector3{v.X / length, v.Y / length, v.Z / length}, nil
}

func (v Vector3) DistanceTo(o Vector3) float64 {
	return v.Sub(o).Length()
}

func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// ApproxEqual reports whether every component of v is within tol of o.
func (v Vector3) ApproxEqual(o Vector3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
