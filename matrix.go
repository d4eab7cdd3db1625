package meshpipe

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a homogeneous 4x4 affine transform. It is itself a Transformer,
// so a folded chain of affine steps can be applied like any other operator.
type Matrix struct {
	m mgl64.Mat4
}

func IdentMatrix() Matrix {
	return Matrix{m: mgl64.Ident4()}
}

func TransMatrix(d Vector3) Matrix {
	return Matrix{m: mgl64.Translate3D(d.X, d.Y, d.Z)}
}

func ScaleMatrix(f Vector3) Matrix {
	return Matrix{m: mgl64.Scale3D(f.X, f.Y, f.Z)}
}

// AxisAngleMatrix builds a rotation of angle radians about unit axis u.
func AxisAngleMatrix(u Vector3, angle float64) Matrix {
	return Matrix{m: mgl64.HomogRotate3D(angle, u.Vec3())}
}

func QuatMatrix(q mgl64.Quat) Matrix {
	return Matrix{m: q.Mat4()}
}

func NewMatrixFromMat4(m mgl64.Mat4) Matrix {
	return Matrix{m: m}
}

func (m Matrix) Mat4() mgl64.Mat4 {
	return m.m
}

// MultiplyBy returns the transform that applies m first and then o.
func (m Matrix) MultiplyBy(o Matrix) Matrix {
	return Matrix{m: o.m.Mul4(m.m)}
}

func (m Matrix) Transform(v Vector3) Vector3 {
	return FromVec3(m.m.Mul4x1(v.Vec4(1)).Vec3())
}

func (m Matrix) Matrix() Matrix {
	return m
}

func (m Matrix) ApproxEqual(o Matrix, tol float64) bool {
	return m.m.ApproxEqualThreshold(o.m, tol)
}

// String prints the matrix row by row.
func (m Matrix) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 4; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m.m.At(row, col)))
		}
	}
	return sb.String()
}
