package meshpipe

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestMatrixTransform(t *testing.T) {
	v := Vector3{1, 2, 3}

	assert.Equal(t, v, IdentMatrix().Transform(v))
	assertVecNear(t, Vector3{2, 1, 3.5}, TransMatrix(Vector3{1, -1, 0.5}).Transform(v))
	assertVecNear(t, Vector3{2, 0, -3}, ScaleMatrix(Vector3{2, 0, -1}).Transform(v))
	assertVecNear(t, Vector3{-2, 1, 3}, AxisAngleMatrix(Vector3{0, 0, 1}, math.Pi/2).Transform(v))
}

func TestMatrixMultiplyByOrder(t *testing.T) {
	scale := ScaleMatrix(Vector3{2, 2, 2})
	move := TransMatrix(Vector3{1, 0, 0})

	// scale first, then move
	assertVecNear(t, Vector3{3, 2, 2}, scale.MultiplyBy(move).Transform(Vector3{1, 1, 1}))
	// move first, then scale
	assertVecNear(t, Vector3{4, 2, 2}, move.MultiplyBy(scale).Transform(Vector3{1, 1, 1}))
}

func TestMatrixAffineComposition(t *testing.T) {
	a := Translate{Delta: Vector3{1, 2, 3}}
	b := Translate{Delta: Vector3{-4, 0.5, 1}}
	combined := a.Matrix().MultiplyBy(b.Matrix())
	assert.True(t, combined.ApproxEqual(Translate{Delta: a.Delta.Add(b.Delta)}.Matrix(), tolerance))
}

func TestMatrixFromMat4(t *testing.T) {
	m := NewMatrixFromMat4(mgl64.HomogRotate3DX(math.Pi))
	assertVecNear(t, Vector3{1, -2, -3}, m.Transform(Vector3{1, 2, 3}))
	assert.Equal(t, mgl64.HomogRotate3DX(math.Pi), m.Mat4())
}

func TestMatrixString(t *testing.T) {
	want := "1.000000 0.000000 0.000000 5.000000\n" +
		"0.000000 1.000000 0.000000 0.000000\n" +
		"0.000000 0.000000 1.000000 0.000000\n" +
		"0.000000 0.000000 0.000000 1.000000"
	assert.Equal(t, want, TransMatrix(Vector3{5, 0, 0}).String())
}
