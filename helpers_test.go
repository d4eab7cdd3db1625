package meshpipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, want, got Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tolerance, msgAndArgs...)
}

func assertVerticesNear(t *testing.T, want, got []Vector3) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assertVecNear(t, want[i], got[i], "vertex %d", i)
	}
}

// triangle is the three-vertex, one-face mesh used across tests.
func triangle() *Mesh {
	return NewMesh(OBJ,
		[]Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]Face{{0, 1, 2}},
	)
}

// cloud returns a deterministic spread of points.
func cloud() []Vector3 {
	var pts []Vector3
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			pts = append(pts, Vector3{float64(i) * 0.7, float64(j) * 1.3, float64(i*j) * 0.4})
		}
	}
	return pts
}
