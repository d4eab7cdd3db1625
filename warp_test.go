package meshpipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zAxisLine(strength float64) ControlLine {
	return ControlLine{Point: Vector3{}, Direction: Vector3{0, 0, strength}}
}

func TestWarpEmptyIsIdentity(t *testing.T) {
	w, err := NewWarp(nil)
	require.NoError(t, err)

	m := NewMesh(OBJ, cloud(), nil)
	out := m.Map(w)
	assertVerticesNear(t, m.Vertices, out.Vertices)
	assert.Empty(t, w.Weights(Vector3{1, 2, 3}))
}

func TestWarpVertexOnLine(t *testing.T) {
	w, err := NewWarp([]ControlLine{zAxisLine(2)})
	require.NoError(t, err)

	d := w.Displacement(Vector3{0, 0, 5})
	require.True(t, d.IsFinite())
	assertVecNear(t, Vector3{0, 0, 2}, d)

	// the point itself is on the line too
	assertVecNear(t, Vector3{0, 0, 2}, w.Displacement(Vector3{}))
}

func TestWarpFalloff(t *testing.T) {
	w, err := NewWarp([]ControlLine{zAxisLine(1)}, WithPull(0.5), WithTwist(1))
	require.NoError(t, err)

	onLine := w.Displacement(Vector3{0, 0, 1}).Length()
	prev := onLine
	for _, dist := range []float64{0.25, 0.5, 1, 2, 4, 8} {
		got := w.Displacement(Vector3{dist, 0, 1}).Length()
		assert.LessOrEqual(t, got, onLine, "distance %v", dist)
		if dist >= 1 {
			assert.Less(t, got, prev, "distance %v", dist)
		}
		prev = got
	}

	far := w.Displacement(Vector3{1e6, -1e6, 3})
	assert.InDelta(t, 0, far.Length(), 1e-12)

	veryFar := w.Displacement(Vector3{1e200, 1e200, 0})
	assert.True(t, veryFar.IsFinite())
	assert.Equal(t, 0.0, veryFar.Length())
}

func TestWarpIsContinuous(t *testing.T) {
	w, err := NewWarp([]ControlLine{
		zAxisLine(1),
		{Point: Vector3{1, 0, 0}, Direction: Vector3{0, 1, 0}},
	}, WithPull(0.3))
	require.NoError(t, err)

	const h = 1e-7
	for _, v := range cloud() {
		a := w.Transform(v)
		b := w.Transform(v.Add(Vector3{h, h, h}))
		assert.Less(t, a.DistanceTo(b), 1e-4, "jump near %v", v)
	}
}

func TestWarpWeightsSumToOne(t *testing.T) {
	w, err := NewWarp([]ControlLine{
		zAxisLine(1),
		{Point: Vector3{1, 1, 0}, Direction: Vector3{1, 0, 0}},
		{Point: Vector3{-2, 0, 3}, Direction: Vector3{1, 1, 1}},
	})
	require.NoError(t, err)

	points := append(cloud(), Vector3{}, Vector3{1, 1, 0}, Vector3{1e150, 0, 0})
	for _, v := range points {
		weights := w.Weights(v)
		require.Len(t, weights, 3)
		var sum float64
		for _, wt := range weights {
			assert.GreaterOrEqual(t, wt, 0.0)
			sum += wt
		}
		assert.InDelta(t, 1, sum, tolerance, "weights at %v", v)
	}
}

func TestWarpNearestLineDominates(t *testing.T) {
	w, err := NewWarp([]ControlLine{
		zAxisLine(1),
		{Point: Vector3{10, 0, 0}, Direction: Vector3{0, 1, 0}},
	})
	require.NoError(t, err)

	weights := w.Weights(Vector3{0, 0, 0})
	assert.Greater(t, weights[0], 0.99)
	d := w.Displacement(Vector3{0, 0, 0})
	assert.InDelta(t, 1, d.Z, 1e-4)
	assert.InDelta(t, 0, d.X, tolerance)
}

func TestWarpDuplicateLinesDoubleWeight(t *testing.T) {
	line := zAxisLine(1)
	other := ControlLine{Point: Vector3{2, 0, 0}, Direction: Vector3{1, 0, 0}}

	single, err := NewWarp([]ControlLine{line, other})
	require.NoError(t, err)
	double, err := NewWarp([]ControlLine{line, line, other})
	require.NoError(t, err)

	v := Vector3{1, 0.5, 0}
	ws := single.Weights(v)
	wd := double.Weights(v)
	assert.InDelta(t, wd[0], wd[1], tolerance)
	assert.InDelta(t, 2*ws[0]/(2*ws[0]+ws[1]), wd[0]+wd[1], tolerance)
}

func TestWarpPullMovesTowardLine(t *testing.T) {
	w, err := NewWarp([]ControlLine{zAxisLine(1)}, WithPull(1), WithRadius(2))
	require.NoError(t, err)

	v := Vector3{0.5, 0, 0}
	got := w.Transform(v)
	dist := math.Hypot(got.X, got.Y)
	assert.Less(t, dist, 0.5)
	assert.Greater(t, got.Z, 0.0)
}

func TestWarpTwistKeepsDistance(t *testing.T) {
	w, err := NewWarp([]ControlLine{zAxisLine(1)}, WithTwist(math.Pi/2))
	require.NoError(t, err)

	v := Vector3{0.3, 0.4, 0}
	got := w.Transform(v)
	assert.InDelta(t, 0.5, math.Hypot(got.X, got.Y), tolerance)
	assert.Greater(t, got.Y, v.Y)
}

func TestWarpDeterministic(t *testing.T) {
	lines := []ControlLine{zAxisLine(1), {Point: Vector3{1, 2, 3}, Direction: Vector3{-1, 0, 2}}}
	a, err := NewWarp(lines, WithTwist(0.3))
	require.NoError(t, err)
	b, err := NewWarp(lines, WithTwist(0.3))
	require.NoError(t, err)

	for _, v := range cloud() {
		assert.Equal(t, a.Transform(v), b.Transform(v))
	}
}

func TestWarpRejectsBadConfiguration(t *testing.T) {
	testCases := []struct {
		name  string
		lines []ControlLine
		opts  []WarpOption
		param string
	}{
		{"zero direction", []ControlLine{{Point: Vector3{1, 0, 0}}}, nil, "line 1 direction"},
		{"nan point", []ControlLine{{Point: Vector3{math.NaN(), 0, 0}, Direction: Vector3{1, 0, 0}}}, nil, "line 1 point"},
		{"zero epsilon", nil, []WarpOption{WithEpsilon(0)}, "epsilon"},
		{"negative radius", nil, []WarpOption{WithRadius(-1)}, "radius"},
		{"pull above one", nil, []WarpOption{WithPull(1.5)}, "pull"},
		{"infinite twist", nil, []WarpOption{WithTwist(math.Inf(1))}, "twist"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWarp(tc.lines, tc.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)

			var pe *ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.param, pe.Param)
		})
	}

	_, err := NewWarp([]ControlLine{{Point: Vector3{}, Direction: Vector3{}}})
	assert.ErrorIs(t, err, ErrDegenerate)
}
