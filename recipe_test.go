package meshpipe

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecipe = `
steps:
  - op: scale
    factor: 2
  - op: translate
    by: "1,0,0"
  - op: rotate
    axis: z
    angle: 90
    degrees: true
  - op: warp
    lines:
      - point: [0, 0, 0]
        direction: [0, 0, 0.5]
    radius: 4
    pull: 0.1
  - op: noise
    amplitude: 0.01
    seed: 3
`

func TestLoadRecipe(t *testing.T) {
	r, err := LoadRecipe(strings.NewReader(sampleRecipe))
	require.NoError(t, err)

	ops := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		ops[i] = s.Op
	}
	assert.Equal(t, []string{"scale", "translate", "rotate", "warp", "noise"}, ops)

	rot, ok := r.Steps[2].static.(*Rotate)
	require.True(t, ok)
	assert.InDelta(t, math.Pi/2, rot.Angle(), tolerance)
	assertVecNear(t, Vector3{0, 0, 1}, rot.Axis())

	w, ok := r.Steps[3].static.(*Warp)
	require.True(t, ok)
	assert.Equal(t, 1, w.Lines())
	assertVecNear(t, Vector3{0, 0, 0.5}, w.Displacement(Vector3{0, 0, 7}))
}

func TestRecipeMatchesSeparateSteps(t *testing.T) {
	const recipe = `
steps:
  - op: scale
    factors: [1, 2, 3]
  - op: rotate
    euler: "0.1,0.2,0.3"
    order: zyx
  - op: translate
    by: [-1, 0, 4]
`
	r, err := LoadRecipe(strings.NewReader(recipe))
	require.NoError(t, err)

	m := NewMesh(OBJ, cloud(), nil)
	e, err := NewEulerRotation(Vector3{0.1, 0.2, 0.3}, "zyx")
	require.NoError(t, err)
	want := m.Map(Scale{Factors: Vector3{1, 2, 3}}).Map(e).Map(Translate{Delta: Vector3{-1, 0, 4}})

	for _, fold := range []bool{false, true} {
		got, err := r.Apply(context.Background(), m, 3, fold)
		require.NoError(t, err)
		assertVerticesNear(t, want.Vertices, got.Vertices)
	}
}

func TestRecipeCenterUsesCurrentMesh(t *testing.T) {
	const recipe = `
steps:
  - op: translate
    by: "10,0,0"
  - op: center
  - op: scale
    factor: 2
`
	r, err := LoadRecipe(strings.NewReader(recipe))
	require.NoError(t, err)

	m := NewMesh(OBJ, []Vector3{{0, 0, 0}, {2, 2, 2}}, nil)
	out, err := r.Apply(context.Background(), m, 1, true)
	require.NoError(t, err)
	assertVerticesNear(t, []Vector3{{-2, -2, -2}, {2, 2, 2}}, out.Vertices)
}

func TestLoadRecipeErrors(t *testing.T) {
	testCases := map[string]string{
		"empty":           "",
		"unknown key":     "stages: []\n",
		"unknown op":      "steps:\n  - op: shear\n",
		"missing op":      "steps:\n  - by: [1, 0, 0]\n",
		"unused param":    "steps:\n  - op: translate\n    by: [1, 0, 0]\n    angle: 2\n",
		"short vector":    "steps:\n  - op: translate\n    by: [1, 0]\n",
		"bad vector text": "steps:\n  - op: translate\n    by: \"1,x,0\"\n",
		"both factors":    "steps:\n  - op: scale\n    factor: 2\n    factors: [1, 1, 1]\n",
		"no rotation":     "steps:\n  - op: rotate\n    angle: 1\n",
		"zero axis":       "steps:\n  - op: rotate\n    axis: [0, 0, 0]\n    angle: 1\n",
		"bad pull":        "steps:\n  - op: warp\n    pull: 2\n",
		"center param":    "steps:\n  - op: center\n    by: [1, 1, 1]\n",
		"bad yaml":        "steps: [\n",
	}

	for name, in := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRecipe(strings.NewReader(in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}
