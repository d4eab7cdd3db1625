package meshpipe

import (
	"fmt"
	"math"
)

const (
	// DefaultEpsilon keeps the inverse-square weight of a vertex lying on a
	// line finite: its weight is at most 1/ε.
	DefaultEpsilon = 1e-3
	// DefaultRadius is the distance at which a line's displacement has fallen
	// to 1/e of its value on the line.
	DefaultRadius = 1.0
)

// ControlLine is an infinite line through Point along Direction. The length
// of Direction is how far a vertex on the line travels.
type ControlLine struct {
	Point     Vector3
	Direction Vector3
}

type warpLine struct {
	point    Vector3
	axis     Vector3
	strength float64
}

// distance is the perpendicular distance from v to the line. perp is the
// component of v - point orthogonal to the line.
func (l warpLine) distance(v Vector3) (dist float64, perp Vector3) {
	rel := v.Sub(l.point)
	perp = rel.Sub(l.axis.Scale(rel.Dot(l.axis)))
	return rel.Cross(l.axis).Length(), perp
}

// Warp bends a mesh around a set of control lines. Every line proposes a
// displacement that is strongest on the line and fades with a Gaussian of the
// perpendicular distance; the proposals are blended with normalized
// inverse-square distance weights, so overlapping lines mix smoothly.
type Warp struct {
	lines   []warpLine
	epsilon float64
	radius  float64
	pull    float64
	twist   float64
}

type WarpOption func(*Warp)

// WithEpsilon sets the smoothing term of the weights 1/(ε + d²).
func WithEpsilon(eps float64) WarpOption {
	return func(w *Warp) { w.epsilon = eps }
}

// WithRadius sets the falloff radius of each line's displacement.
func WithRadius(r float64) WarpOption {
	return func(w *Warp) { w.radius = r }
}

// WithPull moves vertices toward the line by this fraction of their distance
// (scaled by the falloff). Must be within [0, 1].
func WithPull(p float64) WarpOption {
	return func(w *Warp) { w.pull = p }
}

// WithTwist rotates vertices about the line by this many radians on the line,
// fading with the same falloff.
func WithTwist(radians float64) WarpOption {
	return func(w *Warp) { w.twist = radians }
}

// NewWarp validates the lines and options. No lines means the identity warp.
func NewWarp(lines []ControlLine, opts ...WarpOption) (*Warp, error) {
	w := &Warp{epsilon: DefaultEpsilon, radius: DefaultRadius}
	for _, opt := range opts {
		opt(w)
	}

	switch {
	case !isFinite(w.epsilon) || w.epsilon <= 0:
		return nil, paramErr("epsilon", fmt.Sprint(w.epsilon), fmt.Errorf("must be a positive number"))
	case !isFinite(w.radius) || w.radius <= 0:
		return nil, paramErr("radius", fmt.Sprint(w.radius), fmt.Errorf("must be a positive number"))
	case !isFinite(w.pull) || w.pull < 0 || w.pull > 1:
		return nil, paramErr("pull", fmt.Sprint(w.pull), fmt.Errorf("must be within [0, 1]"))
	case !isFinite(w.twist):
		return nil, paramErr("twist", fmt.Sprint(w.twist), fmt.Errorf("must be finite"))
	}

	w.lines = make([]warpLine, 0, len(lines))
	for i, l := range lines {
		if !l.Point.IsFinite() {
			return nil, paramErr(fmt.Sprintf("line %d point", i+1), formatVector(l.Point), fmt.Errorf("must be finite"))
		}
		axis, err := l.Direction.Normalize()
		if err != nil {
			return nil, paramErr(fmt.Sprintf("line %d direction", i+1), formatVector(l.Direction), err)
		}
		w.lines = append(w.lines, warpLine{point: l.Point, axis: axis, strength: l.Direction.Length()})
	}
	return w, nil
}

func (w *Warp) Lines() int {
	return len(w.lines)
}

func (w *Warp) Transform(v Vector3) Vector3 {
	return v.Add(w.Displacement(v))
}

// Displacement returns how far v moves.
func (w *Warp) Displacement(v Vector3) Vector3 {
	if len(w.lines) == 0 {
		return Vector3{}
	}

	weights, dists, perps := w.weigh(v)
	var d Vector3
	for i, l := range w.lines {
		d = d.Add(w.contribution(l, dists[i], perps[i]).Scale(weights[i]))
	}
	return d
}

// Weights returns the normalized blending weight of each line at v. They sum
// to 1 whenever there is at least one line.
func (w *Warp) Weights(v Vector3) []float64 {
	weights, _, _ := w.weigh(v)
	return weights
}

func (w *Warp) weigh(v Vector3) (weights, dists []float64, perps []Vector3) {
	n := len(w.lines)
	weights = make([]float64, n)
	dists = make([]float64, n)
	perps = make([]Vector3, n)
	if n == 0 {
		return weights, dists, perps
	}

	// Raw weights are 1/(ε + d²). Dividing them all by the largest one keeps
	// the sum at least 1 however far v is from every line.
	denoms := make([]float64, n)
	smallest := math.Inf(1)
	for i, l := range w.lines {
		dists[i], perps[i] = l.distance(v)
		denoms[i] = w.epsilon + dists[i]*dists[i]
		smallest = min(smallest, denoms[i])
	}

	if math.IsInf(smallest, 1) {
		for i := range weights {
			weights[i] = 1 / float64(n)
		}
		return weights, dists, perps
	}

	var sum float64
	for i, den := range denoms {
		weights[i] = smallest / den
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights, dists, perps
}

// contribution is the displacement a single line asks for: travel along the
// line, an optional pull toward it and an optional twist around it, all
// scaled by the falloff exp(-(d/r)²).
func (w *Warp) contribution(l warpLine, dist float64, perp Vector3) Vector3 {
	ratio := dist / w.radius
	falloff := math.Exp(-ratio * ratio)
	if falloff == 0 {
		return Vector3{}
	}

	c := l.axis.Scale(l.strength * falloff)
	if w.pull > 0 {
		c = c.Sub(perp.Scale(w.pull * falloff))
	}
	if w.twist != 0 {
		theta := w.twist * falloff
		turned := perp.Scale(math.Cos(theta)).Add(l.axis.Cross(perp).Scale(math.Sin(theta)))
		c = c.Add(turned.Sub(perp))
	}
	return c
}
