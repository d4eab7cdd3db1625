package meshpipe

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Transformer maps one vertex to its new position. Implementations hold only
// read-only configuration, so Transform may be called from many goroutines.
type Transformer interface {
	Transform(v Vector3) Vector3
}

// Affine is implemented by transformers that can be expressed as a Matrix.
type Affine interface {
	Transformer
	Matrix() Matrix
}

type TransformFunc func(v Vector3) Vector3

func (f TransformFunc) Transform(v Vector3) Vector3 {
	return f(v)
}

// Identity leaves every vertex where it is.
var Identity Transformer = TransformFunc(func(v Vector3) Vector3 { return v })

// MapSeq lazily applies t to each vertex of seq, keeping the indices.
func MapSeq(seq iter.Seq2[int, Vector3], t Transformer) iter.Seq2[int, Vector3] {
	return func(yield func(int, Vector3) bool) {
		for i, v := range seq {
			if !yield(i, t.Transform(v)) {
				return
			}
		}
	}
}

type Translate struct {
	Delta Vector3
}

func (t Translate) Transform(v Vector3) Vector3 {
	return v.Add(t.Delta)
}

func (t Translate) Matrix() Matrix {
	return TransMatrix(t.Delta)
}

// Scale multiplies each axis by its factor. A zero factor flattens that axis.
type Scale struct {
	Factors Vector3
}

func UniformScale(s float64) Scale {
	return Scale{Factors: Vector3{s, s, s}}
}

func (s Scale) Transform(v Vector3) Vector3 {
	return v.ScaleComponentwise(s.Factors)
}

func (s Scale) Matrix() Matrix {
	return ScaleMatrix(s.Factors)
}

// Rotate turns vertices about an axis through the origin. Rotating about any
// other pivot is translate, rotate, translate back.
type Rotate struct {
	axis  Vector3
	angle float64
	sin   float64
	cos   float64
}

// NewRotation builds a rotation of angle radians about axis, which need not be
// normalized but must have a direction.
func NewRotation(axis Vector3, angle float64) (*Rotate, error) {
	if !isFinite(angle) {
		return nil, paramErr("angle", fmt.Sprint(angle), fmt.Errorf("angle must be finite"))
	}
	u, err := axis.Normalize()
	if err != nil {
		return nil, paramErr("axis", formatVector(axis), err)
	}
	return &Rotate{axis: u, angle: angle, sin: math.Sin(angle), cos: math.Cos(angle)}, nil
}

// Transform uses Rodrigues' rotation formula:
// v' = v cosθ + (u × v) sinθ + u (u·v)(1 - cosθ).
func (r *Rotate) Transform(v Vector3) Vector3 {
	term1 := v.Scale(r.cos)
	term2 := r.axis.Cross(v).Scale(r.sin)
	term3 := r.axis.Scale(r.axis.Dot(v) * (1 - r.cos))
	return term1.Add(term2).Add(term3)
}

func (r *Rotate) Matrix() Matrix {
	return AxisAngleMatrix(r.axis, r.angle)
}

func (r *Rotate) Axis() Vector3 {
	return r.axis
}

func (r *Rotate) Angle() float64 {
	return r.angle
}

// EulerRotation applies three successive axis rotations in a fixed order.
type EulerRotation struct {
	q mgl64.Quat
}

var rotationOrders = map[string]mgl64.RotationOrder{
	"XYX": mgl64.XYX, "XYZ": mgl64.XYZ, "XZX": mgl64.XZX, "XZY": mgl64.XZY,
	"YXY": mgl64.YXY, "YXZ": mgl64.YXZ, "YZY": mgl64.YZY, "YZX": mgl64.YZX,
	"ZYZ": mgl64.ZYZ, "ZYX": mgl64.ZYX, "ZXZ": mgl64.ZXZ, "ZXY": mgl64.ZXY,
}

// NewEulerRotation takes the three angles in radians, applied in the axis
// order named by order (for example "XYZ" or "zyx").
func NewEulerRotation(angles Vector3, order string) (*EulerRotation, error) {
	ro, ok := rotationOrders[strings.ToUpper(order)]
	if !ok {
		return nil, paramErr("rotation order", order, fmt.Errorf("want one of XYZ, XZY, YXZ, YZX, ZXY, ZYX, XYX, XZX, YXY, YZY, ZXZ, ZYZ"))
	}
	if !angles.IsFinite() {
		return nil, paramErr("euler angles", formatVector(angles), fmt.Errorf("angles must be finite"))
	}
	return &EulerRotation{q: mgl64.AnglesToQuat(angles.X, angles.Y, angles.Z, ro)}, nil
}

func (e *EulerRotation) Transform(v Vector3) Vector3 {
	return FromVec3(e.q.Rotate(v.Vec3()))
}

func (e *EulerRotation) Matrix() Matrix {
	return QuatMatrix(e.q)
}

// Chain applies its steps in order.
type Chain []Transformer

func (c Chain) Transform(v Vector3) Vector3 {
	for _, t := range c {
		v = t.Transform(v)
	}
	return v
}

// Fold merges every run of adjacent affine steps into a single Matrix. The
// result maps vertices the same way up to floating point rounding.
func (c Chain) Fold() Chain {
	folded := make(Chain, 0, len(c))
	var acc *Matrix
	flush := func() {
		if acc != nil {
			folded = append(folded, *acc)
			acc = nil
		}
	}

	for _, t := range c {
		a, ok := t.(Affine)
		if !ok {
			flush()
			folded = append(folded, t)
			continue
		}
		m := a.Matrix()
		if acc == nil {
			acc = &m
		} else {
			next := acc.MultiplyBy(m)
			acc = &next
		}
	}
	flush()
	return folded
}
