package meshpipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Recipe is an ordered list of operator steps run over one mesh in a single
// process, equivalent to piping the same steps through separate processes.
type Recipe struct {
	Steps []Step
}

// Step is one decoded recipe entry. Static steps are plain transformers;
// steps that depend on the mesh (center) are built when they are reached.
type Step struct {
	Op     string
	static Transformer
	build  func(m *Mesh) (Transformer, error)
}

// Transformer returns the step's operator for mesh m.
func (s Step) Transformer(m *Mesh) (Transformer, error) {
	if s.static != nil {
		return s.static, nil
	}
	return s.build(m)
}

func StaticStep(op string, t Transformer) Step {
	return Step{Op: op, static: t}
}

// CenterStep moves the bounding box center of the mesh it meets to the origin.
func CenterStep() Step {
	return Step{Op: "center", build: func(m *Mesh) (Transformer, error) {
		return Centering(m), nil
	}}
}

type recipeFile struct {
	Steps []map[string]any `yaml:"steps"`
}

type translateParams struct {
	By Vector3 `mapstructure:"by"`
}

type scaleParams struct {
	Factor  *float64 `mapstructure:"factor"`
	Factors *Vector3 `mapstructure:"factors"`
}

type rotateParams struct {
	Axis    *Vector3 `mapstructure:"axis"`
	Angle   float64  `mapstructure:"angle"`
	Euler   *Vector3 `mapstructure:"euler"`
	Order   string   `mapstructure:"order"`
	Degrees bool     `mapstructure:"degrees"`
}

type lineParams struct {
	Point     Vector3 `mapstructure:"point"`
	Direction Vector3 `mapstructure:"direction"`
}

type warpParams struct {
	Lines   []lineParams `mapstructure:"lines"`
	Epsilon *float64     `mapstructure:"epsilon"`
	Radius  *float64     `mapstructure:"radius"`
	Pull    float64      `mapstructure:"pull"`
	Twist   float64      `mapstructure:"twist"`
}

type noiseParams struct {
	Amplitude *float64 `mapstructure:"amplitude"`
	Frequency *float64 `mapstructure:"frequency"`
	Seed      int64    `mapstructure:"seed"`
	Octaves   *int     `mapstructure:"octaves"`
	Alpha     *float64 `mapstructure:"alpha"`
	Beta      *float64 `mapstructure:"beta"`
}

// LoadRecipe decodes a YAML recipe:
//
//	steps:
//	  - op: scale
//	    factor: 2
//	  - op: warp
//	    lines:
//	      - point: [0, 0, 0]
//	        direction: "0,0,1"
func LoadRecipe(r io.Reader) (*Recipe, error) {
	var file recipeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, paramErr("recipe", "", fmt.Errorf("recipe is empty"))
		}
		return nil, paramErr("recipe", "", err)
	}

	recipe := &Recipe{Steps: make([]Step, 0, len(file.Steps))}
	for i, raw := range file.Steps {
		step, err := decodeStep(raw)
		if err != nil {
			return nil, fmt.Errorf("recipe step %d: %w", i+1, err)
		}
		recipe.Steps = append(recipe.Steps, step)
	}
	return recipe, nil
}

func decodeStep(raw map[string]any) (Step, error) {
	op, _ := raw["op"].(string)
	params := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "op" {
			params[k] = v
		}
	}

	switch strings.ToLower(op) {
	case "translate":
		var s translateParams
		if err := decodeParams(params, &s); err != nil {
			return Step{}, err
		}
		return StaticStep("translate", Translate{Delta: s.By}), nil

	case "scale":
		var s scaleParams
		if err := decodeParams(params, &s); err != nil {
			return Step{}, err
		}
		switch {
		case s.Factor != nil && s.Factors == nil:
			return StaticStep("scale", UniformScale(*s.Factor)), nil
		case s.Factors != nil && s.Factor == nil:
			return StaticStep("scale", Scale{Factors: *s.Factors}), nil
		}
		return Step{}, paramErr("scale", "", fmt.Errorf("set exactly one of factor or factors"))

	case "rotate":
		var s rotateParams
		if err := decodeParams(params, &s); err != nil {
			return Step{}, err
		}
		unit := 1.0
		if s.Degrees {
			unit = math.Pi / 180
		}
		switch {
		case s.Euler != nil && s.Axis == nil:
			order := s.Order
			if order == "" {
				order = "XYZ"
			}
			r, err := NewEulerRotation(s.Euler.Scale(unit), order)
			if err != nil {
				return Step{}, err
			}
			return StaticStep("rotate", r), nil
		case s.Axis != nil && s.Euler == nil:
			r, err := NewRotation(*s.Axis, s.Angle*unit)
			if err != nil {
				return Step{}, err
			}
			return StaticStep("rotate", r), nil
		}
		return Step{}, paramErr("rotate", "", fmt.Errorf("set exactly one of axis or euler"))

	case "warp":
		var s warpParams
		if err := decodeParams(params, &s); err != nil {
			return Step{}, err
		}
		lines := make([]ControlLine, len(s.Lines))
		for i, l := range s.Lines {
			lines[i] = ControlLine{Point: l.Point, Direction: l.Direction}
		}
		opts := []WarpOption{WithPull(s.Pull), WithTwist(s.Twist)}
		if s.Epsilon != nil {
			opts = append(opts, WithEpsilon(*s.Epsilon))
		}
		if s.Radius != nil {
			opts = append(opts, WithRadius(*s.Radius))
		}
		w, err := NewWarp(lines, opts...)
		if err != nil {
			return Step{}, err
		}
		return StaticStep("warp", w), nil

	case "noise":
		var s noiseParams
		if err := decodeParams(params, &s); err != nil {
			return Step{}, err
		}
		cfg := DefaultNoiseConfig()
		cfg.Seed = s.Seed
		setIf(&cfg.Amplitude, s.Amplitude)
		setIf(&cfg.Frequency, s.Frequency)
		setIf(&cfg.Octaves, s.Octaves)
		setIf(&cfg.Alpha, s.Alpha)
		setIf(&cfg.Beta, s.Beta)
		n, err := NewNoise(cfg)
		if err != nil {
			return Step{}, err
		}
		return StaticStep("noise", n), nil

	case "center":
		if len(params) > 0 {
			return Step{}, paramErr("center", "", fmt.Errorf("takes no parameters"))
		}
		return CenterStep(), nil
	}
	return Step{}, paramErr("op", op, fmt.Errorf("want translate, scale, rotate, warp, noise or center"))
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  vectorHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return paramErr("parameters", "", err)
	}
	return nil
}

var vectorType = reflect.TypeOf(Vector3{})

// vectorHook lets recipes write vectors as "x,y,z", as a list of three
// numbers, or as one of the axis names x, y and z.
func vectorHook(from, to reflect.Type, data any) (any, error) {
	if to != vectorType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if len(strings.TrimSpace(v)) == 1 {
			return ParseAxis(v)
		}
		return ParseVector3("vector", v)
	case []any:
		if len(v) != 3 {
			return nil, fmt.Errorf("vector needs 3 components, got %d", len(v))
		}
		var c [3]float64
		for i, e := range v {
			switch n := e.(type) {
			case int:
				c[i] = float64(n)
			case float64:
				c[i] = n
			default:
				return nil, fmt.Errorf("vector component %d is %T, want a number", i+1, e)
			}
		}
		return Vector3{c[0], c[1], c[2]}, nil
	}
	return data, nil
}

// Apply runs the steps over m. Consecutive static steps are applied in one
// pass as a Chain; with fold set, adjacent affine steps in that chain are
// first merged into single matrices.
func (r *Recipe) Apply(ctx context.Context, m *Mesh, workers int, fold bool) (*Mesh, error) {
	var pending Chain
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		chain := pending
		if fold {
			chain = chain.Fold()
		}
		pending = nil

		var t Transformer = chain
		if len(chain) == 1 {
			t = chain[0]
		}
		out, err := m.Transform(ctx, t, workers)
		if err != nil {
			return err
		}
		m = out
		return nil
	}

	for _, step := range r.Steps {
		if step.static != nil {
			pending = append(pending, step.static)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		t, err := step.Transformer(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Op, err)
		}
		if m, err = m.Transform(ctx, t, workers); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Op, err)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return m, nil
}
