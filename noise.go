package meshpipe

import (
	"fmt"

	perlin "github.com/aquilax/go-perlin"
)

// Defaults follow the usual Perlin settings: persistence 2, lacunarity 2 and
// three octaves.
const (
	DefaultNoiseAlpha   = 2.0
	DefaultNoiseBeta    = 2.0
	DefaultNoiseOctaves = 3
)

// Offsets into the noise field so the three axes are not correlated.
var noiseOffsets = [3]Vector3{
	{0, 0, 0},
	{31.416, 47.853, 12.793},
	{-71.337, 19.219, -53.901},
}

// Noise displaces vertices through a 3D Perlin noise field. The same seed
// always produces the same displacement.
type Noise struct {
	amplitude float64
	frequency float64
	field     *perlin.Perlin
}

type NoiseConfig struct {
	Amplitude float64
	Frequency float64
	Seed      int64
	Octaves   int
	Alpha     float64
	Beta      float64
}

func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Amplitude: 0.1,
		Frequency: 1,
		Octaves:   DefaultNoiseOctaves,
		Alpha:     DefaultNoiseAlpha,
		Beta:      DefaultNoiseBeta,
	}
}

func NewNoise(cfg NoiseConfig) (*Noise, error) {
	switch {
	case !isFinite(cfg.Amplitude):
		return nil, paramErr("amplitude", fmt.Sprint(cfg.Amplitude), fmt.Errorf("must be finite"))
	case !isFinite(cfg.Frequency) || cfg.Frequency <= 0:
		return nil, paramErr("frequency", fmt.Sprint(cfg.Frequency), fmt.Errorf("must be a positive number"))
	case cfg.Octaves < 1:
		return nil, paramErr("octaves", fmt.Sprint(cfg.Octaves), fmt.Errorf("must be at least 1"))
	case !isFinite(cfg.Alpha) || cfg.Alpha <= 0:
		return nil, paramErr("alpha", fmt.Sprint(cfg.Alpha), fmt.Errorf("must be a positive number"))
	case !isFinite(cfg.Beta) || cfg.Beta <= 0:
		return nil, paramErr("beta", fmt.Sprint(cfg.Beta), fmt.Errorf("must be a positive number"))
	}

	return &Noise{
		amplitude: cfg.Amplitude,
		frequency: cfg.Frequency,
		field:     perlin.NewPerlin(cfg.Alpha, cfg.Beta, int32(cfg.Octaves), cfg.Seed),
	}, nil
}

func (n *Noise) Transform(v Vector3) Vector3 {
	q := v.Scale(n.frequency)
	var d [3]float64
	for axis, off := range noiseOffsets {
		p := q.Add(off)
		d[axis] = n.field.Noise3D(p.X, p.Y, p.Z)
	}
	return v.Add(Vector3{d[0], d[1], d[2]}.Scale(n.amplitude))
}
