package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smasonuk/meshpipe"
)

type meshInfo struct {
	Format   string      `yaml:"format"`
	Vertices int         `yaml:"vertices"`
	Faces    int         `yaml:"faces"`
	Bounds   *boundsInfo `yaml:"bounds,omitempty"`
}

type boundsInfo struct {
	Min    [3]float64 `yaml:"min,flow"`
	Max    [3]float64 `yaml:"max,flow"`
	Size   [3]float64 `yaml:"size,flow"`
	Center [3]float64 `yaml:"center,flow"`
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print vertex and face counts and the bounding box as YAML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(cmd, opts)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(describe(m))
			if err != nil {
				return fmt.Errorf("encoding info: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func describe(m *meshpipe.Mesh) meshInfo {
	info := meshInfo{Format: string(m.Format), Vertices: len(m.Vertices), Faces: len(m.Faces)}
	if len(m.Vertices) == 0 {
		return info
	}
	b := m.Bounds()
	info.Bounds = &boundsInfo{
		Min:    triple(b.Min),
		Max:    triple(b.Max),
		Size:   triple(b.Size()),
		Center: triple(b.Center()),
	}
	return info
}

func triple(v meshpipe.Vector3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
