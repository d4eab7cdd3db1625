package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newRotateCmd(opts *rootOptions) *cobra.Command {
	var (
		degrees bool
		euler   string
		order   string
	)

	cmd := &cobra.Command{
		Use:   "rotate <axis> <angle> | rotate --euler <ax,ay,az>",
		Short: "Rotate every vertex about an axis through the origin",
		Long: `Rotates about an axis through the origin. The axis is x, y, z or a vector such
as 1,1,0; it must not be zero. Angles are radians unless --degrees is given.
To rotate about another pivot, translate there and back around the rotation.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if euler != "" {
				return exactArgs(0)(cmd, args)
			}
			return exactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			unit := 1.0
			if degrees {
				unit = math.Pi / 180
			}

			var t meshpipe.Transformer
			if euler != "" {
				angles, err := meshpipe.ParseVector3("euler angles", euler)
				if err != nil {
					return err
				}
				r, err := meshpipe.NewEulerRotation(angles.Scale(unit), order)
				if err != nil {
					return err
				}
				t = r
			} else {
				axis, err := meshpipe.ParseAxis(args[0])
				if err != nil {
					return err
				}
				angle, err := meshpipe.ParseFloat("angle", args[1])
				if err != nil {
					return err
				}
				r, err := meshpipe.NewRotation(axis, angle*unit)
				if err != nil {
					return err
				}
				t = r
			}

			step := meshpipe.StaticStep("rotate", t)
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}

	cmd.Flags().BoolVarP(&degrees, "degrees", "d", false, "Angles are in degrees")
	cmd.Flags().StringVar(&euler, "euler", "", "Rotate by three Euler angles instead of axis and angle")
	cmd.Flags().StringVar(&order, "order", "XYZ", fmt.Sprintf("Axis order for --euler, such as %s or %s", "XYZ", "ZYX"))
	return cmd
}
