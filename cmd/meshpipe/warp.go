package main

import (
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newWarpCmd(opts *rootOptions) *cobra.Command {
	var (
		lines   []string
		epsilon float64
		radius  float64
		pull    float64
		twist   float64
	)

	cmd := &cobra.Command{
		Use:   `warp [--line "<x,y,z> <dx,dy,dz>"]...`,
		Short: "Bend the mesh around control lines",
		Long: `Warps the mesh with a smooth field built from control lines. Each line is a
point and a direction; vertices near a line travel along it by the direction's
length, fading with distance (--radius). Where lines overlap their effects are
blended by inverse-square distance weights, smoothed by --epsilon. --pull draws
vertices toward the lines and --twist turns them around the lines.
Without any --line the mesh is written unchanged.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			controls := make([]meshpipe.ControlLine, 0, len(lines))
			for _, s := range lines {
				l, err := meshpipe.ParseControlLine(s)
				if err != nil {
					return err
				}
				controls = append(controls, l)
			}

			w, err := meshpipe.NewWarp(controls,
				meshpipe.WithEpsilon(epsilon),
				meshpipe.WithRadius(radius),
				meshpipe.WithPull(pull),
				meshpipe.WithTwist(twist),
			)
			if err != nil {
				return err
			}
			opts.logger.Debug("warp configured", "lines", w.Lines(), "epsilon", epsilon, "radius", radius)

			step := meshpipe.StaticStep("warp", w)
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}

	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, `Control line "<x,y,z> <dx,dy,dz>" (repeatable)`)
	cmd.Flags().Float64Var(&epsilon, "epsilon", meshpipe.DefaultEpsilon, "Weight smoothing term, weights are 1/(epsilon + distance²)")
	cmd.Flags().Float64Var(&radius, "radius", meshpipe.DefaultRadius, "Distance over which a line's displacement fades")
	cmd.Flags().Float64Var(&pull, "pull", 0, "Fraction of the distance to move vertices toward the lines, 0 to 1")
	cmd.Flags().Float64Var(&twist, "twist", 0, "Radians to turn vertices around the lines")
	return cmd
}
