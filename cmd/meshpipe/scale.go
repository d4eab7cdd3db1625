package main

import (
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newScaleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scale <sx,sy,sz|s>",
		Short: "Scale every vertex per axis or uniformly",
		Long:  `Scales about the origin. A single number scales all three axes; a zero factor flattens its axis.`,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := meshpipe.ParseScale(args[0])
			if err != nil {
				return err
			}
			step := meshpipe.StaticStep("scale", s)
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}
}
