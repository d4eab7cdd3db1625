package main

import (
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newCenterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "center",
		Short: "Move the center of the bounding box to the origin",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			step := meshpipe.CenterStep()
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}
}
