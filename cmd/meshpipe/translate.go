package main

import (
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newTranslateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <dx,dy,dz>",
		Short: "Translate every vertex by a vector",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := meshpipe.ParseVector3("translation", args[0])
			if err != nil {
				return err
			}
			step := meshpipe.StaticStep("translate", meshpipe.Translate{Delta: delta})
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}
}
