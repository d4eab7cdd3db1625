package main

import (
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newNoiseCmd(opts *rootOptions) *cobra.Command {
	cfg := meshpipe.DefaultNoiseConfig()

	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Displace vertices with Perlin noise",
		Long:  `Moves every vertex by a 3D Perlin noise field. The same --seed gives the same result.`,
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := meshpipe.NewNoise(cfg)
			if err != nil {
				return err
			}
			step := meshpipe.StaticStep("noise", n)
			return runPipeline(cmd, opts, step.Op, stepFunc(step, opts.workerCount()))
		},
	}

	cmd.Flags().Float64VarP(&cfg.Amplitude, "amplitude", "a", cfg.Amplitude, "Largest displacement along each axis")
	cmd.Flags().Float64VarP(&cfg.Frequency, "frequency", "f", cfg.Frequency, "Noise features per unit length")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Noise seed")
	cmd.Flags().IntVar(&cfg.Octaves, "octaves", cfg.Octaves, "Number of noise octaves")
	cmd.Flags().Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Weight divisor between octaves")
	cmd.Flags().Float64Var(&cfg.Beta, "beta", cfg.Beta, "Frequency multiplier between octaves")
	return cmd
}
