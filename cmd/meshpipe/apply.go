package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var (
		recipePath string
		fold       bool
	)

	cmd := &cobra.Command{
		Use:   "apply --recipe <file.yaml>",
		Short: "Run a recipe of several operators in one pass",
		Long: `Applies the steps of a YAML recipe in order, as if each step were its own
meshpipe process in a pipe:

  steps:
    - op: scale
      factor: 2
    - op: translate
      by: [1, 0, 0]
    - op: warp
      lines:
        - point: "0,0,0"
          direction: "0,0,1"

--fold merges neighbouring translate, scale and rotate steps into one matrix.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if recipePath == "" {
				return &meshpipe.ParamError{Param: "recipe", Err: fmt.Errorf("--recipe is required")}
			}
			recipe, err := loadRecipe(recipePath)
			if err != nil {
				return err
			}
			opts.logger.Debug("recipe loaded", "path", recipePath, "steps", len(recipe.Steps))

			return runPipeline(cmd, opts, "apply", func(ctx context.Context, m *meshpipe.Mesh) (*meshpipe.Mesh, error) {
				return recipe.Apply(ctx, m, opts.workerCount(), fold)
			})
		},
	}

	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "YAML recipe file")
	cmd.Flags().BoolVar(&fold, "fold", false, "Merge adjacent affine steps into a single matrix")
	return cmd
}

func loadRecipe(path string) (*meshpipe.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &meshpipe.ParamError{Param: "recipe", Value: path, Err: err}
	}
	defer f.Close()
	return meshpipe.LoadRecipe(f)
}
