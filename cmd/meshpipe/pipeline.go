package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smasonuk/meshpipe"
)

// meshFunc turns the decoded input mesh into the output mesh.
type meshFunc func(ctx context.Context, m *meshpipe.Mesh) (*meshpipe.Mesh, error)

// stepFunc runs a single recipe step over the mesh.
func stepFunc(step meshpipe.Step, workers int) meshFunc {
	return func(ctx context.Context, m *meshpipe.Mesh) (*meshpipe.Mesh, error) {
		t, err := step.Transformer(m)
		if err != nil {
			return nil, err
		}
		return m.Transform(ctx, t, workers)
	}
}

// runPipeline reads the whole of stdin, applies fn and writes the result to
// stdout. Output is encoded into memory first so a failure never leaves a
// truncated mesh behind.
func runPipeline(cmd *cobra.Command, opts *rootOptions, op string, fn meshFunc) (err error) {
	log := opts.logger.With("op", op)
	defer func() {
		if err != nil {
			opts.metrics.Fail(op, errorKind(err))
		}
		if opts.metricsFile == "" {
			return
		}
		if werr := opts.metrics.WriteFile(opts.metricsFile); werr != nil {
			log.Warn("could not write metrics", "path", opts.metricsFile, "error", werr)
		}
	}()

	in, err := readMesh(cmd, opts)
	if err != nil {
		return err
	}
	log.Debug("mesh read", "format", in.Format, "vertices", len(in.Vertices), "faces", len(in.Faces))

	start := time.Now()
	out, err := fn(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	took := time.Since(start)
	opts.metrics.Observe(op, string(out.Format), len(out.Vertices), len(out.Faces), took)
	log.Debug("mesh transformed", "took", took, "workers", opts.workerCount())

	data, err := meshpipe.EncodeBytes(out)
	if err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	return nil
}

func readMesh(cmd *cobra.Command, opts *rootOptions) (*meshpipe.Mesh, error) {
	in := cmd.InOrStdin()
	if err := refuseTerminal(in); err != nil {
		return nil, err
	}
	return meshpipe.Decode(in, opts.format)
}

// refuseTerminal fails when stdin is an interactive terminal rather than
// waiting for a mesh that will never be typed.
func refuseTerminal(r io.Reader) error {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return &meshpipe.ParamError{Param: "stdin", Err: fmt.Errorf("stdin is a terminal, pipe or redirect a mesh into meshpipe")}
}
