package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/smasonuk/meshpipe"
	"github.com/smasonuk/meshpipe/internal/logging"
	"github.com/smasonuk/meshpipe/internal/metrics"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitParameter = 2
	exitParse     = 3
)

// rootOptions holds the persistent flags and what is built from them before
// a subcommand runs.
type rootOptions struct {
	formatName  string
	workers     int
	metricsFile string
	logLevel    string

	format  meshpipe.Format
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func (o *rootOptions) workerCount() int {
	if o.workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.workers
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "meshpipe",
		Short: "Transform ASCII meshes in a pipeline",
		Long: `meshpipe reads an ASCII OBJ, STL or PLY mesh from standard input, moves every
vertex with one operator and writes the mesh in the same format to standard
output. Chain instances with pipes to compose transformations:

  meshpipe scale 2 < in.obj | meshpipe translate 1,0,0 | meshpipe warp --line "0,0,0 0,0,1" > out.obj`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return &meshpipe.ParamError{Param: "log level", Value: opts.logLevel, Err: err}
			}
			opts.logger = logging.New(cmd.ErrOrStderr(), level)

			if opts.format, err = meshpipe.ParseFormat(opts.formatName); err != nil {
				return err
			}
			opts.metrics = metrics.New()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.formatName, "format", "auto", "Mesh format: auto, obj, stl or ply")
	root.PersistentFlags().IntVarP(&opts.workers, "workers", "j", 0, "Goroutines used to map vertices (0 uses GOMAXPROCS)")
	root.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus text-format metrics to this file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &meshpipe.ParamError{Param: "flags", Err: err}
	})

	root.AddCommand(
		newTranslateCmd(opts),
		newScaleCmd(opts),
		newRotateCmd(opts),
		newWarpCmd(opts),
		newNoiseCmd(opts),
		newCenterCmd(opts),
		newApplyCmd(opts),
		newInfoCmd(opts),
		newVersionCmd(),
	)
	return root
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &rootOptions{logger: logging.NewNop()}
	root := newRootCmd(opts)
	root.SetArgs(hoistPositionals(root, args))
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, meshpipe.ErrParse):
		return exitParse
	case errors.Is(err, meshpipe.ErrInvalidParameter):
		return exitParameter
	}
	return exitFailure
}

func errorKind(err error) string {
	switch exitCode(err) {
	case exitParse:
		return "parse"
	case exitParameter:
		return "parameter"
	}
	return "other"
}

// printError writes the diagnostic to stderr, in red when stderr is a terminal.
func printError(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	label := out.String("meshpipe: error:").Foreground(out.Color("1")).Bold()
	fmt.Fprintf(w, "%s %v\n", label, err)
}

// exactArgs is cobra.ExactArgs reporting a parameter error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &meshpipe.ParamError{Param: "arguments", Err: err}
		}
		return nil
	}
}
