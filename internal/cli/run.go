package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/batchrun/internal/config"
	"github.com/roach88/batchrun/internal/report"
	"github.com/roach88/batchrun/internal/runner"
	"github.com/roach88/batchrun/internal/scope"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Suppress bool
	Workers  int

	// IDGenerator allows overriding build IDs (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator scope.IDGenerator

	// Executor allows overriding command execution (for testing).
	// If nil, defaults to runner.CommandExecutor.
	Executor runner.Executor
}

// RunResult is the output of the run command.
type RunResult struct {
	BuildID    string `json:"build_id"`
	Build      string `json:"build"`
	Total      int    `json:"total"`
	Ran        int    `json:"ran"`
	Failed     int    `json:"failed"`
	Suppressed bool   `json:"suppressed"`
}

func (r RunResult) String() string {
	s := fmt.Sprintf("Build %s (%s): %d/%d targets ran, %d failed", r.Build, r.BuildID, r.Ran, r.Total, r.Failed)
	if r.Suppressed && r.Failed > 0 {
		s += "\nFailures were suppressed; inspect them with: batchrun failures --build " + r.BuildID
	}
	return s
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <build-file>",
		Short: "Run every action on every project",
		Long: `Run every action of a build file on every project.

Without error suppression the first failing target stops the build. With
--suppress (or suppress_errors: true in the build file) every target runs and
failures are recorded in the report database.

Example:
  batchrun run --db ./batchrun.db ./build.yaml
  batchrun run --db ./batchrun.db --suppress --workers 8 ./build.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite report database (required)")
	cmd.Flags().BoolVar(&opts.Suppress, "suppress", false, "collect failures instead of stopping (overrides build file)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "number of concurrent targets (overrides build file)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runBuild(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions)

	cfg, err := config.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load build file", err)
	}
	suppress := cfg.SuppressErrors
	if cmd.Flags().Changed("suppress") {
		suppress = opts.Suppress
	}

	st, err := report.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	build := scope.NewBuild(cfg.Name, suppress, opts.IDGenerator, logger)
	defer func() {
		if closeErr := build.Close(); closeErr != nil {
			logger.Error("error closing build scope", "error", closeErr)
		}
	}()

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := report.Build{ID: build.ID, Name: cfg.Name, Suppressed: suppress}
	if err := st.WriteBuild(ctx, rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to record build", err)
	}

	r := runner.New(build.Collector, opts.Executor, logger)
	r.Workers = opts.Workers
	summary, runErr := r.Run(ctx, cfg)

	failures := build.Collector.Errors()
	if runErr != nil {
		failures = append(failures, runErr)
	}

	// Persist with a fresh context so an interrupted build is still recorded.
	persistCtx := context.WithoutCancel(ctx)
	rec.Total, rec.Ran, rec.Failed = summary.Total, summary.Ran, summary.Failed
	if err := st.WriteBuild(persistCtx, rec); err != nil {
		return WrapExitError(ExitCommandError, "failed to record build", err)
	}
	if err := st.WriteFailures(persistCtx, build.ID, failures); err != nil {
		return WrapExitError(ExitCommandError, "failed to record failures", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := formatter.Success(RunResult{
		BuildID:    build.ID,
		Build:      cfg.Name,
		Total:      summary.Total,
		Ran:        summary.Ran,
		Failed:     summary.Failed,
		Suppressed: suppress,
	}); err != nil {
		return err
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, "build failed", runErr)
	}
	return nil
}
