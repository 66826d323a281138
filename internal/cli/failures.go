package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/batchrun/internal/report"
)

// FailuresOptions holds flags for the failures command.
type FailuresOptions struct {
	*RootOptions
	Database string
	BuildID  string
}

// NewFailuresCommand creates the failures command.
func NewFailuresCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FailuresOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List the failures recorded for a build",
		Long: `List the failures recorded for a build, in the order they occurred.

Defaults to the most recent build in the database.

Example:
  batchrun failures --db ./batchrun.db
  batchrun failures --db ./batchrun.db --build 0190c2f4-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFailures(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite report database (required)")
	cmd.Flags().StringVar(&opts.BuildID, "build", "", "build ID (defaults to the latest build)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runFailures(opts *FailuresOptions, cmd *cobra.Command) error {
	st, err := report.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	var b report.Build
	if opts.BuildID != "" {
		b, err = st.ReadBuild(ctx, opts.BuildID)
	} else {
		b, err = st.LatestBuild(ctx)
	}
	if errors.Is(err, report.ErrNoBuilds) {
		return NewExitError(ExitCommandError, "no builds recorded")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read build", err)
	}

	failures, err := st.ReadFailures(ctx, b.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read failures", err)
	}

	return report.Render(cmd.OutOrStdout(), opts.Format, b, failures)
}
