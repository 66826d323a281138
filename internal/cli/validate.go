package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/batchrun/internal/config"
)

// ValidationResult is the output of a successful validate command.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Build    string `json:"build"`
	Projects int    `json:"projects"`
	Actions  int    `json:"actions"`
}

func (r ValidationResult) String() string {
	return fmt.Sprintf("✓ Build %s valid (%d projects, %d actions)", r.Build, r.Projects, r.Actions)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <build-file>",
		Short: "Validate a build file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	b, err := config.Load(path)
	if err != nil {
		var ce *config.ConfigError
		if !errors.As(err, &ce) {
			return WrapExitError(ExitCommandError, "validation failed", err)
		}
		if werr := formatter.Error(CLIError{Code: ce.Code, Message: ce.Message, Path: ce.Path}); werr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", werr)
		}
		code := ExitFailure
		if ce.Code == config.ErrCodeNotFound {
			code = ExitCommandError
		}
		return WrapExitError(code, "invalid build file", err)
	}

	return formatter.Success(ValidationResult{
		Valid:    true,
		Build:    b.Name,
		Projects: len(b.Projects),
		Actions:  len(b.Actions),
	})
}
