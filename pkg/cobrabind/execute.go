package cobrabind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autocli/internal/logger"

	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks an error caused by the command line rather than by the
// wrapped function.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// cobra reports these without a hook to wrap them.
var usageErrorPrefixes = []string{
	"unknown command",
	"required flag(s)",
	"unknown flag",
	"unknown shorthand flag",
}

// IsUsageError reports whether err was caused by invalid command-line input.
func IsUsageError(err error) bool {
	var usage *UsageError
	if errors.As(err, &usage) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// Execute runs root with argv and maps the outcome to an exit code. Errors are
// printed to the root's error stream after the root's error prefix.
func Execute(ctx context.Context, root *cobra.Command, argv []string) int {
	if argv == nil {
		argv = []string{}
	}
	root.SetArgs(argv)
	root.SilenceErrors = true
	root.SilenceUsage = true

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	stderr := root.ErrOrStderr()
	if cmd == nil {
		cmd = root
	}
	fmt.Fprintf(stderr, "%s %s\n", root.ErrPrefix(), err)
	if IsUsageError(err) {
		fmt.Fprintf(stderr, "Try '%s --help' for help.\n", cmd.CommandPath())
		logger.Debug("usage error", "command", cmd.CommandPath(), "error", err)
		return ExitUsage
	}
	logger.Debug("command failed", "command", cmd.CommandPath(), "error", err)
	return ExitFailure
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := validate(c, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}
