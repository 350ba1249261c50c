package app

import (
	"os"

	"github.com/agentstation/dictcheck/pkg/errors"
)

// Exit codes. Differences between sources are not failures and exit 0.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitLoad      = 2
	ExitDataError = 3
)

// ExitCode maps an error to the process exit code:
// duplicate keys and invalid input are data errors, load failures are
// load errors, anything else is a general failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsDuplicateKey(err):
		return ExitDataError
	case errors.IsLoadError(err):
		return ExitLoad
	case errors.IsValidationError(err):
		return ExitDataError
	default:
		return ExitFailure
	}
}

// ExitOnError prints err to stderr and exits with its exit code.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(ExitCode(err))
	}
}
