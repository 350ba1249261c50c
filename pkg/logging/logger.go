// Package logging provides structured logging for dictcheck on top of
// zerolog. Terminals get console output; pipes and files get JSON.
//
// Commands carry the logger in their context:
//
//	ctx := logging.WithLogger(cmd.Context(), &logger)
//	ctx = logging.WithOperation(ctx, "reconcile")
//	logging.FromContext(ctx).Info().Int("entries", 42).Msg("Loaded snapshot")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// defaultLogger serves code running outside a command context.
var defaultLogger = New(Config{
	Level:   os.Getenv("LOG_LEVEL"),
	Format:  os.Getenv("LOG_FORMAT"),
	NoColor: os.Getenv("NO_COLOR") != "",
})

// Default returns the logger used when a context carries none.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
