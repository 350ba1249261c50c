// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested with Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/dictcheck/pkg/reconciler"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Loader resolves a source descriptor string into a loader, wiring
	// configured connections (graph session, HTTP client) and options.
	Loader(ctx context.Context, descriptor string) (sources.Loader, error)

	// Reconciler returns a reconciler configured with the given options.
	Reconciler(opts ...reconciler.Option) reconciler.Reconciler

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
