// Package app provides the application context and dependency management
// for the dictcheck CLI: configuration, logging, source wiring and
// lifecycle.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/sources/graph"
	"github.com/agentstation/dictcheck/internal/sources/registry"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/reconciler"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// App represents the dictcheck application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	runID  string

	// customLogger is set when WithLogger supplied the logger.
	customLogger bool

	// out receives command output; nil means stdout.
	out io.Writer

	// connect opens the graph session; replaced in tests.
	connect func(ctx context.Context, cfg graph.Config) (graph.Session, error)

	// Graph session (lazy-initialized, singleton)
	mu      sync.Mutex
	session graph.Session
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that
// can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		runID:   uuid.NewString(),
		connect: func(ctx context.Context, cfg graph.Config) (graph.Session, error) {
			return graph.Connect(ctx, cfg)
		},
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig("")
		if err != nil {
			return nil, err
		}
		app.config = config
	}

	if app.logger == nil {
		app.resetLogger()
	}

	return app, nil
}

// resetLogger rebuilds the logger from the current configuration unless
// a custom logger was supplied.
func (a *App) resetLogger() {
	if a.customLogger {
		return
	}
	logger := NewLogger(a.config)
	a.logger = &logger
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// RunID returns the identifier attached to every log line of this run.
func (a *App) RunID() string {
	return a.runID
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Reconciler returns a reconciler configured with opts.
func (a *App) Reconciler(opts ...reconciler.Option) reconciler.Reconciler {
	return reconciler.New(opts...)
}

// Loader resolves a descriptor into a loader wired with the configured
// graph session, named queries and HTTP settings.
func (a *App) Loader(ctx context.Context, descriptor string) (sources.Loader, error) {
	deps := registry.Deps{
		Graph:   a.graphSession,
		Queries: a.config.Neo4j.Queries,
	}

	opts := []sources.Option{
		sources.WithPageSize(a.config.HTTP.PageSize),
		sources.WithToken(a.config.HTTP.Token),
		sources.WithTimeout(a.config.HTTP.Timeout),
	}

	desc, err := sources.ParseDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	if desc.Kind == sources.KindNeo4j {
		opts = append(opts, sources.WithTimeout(a.config.Neo4j.Timeout))
	}
	return registry.New(ctx, desc, deps, opts...)
}

// graphSession returns the graph session, connecting on first use. Both
// sides of a reconcile share one driver.
func (a *App) graphSession(ctx context.Context) (graph.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	a.logger.Debug().
		Str("uri", a.config.Neo4j.URI).
		Str("database", a.config.Neo4j.Database).
		Msg("Connecting to Neo4j")

	session, err := a.connect(ctx, graph.Config{
		URI:      a.config.Neo4j.URI,
		Username: a.config.Neo4j.Username,
		Password: a.config.Neo4j.Password,
		Database: a.config.Neo4j.Database,
	})
	if err != nil {
		return nil, err
	}
	a.session = session
	return session, nil
}

// Shutdown releases open connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	session := a.session
	a.session = nil
	a.mu.Unlock()

	if closer, ok := session.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			return errors.NewConfigError("neo4j", "closing driver", err)
		}
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.customLogger = logger != nil
		return nil
	}
}

// WithGraphConnector replaces how the Neo4j session is opened (useful for testing).
func WithGraphConnector(connect func(ctx context.Context, cfg graph.Config) (graph.Session, error)) Option {
	return func(a *App) error {
		a.connect = connect
		return nil
	}
}

// WithOutput sends command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
