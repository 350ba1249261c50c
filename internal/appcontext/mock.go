package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/dictcheck/pkg/reconciler"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoaderFunc       func(ctx context.Context, descriptor string) (sources.Loader, error)
	ReconcilerFunc   func(opts ...reconciler.Option) reconciler.Reconciler
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Loader returns a loader using the mock function or nil.
func (m *Mock) Loader(ctx context.Context, descriptor string) (sources.Loader, error) {
	if m.LoaderFunc != nil {
		return m.LoaderFunc(ctx, descriptor)
	}
	return nil, nil
}

// Reconciler returns a reconciler using the mock function or the default.
func (m *Mock) Reconciler(opts ...reconciler.Option) reconciler.Reconciler {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc(opts...)
	}
	return reconciler.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
