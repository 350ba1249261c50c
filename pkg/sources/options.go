package sources

import (
	"time"

	"github.com/agentstation/dictcheck/pkg/constants"
)

// Options configures loaders. Not every field applies to every kind.
type Options struct {
	// Now stamps the snapshot's retrieval time.
	Now func() time.Time

	// Timeout bounds one blocking operation (HTTP request, graph query).
	Timeout time.Duration

	// PageSize is the page size requested from paginated HTTP sources.
	PageSize int

	// Token is sent as a bearer token to HTTP sources when set.
	Token string
}

// Option is a function that configures loader options.
type Option func(*Options)

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Now:      func() time.Time { return time.Now().UTC() },
		Timeout:  constants.DefaultHTTPTimeout,
		PageSize: constants.DefaultPageSize,
	}
}

// Apply applies the given options on top of the defaults.
func Apply(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock sets the function used to stamp retrieval times.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithTimeout sets the per-operation timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithPageSize sets the page size for paginated sources, clamped to
// constants.MaxPageSize.
func WithPageSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.PageSize = min(n, constants.MaxPageSize)
		}
	}
}

// WithToken sets the bearer token for HTTP sources.
func WithToken(token string) Option {
	return func(o *Options) {
		o.Token = token
	}
}
