// Package constants provides shared constants used throughout the dictcheck
// codebase. This includes timeouts, page sizes, file permissions and the
// defaults the CLI falls back to when nothing is configured.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for one HTTP request to an API source
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultGraphTimeout is the standard timeout for one graph database query
	DefaultGraphTimeout = 60 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the default number of entries requested per page
	DefaultPageSize = 100

	// MaxPageSize is the maximum allowed page size for paginated requests
	MaxPageSize = 1000

	// MaxPages stops a paginated load that never reaches its advertised total
	MaxPages = 100000

	// MaxResponseBytes caps one HTTP response body (64 MiB)
	MaxResponseBytes = 64 << 20

	// DefaultInspectLast is how many trailing entries inspect shows
	DefaultInspectLast = 5
)

// Default values
const (
	// DefaultGraphQuery is the label of the built-in graph query
	DefaultGraphQuery = "default"

	// DefaultNeo4jURI is the default Bolt address of the graph database
	DefaultNeo4jURI = "neo4j://localhost:7687"

	// DefaultNeo4jDatabase is the default graph database name
	DefaultNeo4jDatabase = "neo4j"
)

// Path constants
const (
	// ConfigFileName is the base name of the config file searched in $HOME and ./
	ConfigFileName = ".dictcheck"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339
)
