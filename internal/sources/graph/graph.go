// Package graph loads dictionary snapshots from a Neo4j knowledge graph.
//
// The loader depends on the narrow Session interface so it can be driven
// by the real driver (see Neo4jSession) or by a fake in tests. A source
// location is a query label resolved against the configured named
// queries; "default" is always available.
package graph

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/dictcheck/pkg/constants"
	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// DefaultQuery returns every dictionary term node with its category label.
// Queries must return rows with term, canonical_name, category and
// optionally aliases and description columns.
const DefaultQuery = `MATCH (t:Term)
WHERE t.category IN ['components', 'symptoms', 'causes', 'countermeasures']
RETURN t.term AS term,
       t.canonical_name AS canonical_name,
       t.category AS category,
       coalesce(t.aliases, []) AS aliases,
       coalesce(t.description, '') AS description
ORDER BY category, term`

// Session runs one read query and returns every row as a map keyed by
// column name.
type Session interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Loader reads a snapshot with exactly one read query.
type Loader struct {
	desc    sources.Descriptor
	session Session
	queries map[string]string
	opts    *sources.Options
}

var _ sources.Loader = (*Loader)(nil)

// Option configures a graph Loader.
type Option func(*Loader)

// WithQueries adds named queries. An entry named "default" replaces the
// built-in query.
func WithQueries(queries map[string]string) Option {
	return func(l *Loader) {
		for label, q := range queries {
			if q = strings.TrimSpace(q); q != "" {
				l.queries[strings.ToLower(label)] = q
			}
		}
	}
}

// WithSourceOptions applies shared loader options.
func WithSourceOptions(opts ...sources.Option) Option {
	return func(l *Loader) {
		for _, opt := range opts {
			opt(l.opts)
		}
	}
}

// New creates a graph loader. The descriptor location names the query.
func New(desc sources.Descriptor, session Session, opts ...Option) (*Loader, error) {
	if session == nil {
		return nil, errors.NewConfigError("neo4j", "no graph session configured", nil)
	}
	l := &Loader{
		desc:    desc,
		session: session,
		queries: map[string]string{constants.DefaultGraphQuery: DefaultQuery},
		opts:    sources.Apply(sources.WithTimeout(constants.DefaultGraphTimeout)),
	}
	for _, opt := range opts {
		opt(l)
	}
	if _, ok := l.queries[l.label()]; !ok {
		return nil, errors.NewValidationError("query", desc.Location,
			fmt.Sprintf("unknown graph query; known: %s", strings.Join(l.Labels(), ", ")))
	}
	return l, nil
}

// Descriptor returns the source this loader reads.
func (l *Loader) Descriptor() sources.Descriptor {
	return l.desc
}

// Labels lists the query labels this loader knows, sorted.
func (l *Loader) Labels() []string {
	return slices.Sorted(maps.Keys(l.queries))
}

func (l *Loader) label() string {
	label := strings.ToLower(strings.TrimSpace(l.desc.Location))
	if label == "" {
		return constants.DefaultGraphQuery
	}
	return label
}

// Load runs the query and decodes every row.
func (l *Loader) Load(ctx context.Context) (*dictionary.Snapshot, error) {
	logger := logging.FromContext(ctx)
	label := l.label()
	kind := l.desc.Kind.String()

	ctx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	logger.Debug().
		Str("query", label).
		Dur("timeout", l.opts.Timeout).
		Msg("Running graph query")

	rows, err := l.session.Run(ctx, l.queries[label], map[string]any{})
	if err != nil {
		return nil, errors.NewLoadError(label, kind, "running graph query", err)
	}

	entries := make([]dictionary.Entry, 0, len(rows))
	for i, row := range rows {
		e, err := dictionary.DecodeRecord(i+1, row)
		if err != nil {
			return nil, errors.WrapLoad(label, kind, err)
		}
		entries = append(entries, e)
	}

	snapshot := dictionary.NewSnapshot(label, kind, l.opts.Now(), entries)
	logger.Debug().
		Str("query", label).
		Int("entries", snapshot.Len()).
		Msg("Loaded graph snapshot")
	return snapshot, nil
}
