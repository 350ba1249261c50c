// Package registry builds loaders from source descriptors.
package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/dictcheck/internal/sources/api"
	"github.com/agentstation/dictcheck/internal/sources/files"
	"github.com/agentstation/dictcheck/internal/sources/graph"
	"github.com/agentstation/dictcheck/internal/transport"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// Deps carries the external resources some loader kinds need. Fields
// may be nil when no descriptor of that kind is used.
type Deps struct {
	// Graph opens the Neo4j session on first use.
	Graph func(ctx context.Context) (graph.Session, error)

	// Queries are the configured named graph queries.
	Queries map[string]string

	// HTTP overrides the transport client for http sources.
	HTTP *transport.Client
}

type constructor func(ctx context.Context, desc sources.Descriptor, deps Deps, opts []sources.Option) (sources.Loader, error)

// registry maps loader kinds to their constructors
var registry = map[sources.Kind]constructor{
	sources.KindJSON:  newFile,
	sources.KindCSV:   newFile,
	sources.KindYAML:  newFile,
	sources.KindNeo4j: newGraph,
	sources.KindHTTP:  newAPI,
}

// New creates a NEW loader for the descriptor.
func New(ctx context.Context, desc sources.Descriptor, deps Deps, opts ...sources.Option) (sources.Loader, error) {
	newLoader, ok := registry[desc.Kind]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "kind",
			Value:   desc.Kind,
			Message: fmt.Sprintf("unsupported source kind %q (supported: %s)", desc.Kind, joinKinds(List())),
		}
	}
	return newLoader(ctx, desc, deps, opts)
}

// List returns all kinds that have loader implementations, sorted.
func List() []sources.Kind {
	kinds := make([]sources.Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

func joinKinds(kinds []sources.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func newFile(_ context.Context, desc sources.Descriptor, _ Deps, opts []sources.Option) (sources.Loader, error) {
	return files.New(desc, opts...)
}

func newGraph(ctx context.Context, desc sources.Descriptor, deps Deps, opts []sources.Option) (sources.Loader, error) {
	if deps.Graph == nil {
		return nil, errors.NewConfigError("neo4j", "graph sources are not configured", nil)
	}
	session, err := deps.Graph(ctx)
	if err != nil {
		return nil, errors.NewLoadError(desc.Location, desc.Kind.String(), "opening graph session", err)
	}
	return graph.New(desc, session, graph.WithQueries(deps.Queries), graph.WithSourceOptions(opts...))
}

func newAPI(_ context.Context, desc sources.Descriptor, deps Deps, opts []sources.Option) (sources.Loader, error) {
	return api.New(desc, deps.HTTP, opts...)
}
