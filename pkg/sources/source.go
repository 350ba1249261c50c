// Package sources defines the loader contract for dictionary snapshots and
// the descriptor syntax used to name a source on the command line.
//
// A descriptor is "kind:location":
//
//	json:./data/dictionary.json
//	csv:/srv/kg/dict/symptoms.csv
//	yaml:terms.yaml
//	neo4j:default                         (a named graph query)
//	http://localhost:8000/api/dictionary  (kind inferred from the scheme)
//	./dictionary.json                     (kind inferred from the extension)
package sources

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// Kind identifies a loader variant.
type Kind string

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// Loader kinds.
const (
	KindJSON  Kind = "json"
	KindCSV   Kind = "csv"
	KindYAML  Kind = "yaml"
	KindNeo4j Kind = "neo4j"
	KindHTTP  Kind = "http"
)

// Kinds returns all available loader kinds.
func Kinds() []Kind {
	return []Kind{KindJSON, KindCSV, KindYAML, KindNeo4j, KindHTTP}
}

// IsValid returns true if the kind is one of the defined constants.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds(), k)
}

// IsFile returns true for kinds that read a local file.
func (k Kind) IsFile() bool {
	return k == KindJSON || k == KindCSV || k == KindYAML
}

// Loader produces a fully materialised snapshot from one source. Loaders
// read only; they never mutate the source. Failures are *errors.LoadError.
type Loader interface {
	// Descriptor returns the source this loader reads.
	Descriptor() Descriptor

	// Load reads the whole source and returns an immutable snapshot.
	Load(ctx context.Context) (*dictionary.Snapshot, error)
}

// Descriptor names a source: which loader variant and where it reads from.
type Descriptor struct {
	Kind     Kind
	Location string
}

// String renders the descriptor in its canonical kind:location form.
func (d Descriptor) String() string {
	if d.Kind == KindHTTP {
		return d.Location
	}
	return string(d.Kind) + ":" + d.Location
}

// ParseDescriptor parses a descriptor string. An explicit "kind:" prefix
// wins; http(s) URLs are http; otherwise the kind comes from the file
// extension.
func ParseDescriptor(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Descriptor{}, errors.NewValidationError("source", s, "descriptor is empty")
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return Descriptor{Kind: KindHTTP, Location: s}, nil
	}

	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		kind := Kind(strings.ToLower(prefix))
		if kind == "yml" {
			kind = KindYAML
		}
		if kind.IsValid() {
			if rest == "" {
				return Descriptor{}, errors.NewValidationError("source", s, "missing location after "+prefix+":")
			}
			return Descriptor{Kind: kind, Location: rest}, nil
		}
	}

	switch strings.ToLower(filepath.Ext(s)) {
	case ".json":
		return Descriptor{Kind: KindJSON, Location: s}, nil
	case ".csv":
		return Descriptor{Kind: KindCSV, Location: s}, nil
	case ".yaml", ".yml":
		return Descriptor{Kind: KindYAML, Location: s}, nil
	}

	return Descriptor{}, errors.NewValidationError("source", s,
		"cannot infer loader kind; use one of json:, csv:, yaml:, neo4j:, http(s)://")
}
