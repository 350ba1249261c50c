// Package files loads dictionary snapshots from local JSON, CSV and YAML
// files.
package files

import (
	"context"
	"fmt"
	"os"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// decodeFunc turns raw file contents into entries.
type decodeFunc func(data []byte) ([]dictionary.Entry, error)

// Loader reads one dictionary file.
type Loader struct {
	desc   sources.Descriptor
	opts   *sources.Options
	decode decodeFunc
}

var _ sources.Loader = (*Loader)(nil)

// New creates a file loader for a json, csv or yaml descriptor.
func New(desc sources.Descriptor, opts ...sources.Option) (*Loader, error) {
	l := &Loader{desc: desc, opts: sources.Apply(opts...)}
	switch desc.Kind {
	case sources.KindJSON:
		l.decode = decodeJSON
	case sources.KindCSV:
		l.decode = decodeCSV
	case sources.KindYAML:
		l.decode = decodeYAML
	default:
		return nil, errors.NewValidationError("kind", desc.Kind, fmt.Sprintf("not a file kind: %s", desc.Kind))
	}
	return l, nil
}

// Descriptor returns the source this loader reads.
func (l *Loader) Descriptor() sources.Descriptor {
	return l.desc
}

// Load reads and decodes the whole file.
func (l *Loader) Load(ctx context.Context) (*dictionary.Snapshot, error) {
	logger := logging.FromContext(ctx)
	kind := l.desc.Kind.String()

	if err := ctx.Err(); err != nil {
		return nil, errors.NewLoadError(l.desc.Location, kind, "cancelled", err)
	}

	logger.Debug().
		Str("source", l.desc.Location).
		Str("kind", kind).
		Msg("Loading dictionary file")

	data, err := os.ReadFile(l.desc.Location)
	if err != nil {
		return nil, errors.NewLoadError(l.desc.Location, kind, "reading file", err)
	}

	entries, err := l.decode(data)
	if err != nil {
		return nil, errors.WrapLoad(l.desc.Location, kind, err)
	}

	snapshot := dictionary.NewSnapshot(l.desc.Location, kind, l.opts.Now(), entries)
	logger.Debug().
		Str("source", l.desc.Location).
		Int("entries", snapshot.Len()).
		Msg("Loaded dictionary file")
	return snapshot, nil
}

// decodeRecords converts generic records in file order. Record numbers
// are 1-based.
func decodeRecords(records []map[string]any) ([]dictionary.Entry, error) {
	entries := make([]dictionary.Entry, 0, len(records))
	for i, rec := range records {
		e, err := dictionary.DecodeRecord(i+1, rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// fromGrouped flattens a document keyed by category. A record without a
// category takes the key's; a record naming a different category is
// rejected. Categories are visited in report order so load order is stable.
func fromGrouped(groups map[string][]map[string]any) ([]map[string]any, error) {
	byCategory := make(map[dictionary.Category][]map[string]any, len(groups))
	for key, recs := range groups {
		c, ok := dictionary.ParseCategory(key)
		if !ok {
			return nil, errors.NewValidationError(dictionary.FieldCategory, key,
				"unknown category key; must be one of components, symptoms, causes, countermeasures")
		}
		byCategory[c] = append(byCategory[c], recs...)
	}

	var out []map[string]any
	for _, c := range dictionary.Categories() {
		for _, rec := range byCategory[c] {
			if rec == nil {
				rec = map[string]any{}
			}
			raw, present := rec[dictionary.FieldCategory]
			if !present || raw == nil || raw == "" {
				rec[dictionary.FieldCategory] = string(c)
			} else if s, isString := raw.(string); isString {
				if own, ok := dictionary.ParseCategory(s); ok && own != c {
					return nil, &errors.ValidationError{
						Field:   dictionary.FieldCategory,
						Value:   s,
						Record:  len(out) + 1,
						Message: fmt.Sprintf("conflicts with enclosing category %q", c),
					}
				}
			}
			out = append(out, rec)
		}
	}
	return out, nil
}
