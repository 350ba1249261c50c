// Package reconciler compares two dictionary snapshots and reports which
// terms are missing on either side and which shared terms disagree.
//
// Comparison is key based: each snapshot is indexed by (term, category),
// so the input order of entries never affects the result. Reported lists
// are sorted by (category, term).
//
// Example usage:
//
//	r := reconciler.New()
//	result, err := r.Reconcile(fileSnapshot, graphSnapshot)
//	if err != nil {
//	    return err // DuplicateKeyError or ValidationError
//	}
//	fmt.Println(reporter.Format(result))
package reconciler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// Reconciler compares dictionary snapshots.
type Reconciler interface {
	// Reconcile compares snapshot a with snapshot b.
	Reconcile(a, b *dictionary.Snapshot) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	ignoreFields map[string]bool
}

// New creates a Reconciler with default settings.
func New(opts ...Option) Reconciler {
	r := &reconciler{
		ignoreFields: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile compares a with b using a default Reconciler.
func Reconcile(a, b *dictionary.Snapshot) (*Result, error) {
	return New().Reconcile(a, b)
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(a, b *dictionary.Snapshot) (*Result, error) {
	if a == nil || b == nil {
		return nil, errors.NewValidationError("snapshot", nil, "both snapshots are required")
	}

	indexA, errA := index(a)
	indexB, errB := index(b)
	if err := errors.Join(errA, errB); err != nil {
		return nil, err
	}

	result := &Result{
		A:            summarize(a),
		B:            summarize(b),
		MissingFromA: missing(indexB, indexA),
		MissingFromB: missing(indexA, indexB),
		Mismatches:   []Mismatch{},
	}

	for key, entryA := range indexA {
		entryB, ok := indexB[key]
		if !ok {
			continue
		}
		if fields := r.compare(entryA, entryB); len(fields) > 0 {
			result.Mismatches = append(result.Mismatches, Mismatch{Key: key, Fields: fields})
		}
	}
	slices.SortFunc(result.Mismatches, func(x, y Mismatch) int {
		return dictionary.CompareKeys(x.Key, y.Key)
	})

	return result, nil
}

// compare returns the differing non-key fields in a fixed order.
func (r *reconciler) compare(a, b dictionary.Entry) []FieldDiff {
	var diffs []FieldDiff

	if !r.ignoreFields[dictionary.FieldCanonicalName] && a.CanonicalName != b.CanonicalName {
		diffs = append(diffs, FieldDiff{Field: dictionary.FieldCanonicalName, A: a.CanonicalName, B: b.CanonicalName})
	}

	if !r.ignoreFields[dictionary.FieldAliases] {
		setA, setB := a.AliasSet(), b.AliasSet()
		if !slices.Equal(setA, setB) {
			diffs = append(diffs, FieldDiff{
				Field: dictionary.FieldAliases,
				A:     strings.Join(setA, dictionary.AliasSeparator),
				B:     strings.Join(setB, dictionary.AliasSeparator),
			})
		}
	}

	if !r.ignoreFields[dictionary.FieldDescription] && a.Description != b.Description {
		diffs = append(diffs, FieldDiff{Field: dictionary.FieldDescription, A: a.Description, B: b.Description})
	}

	return diffs
}

// CheckDuplicates reports every (term, category) pair that occurs more than
// once in the snapshot. It returns nil for a clean snapshot.
func CheckDuplicates(s *dictionary.Snapshot) error {
	if s == nil {
		return errors.NewValidationError("snapshot", nil, "snapshot is required")
	}
	_, err := index(s)
	return err
}

// index builds the key map of a snapshot, failing with a DuplicateKeyError
// that lists all duplicated keys and every position they occupy.
func index(s *dictionary.Snapshot) (map[dictionary.Key]dictionary.Entry, error) {
	entries := s.Entries()
	byKey := make(map[dictionary.Key]dictionary.Entry, len(entries))
	positions := make(map[dictionary.Key][]int, len(entries))

	for i, e := range entries {
		key := e.Key()
		positions[key] = append(positions[key], i)
		if _, seen := byKey[key]; !seen {
			byKey[key] = e
		}
	}

	var dups []errors.DuplicateKey
	for key, idx := range positions {
		if len(idx) > 1 {
			dups = append(dups, errors.DuplicateKey{
				Term:     key.Term,
				Category: string(key.Category),
				Indexes:  idx,
			})
		}
	}
	if len(dups) > 0 {
		slices.SortFunc(dups, func(x, y errors.DuplicateKey) int {
			return dictionary.CompareKeys(
				dictionary.Key{Term: x.Term, Category: dictionary.Category(x.Category)},
				dictionary.Key{Term: y.Term, Category: dictionary.Category(y.Category)},
			)
		})
		return nil, errors.NewDuplicateKeyError(sourceName(s), dups)
	}

	return byKey, nil
}

// missing returns the sorted keys of from that are absent in in.
func missing(from, in map[dictionary.Key]dictionary.Entry) []dictionary.Key {
	keys := []dictionary.Key{}
	for key := range from {
		if _, ok := in[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, dictionary.CompareKeys)
	return keys
}

func sourceName(s *dictionary.Snapshot) string {
	if s.Source() != "" {
		return s.Source()
	}
	return fmt.Sprintf("<unnamed %s snapshot>", s.Kind())
}
