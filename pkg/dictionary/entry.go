// Package dictionary defines the term dictionary data model: entries,
// their identity key, and immutable snapshots loaded from one source.
package dictionary

import (
	"slices"
	"strings"

	"github.com/agentstation/dictcheck/pkg/errors"
)

// Key is the stable identity of an entry within a dictionary.
type Key struct {
	Term     string   `json:"term" yaml:"term"`
	Category Category `json:"category" yaml:"category"`
}

// String renders the key as category/term.
func (k Key) String() string {
	return string(k.Category) + "/" + k.Term
}

// CompareKeys orders keys by category, then term. It is a cmp function
// for slices.SortFunc.
func CompareKeys(a, b Key) int {
	if c := strings.Compare(string(a.Category), string(b.Category)); c != 0 {
		return c
	}
	return strings.Compare(a.Term, b.Term)
}

// Entry is one term of the dictionary.
type Entry struct {
	Term          string   `json:"term" yaml:"term"`
	CanonicalName string   `json:"canonical_name" yaml:"canonical_name"`
	Category      Category `json:"category" yaml:"category"`
	Aliases       []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Key returns the identity key of the entry.
func (e Entry) Key() Key {
	return Key{Term: e.Term, Category: e.Category}
}

// Validate checks the required fields. The returned error is a
// *errors.ValidationError naming the first failing field.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Term) == "" {
		return errors.NewValidationError(FieldTerm, e.Term, "is required")
	}
	if strings.TrimSpace(e.CanonicalName) == "" {
		return errors.NewValidationError(FieldCanonicalName, e.CanonicalName, "is required")
	}
	if e.Category == "" {
		return errors.NewValidationError(FieldCategory, e.Category, "is required")
	}
	if !e.Category.IsValid() {
		return errors.NewValidationError(FieldCategory, e.Category, "must be one of components, symptoms, causes, countermeasures")
	}
	return nil
}

// AliasSet returns the aliases deduplicated and sorted, so two entries
// listing the same aliases in a different order compare equal.
func (e Entry) AliasSet() []string {
	set := slices.Clone(e.Aliases)
	slices.Sort(set)
	return slices.Compact(set)
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Aliases = slices.Clone(e.Aliases)
	return e
}
