package reconciler

import "github.com/agentstation/dictcheck/pkg/dictionary"

// Option is a functional option for configuring a Reconciler.
type Option func(*reconciler)

// WithIgnoredFields skips the named non-key fields when looking for
// mismatches. Key fields (term, category) cannot be ignored.
func WithIgnoredFields(fields ...string) Option {
	return func(r *reconciler) {
		for _, field := range fields {
			if field == dictionary.FieldTerm || field == dictionary.FieldCategory {
				continue
			}
			r.ignoreFields[field] = true
		}
	}
}

// ComparableFields lists the non-key fields Reconcile compares.
func ComparableFields() []string {
	return []string{
		dictionary.FieldCanonicalName,
		dictionary.FieldAliases,
		dictionary.FieldDescription,
	}
}
