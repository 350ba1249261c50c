package reconciler

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/dictcheck/pkg/dictionary"
)

// SourceSummary describes one side of a reconciliation.
type SourceSummary struct {
	Source      string                      `json:"source" yaml:"source"`
	Kind        string                      `json:"kind" yaml:"kind"`
	RetrievedAt time.Time                   `json:"retrieved_at" yaml:"retrieved_at"`
	Total       int                         `json:"total" yaml:"total"`
	Categories  map[dictionary.Category]int `json:"categories" yaml:"categories"`
}

// FieldDiff is one non-key field that differs between the two sides.
type FieldDiff struct {
	Field string `json:"field" yaml:"field"`
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
}

// Mismatch is a key present on both sides whose non-key fields differ.
type Mismatch struct {
	Key    dictionary.Key `json:"key" yaml:"key"`
	Fields []FieldDiff    `json:"fields" yaml:"fields"`
}

// FieldNames returns the names of the differing fields.
func (m Mismatch) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Field
	}
	return names
}

// Result is the derived outcome of comparing snapshot A with snapshot B.
// All lists are sorted by (category, term).
type Result struct {
	A SourceSummary `json:"a" yaml:"a"`
	B SourceSummary `json:"b" yaml:"b"`

	// MissingFromA holds keys present in B but not in A.
	MissingFromA []dictionary.Key `json:"missing_from_a" yaml:"missing_from_a"`
	// MissingFromB holds keys present in A but not in B.
	MissingFromB []dictionary.Key `json:"missing_from_b" yaml:"missing_from_b"`
	Mismatches   []Mismatch       `json:"mismatches" yaml:"mismatches"`
}

// HasDifferences returns true if the two sides disagree in any way.
func (r *Result) HasDifferences() bool {
	return len(r.MissingFromA) > 0 || len(r.MissingFromB) > 0 || len(r.Mismatches) > 0
}

// String returns a one-line summary.
func (r *Result) String() string {
	if !r.HasDifferences() {
		return "No differences detected"
	}
	var parts []string
	if n := len(r.MissingFromA); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing from %s", n, r.A.Source))
	}
	if n := len(r.MissingFromB); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing from %s", n, r.B.Source))
	}
	if n := len(r.Mismatches); n > 0 {
		parts = append(parts, fmt.Sprintf("%d mismatched", n))
	}
	return strings.Join(parts, ", ")
}

func summarize(s *dictionary.Snapshot) SourceSummary {
	return SourceSummary{
		Source:      s.Source(),
		Kind:        s.Kind(),
		RetrievedAt: s.RetrievedAt(),
		Total:       s.Len(),
		Categories:  s.CategoryCounts(),
	}
}
