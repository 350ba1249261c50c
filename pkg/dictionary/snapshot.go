package dictionary

import (
	"time"
)

// Snapshot is an immutable, fully loaded collection of entries retrieved
// from one source at one point in time. The zero value is an empty snapshot
// with no source.
type Snapshot struct {
	source      string
	kind        string
	retrievedAt time.Time
	entries     []Entry
}

// NewSnapshot builds a snapshot. Entries are deep-copied so later changes
// to the caller's slice do not leak in.
func NewSnapshot(source, kind string, retrievedAt time.Time, entries []Entry) *Snapshot {
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		copied[i] = e.Clone()
	}
	return &Snapshot{
		source:      source,
		kind:        kind,
		retrievedAt: retrievedAt.UTC(),
		entries:     copied,
	}
}

// Source returns the source identifier (file path, query label or URL).
func (s *Snapshot) Source() string {
	return s.source
}

// Kind returns the loader kind that produced the snapshot.
func (s *Snapshot) Kind() string {
	return s.kind
}

// RetrievedAt returns when the snapshot was loaded.
func (s *Snapshot) RetrievedAt() time.Time {
	return s.retrievedAt
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Entries returns a deep copy of the entries in load order.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Entry returns the entry at index i.
func (s *Snapshot) Entry(i int) Entry {
	return s.entries[i].Clone()
}

// Last returns a copy of the last n entries in load order.
func (s *Snapshot) Last(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	start := max(len(s.entries)-n, 0)
	out := make([]Entry, 0, len(s.entries)-start)
	for _, e := range s.entries[start:] {
		out = append(out, e.Clone())
	}
	return out
}

// CategoryCounts tallies entries per category. Every known category is
// present in the result, zero when absent.
func (s *Snapshot) CategoryCounts() map[Category]int {
	counts := make(map[Category]int, len(Categories()))
	for _, c := range Categories() {
		counts[c] = 0
	}
	for _, e := range s.entries {
		counts[e.Category]++
	}
	return counts
}
