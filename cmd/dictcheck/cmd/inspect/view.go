package inspect

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/dictcheck/internal/cmd/output"
	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/reporter"
)

// View is the printable summary of one snapshot.
type View struct {
	Source      string                      `json:"source" yaml:"source"`
	Kind        string                      `json:"kind" yaml:"kind"`
	RetrievedAt time.Time                   `json:"retrieved_at" yaml:"retrieved_at"`
	Total       int                         `json:"total" yaml:"total"`
	Categories  map[dictionary.Category]int `json:"categories" yaml:"categories"`
	Last        []dictionary.Entry          `json:"last" yaml:"last"`

	snapshot *dictionary.Snapshot
	lastN    int
}

// NewView summarizes snapshot with its last n entries.
func NewView(snapshot *dictionary.Snapshot, lastN int) View {
	return View{
		Source:      snapshot.Source(),
		Kind:        snapshot.Kind(),
		RetrievedAt: snapshot.RetrievedAt(),
		Total:       snapshot.Len(),
		Categories:  snapshot.CategoryCounts(),
		Last:        snapshot.Last(lastN),
		snapshot:    snapshot,
		lastN:       lastN,
	}
}

// Text renders the inspection report.
func (v View) Text() string {
	return reporter.FormatSnapshot(v.snapshot, v.lastN)
}

// Table lists the trailing entries.
func (v View) Table() output.Data {
	data := output.Data{
		Headers:      []string{"#", "Term", "Canonical Name", "Category", "Aliases", "Description"},
		RightAligned: []int{0},
	}
	offset := v.Total - len(v.Last)
	for i, e := range v.Last {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(offset + i),
			e.Term,
			e.CanonicalName,
			string(e.Category),
			strings.Join(e.Aliases, ", "),
			e.Description,
		})
	}
	return data
}
