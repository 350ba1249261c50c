package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/dictcheck/internal/cmd/output"
)

// Validation statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Row is the validation outcome of one source.
type Row struct {
	Source  string `json:"source" yaml:"source"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Entries int    `json:"entries" yaml:"entries"`
	Status  string `json:"status" yaml:"status"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// View lists every validated source.
type View struct {
	Sources []Row `json:"sources" yaml:"sources"`
}

// Text renders one line per source.
func (v View) Text() string {
	var b strings.Builder
	for _, r := range v.Sources {
		if r.Status == StatusOK {
			fmt.Fprintf(&b, "ok      %s (%s, %d entries)\n", r.Source, r.Kind, r.Entries)
			continue
		}
		fmt.Fprintf(&b, "FAILED  %s: %s\n", r.Source, r.Error)
	}
	return b.String()
}

// Table renders one row per source.
func (v View) Table() output.Data {
	data := output.Data{
		Headers:      []string{"Source", "Kind", "Entries", "Status", "Error"},
		RightAligned: []int{2},
	}
	for _, r := range v.Sources {
		data.Rows = append(data.Rows, []string{r.Source, r.Kind, strconv.Itoa(r.Entries), r.Status, r.Error})
	}
	return data
}
