package reconcile

import (
	"github.com/agentstation/dictcheck/internal/cmd/output"
	"github.com/agentstation/dictcheck/pkg/reconciler"
	"github.com/agentstation/dictcheck/pkg/reporter"
)

// View is the printable outcome of a reconcile run.
type View struct {
	reconciler.Result `yaml:",inline"`
	HasDifferences    bool `json:"has_differences" yaml:"has_differences"`

	details bool
}

// NewView wraps result for output.
func NewView(result *reconciler.Result, details bool) View {
	return View{Result: *result, HasDifferences: result.HasDifferences(), details: details}
}

// Text renders the reconciliation report.
func (v View) Text() string {
	var opts []reporter.Option
	if v.details {
		opts = append(opts, reporter.WithDetails())
	}
	return reporter.Format(&v.Result, opts...)
}

// Table lists one row per difference.
func (v View) Table() output.Data {
	data := output.Data{Headers: []string{"Difference", "Category", "Term", "Field", "A", "B"}}
	for _, k := range v.MissingFromA {
		data.Rows = append(data.Rows, []string{"missing from A", string(k.Category), k.Term, "", "", "present"})
	}
	for _, k := range v.MissingFromB {
		data.Rows = append(data.Rows, []string{"missing from B", string(k.Category), k.Term, "", "present", ""})
	}
	for _, m := range v.Mismatches {
		for _, f := range m.Fields {
			data.Rows = append(data.Rows, []string{"mismatch", string(m.Key.Category), m.Key.Term, f.Field, f.A, f.B})
		}
	}
	return data
}
