// Package reporter renders reconciliation results and snapshots as
// human-readable text. Every function is pure: it returns the text and
// leaves writing it to the caller.
package reporter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/reconciler"
)

// Option configures Format.
type Option func(*options)

type options struct {
	details bool
}

// WithDetails lists every missing key and every mismatched field after
// the summary.
func WithDetails() Option {
	return func(o *options) {
		o.details = true
	}
}

// Format renders a reconciliation result: totals per source, missing and
// mismatch counts, and a category-by-category table.
func Format(result *reconciler.Result, opts ...Option) string {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var b strings.Builder
	b.WriteString("Dictionary reconciliation\n")
	fmt.Fprintf(&b, "  A: %s\n", describe(result.A))
	fmt.Fprintf(&b, "  B: %s\n", describe(result.B))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Missing from A: %d\n", len(result.MissingFromA))
	fmt.Fprintf(&b, "  Missing from B: %d\n", len(result.MissingFromB))
	fmt.Fprintf(&b, "  Mismatched:     %d\n", len(result.Mismatches))
	b.WriteString("\n")

	title := cases.Title(language.English)
	rows := make([][]string, 0, len(dictionary.Categories())+1)
	for _, c := range dictionary.Categories() {
		na, nb := result.A.Categories[c], result.B.Categories[c]
		rows = append(rows, []string{title.String(string(c)), strconv.Itoa(na), strconv.Itoa(nb), signed(nb - na)})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(result.A.Total), strconv.Itoa(result.B.Total), signed(result.B.Total - result.A.Total)})
	b.WriteString(renderTable([]string{"Category", "A", "B", "B-A"}, rows))

	if o.details {
		writeDetails(&b, result)
	}
	return b.String()
}

// FormatSnapshot renders the inspection view of one snapshot: entry total,
// per-category counts and the last n entries in load order.
func FormatSnapshot(s *dictionary.Snapshot, lastN int) string {
	var b strings.Builder
	b.WriteString("Dictionary snapshot\n")
	fmt.Fprintf(&b, "  Source:    %s\n", s.Source())
	fmt.Fprintf(&b, "  Kind:      %s\n", s.Kind())
	fmt.Fprintf(&b, "  Retrieved: %s\n", s.RetrievedAt().Format(time.RFC3339))
	fmt.Fprintf(&b, "  Entries:   %d\n", s.Len())
	b.WriteString("\n")

	title := cases.Title(language.English)
	counts := s.CategoryCounts()
	rows := make([][]string, 0, len(dictionary.Categories()))
	for _, c := range dictionary.Categories() {
		rows = append(rows, []string{title.String(string(c)), strconv.Itoa(counts[c])})
	}
	b.WriteString(renderTable([]string{"Category", "Entries"}, rows))

	last := s.Last(lastN)
	if len(last) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\nLast %d entries:\n", len(last))
	offset := s.Len() - len(last)
	rows = make([][]string, 0, len(last))
	for i, e := range last {
		rows = append(rows, []string{
			strconv.Itoa(offset + i),
			e.Term,
			e.CanonicalName,
			string(e.Category),
			orDash(strings.Join(e.Aliases, ", ")),
		})
	}
	b.WriteString(renderTable([]string{"#", "Term", "Canonical Name", "Category", "Aliases"}, rows))
	return b.String()
}

func writeDetails(b *strings.Builder, result *reconciler.Result) {
	if len(result.MissingFromA) > 0 {
		fmt.Fprintf(b, "\nMissing from A (only in %s):\n", result.B.Source)
		for _, k := range result.MissingFromA {
			fmt.Fprintf(b, "  - %s\n", k)
		}
	}
	if len(result.MissingFromB) > 0 {
		fmt.Fprintf(b, "\nMissing from B (only in %s):\n", result.A.Source)
		for _, k := range result.MissingFromB {
			fmt.Fprintf(b, "  - %s\n", k)
		}
	}
	if len(result.Mismatches) > 0 {
		b.WriteString("\nMismatched entries:\n")
		for _, m := range result.Mismatches {
			fmt.Fprintf(b, "  - %s\n", m.Key)
			for _, f := range m.Fields {
				fmt.Fprintf(b, "      %s: %q != %q\n", f.Field, f.A, f.B)
			}
		}
	}
}

func describe(s reconciler.SourceSummary) string {
	out := s.Source
	if s.Kind != "" {
		out += " (" + s.Kind + ")"
	}
	out += fmt.Sprintf(", %d entries", s.Total)
	if !s.RetrievedAt.IsZero() {
		out += ", retrieved " + s.RetrievedAt.Format(time.RFC3339)
	}
	return out
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderTable renders rows into a string. A rendering error is returned
// as text.
func renderTable(headers []string, rows [][]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf)

	h := make([]any, len(headers))
	for i, v := range headers {
		h[i] = v
	}
	table.Header(h...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		if err := table.Append(cells...); err != nil {
			return fmt.Sprintf("<table error: %v>\n", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("<table error: %v>\n", err)
	}
	return buf.String()
}
