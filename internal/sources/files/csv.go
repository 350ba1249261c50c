package files

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// requiredColumns must be present in the header row.
var requiredColumns = []string{
	dictionary.FieldTerm,
	dictionary.FieldCanonicalName,
	dictionary.FieldCategory,
}

// decodeCSV reads a header row and one entry per following row. Columns
// are located by header name. Record numbers in errors are 1-based file
// lines, so the first data row is record 2.
func decodeCSV(data []byte) ([]dictionary.Entry, error) {
	data, err := stripBOM(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("header", "", "file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "canonicalname" || name == "canonical" {
			name = dictionary.FieldCanonicalName
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, errors.NewValidationError("header", strings.Join(header, ","),
				fmt.Sprintf("missing required column %q", col))
		}
	}

	var entries []dictionary.Entry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		line, _ := r.FieldPos(0)
		if blank(row) {
			continue
		}

		rec := make(map[string]any, len(columns))
		for name, idx := range columns {
			if idx < len(row) {
				rec[name] = row[idx]
			}
		}
		e, err := dictionary.DecodeRecord(line, rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
