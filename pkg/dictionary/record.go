package dictionary

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/dictcheck/pkg/errors"
)

// Field names as they appear in records and mismatch reports.
const (
	FieldTerm          = "term"
	FieldCanonicalName = "canonical_name"
	FieldCategory      = "category"
	FieldAliases       = "aliases"
	FieldDescription   = "description"
)

// AliasSeparator separates aliases when they are stored in a single
// string column.
const AliasSeparator = "|"

// fieldAliases lists alternative record keys accepted for a field.
var fieldAliases = map[string][]string{
	FieldCanonicalName: {"canonicalName", "canonical"},
}

// Normalize trims surrounding whitespace and applies Unicode NFC so that
// the same term typed with composed or decomposed characters compares equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// DecodeRecord converts a generic record (a decoded JSON/YAML object, a
// CSV row or a graph query row) into a validated Entry. record is the
// 1-based position used in error messages. Failures are
// *errors.ValidationError values naming the field.
func DecodeRecord(record int, rec map[string]any) (Entry, error) {
	var e Entry

	term, err := stringField(rec, FieldTerm)
	if err != nil {
		return Entry{}, atRecord(err, record)
	}
	e.Term = term

	canonical, err := stringField(rec, FieldCanonicalName)
	if err != nil {
		return Entry{}, atRecord(err, record)
	}
	e.CanonicalName = canonical

	rawCategory, err := stringField(rec, FieldCategory)
	if err != nil {
		return Entry{}, atRecord(err, record)
	}
	if rawCategory != "" {
		c, ok := ParseCategory(rawCategory)
		if !ok {
			return Entry{}, atRecord(errors.NewValidationError(FieldCategory, rawCategory,
				"must be one of components, symptoms, causes, countermeasures"), record)
		}
		e.Category = c
	}

	aliases, err := aliasesField(rec)
	if err != nil {
		return Entry{}, atRecord(err, record)
	}
	e.Aliases = aliases

	description, err := stringField(rec, FieldDescription)
	if err != nil {
		return Entry{}, atRecord(err, record)
	}
	e.Description = description

	if err := e.Validate(); err != nil {
		return Entry{}, atRecord(err, record)
	}
	return e, nil
}

// lookup finds a field under its canonical key or any accepted alternative.
func lookup(rec map[string]any, field string) (any, bool) {
	if v, ok := rec[field]; ok {
		return v, true
	}
	for _, alt := range fieldAliases[field] {
		if v, ok := rec[alt]; ok {
			return v, true
		}
	}
	return nil, false
}

func stringField(rec map[string]any, field string) (string, error) {
	v, ok := lookup(rec, field)
	if !ok || v == nil {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return Normalize(s), nil
	case json.Number:
		return "", errors.NewValidationError(field, v, "must be a string, got number")
	case fmt.Stringer:
		return Normalize(s.String()), nil
	default:
		return "", errors.NewValidationError(field, v, fmt.Sprintf("must be a string, got %T", v))
	}
}

func aliasesField(rec map[string]any) ([]string, error) {
	v, ok := lookup(rec, FieldAliases)
	if !ok || v == nil {
		return nil, nil
	}
	var raw []string
	switch list := v.(type) {
	case string:
		raw = strings.Split(list, AliasSeparator)
	case []string:
		raw = list
	case []any:
		raw = make([]string, 0, len(list))
		for i, item := range list {
			s, isString := item.(string)
			if !isString {
				return nil, errors.NewValidationError(FieldAliases, v,
					fmt.Sprintf("item %d must be a string, got %T", i, item))
			}
			raw = append(raw, s)
		}
	default:
		return nil, errors.NewValidationError(FieldAliases, v, fmt.Sprintf("must be a list of strings, got %T", v))
	}

	aliases := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = Normalize(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	if len(aliases) == 0 {
		return nil, nil
	}
	return aliases, nil
}

func atRecord(err error, record int) error {
	var ve *errors.ValidationError
	if errors.As(err, &ve) && ve.Record == 0 {
		ve.Record = record
	}
	return err
}
