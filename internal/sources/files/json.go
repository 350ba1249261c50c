package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// decodeJSON accepts an array of entry objects or an object keyed by
// category whose values are arrays of entry objects.
func decodeJSON(data []byte) ([]dictionary.Entry, error) {
	data, err := stripBOM(data)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewValidationError("document", "", "file is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	switch trimmed[0] {
	case '[':
		var records []map[string]any
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding JSON array: %w", err)
		}
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		return decodeRecords(records)
	case '{':
		var groups map[string][]map[string]any
		if err := dec.Decode(&groups); err != nil {
			return nil, fmt.Errorf("decoding JSON object keyed by category: %w", err)
		}
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		records, err := fromGrouped(groups)
		if err != nil {
			return nil, err
		}
		return decodeRecords(records)
	default:
		return nil, errors.NewValidationError("document", string(trimmed[:1]),
			"must be an array of entries or an object keyed by category")
	}
}

// expectEOF fails when anything but whitespace follows the first value.
func expectEOF(dec *json.Decoder) error {
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("unexpected content after JSON document at offset %d", dec.InputOffset())
	}
	return nil
}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	return out, nil
}
