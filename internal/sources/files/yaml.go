package files

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
)

// decodeYAML accepts the same two shapes as decodeJSON: a sequence of
// entry mappings or a mapping keyed by category.
func decodeYAML(data []byte) ([]dictionary.Entry, error) {
	data, err := stripBOM(data)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	switch v := doc.(type) {
	case nil:
		return nil, errors.NewValidationError("document", "", "file is empty")
	case []any:
		records, err := yamlRecords(v)
		if err != nil {
			return nil, err
		}
		return decodeRecords(records)
	case map[string]any:
		groups := make(map[string][]map[string]any, len(v))
		for key, value := range v {
			items, ok := value.([]any)
			if !ok && value != nil {
				return nil, errors.NewValidationError(key, value, "must be a sequence of entries")
			}
			records, err := yamlRecords(items)
			if err != nil {
				return nil, err
			}
			groups[key] = records
		}
		records, err := fromGrouped(groups)
		if err != nil {
			return nil, err
		}
		return decodeRecords(records)
	default:
		return nil, errors.NewValidationError("document", fmt.Sprintf("%T", doc),
			"must be a sequence of entries or a mapping keyed by category")
	}
}

func yamlRecords(items []any) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(items))
	for i, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, &errors.ValidationError{
				Field:   "entry",
				Value:   item,
				Record:  i + 1,
				Message: fmt.Sprintf("must be a mapping, got %T", item),
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
