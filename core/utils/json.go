package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedField is one member of a JSON object, in document order.
type OrderedField struct {
	Key   string
	Value json.RawMessage
}

// OrderedObject decodes the top-level JSON object in data and returns its
// members in the order they appear. encoding/json maps lose that order.
func OrderedObject(data []byte) ([]OrderedField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var fields []OrderedField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read object key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode value of %q: %w", key, err)
		}
		fields = append(fields, OrderedField{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to close JSON object: %w", err)
	}

	return fields, nil
}
