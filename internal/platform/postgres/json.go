package postgres

import (
	"encoding/json"
	"fmt"
)

// marshalJSONColumn serializes a slice-valued field for storage in a JSONB
// column. Nil slices are stored as an empty JSON array so reads never have to
// distinguish NULL from empty.
func marshalJSONColumn(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSONB column: %w", err)
	}
	if string(data) == "null" {
		return []byte("[]"), nil
	}
	return data, nil
}

// unmarshalJSONColumn deserializes a JSONB column into dst. Empty input is
// treated as an absent value.
func unmarshalJSONColumn(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode JSONB column: %w", err)
	}
	return nil
}
