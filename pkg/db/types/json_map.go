package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap maps onto a jsonb column holding a free-form metadata bag.
type JSONMap map[string]any

// Value marshals the map into its jsonb representation.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	raw, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, fmt.Errorf("jsonmap: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes jsonb bytes or text into the map.
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported scan type %T", value)
	}

	if len(raw) == 0 {
		*m = nil
		return nil
	}

	decoded := map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("jsonmap: unmarshal: %w", err)
	}
	*m = decoded
	return nil
}
