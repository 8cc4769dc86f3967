// Package formfield stores the cleaned data of an arbitrary sub-form in a
// single JSON column and validates it back through that sub-form.
package formfield

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Load decodes a stored column value. Text that is not valid JSON is
// returned unchanged.
func Load(raw any) any {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case datatypes.JSON:
		data = v
	case json.RawMessage:
		data = v
	default:
		return raw
	}
	if len(data) == 0 {
		return nil
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return string(data)
	}
	return out
}

// Dump prepares a value for the column. Strings are taken as already encoded.
func Dump(value any) (datatypes.JSON, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return datatypes.JSON(v), nil
	case datatypes.JSON:
		return v, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode json field: %w", err)
	}
	return datatypes.JSON(data), nil
}

// normalize turns any JSON-serializable value into the generic shape
// produced by encoding/json, so cleaned data survives a storage round trip.
func normalize(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
