package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// encodeJSON marshals the value into a JSON storage column, falling back to an
// empty array so reads never see malformed data.
func encodeJSON(value interface{}) datatypes.JSON {
	data, err := json.Marshal(value)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func decodeStringList(column datatypes.JSON) []string {
	if len(column) == 0 {
		return nil
	}

	var items []string
	if err := json.Unmarshal(column, &items); err != nil {
		return nil
	}

	return items
}
