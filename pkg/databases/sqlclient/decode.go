package sqlclient

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// rowMap pairs column names with scanned values. Text columns arrive as []byte from
// both drivers and are turned into strings.
func rowMap(columns []string, values []interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		if b, ok := values[i].([]byte); ok {
			row[col] = string(b)
			continue
		}
		row[col] = values[i]
	}
	return row
}

// DecodeRow fills out, a pointer to a struct with mapstructure tags, from a row returned
// by FindMany. Numeric text (DECIMAL columns) and integer booleans (MySQL TINYINT) are
// converted to the field type.
func DecodeRow(row interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build row decoder: %w", err)
	}
	if err := decoder.Decode(row); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
