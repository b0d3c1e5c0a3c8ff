package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// ReadRecords reads a JSON array of objects. Headers are the keys in the
// order they are first seen across all records; a key missing from a record
// is Null in that row. Nested objects and arrays are kept as raw JSON.
func ReadRecords(r io.Reader, norm Normalizer) (*Data, error) {
	var records []models.Row
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records: %w", err)
	}

	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: JSON file has no records", ErrEmptySheet)
	}

	data := &Data{Headers: headers, Rows: make([]models.Row, len(records))}
	for i, rec := range records {
		row := rec.Project(headers)
		norm.NormalizeRow(&row)
		data.Rows[i] = row
	}

	WidenNumericColumns(data)
	return data, nil
}
