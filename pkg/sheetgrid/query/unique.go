package query

import (
	"slices"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// Unique lists the distinct values of one column.
type Unique struct {
	Column       string         `json:"column"`
	UniqueValues []models.Value `json:"uniqueValues"`
}

// UniqueValues returns the distinct non-null values of column. Values that
// are not numbers, text or booleans are replaced by their string form. The
// result is sorted by each value's string form, so 10 sorts before 2.
func UniqueValues(t *models.Table, column string) (*Unique, error) {
	if column == "" || !t.HasColumn(column) {
		return nil, ErrInvalidColumn
	}

	seen := make(map[models.Key]bool)
	values := []models.Value{}
	for _, v := range t.Values(column) {
		if v.IsNull() {
			continue
		}
		key := v.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if !v.Kind().IsPrimitive() {
			v = models.StringValue(v.String())
		}
		values = append(values, v)
	}

	// TODO: numeric columns would read better in numeric order; changing it
	// needs the grid UI's slicer to stop relying on this order.
	slices.SortStableFunc(values, func(a, b models.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	return &Unique{
		Column:       column,
		UniqueValues: values,
	}, nil
}
