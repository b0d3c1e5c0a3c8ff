// Package query implements the read-only operations served over the table:
// column introspection, projection, chart series, unique values and the
// client echo.
package query

import (
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// Columns returns the table's column names in declared order.
func Columns(t *models.Table) []string {
	return t.ColumnNames()
}

// DateColumns returns the columns that hold dates or whose name mentions
// "date" in any case. Either condition is enough, so a text column named
// "Update Note" is included.
func DateColumns(t *models.Table) []string {
	out := []string{}
	for _, c := range t.Columns() {
		if c.Kind == models.KindTime || strings.Contains(strings.ToLower(c.Name), "date") {
			out = append(out, c.Name)
		}
	}
	return out
}
