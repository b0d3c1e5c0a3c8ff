package query

import (
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// Projection is a table restricted to a subset of its columns.
type Projection struct {
	// Records holds one row per table row, keyed by the requested columns.
	Records []models.Row `json:"data"`
	// Columns echoes the requested column list.
	Columns []string `json:"columns"`
}

// ValidateColumns checks that every name is a column of t. The returned
// error lists all unknown names.
func ValidateColumns(t *models.Table, columns []string) error {
	var unknown []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			unknown = append(unknown, c)
		}
	}
	if len(unknown) > 0 {
		return &ColumnError{Columns: unknown, Err: ErrUnknownColumn}
	}
	return nil
}

// Project returns every row of t restricted to columns, in table order.
// A nil or empty column list selects all columns.
func Project(t *models.Table, columns []string) (*Projection, error) {
	if len(columns) == 0 {
		columns = t.ColumnNames()
	}
	if err := ValidateColumns(t, columns); err != nil {
		return nil, err
	}

	records := make([]models.Row, t.RowCount())
	for i := range records {
		records[i] = t.Row(i).Project(columns)
	}
	return &Projection{
		Records: records,
		Columns: columns,
	}, nil
}
