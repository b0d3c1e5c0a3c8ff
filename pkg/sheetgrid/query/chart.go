package query

import "github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"

// Series holds parallel x and y values for charting.
type Series struct {
	XValues []models.Value `json:"xValues"`
	YValues []models.Value `json:"yValues"`
	XColumn string         `json:"xColumn"`
	YColumn string         `json:"yColumn"`
}

// ChartSeries extracts the x and y columns from rows. Element i of each
// series is the value of row i, or Null when the row lacks the key. Values
// are neither converted nor aggregated.
func ChartSeries(rows []models.Row, xColumn, yColumn string) (*Series, error) {
	if len(rows) == 0 || xColumn == "" || yColumn == "" {
		return nil, ErrMissingRequiredData
	}

	s := &Series{
		XValues: make([]models.Value, len(rows)),
		YValues: make([]models.Value, len(rows)),
		XColumn: xColumn,
		YColumn: yColumn,
	}
	for i, r := range rows {
		s.XValues[i] = r.Value(xColumn)
		s.YValues[i] = r.Value(yColumn)
	}
	return s, nil
}
