package query

import (
	"time"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// financialTable builds a small table shaped like the financial sample workbook.
func financialTable() *models.Table {
	day := func(m time.Month) time.Time { return time.Date(2014, m, 1, 0, 0, 0, 0, time.UTC) }
	rows := []models.Row{
		models.RowOf("Segment", "Government", "Units", 2, "Date", day(1), "Update Note", "a", "Active", true),
		models.RowOf("Segment", "Midmarket", "Units", 10, "Date", day(6), "Update Note", nil, "Active", false),
		models.RowOf("Segment", "Government", "Units", 1, "Date", day(1), "Update Note", "b", "Active", true),
		models.RowOf("Segment", nil, "Units", 10, "Date", nil, "Update Note", "c", "Active", nil),
	}
	return models.NewTable("Financial Sample.xlsx", []string{"Segment", "Units", "Date", "Update Note", "Active"}, rows)
}
