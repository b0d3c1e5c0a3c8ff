// Package parser reads spreadsheet-like sources into typed rows.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/xuri/excelize/v2"
)

// Data is the result of reading a source: ordered headers and the rows below
// them, keyed by header.
type Data struct {
	Headers []string
	Rows    []models.Row
}

// textTimeLayouts are the layouts recognised when text looks like a date.
var textTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseValue attempts to type a text value.
// Returns an int64 for integers, float64 for decimals, a bool for
// true/false, a time for ISO dates, or the original text.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Null
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.IntValue(i)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.FloatValue(f)
	}
	switch s {
	case "true", "True", "TRUE":
		return models.BoolValue(true)
	case "false", "False", "FALSE":
		return models.BoolValue(false)
	}
	if t, ok := parseTime(s); ok {
		return models.TimeValue(t)
	}
	// Return as string
	return models.StringValue(s)
}

// parseTime parses ISO-8601 style dates and timestamps.
func parseTime(s string) (time.Time, bool) {
	if len(s) < len("2006-01-02") || s[4] != '-' {
		return time.Time{}, false
	}
	for _, layout := range textTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cellReader types raw cell text of one sheet using the workbook's cell types
// and number formats.
type cellReader struct {
	f         *excelize.File
	sheet     string
	date1904  bool
	dateStyle map[int]bool
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	r := &cellReader{
		f:         f,
		sheet:     sheet,
		dateStyle: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r
}

// value returns the typed value of the cell at 1-based (col, row) whose raw
// text is raw.
func (r *cellReader) value(col, row int, raw string) models.Value {
	if raw == "" {
		return models.Null
	}
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.StringValue(raw)
	}
	cellType, err := r.f.GetCellType(r.sheet, cellName)
	if err != nil {
		return parseValue(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE":
			return models.BoolValue(true)
		case "0", "FALSE":
			return models.BoolValue(false)
		}
		return models.StringValue(raw)
	case excelize.CellTypeDate:
		if t, ok := parseTime(raw); ok {
			return models.TimeValue(t)
		}
		return models.StringValue(raw)
	case excelize.CellTypeError:
		return models.Null
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.StringValue(raw)
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.StringValue(raw)
	}
	if r.isDateCell(cellName) {
		if t, err := excelize.ExcelDateToTime(num, r.date1904); err == nil {
			return models.TimeValue(t)
		}
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return models.IntValue(i)
	}
	return models.FloatValue(num)
}

// isDateCell reports whether the cell's number format renders a date or time.
func (r *cellReader) isDateCell(cellName string) bool {
	styleID, err := r.f.GetCellStyle(r.sheet, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := r.dateStyle[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		isDate = IsDateFormat(style.NumFmt, custom)
	}
	r.dateStyle[styleID] = isDate
	return isDate
}
