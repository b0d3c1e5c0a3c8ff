package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrSheetNotFound indicates the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrEmptySheet indicates the sheet or range holds no header row.
	ErrEmptySheet = errors.New("sheet has no data")
)

// ExcelOptions selects what part of a workbook is read.
type ExcelOptions struct {
	// Sheet is the sheet to read; empty selects the first sheet.
	Sheet string
	// Range restricts reading to a range or defined name (see ResolveArea).
	// Empty reads the bounding box of all non-empty cells.
	Range string
	// Normalizer maps missing values to Null.
	Normalizer Normalizer
}

// ReadExcel reads one sheet of an open workbook. The first row of the data
// region holds the headers; every following row becomes a Row keyed by them.
func ReadExcel(f *excelize.File, opts ExcelOptions) (*Data, string, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, sheet, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, sheet, err
	}

	var area models.Area
	if opts.Range != "" {
		area, err = ResolveArea(f, sheet, opts.Range)
		if err != nil {
			return nil, sheet, err
		}
		if area.R1 > len(rows) {
			return nil, sheet, fmt.Errorf("%w: %q range %s", ErrEmptySheet, sheet, AreaRef(area))
		}
	} else {
		var ok bool
		area, ok = DataArea(rows)
		if !ok {
			return nil, sheet, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
		}
	}

	rawHeaders := make([]string, area.Width())
	for i := range rawHeaders {
		rawHeaders[i] = cellAt(rows, area.C1+i, area.R1)
	}
	data := &Data{Headers: NormalizeHeaders(rawHeaders)}

	cells := newCellReader(f, sheet)
	last := area.R2
	if last > len(rows) {
		last = len(rows)
	}
	for rowNum := area.R1 + 1; rowNum <= last; rowNum++ {
		row := models.NewRow(len(data.Headers))
		hasData := false
		for i, h := range data.Headers {
			col := area.C1 + i
			v := opts.Normalizer.Normalize(cells.value(col, rowNum, cellAt(rows, col, rowNum)))
			if !v.IsNull() {
				hasData = true
			}
			row.Set(h, v)
		}
		// Blank rows inside the region are skipped.
		if hasData {
			data.Rows = append(data.Rows, row)
		}
	}

	WidenNumericColumns(data)
	return data, sheet, nil
}
