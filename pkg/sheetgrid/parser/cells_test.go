package parser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/xuri/excelize/v2"
)

// saveAndOpen writes f to a temporary file and reopens it, so tests read the
// workbook the way a loader does.
func saveAndOpen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestReadExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	day1 := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)

	f.SetCellValue(sheetName, "A1", "Segment")
	f.SetCellValue(sheetName, "B1", "Units")
	f.SetCellValue(sheetName, "C1", "Date")
	f.SetCellValue(sheetName, "D1", "Active")
	f.SetCellValue(sheetName, "E1", "Product")

	f.SetCellValue(sheetName, "A2", "Government")
	f.SetCellValue(sheetName, "B2", 1618.5)
	f.SetCellValue(sheetName, "C2", day1)
	f.SetCellValue(sheetName, "D2", true)
	f.SetCellValue(sheetName, "E2", "Carretera")

	f.SetCellValue(sheetName, "A3", "Midmarket")
	f.SetCellValue(sheetName, "B3", 1321)
	f.SetCellValue(sheetName, "C3", day2)
	f.SetCellValue(sheetName, "D3", false)
	f.SetCellValue(sheetName, "E3", "#N/A")

	f.SetCellValue(sheetName, "A5", "Enterprise")

	data, sheet, err := ReadExcel(saveAndOpen(t, f), ExcelOptions{Normalizer: NewNormalizer(DefaultNullMarkers())})
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet)
	assert.Equal(t, []string{"Segment", "Units", "Date", "Active", "Product"}, data.Headers)
	require.Len(t, data.Rows, 3, "blank row 4 is skipped")

	first := data.Rows[0]
	assert.Equal(t, models.StringValue("Government"), first.Value("Segment"))
	assert.Equal(t, models.FloatValue(1618.5), first.Value("Units"))
	assert.Equal(t, models.BoolValue(true), first.Value("Active"))
	got, ok := first.Value("Date").AsTime()
	require.True(t, ok, "date-formatted number should load as time, got %v", first.Value("Date").Kind())
	assert.True(t, day1.Equal(got))

	second := data.Rows[1]
	assert.Equal(t, models.FloatValue(1321), second.Value("Units"), "ints widen in a float column")
	assert.Equal(t, models.BoolValue(false), second.Value("Active"))
	assert.True(t, second.Value("Product").IsNull(), "#N/A text is missing")

	third := data.Rows[2]
	assert.Equal(t, models.StringValue("Enterprise"), third.Value("Segment"))
	assert.True(t, third.Value("Units").IsNull())
	assert.True(t, third.Value("Date").IsNull())
}

func TestReadExcelCustomDateFormat(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Shipped")
	f.SetCellValue(sheetName, "B1", "Amount")
	f.SetCellValue(sheetName, "A2", 41640)
	f.SetCellValue(sheetName, "B2", 41640)

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheetName, "A2", "A2", dateStyle))

	amountFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheetName, "B2", "B2", amountStyle))

	data, _, err := ReadExcel(saveAndOpen(t, f), ExcelOptions{Normalizer: NewNormalizer(nil)})
	require.NoError(t, err)
	require.Len(t, data.Rows, 1)

	shipped, ok := data.Rows[0].Value("Shipped").AsTime()
	require.True(t, ok)
	assert.Equal(t, "2014-01-01", shipped.Format("2006-01-02"))
	assert.Equal(t, models.IntValue(41640), data.Rows[0].Value("Amount"))
}

func TestReadExcelOffsetRegionAndHeaders(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "C3", "Name")
	f.SetCellValue(sheetName, "E3", "Name")
	f.SetCellValue(sheetName, "C4", "a")
	f.SetCellValue(sheetName, "D4", 1)
	f.SetCellValue(sheetName, "E4", "b")

	data, _, err := ReadExcel(saveAndOpen(t, f), ExcelOptions{Normalizer: NewNormalizer(nil)})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Unnamed: 1", "Name.1"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, models.IntValue(1), data.Rows[0].Value("Unnamed: 1"))
	assert.Equal(t, models.StringValue("b"), data.Rows[0].Value("Name.1"))
}

func TestReadExcelRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Report title")
	f.SetCellValue(sheetName, "A3", "Country")
	f.SetCellValue(sheetName, "B3", "Sales")
	f.SetCellValue(sheetName, "A4", "Canada")
	f.SetCellValue(sheetName, "B4", 10)
	f.SetCellValue(sheetName, "A5", "France")
	f.SetCellValue(sheetName, "B5", 20)
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "SalesData",
		RefersTo: "Sheet1!$A$3:$B$5",
	}))
	wb := saveAndOpen(t, f)

	for _, ref := range []string{"A3:B5", "'Sheet1'!$A$3:$B$5", "SalesData"} {
		data, _, err := ReadExcel(wb, ExcelOptions{Range: ref, Normalizer: NewNormalizer(nil)})
		require.NoError(t, err, ref)
		assert.Equal(t, []string{"Country", "Sales"}, data.Headers, ref)
		assert.Len(t, data.Rows, 2, ref)
	}

	_, _, err := ReadExcel(wb, ExcelOptions{Range: "Missing"})
	assert.Error(t, err)

	_, _, err = ReadExcel(wb, ExcelOptions{Range: "A20:B30"})
	assert.ErrorIs(t, err, ErrEmptySheet)
	assert.ErrorContains(t, err, "A20:B30")
}

func TestReadExcelErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	wb := saveAndOpen(t, f)

	_, _, err := ReadExcel(wb, ExcelOptions{})
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, _, err = ReadExcel(wb, ExcelOptions{Sheet: "Nope"})
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{"123", models.IntValue(123)},
		{"123.45", models.FloatValue(123.45)},
		{"-100", models.IntValue(-100)},
		{"TRUE", models.BoolValue(true)},
		{"false", models.BoolValue(false)},
		{"2014-01-01", models.TimeValue(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"2014-01-01 10:30:00", models.TimeValue(time.Date(2014, 1, 1, 10, 30, 0, 0, time.UTC))},
		{"2014-13-01", models.StringValue("2014-13-01")},
		{"hello", models.StringValue("hello")},
		{"", models.Null},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if !result.Equal(tt.expected) || result.Kind() != tt.expected.Kind() {
			t.Errorf("parseValue(%q) = %v (kind: %v), expected %v (kind: %v)",
				tt.input, result, result.Kind(), tt.expected, tt.expected.Kind())
		}
	}
}
