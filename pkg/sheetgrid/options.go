// Package sheetgrid loads a spreadsheet-like file into an immutable table.
package sheetgrid

import "github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/parser"

// Format identifies the reader used for a source file.
type Format string

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = ""
	// FormatExcel reads .xlsx/.xlsm workbooks.
	FormatExcel Format = "xlsx"
	// FormatCSV reads delimited text.
	FormatCSV Format = "csv"
	// FormatParquet reads parquet files.
	FormatParquet Format = "parquet"
	// FormatJSON reads a JSON array of record objects.
	FormatJSON Format = "json"
)

// Options configures loading behavior.
type Options struct {
	// Format forces a reader; FormatAuto detects it from the extension.
	Format Format
	// Sheet is the workbook sheet to read (Excel only). Empty selects the first sheet.
	Sheet string
	// Range restricts an Excel sheet to a range such as A1:D10 or a defined name.
	Range string
	// Delimiter forces the CSV field separator. Zero detects it.
	Delimiter rune
	// NullMarkers lists additional text values treated as missing.
	NullMarkers []string
	// KeepDefaultNulls specifies whether the default null markers apply.
	// If nil, defaults to true.
	KeepDefaultNulls *bool
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Format: FormatAuto,
	}
}

// ShouldKeepDefaultNulls returns whether the default null markers apply.
func (o Options) ShouldKeepDefaultNulls() bool {
	if o.KeepDefaultNulls != nil {
		return *o.KeepDefaultNulls
	}
	return true
}

// Normalizer returns the missing-value normalizer described by the options.
func (o Options) Normalizer() parser.Normalizer {
	var markers []string
	if o.ShouldKeepDefaultNulls() {
		markers = append(markers, parser.DefaultNullMarkers()...)
	}
	markers = append(markers, o.NullMarkers...)
	return parser.NewNormalizer(markers)
}
