package sheetgrid

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/parser"
	"github.com/xuri/excelize/v2"
)

// DetectFormat returns the reader for path. A forced format wins over the
// extension.
func DetectFormat(path string, forced Format) (Format, error) {
	if forced != FormatAuto {
		switch forced {
		case FormatExcel, FormatCSV, FormatParquet, FormatJSON:
			return forced, nil
		}
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, forced)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatExcel, nil
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".json":
		return FormatJSON, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a source file into a table.
func Load(path string, opts Options) (*models.Table, error) {
	return LoadContext(context.Background(), path, opts)
}

// LoadContext reads a source file into a table. Missing values are
// normalized to models.Null and numeric columns holding both integers and
// floats are widened to floats.
func LoadContext(ctx context.Context, path string, opts Options) (*models.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewLoadError(path, "open", ErrFileNotFound)
		}
		return nil, NewLoadError(path, "open", err)
	}

	format, err := DetectFormat(path, opts.Format)
	if err != nil {
		return nil, NewLoadError(path, "open", err)
	}

	norm := opts.Normalizer()
	var data *parser.Data
	switch format {
	case FormatExcel:
		data, err = loadExcel(path, opts, norm)
	case FormatCSV:
		data, err = loadCSV(path, opts, norm)
	case FormatParquet:
		data, err = loadParquet(ctx, path, norm)
	case FormatJSON:
		data, err = loadJSON(path, norm)
	}
	if err != nil {
		return nil, err
	}

	return models.NewTable(filepath.Base(path), data.Headers, data.Rows), nil
}

func loadExcel(path string, opts Options, norm parser.Normalizer) (*parser.Data, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(path, "open", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	defer f.Close()

	data, sheet, err := parser.ReadExcel(f, parser.ExcelOptions{
		Sheet:      opts.Sheet,
		Range:      opts.Range,
		Normalizer: norm,
	})
	if err != nil {
		if errors.Is(err, ErrSheetNotFound) || errors.Is(err, ErrEmptySheet) {
			return nil, NewLoadError(path, "sheet", err)
		}
		return nil, NewLoadError(path, "read", fmt.Errorf("%w: sheet %q: %w", ErrInvalidFormat, sheet, err))
	}
	return data, nil
}

func loadCSV(path string, opts Options, norm parser.Normalizer) (*parser.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, "open", err)
	}
	defer f.Close()

	delim := opts.Delimiter
	if delim == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}
	data, err := parser.ReadCSV(f, parser.CSVOptions{Delimiter: delim, Normalizer: norm})
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}

func loadParquet(ctx context.Context, path string, norm parser.Normalizer) (*parser.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, "open", err)
	}
	defer f.Close()

	data, err := parser.ReadParquet(ctx, f, norm)
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}

func loadJSON(path string, norm parser.Normalizer) (*parser.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, "open", err)
	}
	defer f.Close()

	data, err := parser.ReadRecords(f, norm)
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}

func readError(path string, err error) *LoadError {
	if errors.Is(err, ErrEmptySheet) {
		return NewLoadError(path, "read", err)
	}
	return NewLoadError(path, "read", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
}
