package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// CSVOptions configures ReadCSV.
type CSVOptions struct {
	// Delimiter is the field separator; zero detects it from the header line.
	Delimiter rune
	// Normalizer maps missing values to Null.
	Normalizer Normalizer
}

// DetectDelimiter picks the most frequent of comma, semicolon, tab and pipe
// in the header line, defaulting to a comma.
func DetectDelimiter(headerLine string) rune {
	best, bestCount := ',', 0
	for _, sep := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(headerLine, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}
	return best
}

// ReadCSV reads delimited text whose first record holds the headers.
func ReadCSV(r io.Reader, opts CSVOptions) (*Data, error) {
	br := bufio.NewReader(r)

	delim := opts.Delimiter
	if delim == 0 {
		peek, _ := br.Peek(64 * 1024)
		line := peek
		if i := bytes.IndexByte(peek, '\n'); i >= 0 {
			line = peek[:i]
		}
		delim = DetectDelimiter(string(line))
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty CSV", ErrEmptySheet)
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	data := &Data{Headers: NormalizeHeaders(header)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		row := models.NewRow(len(data.Headers))
		for i, h := range data.Headers {
			field := ""
			if i < len(record) {
				field = record[i]
			}
			if opts.Normalizer.IsNullText(field) {
				row.Set(h, models.Null)
				continue
			}
			row.Set(h, opts.Normalizer.Normalize(parseValue(field)))
		}
		data.Rows = append(data.Rows, row)
	}

	WidenNumericColumns(data)
	return data, nil
}
