package parser

import (
	"context"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// ReadParquet reads every row group of a parquet file through Arrow.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker, norm Normalizer) (*Data, error) {
	pf, err := file.NewParquetReader(r, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	fields := table.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: parquet file has no columns", ErrEmptySheet)
	}
	data := &Data{Headers: NormalizeHeaders(names)}

	numRows := int(table.NumRows())
	columns := make([][]models.Value, len(names))
	for c := range names {
		values := make([]models.Value, 0, numRows)
		for _, chunk := range table.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				values = append(values, norm.Normalize(arrowValue(chunk, i)))
			}
		}
		columns[c] = values
	}

	data.Rows = make([]models.Row, numRows)
	for i := 0; i < numRows; i++ {
		row := models.NewRow(len(data.Headers))
		for c, h := range data.Headers {
			if i < len(columns[c]) {
				row.Set(h, columns[c][i])
			} else {
				row.Set(h, models.Null)
			}
		}
		data.Rows[i] = row
	}

	WidenNumericColumns(data)
	return data, nil
}

// arrowValue converts element i of an Arrow array to a Value. Types without a
// direct counterpart fall back to Arrow's textual form.
func arrowValue(arr arrow.Array, i int) models.Value {
	if arr.IsNull(i) {
		return models.Null
	}
	switch a := arr.(type) {
	case *array.Int8:
		return models.IntValue(int64(a.Value(i)))
	case *array.Int16:
		return models.IntValue(int64(a.Value(i)))
	case *array.Int32:
		return models.IntValue(int64(a.Value(i)))
	case *array.Int64:
		return models.IntValue(a.Value(i))
	case *array.Uint8:
		return models.IntValue(int64(a.Value(i)))
	case *array.Uint16:
		return models.IntValue(int64(a.Value(i)))
	case *array.Uint32:
		return models.IntValue(int64(a.Value(i)))
	case *array.Uint64:
		if v := a.Value(i); v <= math.MaxInt64 {
			return models.IntValue(int64(v))
		}
		return models.FloatValue(float64(a.Value(i)))
	case *array.Float32:
		return models.FloatValue(float64(a.Value(i)))
	case *array.Float64:
		return models.FloatValue(a.Value(i))
	case *array.Boolean:
		return models.BoolValue(a.Value(i))
	case *array.String:
		return models.StringValue(a.Value(i))
	case *array.LargeString:
		return models.StringValue(a.Value(i))
	case *array.Date32:
		return models.TimeValue(a.Value(i).ToTime())
	case *array.Date64:
		return models.TimeValue(a.Value(i).ToTime())
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return models.TimeValue(a.Value(i).ToTime(unit))
	default:
		return models.StringValue(arr.ValueStr(i))
	}
}
