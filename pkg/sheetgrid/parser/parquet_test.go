package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

func writeTestParquet(t *testing.T, day time.Time) string {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "Country", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "Units", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "Price", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "Active", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
		{Name: "Date", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"Canada", "NaN"}, nil)
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{10, 0}, []bool{true, false})
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{2.5, 3}, nil)
	b.Field(3).(*array.BooleanBuilder).AppendValues([]bool{true, false}, nil)
	b.Field(4).(*array.Date32Builder).AppendValues([]arrow.Date32{arrow.Date32FromTime(day), 0}, []bool{true, false})

	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	path := filepath.Join(t.TempDir(), "sales.parquet")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, pqarrow.WriteTable(tbl, out, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))
	_ = out.Close() // pqarrow.WriteTable already closes the sink
	return path
}

func TestReadParquet(t *testing.T) {
	day := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	path := writeTestParquet(t, day)

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	data, err := ReadParquet(context.Background(), in, NewNormalizer(DefaultNullMarkers()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Country", "Units", "Price", "Active", "Date"}, data.Headers)
	require.Len(t, data.Rows, 2)

	first := data.Rows[0]
	assert.Equal(t, models.StringValue("Canada"), first.Value("Country"))
	assert.Equal(t, models.IntValue(10), first.Value("Units"))
	assert.Equal(t, models.FloatValue(2.5), first.Value("Price"))
	assert.Equal(t, models.BoolValue(true), first.Value("Active"))
	got, ok := first.Value("Date").AsTime()
	require.True(t, ok)
	assert.True(t, day.Equal(got))

	second := data.Rows[1]
	assert.True(t, second.Value("Country").IsNull(), "NaN text is a null marker")
	assert.True(t, second.Value("Units").IsNull())
	assert.True(t, second.Value("Date").IsNull())
}
