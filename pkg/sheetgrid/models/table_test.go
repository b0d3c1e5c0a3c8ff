package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	day := time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		RowOf("Segment", "Government", "Units", 1618, "Date", day, "extra", "dropped"),
		RowOf("Units", 1321.5, "Segment", "Midmarket"),
	}

	tbl := NewTable("sample.xlsx", []string{"Segment", "Units", "Date"}, rows)

	assert.Equal(t, "sample.xlsx", tbl.Source())
	assert.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, []string{"Segment", "Units", "Date"}, tbl.ColumnNames())
	assert.Equal(t, []string{"Segment", "Units", "Date"}, tbl.Row(0).Keys())
	assert.Equal(t, []string{"Segment", "Units", "Date"}, tbl.Row(1).Keys())
	assert.True(t, tbl.Row(1).Value("Date").IsNull())

	units, ok := tbl.Column("Units")
	require.True(t, ok)
	assert.Equal(t, KindFloat, units.Kind)

	date, ok := tbl.Column("Date")
	require.True(t, ok)
	assert.Equal(t, KindTime, date.Kind)

	assert.False(t, tbl.HasColumn("extra"))
	assert.Nil(t, tbl.Values("extra"))
	assert.Equal(t, []Value{StringValue("Government"), StringValue("Midmarket")}, tbl.Values("Segment"))
}

func TestTableAccessorsReturnCopies(t *testing.T) {
	tbl := NewTable("t", []string{"a"}, []Row{RowOf("a", 1)})

	cols := tbl.Columns()
	cols[0].Name = "changed"
	names := tbl.ColumnNames()
	names[0] = "changed"
	rows := tbl.Rows()
	rows[0] = RowOf("a", 2)

	assert.Equal(t, []string{"a"}, tbl.ColumnNames())
	assert.Equal(t, IntValue(1), tbl.Row(0).Value("a"))
}

func TestArea(t *testing.T) {
	a := Area{R1: 2, C1: 2, R2: 10, C2: 4}
	assert.Equal(t, 3, a.Width())
	assert.Equal(t, 1, Area{R1: 1, C1: 5, R2: 1, C2: 5}.Width())
}
