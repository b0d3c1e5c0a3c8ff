package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

func TestDataArea(t *testing.T) {
	rows := [][]string{
		{},
		{"", "", "x"},
		{"", "a", "", "b"},
		{},
	}

	area, ok := DataArea(rows)
	assert.True(t, ok)
	assert.Equal(t, models.Area{R1: 2, C1: 2, R2: 3, C2: 4}, area)
	assert.Equal(t, "B2:D3", AreaRef(area))

	_, ok = DataArea([][]string{{""}, {}})
	assert.False(t, ok)
}

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		input    []string
		expected []string
	}{
		{[]string{" Segment ", "Units"}, []string{"Segment", "Units"}},
		{[]string{"", "b", ""}, []string{"Unnamed: 0", "b", "Unnamed: 2"}},
		{[]string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{[]string{"a", "a.1", "a"}, []string{"a", "a.1", "a.2"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeHeaders(tt.input), "%q", tt.input)
	}
}

func TestParseAreaReference(t *testing.T) {
	sheet, areas := parseAreaReference("'My Sheet'!$A$1:$D$10,'My Sheet'!$F$1:$G$2")
	assert.Equal(t, "My Sheet", sheet)
	assert.Equal(t, []models.Area{{R1: 1, C1: 1, R2: 10, C2: 4}, {R1: 1, C1: 6, R2: 2, C2: 7}}, areas)

	sheet, areas = parseAreaReference("D10:A1")
	assert.Equal(t, "", sheet)
	assert.Equal(t, []models.Area{{R1: 1, C1: 1, R2: 10, C2: 4}}, areas)

	assert.Nil(t, parseRangeToArea("A1"))
	assert.Nil(t, parseRangeToArea("A1:ZZZZ1"))
}
