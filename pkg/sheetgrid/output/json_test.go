package output

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/query"
)

func TestToJSON(t *testing.T) {
	res := query.Projection{
		Records: []models.Row{models.RowOf("b", 1.5, "a", math.NaN(), "c", 2.0)},
		Columns: []string{"b", "a", "c"},
	}

	compact, err := ToJSON(res, false)
	require.NoError(t, err)
	assert.Equal(t, `{"data":[{"b":1.5,"a":null,"c":2.0}],"columns":["b","a","c"]}`, string(compact))

	pretty, err := ToJSON(res, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"columns\": [")
	assert.JSONEq(t, string(compact), string(pretty))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string][]string{"columns": {"a"}}, false))
	assert.Equal(t, "{\"columns\":[\"a\"]}\n", buf.String())

	err := WriteJSON(&buf, make(chan int), false)
	assert.ErrorContains(t, err, "failed to serialize")
}
