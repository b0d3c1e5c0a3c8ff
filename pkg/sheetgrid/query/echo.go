package query

import "encoding/json"

// EchoResult confirms a client-side filter round trip.
type EchoResult struct {
	Success  bool              `json:"success"`
	RowCount int               `json:"rowCount"`
	Data     []json.RawMessage `json:"data"`
}

// Echo returns the client's rows together with their count. Rows are opaque
// JSON values and are returned byte for byte; they need not be objects.
func Echo(rows []json.RawMessage) EchoResult {
	if rows == nil {
		rows = []json.RawMessage{}
	}
	return EchoResult{
		Success:  true,
		RowCount: len(rows),
		Data:     rows,
	}
}
