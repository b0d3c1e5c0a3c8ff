package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequiredData is returned when chart input rows or column names are missing.
	ErrMissingRequiredData = errors.New("missing required data")

	// ErrInvalidColumn is returned when a single column name is empty or unknown.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrUnknownColumn is returned when a projection names columns the table lacks.
	ErrUnknownColumn = errors.New("unknown column")
)

// ColumnError reports the column names that caused a lookup to fail.
type ColumnError struct {
	Columns []string
	Err     error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.Columns, ", "))
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}
