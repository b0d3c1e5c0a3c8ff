package sheetgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file could not be parsed in its format.
var ErrInvalidFormat = errors.New("invalid file format")

// ErrUnsupportedFormat indicates no reader handles the file's extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrEmptySheet indicates the source holds no header row.
var ErrEmptySheet = parser.ErrEmptySheet

// LoadError represents an error while loading a source file.
type LoadError struct {
	Path  string
	Stage string // "open", "read", "sheet"
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, stage string, err error) *LoadError {
	return &LoadError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
