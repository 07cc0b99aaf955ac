package sheets

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the file is not an .xlsx or .xls workbook.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrExport indicates the match list could not be written.
var ErrExport = errors.New("export failed")

// ReadError represents a failure to open or parse a table.
type ReadError struct {
	Path  string
	Sheet string // empty when the workbook itself could not be opened
	Err   error
}

func (e *ReadError) Error() string {
	path := e.Path
	if path == "" {
		path = "workbook"
	}
	if e.Sheet == "" {
		return fmt.Sprintf("read %s: %v", path, e.Err)
	}
	return fmt.Sprintf("read %s (sheet %q): %v", path, e.Sheet, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func newReadError(path, sheet string, err error) *ReadError {
	return &ReadError{Path: path, Sheet: sheet, Err: err}
}
