// Package sheets reads the student roster and the difficulty-type tables
// from office spreadsheets and writes match lists back out.
package sheets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

const (
	ExtXLSX = "xlsx"
	ExtXLS  = "xls"
	ExtCSV  = "csv"
)

// Workbook is the read-only view the parsers need, shared by the .xlsx and
// legacy .xls backends.
type Workbook interface {
	SheetCount() int
	SheetName(index int) string
	// Rows returns the cell text of every row of the sheet at index. Rows may
	// have different lengths; trailing empty cells can be omitted.
	Rows(index int) ([][]string, error)
	Close() error
}

// Extension returns the lower-case extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsSpreadsheet reports whether ext names a readable workbook format.
func IsSpreadsheet(ext string) bool {
	return ext == ExtXLSX || ext == ExtXLS
}

// Open opens the workbook at path, choosing the backend by extension.
func Open(path string) (Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, newReadError(path, "", err)
	}
	if info.IsDir() {
		return nil, newReadError(path, "", errors.New("is a directory"))
	}
	ext := Extension(path)
	if !IsSpreadsheet(ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, newReadError(path, "", err)
	}
	wb, err := OpenReader(file, ext)
	if err != nil {
		file.Close()
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return nil, err
	}
	return &fileWorkbook{Workbook: wb, file: file, path: path}, nil
}

// OpenReader opens a workbook from r. ext selects the backend ("xlsx" or "xls").
func OpenReader(r io.ReadSeeker, ext string) (Workbook, error) {
	switch strings.ToLower(ext) {
	case ExtXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, newReadError("", "", fmt.Errorf("failed to open excel file: %w", err))
		}
		return &xlsxWorkbook{f: f, sheets: f.GetSheetList()}, nil
	case ExtXLS:
		return openXLS(r)
	default:
		return nil, fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}

type fileWorkbook struct {
	Workbook
	file *os.File
	path string
}

func (w *fileWorkbook) Rows(index int) ([][]string, error) {
	rows, err := w.Workbook.Rows(index)
	var re *ReadError
	if errors.As(err, &re) && re.Path == "" {
		re.Path = w.path
	}
	return rows, err
}

func (w *fileWorkbook) Close() error {
	err := w.Workbook.Close()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

type xlsxWorkbook struct {
	f      *excelize.File
	sheets []string
}

func (w *xlsxWorkbook) SheetCount() int { return len(w.sheets) }

func (w *xlsxWorkbook) SheetName(index int) string {
	if index < 0 || index >= len(w.sheets) {
		return ""
	}
	return w.sheets[index]
}

func (w *xlsxWorkbook) Rows(index int) ([][]string, error) {
	name := w.SheetName(index)
	if name == "" {
		return nil, newReadError("", fmt.Sprintf("#%d", index+1), errors.New("sheet does not exist"))
	}
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, newReadError("", name, fmt.Errorf("failed to get rows: %w", err))
	}
	return rows, nil
}

func (w *xlsxWorkbook) Close() error { return w.f.Close() }

type xlsWorkbook struct {
	wb *xls.WorkBook
}

// openXLS guards the BIFF parser, which panics on some malformed files.
func openXLS(r io.ReadSeeker) (wb Workbook, err error) {
	defer func() {
		if p := recover(); p != nil {
			wb, err = nil, newReadError("", "", fmt.Errorf("malformed xls file: %v", p))
		}
	}()
	book, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, newReadError("", "", fmt.Errorf("failed to open xls file: %w", err))
	}
	if book == nil {
		return nil, newReadError("", "", errors.New("no workbook stream in xls file"))
	}
	return &xlsWorkbook{wb: book}, nil
}

func (w *xlsWorkbook) SheetCount() int { return w.wb.NumSheets() }

func (w *xlsWorkbook) SheetName(index int) string {
	sheet, err := w.sheet(index)
	if err != nil {
		return ""
	}
	return sheet.Name
}

// sheet parses the sheet at index on first use. A parser panic becomes a
// ReadError and the sheet stays unparsed.
func (w *xlsWorkbook) sheet(index int) (sheet *xls.WorkSheet, err error) {
	label := fmt.Sprintf("#%d", index+1)
	if index < 0 || index >= w.wb.NumSheets() {
		return nil, newReadError("", label, errors.New("sheet does not exist"))
	}
	defer func() {
		if p := recover(); p != nil {
			sheet, err = nil, newReadError("", label, fmt.Errorf("malformed sheet: %v", p))
		}
	}()
	if sheet = w.wb.GetSheet(index); sheet == nil {
		return nil, newReadError("", label, errors.New("sheet does not exist"))
	}
	return sheet, nil
}

func (w *xlsWorkbook) Rows(index int) (rows [][]string, err error) {
	sheet, err := w.sheet(index)
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, newReadError("", sheet.Name, fmt.Errorf("malformed sheet: %v", p))
		}
	}()

	rows = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// The BIFF reader holds no resources beyond the underlying reader.
func (w *xlsWorkbook) Close() error { return nil }
