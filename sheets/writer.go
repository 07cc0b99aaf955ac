package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"student-aid-matcher/models"
)

// ExportSheetName is the sheet the match list is written to.
const ExportSheetName = "匹配结果"

var exportHeader = []string{"序号", "姓名", "身份证号", "全国学籍号", "学校", "年级", "班级", "困难类型", "来源"}

var exportColumnWidths = map[string]float64{
	"A": 8, "B": 12, "C": 22, "D": 24, "E": 28, "F": 10, "G": 12, "H": 28, "I": 36,
}

func exportRow(i int, m models.MatchResult) []string {
	src := m.Record.Source
	source := ""
	if src.File != "" {
		source = fmt.Sprintf("%s/%s 第%d行第%d列", src.File, src.Sheet, src.Row, src.Column)
	}
	return []string{
		strconv.Itoa(i + 1),
		m.Student.Name,
		m.Student.IDNumber,
		m.Student.StudentID,
		m.Student.School,
		m.Student.Grade,
		m.Student.Class,
		string(m.Record.DifficultyType),
		source,
	}
}

// WriteMatches writes matches to path as .xlsx or .csv and returns the path
// actually written. A path without an extension gets ".xlsx". Identity
// numbers are written unmasked.
func WriteMatches(matches []models.MatchResult, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no output path", ErrExport)
	}
	ext := Extension(path)
	if ext == "" {
		path += "." + ExtXLSX
		ext = ExtXLSX
	}
	if ext != ExtXLSX && ext != ExtCSV {
		return "", fmt.Errorf("%w: %w: %s", ErrExport, ErrUnsupportedFormat, filepath.Base(path))
	}
	if st, err := os.Stat(filepath.Dir(path)); err != nil || !st.IsDir() {
		return "", fmt.Errorf("%w: destination directory %s is not available", ErrExport, filepath.Dir(path))
	}

	var err error
	if ext == ExtCSV {
		err = writeCSV(matches, path)
	} else {
		err = writeXLSX(matches, path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return path, nil
}

func writeXLSX(matches []models.MatchResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return err
	}
	for i, m := range matches {
		values := exportRow(i, m)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ExportSheetName, "A1", lastHeader, bold); err != nil {
		return err
	}
	for col, width := range exportColumnWidths {
		if err := f.SetColWidth(ExportSheetName, col, col, width); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// utf8BOM lets office software detect the encoding of Chinese CSV content.
const utf8BOM = "\xEF\xBB\xBF"

func writeCSV(matches []models.MatchResult, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return err
	}
	w := csv.NewWriter(file)
	records := make([][]string, 0, len(matches)+1)
	records = append(records, exportHeader)
	for i, m := range matches {
		records = append(records, exportRow(i, m))
	}
	return w.WriteAll(records)
}
