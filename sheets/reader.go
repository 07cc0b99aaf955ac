package sheets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"student-aid-matcher/models"
)

// Student roster columns (0-based).
const (
	colStudentName   = 0  // A
	colStudentID     = 1  // B
	colSchool        = 4  // E
	colGrade         = 8  // I
	colClass         = 9  // J
	colNationalNo    = 10 // K
	studentHeaderRow = 1
)

var idNumberCleaner = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "", "　", "")

// NormalizeIDNumber strips whitespace from an identity number and upper-cases
// the trailing check character, so "11010120000101003x " joins "11010120000101003X".
func NormalizeIDNumber(id string) string {
	return strings.ToUpper(idNumberCleaner.Replace(strings.TrimSpace(id)))
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ReadStudents reads the student roster at path.
func ReadStudents(path string) ([]models.Student, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return ParseStudents(wb)
}

// ParseStudents reads the roster from the first sheet of wb. The header row
// is skipped, and so is any row without both a name and an identity number.
func ParseStudents(wb Workbook) ([]models.Student, error) {
	if wb.SheetCount() == 0 {
		return nil, newReadError("", "", errors.New("excel file does not contain any sheets"))
	}
	rows, err := wb.Rows(0)
	if err != nil {
		return nil, err
	}

	students := []models.Student{}
	for i, row := range rows {
		if i < studentHeaderRow {
			continue
		}
		name := cell(row, colStudentName)
		id := cell(row, colStudentID)
		if name == "" || id == "" {
			continue
		}
		students = append(students, models.Student{
			Name:      name,
			IDNumber:  NormalizeIDNumber(id),
			StudentID: cell(row, colNationalNo),
			Class:     cell(row, colClass),
			Grade:     cell(row, colGrade),
			School:    cell(row, colSchool),
		})
	}
	return students, nil
}

// ReadDifficultyRecords reads the difficulty table at path using the layout
// of dt. Every record is tagged with dt.
func ReadDifficultyRecords(path string, dt models.DifficultyType) ([]models.DifficultyRecord, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return ParseDifficultyRecords(wb, dt, filepath.Base(path))
}

// ParseDifficultyRecords emits one record per non-empty identity cell found
// in the layout's sheets and columns. source names the file in each record.
func ParseDifficultyRecords(wb Workbook, dt models.DifficultyType, source string) ([]models.DifficultyRecord, error) {
	layout, ok := LayoutFor(dt)
	if !ok {
		return nil, fmt.Errorf("no table layout for difficulty type %q", dt)
	}

	records := []models.DifficultyRecord{}
	for _, sheet := range layout.Sheets {
		rows, err := wb.Rows(sheet)
		if err != nil {
			return nil, err
		}
		sheetName := wb.SheetName(sheet)
		for i := layout.SkipRows; i < len(rows); i++ {
			for _, col := range layout.IDColumns {
				id := cell(rows[i], col)
				if id == "" {
					continue
				}
				records = append(records, models.DifficultyRecord{
					IDNumber:       NormalizeIDNumber(id),
					DifficultyType: dt,
					Source: models.RecordSource{
						File:   source,
						Sheet:  sheetName,
						Row:    i + 1,
						Column: col + 1,
					},
				})
			}
		}
	}
	return records, nil
}
