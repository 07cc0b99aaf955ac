// Package sheetstest writes small workbooks for tests.
package sheetstest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"student-aid-matcher/models"
)

// WriteWorkbook saves an .xlsx at path whose sheets (Sheet1, Sheet2, ...)
// hold the given rows. Empty strings leave the cell blank.
func WriteWorkbook(t testing.TB, path string, sheets ...[][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, rows := range sheets {
		name := fmt.Sprintf("Sheet%d", i+1)
		if i > 0 {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellStr(name, cell, v))
			}
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// RowWith places values at the given 0-based columns.
func RowWith(values map[int]string) []string {
	width := 0
	for c := range values {
		if c+1 > width {
			width = c + 1
		}
	}
	row := make([]string, width)
	for c, v := range values {
		row[c] = v
	}
	return row
}

// WriteRoster saves a student roster in the layout the reader expects.
func WriteRoster(t testing.TB, path string, students ...models.Student) {
	t.Helper()
	rows := [][]string{
		{"学生姓名", "身份证件号", "性别", "民族", "学校名称", "", "", "", "年级", "班级", "全国学籍号"},
	}
	for _, s := range students {
		rows = append(rows, RowWith(map[int]string{
			0: s.Name, 1: s.IDNumber, 4: s.School, 8: s.Grade, 9: s.Class, 10: s.StudentID,
		}))
	}
	WriteWorkbook(t, path, rows)
}

// WriteIDTable saves a one-sheet table with a header row and one identity
// number per row in column idColumn.
func WriteIDTable(t testing.TB, path string, idColumn int, ids ...string) {
	t.Helper()
	rows := [][]string{RowWith(map[int]string{idColumn: "身份证号"})}
	for _, id := range ids {
		rows = append(rows, RowWith(map[int]string{idColumn: id}))
	}
	WriteWorkbook(t, path, rows)
}
