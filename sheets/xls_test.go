package sheets

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-aid-matcher/models"
)

// testdata/table.xls is a BIFF8 workbook with one sheet "Table": a header
// row (Code, Name, Description) and rows code1..code11.
var tableXLS = filepath.Join("testdata", "table.xls")

func TestOpenXLS(t *testing.T) {
	wb, err := Open(tableXLS)
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, 1, wb.SheetCount())
	assert.Equal(t, "Table", wb.SheetName(0))
	assert.Empty(t, wb.SheetName(1))

	rows, err := wb.Rows(0)
	require.NoError(t, err)
	require.Len(t, rows, 12)
	assert.Equal(t, []string{"Code", "Name", "Description"}, rows[0])
	assert.Equal(t, []string{"code1", "name1", "description1"}, rows[1])
	assert.Equal(t, []string{"code11", "name11", "description11"}, rows[11])

	_, err = wb.Rows(1)
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, tableXLS, re.Path)
}

func TestReadStudentsXLS(t *testing.T) {
	students, err := ReadStudents(tableXLS)
	require.NoError(t, err)
	require.Len(t, students, 11)
	assert.Equal(t, models.Student{Name: "code1", IDNumber: "NAME1"}, students[0])
	assert.Equal(t, "NAME11", students[10].IDNumber)
}

func TestReadDifficultyRecordsXLS(t *testing.T) {
	// disability registers keep the identity number in column B
	records, err := ReadDifficultyRecords(tableXLS, models.DisabledWithCertificate)
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, models.DifficultyRecord{
		IDNumber:       "NAME1",
		DifficultyType: models.DisabledWithCertificate,
		Source:         models.RecordSource{File: "table.xls", Sheet: "Table", Row: 2, Column: 2},
	}, records[0])
}

func TestMalformedXLSSheet(t *testing.T) {
	path := filepath.Join("testdata", "malformed.xls")
	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Rows(0)
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, path, re.Path)
	assert.Equal(t, "Sheet1", re.Sheet)
	assert.Contains(t, err.Error(), "malformed sheet")

	_, err = ReadStudents(path)
	assert.ErrorAs(t, err, &re)
}

func TestOpenReaderXLSGarbage(t *testing.T) {
	_, err := OpenReader(bytes.NewReader([]byte("not a compound file")), ExtXLS)
	var re *ReadError
	assert.ErrorAs(t, err, &re)
}
