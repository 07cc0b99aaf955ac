package sheets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"student-aid-matcher/models"
)

// ValidateFile checks that path is an existing, readable workbook and
// describes it for the file picker.
func ValidateFile(path string) (models.FileInfo, error) {
	if path == "" {
		return models.FileInfo{}, fmt.Errorf("%w: empty path", ErrFileNotFound)
	}
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.FileInfo{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.FileInfo{}, newReadError(path, "", err)
	}
	if st.IsDir() {
		return models.FileInfo{}, newReadError(path, "", errors.New("is a directory"))
	}

	ext := Extension(path)
	if !IsSpreadsheet(ext) {
		return models.FileInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	wb, err := Open(path)
	if err != nil {
		return models.FileInfo{}, err
	}
	sheets := wb.SheetCount()
	if err := wb.Close(); err != nil {
		return models.FileInfo{}, newReadError(path, "", err)
	}
	if sheets == 0 {
		return models.FileInfo{}, newReadError(path, "", errors.New("excel file does not contain any sheets"))
	}

	return models.FileInfo{
		Path:      path,
		Name:      filepath.Base(path),
		Size:      st.Size(),
		SizeText:  humanize.Bytes(uint64(st.Size())),
		Extension: ext,
	}, nil
}
