package utils

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InspectExcel opens an uploaded workbook and returns the name and row
// count of its first sheet. Used to validate taxonomy attachments
// before the file metadata is persisted.
func InspectExcel(fileData []byte) (sheet string, rows int, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return "", 0, fmt.Errorf("not a valid spreadsheet: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", 0, fmt.Errorf("spreadsheet has no sheets")
	}

	sheet = sheets[0]
	allRows, err := f.GetRows(sheet)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}
	return sheet, len(allRows), nil
}
