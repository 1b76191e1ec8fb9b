package pipeline

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"psikotes/internal"
)

// ParseXLSX reads the first sheet of a vendor .xlsx export and feeds its rows
// through the same header locator and record builder as the CSV path.
func ParseXLSX(content []byte, scanLimit int) (internal.ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return internal.ParseResult{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.ParseResult{}, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return internal.ParseResult{}, err
	}

	return buildResult(dropEmptyRows(rows), scanLimit)
}
