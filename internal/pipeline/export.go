package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"psikotes/internal"
	"psikotes/internal/util"
)

// ExportErrorReport writes the failed rows of one import to a spreadsheet the
// operator can fix up and re-submit.
func ExportErrorReport(outcomes []internal.RowOutcome, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"row_number", "nik", "name", "email", "status", "field", "code", "message"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, o := range outcomes {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, o.RowNumber)
		set(2, o.NIK)
		set(3, o.Name)
		set(4, o.Email)
		set(5, string(o.Status))
		set(6, util.DerefString(o.Field))
		if o.Code != nil {
			set(7, string(*o.Code))
		}
		set(8, util.DerefString(o.Message))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
