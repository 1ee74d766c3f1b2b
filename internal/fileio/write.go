package fileio

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sheetnorm/internal"
)

// WriteTable saves a table to path, as CSV for a .csv extension and as an
// XLSX workbook otherwise. Parent directories are created as needed.
func WriteTable(t *internal.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(t, path)
	}
	return writeXLSX(t, path)
}

func writeCSV(t *internal.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for c := range t.Headers {
			record[c] = ""
			if c < len(row) {
				record[c] = row[c].Text()
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(t *internal.Table, path string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for r, row := range t.Rows {
		for c := range t.Headers {
			if c >= len(row) || row[c].IsNull() {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			switch row[c].Kind {
			case internal.CellNumber:
				_ = f.SetCellValue(sheet, cell, row[c].Num)
			default:
				_ = f.SetCellValue(sheet, cell, row[c].Str)
			}
		}
	}

	return f.SaveAs(path)
}
