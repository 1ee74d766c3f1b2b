package pipeline

import (
	"sheetnorm/internal"
)

const (
	manufacturerColumn     = "Manufacturer"
	manufacturerRealColumn = "Manufacturer_real"
	partNumberColumn       = "Part Number"
)

// ManufacturerShortNames expands the common vendor abbreviations accepted on
// the command line into the full names used in output sheets.
var ManufacturerShortNames = map[string]string{
	"TI":        "Texas Instruments",
	"ADI":       "Analog Devices",
	"Infineon":  "Infineon Technologies",
	"ST":        "STMicroelectronics",
	"Onsemi":    "Onsemi",
	"Microchip": "Microchip Technology",
	"Broadcom":  "Broadcom",
	"NXP":       "NXP Semiconductors",
	"Toshiba":   "Toshiba",
	"Renesas":   "Renesas Electronics",
	"Epson":     "Seiko Epson",
}

// ExpandManufacturer resolves a known short name to its full form; anything
// unrecognized passes through as a custom manufacturer string.
func ExpandManufacturer(value string) string {
	if full, ok := ManufacturerShortNames[value]; ok {
		return full
	}
	return value
}

// AnnotateManufacturer guarantees a usable Manufacturer column. A missing
// column is inserted right after Part Number (or first) and filled with
// value. An existing column is overwritten only when it is entirely null or
// holds a single repeated value; genuinely mixed data stays untouched.
func AnnotateManufacturer(t *internal.Table, value string) *internal.Table {
	idx := t.ColumnIndex(manufacturerColumn)
	if idx < 0 {
		at := 0
		if pn := t.ColumnIndex(partNumberColumn); pn >= 0 {
			at = pn + 1
		}
		return insertColumn(t, at, manufacturerColumn, internal.StringCell(value))
	}

	distinct := map[string]bool{}
	for _, cell := range t.Column(idx) {
		if !cell.IsNull() {
			distinct[cell.Text()] = true
		}
	}
	if len(distinct) > 1 {
		return t
	}

	out := cloneTable(t)
	for r := range out.Rows {
		out.Rows[r][idx] = internal.StringCell(value)
	}
	return out
}

// AddManufacturerReal appends a uniform Manufacturer_real column, replacing a
// previous one so headers stay unique. It is kept separate from the primary
// Manufacturer column and never merged with it.
func AddManufacturerReal(t *internal.Table, value string) *internal.Table {
	fill := internal.StringCell(ExpandManufacturer(value))
	if idx := t.ColumnIndex(manufacturerRealColumn); idx >= 0 {
		out := cloneTable(t)
		for r := range out.Rows {
			out.Rows[r][idx] = fill
		}
		return out
	}
	return insertColumn(t, len(t.Headers), manufacturerRealColumn, fill)
}

func insertColumn(t *internal.Table, at int, header string, fill internal.Cell) *internal.Table {
	headers := make([]string, 0, len(t.Headers)+1)
	headers = append(headers, t.Headers[:at]...)
	headers = append(headers, header)
	headers = append(headers, t.Headers[at:]...)

	out := internal.NewTable(headers)
	out.Rows = make([][]internal.Cell, len(t.Rows))
	for r, row := range t.Rows {
		padded := paddedRow(row, len(t.Headers))
		cells := make([]internal.Cell, 0, len(headers))
		cells = append(cells, padded[:at]...)
		cells = append(cells, fill)
		cells = append(cells, padded[at:]...)
		out.Rows[r] = cells
	}
	return out
}

func cloneTable(t *internal.Table) *internal.Table {
	out := internal.NewTable(append([]string(nil), t.Headers...))
	out.Rows = make([][]internal.Cell, len(t.Rows))
	for r, row := range t.Rows {
		out.Rows[r] = paddedRow(row, len(t.Headers))
	}
	return out
}

func paddedRow(row []internal.Cell, width int) []internal.Cell {
	out := make([]internal.Cell, width)
	for i := 0; i < width; i++ {
		if i < len(row) {
			out[i] = row[i]
		} else {
			out[i] = internal.NullCell()
		}
	}
	return out
}
