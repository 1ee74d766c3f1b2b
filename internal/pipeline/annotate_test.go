package pipeline

import (
	"testing"

	"sheetnorm/internal"
)

func rowOfStrings(values ...string) []internal.Cell {
	out := make([]internal.Cell, len(values))
	for i, v := range values {
		if v == "" {
			out[i] = internal.NullCell()
		} else {
			out[i] = internal.StringCell(v)
		}
	}
	return out
}

func TestAnnotateInsertsAfterPartNumber(t *testing.T) {
	in := internal.NewTable([]string{"Part Number", "VDS Max (V)"})
	in.Rows = [][]internal.Cell{
		rowOfStrings("LM317", "40"),
		rowOfStrings("TPS2000", "60"),
	}

	out := AnnotateManufacturer(in, "TI")
	want := []string{"Part Number", "Manufacturer", "VDS Max (V)"}
	for i, h := range want {
		if out.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", out.Headers, want)
		}
	}
	for _, row := range out.Rows {
		if row[1].Text() != "TI" {
			t.Fatalf("manufacturer cell = %q", row[1].Text())
		}
	}
	if out.RowCount() != in.RowCount() {
		t.Fatal("row count changed")
	}
}

func TestAnnotateInsertsFirstWithoutPartNumber(t *testing.T) {
	in := internal.NewTable([]string{"Description"})
	in.Rows = [][]internal.Cell{rowOfStrings("regulator")}

	out := AnnotateManufacturer(in, "ADI")
	if out.Headers[0] != "Manufacturer" {
		t.Fatalf("headers = %v", out.Headers)
	}
	if out.Rows[0][0].Text() != "ADI" {
		t.Fatalf("cell = %q", out.Rows[0][0].Text())
	}
}

func TestAnnotateOverwritesEmptyColumn(t *testing.T) {
	in := internal.NewTable([]string{"Manufacturer", "Part Number"})
	in.Rows = [][]internal.Cell{
		rowOfStrings("", "LM317"),
		rowOfStrings("", "LM337"),
	}

	out := AnnotateManufacturer(in, "TI")
	for _, row := range out.Rows {
		if row[0].Text() != "TI" {
			t.Fatalf("cell = %q", row[0].Text())
		}
	}
}

func TestAnnotateOverwritesUniformColumn(t *testing.T) {
	in := internal.NewTable([]string{"Manufacturer"})
	in.Rows = [][]internal.Cell{
		rowOfStrings("texas"),
		rowOfStrings("texas"),
	}

	out := AnnotateManufacturer(in, "Texas Instruments")
	for _, row := range out.Rows {
		if row[0].Text() != "Texas Instruments" {
			t.Fatalf("cell = %q", row[0].Text())
		}
	}
}

func TestAnnotateLeavesMixedDataAlone(t *testing.T) {
	in := internal.NewTable([]string{"Manufacturer"})
	in.Rows = [][]internal.Cell{
		rowOfStrings("TI"),
		rowOfStrings("ADI"),
	}

	out := AnnotateManufacturer(in, "NXP")
	if out.Rows[0][0].Text() != "TI" || out.Rows[1][0].Text() != "ADI" {
		t.Fatal("heterogeneous manufacturer data was overwritten")
	}
}

func TestAddManufacturerReal(t *testing.T) {
	in := internal.NewTable([]string{"Part Number"})
	in.Rows = [][]internal.Cell{rowOfStrings("LM317")}

	out := AddManufacturerReal(in, "TI")
	idx := out.ColumnIndex("Manufacturer_real")
	if idx != 1 {
		t.Fatalf("Manufacturer_real at %d", idx)
	}
	if out.Rows[0][idx].Text() != "Texas Instruments" {
		t.Fatalf("cell = %q", out.Rows[0][idx].Text())
	}
}

func TestExpandManufacturer(t *testing.T) {
	if got := ExpandManufacturer("NXP"); got != "NXP Semiconductors" {
		t.Fatalf("got %q", got)
	}
	if got := ExpandManufacturer("Some Custom Vendor"); got != "Some Custom Vendor" {
		t.Fatalf("got %q", got)
	}
}
