package combine

import (
	"testing"

	"sheetnorm/internal"
)

func makeTable(headers []string, rows ...[]string) *internal.Table {
	t := internal.NewTable(headers)
	for _, row := range rows {
		cells := make([]internal.Cell, len(row))
		for i, v := range row {
			if v == "" {
				cells[i] = internal.NullCell()
			} else {
				cells[i] = internal.StringCell(v)
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func TestCombineUnion(t *testing.T) {
	a := makeTable([]string{"Part Number", "VDS Max (V)"}, []string{"LM317", "40"})
	b := makeTable([]string{"Part Number", "Manufacturer"}, []string{"AD823", "ADI"})

	out, _, err := Tables([]Input{{Name: "a.xlsx", Table: a}, {Name: "b.xlsx", Table: b}}, Options{Method: "union"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Part Number", "VDS Max (V)", "Manufacturer"}
	for i, h := range want {
		if out.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", out.Headers, want)
		}
	}
	if out.RowCount() != 2 {
		t.Fatalf("rows = %d", out.RowCount())
	}
	if !out.Rows[0][2].IsNull() {
		t.Fatal("missing column should read null")
	}
	if out.Rows[1][2].Text() != "ADI" {
		t.Fatalf("cell = %q", out.Rows[1][2].Text())
	}
}

func TestCombineIntersect(t *testing.T) {
	a := makeTable([]string{"Part Number", "VDS Max (V)"}, []string{"LM317", "40"})
	b := makeTable([]string{"Part Number", "Manufacturer"}, []string{"AD823", "ADI"})

	out, _, err := Tables([]Input{{Name: "a", Table: a}, {Name: "b", Table: b}}, Options{Method: "intersect"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Headers) != 1 || out.Headers[0] != "Part Number" {
		t.Fatalf("headers = %v", out.Headers)
	}
}

func TestCombineSourceAndTagColumns(t *testing.T) {
	a := makeTable([]string{"Part Number"}, []string{"LM317"})

	out, log, err := Tables([]Input{{Name: "a.xlsx", Table: a}}, Options{
		AddSourceColumn: true,
		AddTagColumns:   true,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Part Number", "Source_File", "BG", "MAG", "Category"}
	for i, h := range want {
		if out.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", out.Headers, want)
		}
	}
	if out.Rows[0][1].Text() != "a.xlsx" {
		t.Fatalf("source cell = %q", out.Rows[0][1].Text())
	}
	if !out.Rows[0][2].IsNull() {
		t.Fatal("tag columns should start empty")
	}
	if len(log) == 0 {
		t.Fatal("expected a processing log")
	}
}

func TestCombineRemoveDuplicates(t *testing.T) {
	a := makeTable([]string{"Part Number"}, []string{"LM317"}, []string{"LM317"}, []string{"AD823"})

	out, _, err := Tables([]Input{{Name: "a", Table: a}}, Options{RemoveDuplicates: true})
	if err != nil {
		t.Fatal(err)
	}
	if out.RowCount() != 2 {
		t.Fatalf("rows = %d", out.RowCount())
	}
}

func TestCombineRejectsUnknownMethod(t *testing.T) {
	a := makeTable([]string{"Part Number"}, []string{"LM317"})
	if _, _, err := Tables([]Input{{Name: "a", Table: a}}, Options{Method: "outer"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCombineNoInputs(t *testing.T) {
	if _, _, err := Tables(nil, Options{}); err == nil {
		t.Fatal("expected error")
	}
}
