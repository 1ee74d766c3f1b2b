package pipeline

import (
	"testing"

	"sheetnorm/internal"
)

func TestMergeDuplicatesNullFill(t *testing.T) {
	in := internal.NewTable([]string{"Part Number", "Manufacturer", "Manufacturer"})
	in.Rows = [][]internal.Cell{
		{internal.StringCell("LM317"), internal.StringCell("TI"), internal.NullCell()},
		{internal.StringCell("AD823"), internal.NullCell(), internal.StringCell("ADI")},
	}

	out, conflicts := MergeDuplicates(in, " | ")
	if len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %v", conflicts)
	}
	if len(out.Headers) != 2 {
		t.Fatalf("headers = %v", out.Headers)
	}
	if out.RowCount() != 2 {
		t.Fatalf("row count changed: %d", out.RowCount())
	}

	col := out.Column(out.ColumnIndex("Manufacturer"))
	if col[0].Text() != "TI" || col[1].Text() != "ADI" {
		t.Fatalf("merged column = [%q, %q]", col[0].Text(), col[1].Text())
	}
}

func TestMergeDuplicatesConflictConcatenates(t *testing.T) {
	in := internal.NewTable([]string{"Nominal Current (A)", "Nominal Current (A)"})
	in.Rows = [][]internal.Cell{
		{internal.NumberCell(5), internal.NumberCell(10)},
		{internal.StringCell("2"), internal.StringCell("2")},
	}

	out, conflicts := MergeDuplicates(in, " | ")
	if out.RowCount() != 2 {
		t.Fatalf("row count changed: %d", out.RowCount())
	}

	col := out.Column(0)
	if col[0].Text() != "5 | 10" {
		t.Fatalf("conflict row = %q, want %q", col[0].Text(), "5 | 10")
	}
	if col[1].Text() != "2" {
		t.Fatalf("equal row = %q, want unchanged", col[1].Text())
	}

	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %v", conflicts)
	}
	c := conflicts[0]
	if c.Canonical != "Nominal Current (A)" || c.Row != 0 || c.Result != "5 | 10" {
		t.Fatalf("unexpected conflict record: %+v", c)
	}
}

func TestMergeDuplicatesKeepsColumnOrder(t *testing.T) {
	in := internal.NewTable([]string{"A", "B", "A", "C"})
	in.Rows = [][]internal.Cell{
		{internal.StringCell("1"), internal.StringCell("2"), internal.NullCell(), internal.StringCell("4")},
	}

	out, _ := MergeDuplicates(in, " | ")
	want := []string{"A", "B", "C"}
	for i, h := range want {
		if out.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", out.Headers, want)
		}
	}
}

func TestMergeDuplicatesNoGroupsPassthrough(t *testing.T) {
	in := internal.NewTable([]string{"A", "B"})
	in.Rows = [][]internal.Cell{{internal.StringCell("1"), internal.StringCell("2")}}

	out, conflicts := MergeDuplicates(in, " | ")
	if out != in || conflicts != nil {
		t.Fatal("table without duplicates should pass through")
	}
}
