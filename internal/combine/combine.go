// Package combine stacks multiple standardized tables into one.
package combine

import (
	"errors"
	"fmt"
	"strings"

	"sheetnorm/internal"
)

const defaultSourceColumn = "Source_File"

// Tag columns appended for downstream categorization when requested.
var tagColumns = []string{"BG", "MAG", "Category"}

type Options struct {
	// Method is "union" (all columns, missing cells null) or "intersect"
	// (only columns present in every input).
	Method           string
	AddSourceColumn  bool
	SourceColumnName string
	AddTagColumns    bool
	RemoveDuplicates bool
}

// Input is one parsed table tagged with the file it came from.
type Input struct {
	Name  string
	Table *internal.Table
}

// Tables combines the inputs into one table and returns a processing log
// describing what happened per input.
func Tables(inputs []Input, opts Options) (*internal.Table, []string, error) {
	if len(inputs) == 0 {
		return nil, nil, errors.New("combine: no inputs")
	}
	if opts.Method == "" {
		opts.Method = "union"
	}
	if opts.Method != "union" && opts.Method != "intersect" {
		return nil, nil, fmt.Errorf("combine: unknown method %q", opts.Method)
	}
	sourceCol := opts.SourceColumnName
	if sourceCol == "" {
		sourceCol = defaultSourceColumn
	}

	log := []string{}
	headers := combinedHeaders(inputs, opts.Method)
	if opts.AddSourceColumn {
		headers = append(headers, sourceCol)
	}
	if opts.AddTagColumns {
		headers = append(headers, tagColumns...)
		log = append(log, "added tag columns: "+strings.Join(tagColumns, ", "))
	}

	out := internal.NewTable(headers)
	for _, input := range inputs {
		added := 0
		for _, row := range input.Table.Rows {
			cells := make([]internal.Cell, len(headers))
			for c, h := range headers {
				cells[c] = internal.NullCell()
				if opts.AddSourceColumn && h == sourceCol {
					cells[c] = internal.StringCell(input.Name)
					continue
				}
				if idx := input.Table.ColumnIndex(h); idx >= 0 && idx < len(row) {
					cells[c] = row[idx]
				}
			}
			out.Rows = append(out.Rows, cells)
			added++
		}
		log = append(log, fmt.Sprintf("%s: added %d rows, %d columns", input.Name, added, input.Table.ColumnCount()))
	}

	if opts.RemoveDuplicates {
		before := out.RowCount()
		out = dedupeRows(out)
		if removed := before - out.RowCount(); removed > 0 {
			log = append(log, fmt.Sprintf("removed %d duplicate rows", removed))
		}
	}

	log = append(log, fmt.Sprintf("final result: %d rows, %d columns", out.RowCount(), out.ColumnCount()))
	return out, log, nil
}

func combinedHeaders(inputs []Input, method string) []string {
	if method == "intersect" {
		shared := []string{}
		for _, h := range inputs[0].Table.Headers {
			inAll := true
			for _, input := range inputs[1:] {
				if input.Table.ColumnIndex(h) < 0 {
					inAll = false
					break
				}
			}
			if inAll {
				shared = append(shared, h)
			}
		}
		return shared
	}

	seen := map[string]bool{}
	union := []string{}
	for _, input := range inputs {
		for _, h := range input.Table.Headers {
			if !seen[h] {
				seen[h] = true
				union = append(union, h)
			}
		}
	}
	return union
}

func dedupeRows(t *internal.Table) *internal.Table {
	out := internal.NewTable(t.Headers)
	seen := map[string]bool{}
	for _, row := range t.Rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = cell.Text()
		}
		key := strings.Join(parts, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, row)
	}
	return out
}
