package pipeline

import (
	"sheetnorm/internal"
)

// MergeDuplicates collapses columns sharing a header name into one column,
// without losing data. Groups are folded left to right: null cells fill from
// the next column, equal cells stay, conflicting cells concatenate as
// "left<sep>right". The merged column sits at the first member's position;
// everything else keeps its relative order.
func MergeDuplicates(t *internal.Table, separator string) (*internal.Table, []internal.MergeConflict) {
	groups := map[string][]int{}
	order := []string{}
	for i, h := range t.Headers {
		if _, seen := groups[h]; !seen {
			order = append(order, h)
		}
		groups[h] = append(groups[h], i)
	}

	if len(order) == len(t.Headers) {
		return t, nil
	}

	out := internal.NewTable(order)
	out.Rows = make([][]internal.Cell, len(t.Rows))
	conflicts := []internal.MergeConflict{}

	for r, row := range t.Rows {
		merged := make([]internal.Cell, len(order))
		for c, name := range order {
			positions := groups[name]
			seed := cellAt(row, positions[0])
			for _, pos := range positions[1:] {
				other := cellAt(row, pos)
				switch {
				case other.IsNull():
				case seed.IsNull():
					seed = other
				case seed.Equal(other):
				default:
					left, right := seed.Text(), other.Text()
					joined := left + separator + right
					conflicts = append(conflicts, internal.MergeConflict{
						Canonical: name,
						Row:       r,
						Left:      left,
						Right:     right,
						Result:    joined,
					})
					seed = internal.StringCell(joined)
				}
			}
			merged[c] = seed
		}
		out.Rows[r] = merged
	}

	return out, conflicts
}

func cellAt(row []internal.Cell, idx int) internal.Cell {
	if idx < len(row) {
		return row[idx]
	}
	return internal.NullCell()
}
