package internal

import "strconv"

type CellKind int

const (
	CellNull CellKind = iota
	CellString
	CellNumber
)

// Cell is the closed value variant a table may hold: string, number or null.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

func NullCell() Cell { return Cell{Kind: CellNull} }

func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Num: n} }

func (c Cell) IsNull() bool {
	return c.Kind == CellNull || (c.Kind == CellString && c.Str == "")
}

// Text renders the cell the way it appeared in the sheet. Numbers keep their
// shortest exact representation so merge concatenation preserves formatting.
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		return c.IsNull() && other.IsNull()
	}
	switch c.Kind {
	case CellString:
		return c.Str == other.Str
	case CellNumber:
		return c.Num == other.Num
	default:
		return true
	}
}

// Table is an ordered header list plus row-major cells. Duplicate header names
// are legal before duplicate columns are merged; afterwards names are unique.
type Table struct {
	Headers []string
	Rows    [][]Cell
}

func NewTable(headers []string) *Table {
	return &Table{Headers: headers, Rows: [][]Cell{}}
}

func (t *Table) ColumnCount() int { return len(t.Headers) }

func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnIndex returns the position of the first column with the given header,
// or -1 when absent.
func (t *Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Column returns the row-aligned values of the column at position idx. Short
// rows read as null.
func (t *Table) Column(idx int) []Cell {
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		} else {
			out[i] = NullCell()
		}
	}
	return out
}

type MappingMethod string

const (
	MethodExact  MappingMethod = "exact"
	MethodFuzzy  MappingMethod = "fuzzy"
	MethodManual MappingMethod = "manual"
)

// MappingEntry records the mapping decision for one original column.
// Canonical is nil when the column stayed unmapped.
type MappingEntry struct {
	Original  string        `json:"original"`
	Position  int           `json:"position"`
	Canonical *string       `json:"canonical"`
	Score     int           `json:"score"`
	Method    MappingMethod `json:"method"`
}

func (e MappingEntry) Mapped() bool { return e.Canonical != nil }

type AmbiguityWarning struct {
	Original   string   `json:"original"`
	Chosen     string   `json:"chosen"`
	Contenders []string `json:"contenders"`
	Score      int      `json:"score"`
}

type MergeConflict struct {
	Canonical string `json:"canonical"`
	Row       int    `json:"row"`
	Left      string `json:"left"`
	Right     string `json:"right"`
	Result    string `json:"result"`
}

// Report aggregates everything the engine decided for one table.
type Report struct {
	MappedCount int                `json:"mappedCount"`
	Entries     []MappingEntry     `json:"entries"`
	Unmapped    []string           `json:"unmapped"`
	Ambiguities []AmbiguityWarning `json:"ambiguities"`
	Conflicts   []MergeConflict    `json:"conflicts"`
}

type Stage string

const (
	StageLoaded    Stage = "loaded"
	StageMapped    Stage = "mapped"
	StageMerged    Stage = "merged"
	StageAnnotated Stage = "annotated"
	StageFinalized Stage = "finalized"
	StageFailed    Stage = "failed"
)

type RunRow struct {
	ID            int
	TraceID       string
	File          string
	Status        string
	MappedCount   int
	UnmappedCount int
	ConflictCount int
	Error         string
	CreatedAt     string
}
