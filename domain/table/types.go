package table

import (
	"sheetsense/domain/grid"
)

// ColumnSpec is one column of the structured table as recovered from the
// header block. Formula and Code are extracted out of the merged label set
// so the display name stays clean; either may be empty. A column whose
// merged levels were all empty keeps an empty Name and is still retained,
// preserving column-count parity with the source grid.
type ColumnSpec struct {
	Name    string `json:"name"`
	Formula string `json:"formula,omitempty"`
	Code    string `json:"code,omitempty"`
}

// StructuredTable is the recovered table: named columns over string-valued
// rows. Column names are unique; collisions are disambiguated with numeric
// suffixes at build time. Row order matches source order after empty-row
// and summary-row removal.
type StructuredTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t *StructuredTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when out of range.
func (t *StructuredTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// IsEmpty reports whether the table has no data rows.
func (t *StructuredTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ColumnProfile summarizes one column's values for downstream consumers.
// Numeric statistics are only populated for columns classified numeric.
type ColumnProfile struct {
	Column      string  `json:"column"`
	Kind        string  `json:"kind"` // "numeric" or "text"
	Count       int     `json:"count"`
	MissingRate float64 `json:"missing_rate"`
	Mean        float64 `json:"mean,omitempty"`
	Median      float64 `json:"median,omitempty"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	StdDev      float64 `json:"std_dev,omitempty"`
}

// Metadata records everything about a parse attempt beyond the table
// itself. It is always produced, even on failure, so callers can log the
// attempted sheet and header location. Exactly one of {table, Error} is
// present per attempt; Warning flags soft conditions such as a structurally
// valid parse with zero data rows.
type Metadata struct {
	SourceSheet    string            `json:"source_sheet,omitempty"`
	SourceDigest   string            `json:"source_digest,omitempty"`
	HeaderBlock    *grid.HeaderBlock `json:"header_block,omitempty"`
	HeaderStrategy string            `json:"header_strategy,omitempty"`
	Columns        []string          `json:"columns,omitempty"`
	Formulas       map[string]string `json:"formulas,omitempty"`
	Codes          map[string]string `json:"codes,omitempty"`
	L1Column       string            `json:"l1_column,omitempty"`
	L2Column       string            `json:"l2_column,omitempty"`
	ColumnProfiles []ColumnProfile   `json:"column_profiles,omitempty"`
	Warning        string            `json:"warning,omitempty"`
	Error          string            `json:"error,omitempty"`
}
