package grid

import (
	"strconv"
	"strings"
)

// Grid is one worksheet read with no header interpretation: rows outer,
// columns inner, 0-indexed. Cells are raw strings as read from the sheet;
// merged regions are expanded by the loader so every covered coordinate
// holds the merged value. A Grid is never mutated after loading - every
// pipeline stage derives a new structure from it.
type Grid [][]string

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int {
	return len(g)
}

// Width returns the widest row length, which is the column count of the
// table the grid describes.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cell returns the trimmed value at (row, col), or "" when the coordinate is
// outside the grid. Ragged short rows read as empty cells.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

// Row returns row i, or nil when out of range.
func (g Grid) Row(i int) []string {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

// Preview returns at most the first n rows. Scoring always operates on a
// bounded preview so cost stays independent of total sheet size.
func (g Grid) Preview(n int) Grid {
	if n < 0 {
		n = 0
	}
	if n > len(g) {
		n = len(g)
	}
	return g[:n]
}

// RowScore pairs a row index with how header-like that row looks. Scores
// from different strategies are not comparable without re-normalization;
// each strategy defines its own confidence threshold.
type RowScore struct {
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// HeaderBlock is the contiguous inclusive row range that together forms the
// header. Start <= End always holds.
type HeaderBlock struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Height returns the number of physical rows in the block.
func (b HeaderBlock) Height() int {
	return b.End - b.Start + 1
}

// NonEmptyCells returns the trimmed non-empty cells of a row.
func NonEmptyCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, cell := range row {
		if v := strings.TrimSpace(cell); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsRowEmpty reports whether every cell of a row is blank.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// IsNumericCell reports whether a cell reads as a number once common
// formatting (thousands separators, surrounding space) is stripped. Cells
// come off the sheet as strings, so numeric-ness is inferred by shape.
func IsNumericCell(s string) bool {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

// NumericValue parses a cell the same way IsNumericCell classifies it.
func NumericValue(s string) (float64, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
