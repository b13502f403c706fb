package table

import (
	"strings"

	"sheetsense/domain/grid"
)

// HierarchyConfig names the columns the structurer keys on. Matching is by
// substring against the table's column names, so merged multi-level names
// like "项目名称 (含规格)" still resolve.
type HierarchyConfig struct {
	// AnchorMatch identifies the anchor column: present on data rows, empty
	// on section-summary rows.
	AnchorMatch string
	// GroupMatch identifies the grouping column whose values split into the
	// L1/L2 hierarchy.
	GroupMatch string
	// SerialMatch identifies the serial-number column used as a fallback
	// data-row test when no anchor column exists: rows whose serial parses
	// as a number are data rows.
	SerialMatch string
	// L1Suffix and L2Suffix name the derived columns.
	L1Suffix string
	L2Suffix string
}

// DefaultHierarchyConfig returns the cost-sheet column conventions.
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		AnchorMatch: "项目名称",
		GroupMatch:  "功能区",
		SerialMatch: "序号",
		L1Suffix:    "_L1",
		L2Suffix:    "_L2",
	}
}

// HierarchyResult reports what Structure did.
type HierarchyResult struct {
	Applied  bool
	L1Column string
	L2Column string
}

// Structure reconstructs the two-level category hierarchy from a table
// whose rows mix section-summary rows and data rows.
//
// A summary row carries no anchor value; its grouping value is a section
// label. That label becomes the L1 context for every following data row
// until the next summary row replaces it. The original grouping column is
// renamed to the L2 column and holds the leaf category of each data row.
// Summary rows only exist to seed L1, so they are dropped from the result
// and the surviving rows keep a dense 0-based order.
//
// When neither anchor nor serial column can be identified, the table is
// returned unchanged. That is a designed degrade, not a failure. With an
// anchor but no grouping column, summary rows are still dropped - they are
// section labels, not data - but no L1/L2 columns are derived.
func Structure(t *StructuredTable, cfg HierarchyConfig) (*StructuredTable, HierarchyResult) {
	anchorIdx := findColumn(t.Columns, cfg.AnchorMatch)
	serialIdx := findColumn(t.Columns, cfg.SerialMatch)
	if anchorIdx == -1 && serialIdx == -1 {
		return t, HierarchyResult{}
	}

	isDataRow := func(row []string) bool {
		if anchorIdx != -1 {
			return anchorIdx < len(row) && strings.TrimSpace(row[anchorIdx]) != ""
		}
		return serialIdx < len(row) && grid.IsNumericCell(row[serialIdx])
	}

	groupIdx := findColumn(t.Columns, cfg.GroupMatch)
	if groupIdx == -1 {
		rows := make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			if isDataRow(row) {
				rows = append(rows, row)
			}
		}
		return &StructuredTable{Columns: t.Columns, Rows: rows}, HierarchyResult{}
	}

	groupName := t.Columns[groupIdx]
	l1Name := groupName + cfg.L1Suffix
	l2Name := groupName + cfg.L2Suffix

	columns := make([]string, len(t.Columns), len(t.Columns)+1)
	copy(columns, t.Columns)
	columns[groupIdx] = l2Name
	columns = append(columns, l1Name)

	rows := make([][]string, 0, len(t.Rows))
	currentL1 := ""
	for _, row := range t.Rows {
		groupVal := ""
		if groupIdx < len(row) {
			groupVal = strings.TrimSpace(row[groupIdx])
		}

		if !isDataRow(row) {
			if groupVal != "" {
				currentL1 = groupVal
			}
			continue
		}

		out := make([]string, len(t.Columns), len(t.Columns)+1)
		copy(out, row)
		out = append(out, currentL1)
		rows = append(rows, out)
	}

	structured := &StructuredTable{Columns: columns, Rows: rows}
	return structured, HierarchyResult{Applied: true, L1Column: l1Name, L2Column: l2Name}
}

// findColumn returns the first column whose name contains the match term,
// or -1. An empty term never matches.
func findColumn(columns []string, match string) int {
	if match == "" {
		return -1
	}
	for i, col := range columns {
		if strings.Contains(col, match) {
			return i
		}
	}
	return -1
}
