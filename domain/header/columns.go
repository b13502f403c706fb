package header

import (
	"fmt"
	"strings"
	"unicode"

	"sheetsense/domain/grid"
	"sheetsense/domain/table"
)

// BuildColumns merges the rows of a header block into one ColumnSpec per
// grid column.
//
// The first block row supplies base names. In a multi-row block a merged
// header cell may only materialize in its first column, so a non-empty base
// name forward-fills horizontally until the next one appears - columns under
// a wide label inherit it. A single-row block gets no such fill: an empty
// header cell there means an unnamed column, not a continuation. Rows below
// the first contribute sub-labels (units, secondary captions) which join the
// base name.
//
// Within a column's merged label set, a level containing "=" is pulled out
// as the column formula and a level that is a single ASCII letter is pulled
// out as the column code; neither appears in the display name. Name
// collisions across the table get numeric suffixes in order of first
// occurrence.
func BuildColumns(g grid.Grid, block grid.HeaderBlock) []table.ColumnSpec {
	width := g.Width()
	specs := make([]table.ColumnSpec, 0, width)

	fill := block.Height() > 1
	lastBase := ""
	for c := 0; c < width; c++ {
		if base := cleanLabel(g.Cell(block.Start, c)); base != "" {
			lastBase = base
		} else if !fill {
			lastBase = ""
		}

		levels := make([]string, 0, block.Height())
		if lastBase != "" {
			levels = append(levels, lastBase)
		}
		for r := block.Start + 1; r <= block.End; r++ {
			if sub := cleanLabel(g.Cell(r, c)); sub != "" {
				levels = append(levels, sub)
			}
		}

		specs = append(specs, extractSpec(levels))
	}

	dedupeNames(specs)
	return specs
}

// extractSpec splits a column's merged label levels into display name,
// formula, and code.
func extractSpec(levels []string) table.ColumnSpec {
	spec := table.ColumnSpec{}
	names := make([]string, 0, len(levels))

	for _, level := range levels {
		switch {
		case strings.Contains(level, "="):
			if spec.Formula == "" {
				spec.Formula = level
				continue
			}
		case isSingleLetter(level):
			if spec.Code == "" {
				spec.Code = level
				continue
			}
		}
		names = append(names, level)
	}

	spec.Name = strings.Join(names, " ")
	return spec
}

// dedupeNames suffixes repeated display names with _1, _2, ... in order of
// first occurrence. The first occurrence keeps the bare name. Empty names
// stay empty so columns with no label can be dropped downstream.
func dedupeNames(specs []table.ColumnSpec) {
	counts := make(map[string]int, len(specs))
	for i := range specs {
		name := specs[i].Name
		if name == "" {
			continue
		}
		if n, ok := counts[name]; ok {
			counts[name] = n + 1
			specs[i].Name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			counts[name] = 0
		}
	}
}

// cleanLabel strips surrounding space and embedded line breaks from a
// header cell.
func cleanLabel(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(s)
}

func isSingleLetter(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && runes[0] <= unicode.MaxASCII && unicode.IsLetter(runes[0])
}
