package header

import (
	"context"

	"sheetsense/domain/grid"
)

// CellShape describes what a grouping-row pattern expects of one cell.
type CellShape int

const (
	CellAny CellShape = iota
	CellEmpty
	CellFilled
)

// LocatorConfig tunes the header block locator.
type LocatorConfig struct {
	// MaxHeaderRows caps the physical height of a header block.
	MaxHeaderRows int
	// GroupRowPattern is the leading-cell shape that marks a data-grouping
	// row: distinct from both header rows and normal data rows, it ends the
	// header block immediately. The default (empty, filled, empty over
	// columns 0-2) is a heuristic tuned to observed cost-sheet layouts and
	// is deliberately configurable rather than hard-wired.
	GroupRowPattern []CellShape
}

// DefaultLocatorConfig returns the locator tuning the engine ships with.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		MaxHeaderRows:   3,
		GroupRowPattern: []CellShape{CellEmpty, CellFilled, CellEmpty},
	}
}

// Locator finds the variable-height header block of a grid. Start-row
// discovery is delegated to a scorer; the locator owns the downward
// extension that captures sub-label and unit rows.
type Locator struct {
	scorer *RuleScorer
	cfg    LocatorConfig
}

// NewLocator creates a locator around the given rule scorer.
func NewLocator(scorer *RuleScorer, cfg LocatorConfig) *Locator {
	return &Locator{scorer: scorer, cfg: cfg}
}

// Locate finds the best header start row with the rule scorer and extends it
// into a block. Returns false when no row clears the confidence threshold.
func (l *Locator) Locate(g grid.Grid) (grid.HeaderBlock, bool) {
	best, ok, _ := l.scorer.ScoreCandidates(context.Background(), g)
	if !ok {
		return grid.HeaderBlock{}, false
	}
	return l.Extend(g, best.Row), true
}

// Extend grows a header block downward from a fixed start row. Each
// subsequent row joins the block while it still reads as header
// continuation (sub-labels, units); the first grouping row or data-like row
// ends the block, as does the height cap.
func (l *Locator) Extend(g grid.Grid, start int) grid.HeaderBlock {
	block := grid.HeaderBlock{Start: start, End: start}
	for r := start + 1; r < g.RowCount() && r < start+l.cfg.MaxHeaderRows; r++ {
		row := g.Row(r)
		if l.IsGroupRow(row) || looksLikeData(row) {
			break
		}
		if grid.IsRowEmpty(row) {
			break
		}
		block.End = r
	}
	return block
}

// IsGroupRow reports whether a row matches the configured grouping-row
// shape.
func (l *Locator) IsGroupRow(row []string) bool {
	if len(l.cfg.GroupRowPattern) == 0 {
		return false
	}
	for i, shape := range l.cfg.GroupRowPattern {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		empty := grid.IsRowEmpty([]string{cell})
		switch shape {
		case CellEmpty:
			if !empty {
				return false
			}
		case CellFilled:
			if empty {
				return false
			}
		}
	}
	return true
}

// looksLikeData reports whether a row reads as a real data row rather than
// header continuation: its first non-empty cell is numeric (a serial
// number) or at least half its non-empty cells are numeric.
func looksLikeData(row []string) bool {
	cells := grid.NonEmptyCells(row)
	if len(cells) == 0 {
		return false
	}
	if grid.IsNumericCell(cells[0]) {
		return true
	}
	numeric := 0
	for _, cell := range cells {
		if grid.IsNumericCell(cell) {
			numeric++
		}
	}
	return numeric*2 >= len(cells)
}
