package excel

import (
	"bytes"
	"log"
	"strings"
	"time"

	"sheetsense/domain/core"
	"sheetsense/domain/grid"

	"github.com/xuri/excelize/v2"
)

// Workbook reads worksheets of one spreadsheet file into untyped grids. It
// implements ports.GridSource.
type Workbook struct {
	file   *excelize.File
	digest core.Digest
}

// OpenFile opens a workbook from a filesystem path.
func OpenFile(path string) (*Workbook, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.NewFileUnreadableError(err)
	}
	log.Printf("[Workbook] Opened %s in %.2fms", path, float64(time.Since(start).Nanoseconds())/1e6)
	return &Workbook{file: f}, nil
}

// OpenBytes opens a workbook from raw file content and records the content
// digest so downstream metadata can identify the exact input.
func OpenBytes(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.NewFileUnreadableError(err)
	}
	return &Workbook{file: f, digest: core.NewDigest(data)}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Digest returns the content digest when the workbook was opened from bytes,
// empty otherwise.
func (w *Workbook) Digest() core.Digest {
	return w.digest
}

// SheetNames lists worksheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ReadGrid loads one worksheet into a rectangular grid. Every cell is
// trimmed, short rows are padded to the sheet's widest row, and merged
// regions are expanded so each covered cell carries the merge value. Header
// detection depends on that expansion: a merged label physically lives only
// in its top-left cell.
func (w *Workbook) ReadGrid(sheet string) (grid.Grid, error) {
	start := time.Now()
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, core.NewSheetReadError(sheet, err)
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	g := make(grid.Grid, len(rows))
	for i := range g {
		g[i] = make([]string, maxCol)
		for j, cell := range rows[i] {
			if j < maxCol {
				g[i][j] = strings.TrimSpace(cell)
			}
		}
	}

	merges, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return nil, core.NewSheetReadError(sheet, err)
	}
	for _, merge := range merges {
		val := strings.TrimSpace(merge.GetCellValue())
		startCol, startRow, err := excelize.CellNameToCoordinates(merge.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(merge.GetEndAxis())
		if err != nil {
			continue
		}
		for r := startRow - 1; r <= endRow-1; r++ {
			for c := startCol - 1; c <= endCol-1; c++ {
				if r >= 0 && c >= 0 && r < len(g) && c < len(g[r]) {
					g[r][c] = val
				}
			}
		}
	}

	log.Printf("[Workbook] Sheet %q read in %.2fms (%d rows, %d cols, %d merges)",
		sheet, float64(time.Since(start).Nanoseconds())/1e6, len(g), maxCol, len(merges))
	return g, nil
}
