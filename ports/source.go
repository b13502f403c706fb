package ports

import "sheetsense/domain/grid"

// GridSource provides read access to the worksheets of one spreadsheet
// resource. The core never assumes a filesystem path behind it.
type GridSource interface {
	// SheetNames lists worksheets in workbook order.
	SheetNames() []string

	// ReadGrid loads one worksheet into an untyped grid with merged cells
	// expanded. No header interpretation happens here.
	ReadGrid(sheet string) (grid.Grid, error)
}
