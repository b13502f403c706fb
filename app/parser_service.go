package app

import (
	"context"
	"log"

	"sheetsense/domain/core"
	"sheetsense/domain/grid"
	"sheetsense/domain/header"
	"sheetsense/domain/table"
	"sheetsense/internal/profiling"
	"sheetsense/ports"
)

// ParseOptions selects which worksheet to parse. With neither field set the
// sheet selector scores every worksheet and picks the best.
type ParseOptions struct {
	// Sheet names a worksheet directly.
	Sheet string
	// SheetIndex picks a worksheet by 0-based workbook position when Sheet
	// is empty. Negative means unset.
	SheetIndex int
}

// DefaultParseOptions returns options that delegate sheet choice to the
// selector.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{SheetIndex: -1}
}

// ParserService orchestrates the full parse: sheet choice, header
// discovery through the scorer chain, column building, body extraction,
// hierarchy reconstruction and column profiling.
//
// The scorer chain runs in order; the first strategy that clears its own
// threshold wins. Strategy errors and not-founds both advance the chain, so
// an unreachable embedding backend quietly degrades to the rule scorer.
type ParserService struct {
	chain     []ports.HeaderScorer
	locator   *header.Locator
	selector  *SheetSelector
	hierarchy table.HierarchyConfig
}

// NewParserService creates the orchestrator. The rule scorer passed here
// drives both header-block extension and sheet selection; the chain decides
// the header start row and normally ends with that same rule scorer.
func NewParserService(chain []ports.HeaderScorer, rule *header.RuleScorer, locatorCfg header.LocatorConfig, hierarchy table.HierarchyConfig, workers int) *ParserService {
	return &ParserService{
		chain:     chain,
		locator:   header.NewLocator(rule, locatorCfg),
		selector:  NewSheetSelector(rule, workers),
		hierarchy: hierarchy,
	}
}

// Parse runs the pipeline against one spreadsheet source.
//
// Metadata is always returned, even on failure, with Error set instead of a
// table. A structurally valid parse that yields zero data rows is not an
// error: it returns an empty table and a warning.
func (p *ParserService) Parse(ctx context.Context, source ports.GridSource, opts ParseOptions) (*table.StructuredTable, table.Metadata, error) {
	meta := table.Metadata{}
	if d, ok := source.(interface{ Digest() core.Digest }); ok {
		meta.SourceDigest = d.Digest().String()
	}

	sheet, g, err := p.resolveSheet(ctx, source, opts)
	if err != nil {
		meta.Error = err.Error()
		return nil, meta, err
	}
	meta.SourceSheet = sheet

	t, err := p.parseGrid(ctx, g, &meta)
	if err != nil {
		meta.Error = err.Error()
		return nil, meta, err
	}
	return t, meta, nil
}

// resolveSheet turns options into a loaded grid.
func (p *ParserService) resolveSheet(ctx context.Context, source ports.GridSource, opts ParseOptions) (string, grid.Grid, error) {
	if opts.Sheet != "" {
		g, err := source.ReadGrid(opts.Sheet)
		return opts.Sheet, g, err
	}
	if opts.SheetIndex >= 0 {
		names := source.SheetNames()
		if opts.SheetIndex >= len(names) {
			return "", nil, core.ErrNoSuitableSheet
		}
		name := names[opts.SheetIndex]
		g, err := source.ReadGrid(name)
		return name, g, err
	}
	return p.selector.Select(ctx, source)
}

// parseGrid runs header discovery and structuring on one loaded grid,
// filling meta as it goes.
func (p *ParserService) parseGrid(ctx context.Context, g grid.Grid, meta *table.Metadata) (*table.StructuredTable, error) {
	start, strategy, found := p.findHeaderStart(ctx, g)
	if !found {
		return nil, core.ErrHeaderNotFound
	}
	meta.HeaderStrategy = strategy

	block := p.locator.Extend(g, start)
	meta.HeaderBlock = &block
	log.Printf("[Parser] Header block rows %d-%d via %s", block.Start, block.End, strategy)

	specs := header.BuildColumns(g, block)
	body := extractBody(g, block)
	specs, body = dropEmptyColumns(specs, body)

	t := &table.StructuredTable{Rows: body}
	t.Columns = make([]string, len(specs))
	for i, spec := range specs {
		t.Columns[i] = spec.Name
	}

	t, hier := table.Structure(t, p.hierarchy)
	if hier.Applied {
		meta.L1Column = hier.L1Column
		meta.L2Column = hier.L2Column
	}

	meta.Columns = t.Columns
	meta.Formulas, meta.Codes = specAnnotations(specs)
	meta.ColumnProfiles = profiling.ProfileColumns(t)

	if t.IsEmpty() {
		meta.Warning = "header found but no data rows"
		log.Printf("[Parser] %s", meta.Warning)
	}
	return t, nil
}

// findHeaderStart walks the scorer chain until one strategy commits to a
// row.
func (p *ParserService) findHeaderStart(ctx context.Context, g grid.Grid) (int, string, bool) {
	for _, scorer := range p.chain {
		best, ok, err := scorer.ScoreCandidates(ctx, g)
		if err != nil {
			log.Printf("[Parser] Strategy %q failed, trying next: %v", scorer.Name(), err)
			continue
		}
		if ok {
			return best.Row, scorer.Name(), true
		}
		log.Printf("[Parser] Strategy %q found no header, trying next", scorer.Name())
	}
	return 0, "", false
}

// extractBody collects the rows below the header block, padded to the grid
// width, with fully empty rows dropped.
func extractBody(g grid.Grid, block grid.HeaderBlock) [][]string {
	width := g.Width()
	body := make([][]string, 0, g.RowCount())
	for r := block.End + 1; r < g.RowCount(); r++ {
		row := g.Row(r)
		if grid.IsRowEmpty(row) {
			continue
		}
		out := make([]string, width)
		for c := 0; c < width && c < len(row); c++ {
			out[c] = row[c]
		}
		body = append(body, out)
	}
	return body
}

// dropEmptyColumns removes columns that carry neither a name nor any data.
// Merged-cell padding routinely leaves such phantom columns at the right
// edge of cost sheets.
func dropEmptyColumns(specs []table.ColumnSpec, body [][]string) ([]table.ColumnSpec, [][]string) {
	keep := make([]int, 0, len(specs))
	for c, spec := range specs {
		kept := spec.Name != ""
		for r := 0; !kept && r < len(body); r++ {
			if c < len(body[r]) && body[r][c] != "" {
				kept = true
			}
		}
		if kept {
			keep = append(keep, c)
		}
	}
	if len(keep) == len(specs) {
		return specs, body
	}

	outSpecs := make([]table.ColumnSpec, len(keep))
	for i, c := range keep {
		outSpecs[i] = specs[c]
	}
	outBody := make([][]string, len(body))
	for r, row := range body {
		out := make([]string, len(keep))
		for i, c := range keep {
			if c < len(row) {
				out[i] = row[c]
			}
		}
		outBody[r] = out
	}
	return outSpecs, outBody
}

// specAnnotations pulls the formula and code maps out of the column specs.
func specAnnotations(specs []table.ColumnSpec) (map[string]string, map[string]string) {
	var formulas, codes map[string]string
	for _, spec := range specs {
		if spec.Formula != "" {
			if formulas == nil {
				formulas = make(map[string]string)
			}
			formulas[spec.Name] = spec.Formula
		}
		if spec.Code != "" {
			if codes == nil {
				codes = make(map[string]string)
			}
			codes[spec.Name] = spec.Code
		}
	}
	return formulas, codes
}
