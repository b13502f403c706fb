package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"sheetsense/adapters/excel"
	"sheetsense/adapters/semantic"
	"sheetsense/app"
	"sheetsense/domain/header"
	"sheetsense/domain/table"
	"sheetsense/internal/config"
	"sheetsense/ports"

	"github.com/joho/godotenv"
)

type output struct {
	Table    *table.StructuredTable `json:"table,omitempty"`
	Metadata table.Metadata         `json:"metadata"`
}

func main() {
	file := flag.String("file", "", "spreadsheet file to parse")
	sheet := flag.String("sheet", "", "worksheet name (default: auto-select)")
	sheetIndex := flag.Int("sheet-index", -1, "worksheet index, 0-based (default: auto-select)")
	listSheets := flag.Bool("list-sheets", false, "print worksheet names and exit")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: sheetsense -file <path> [-sheet name | -sheet-index n]")
		os.Exit(2)
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	wb, err := excel.OpenFile(*file)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer wb.Close()

	if *listSheets {
		for _, name := range wb.SheetNames() {
			fmt.Println(name)
		}
		return
	}

	parser := buildParser(cfg)
	opts := app.DefaultParseOptions()
	opts.Sheet = *sheet
	opts.SheetIndex = *sheetIndex

	tbl, meta, err := parser.Parse(context.Background(), wb, opts)
	out, jsonErr := json.MarshalIndent(output{Table: tbl, Metadata: meta}, "", "  ")
	if jsonErr != nil {
		log.Fatalf("Failed to encode result: %v", jsonErr)
	}
	fmt.Println(string(out))
	if err != nil {
		os.Exit(1)
	}
}

// buildParser wires the scorer chain from configuration: semantic first when
// an API key is present, rule-based always last.
func buildParser(cfg *config.Config) *app.ParserService {
	scorerCfg := header.DefaultScorerConfig()
	scorerCfg.MaxRowsToScan = cfg.Detection.MaxRowsToScan
	scorerCfg.MinScore = cfg.Detection.RuleMinScore
	rule := header.NewRuleScorer(nil, scorerCfg)

	chain := make([]ports.HeaderScorer, 0, 2)
	if cfg.AI.SemanticEnabled {
		semCfg := semantic.DefaultScorerConfig()
		semCfg.MaxRowsToScan = cfg.Detection.MaxRowsToScan
		semCfg.MinConfidence = cfg.Detection.SemanticMinScore
		chain = append(chain, semantic.NewScorer(semantic.NewOpenAIEmbedder(cfg.AI.OpenAIKey), semCfg))
	}
	chain = append(chain, rule)

	locatorCfg := header.DefaultLocatorConfig()
	locatorCfg.MaxHeaderRows = cfg.Detection.MaxHeaderRows

	hierarchy := table.DefaultHierarchyConfig()
	hierarchy.AnchorMatch = cfg.Hierarchy.AnchorMatch
	hierarchy.GroupMatch = cfg.Hierarchy.GroupMatch
	hierarchy.SerialMatch = cfg.Hierarchy.SerialMatch

	return app.NewParserService(chain, rule, locatorCfg, hierarchy, cfg.Workers.SheetScorers)
}
