package header

import (
	"context"
	"strings"

	"sheetsense/domain/grid"
)

// ScorerConfig tunes the rule-based row scorer.
type ScorerConfig struct {
	// MaxRowsToScan bounds the preview window a candidate search covers.
	MaxRowsToScan int
	// MinScore is the confidence threshold below which the best candidate is
	// reported as not found.
	MinScore float64
	// LongTextLen is the cell length beyond which a cell reads as free text
	// rather than a label.
	LongTextLen int
	// LongTextPenalty is the score assigned to sparse rows dominated by free
	// text. Strongly negative so such rows never win.
	LongTextPenalty float64
	// FillBonus scales the reward for the fraction of cells that are
	// non-empty.
	FillBonus float64
	// StringBonus scales the reward for the fraction of non-empty cells that
	// are string-typed rather than numeric.
	StringBonus float64
	// UniqueBonus rewards rows whose non-empty cells are mutually distinct;
	// headers rarely repeat a label.
	UniqueBonus float64
}

// DefaultScorerConfig returns the tuning the engine ships with. MinScore is
// an empirical threshold calibrated against real cost sheets.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		MaxRowsToScan:   20,
		MinScore:        2.0,
		LongTextLen:     50,
		LongTextPenalty: -10,
		FillBonus:       1.0,
		StringBonus:     1.0,
		UniqueBonus:     0.5,
	}
}

// RuleScorer scores rows by how header-like they look using keyword density
// and cell-shape heuristics. It is a pure function of its inputs: no I/O,
// no state between calls.
type RuleScorer struct {
	vocab Vocabulary
	cfg   ScorerConfig
}

// NewRuleScorer creates a scorer over the given vocabulary. A nil vocabulary
// falls back to the default cost-sheet terms.
func NewRuleScorer(vocab Vocabulary, cfg ScorerConfig) *RuleScorer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &RuleScorer{vocab: vocab, cfg: cfg}
}

// Name identifies the strategy in logs and metadata.
func (s *RuleScorer) Name() string {
	return "rule-based"
}

// ScoreRow computes the header-likeness score of a single row.
//
// Rows with at most one non-empty cell score 0. Sparse rows containing long
// free text score strongly negative - a lone paragraph cell reads like a
// description, not a header. Otherwise keyword weights accumulate per cell
// and the fill/string/uniqueness bonuses apply, normalized by the non-empty
// cell count so short dense rows compete fairly with wide ones.
func (s *RuleScorer) ScoreRow(row []string) float64 {
	cells := grid.NonEmptyCells(row)
	if len(cells) <= 1 {
		return 0
	}

	if len(cells) < 3 {
		for _, cell := range cells {
			if len([]rune(cell)) > s.cfg.LongTextLen {
				return s.cfg.LongTextPenalty
			}
		}
	}

	score := 0.0
	stringTyped := 0
	seen := make(map[string]struct{}, len(cells))
	distinct := true

	for _, cell := range cells {
		lowered := strings.ToLower(cell)
		for keyword, weight := range s.vocab {
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				score += weight
			}
		}
		if !grid.IsNumericCell(cell) {
			stringTyped++
		}
		if _, dup := seen[cell]; dup {
			distinct = false
		}
		seen[cell] = struct{}{}
	}

	total := len(row)
	if total > 0 {
		score += s.cfg.FillBonus * float64(len(cells)) / float64(total)
	}
	score += s.cfg.StringBonus * float64(stringTyped) / float64(len(cells))
	if distinct {
		score += s.cfg.UniqueBonus
	}

	return score / float64(len(cells))
}

// ScoreCandidates scans the bounded preview of a grid and returns the best
// scoring row. The second return value is false when the best score is below
// the confidence threshold - a designed "not found", never an error.
func (s *RuleScorer) ScoreCandidates(_ context.Context, g grid.Grid) (grid.RowScore, bool, error) {
	best := grid.RowScore{Row: -1}
	for i, row := range g.Preview(s.cfg.MaxRowsToScan) {
		score := s.ScoreRow(row)
		if best.Row == -1 || score > best.Score {
			best = grid.RowScore{Row: i, Score: score}
		}
	}
	if best.Row == -1 || best.Score < s.cfg.MinScore {
		return grid.RowScore{}, false, nil
	}
	return best, true, nil
}
