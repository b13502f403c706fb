package semantic

import (
	"context"
	"log"
	"sync"

	"gonum.org/v1/gonum/floats"

	"sheetsense/domain/grid"
	"sheetsense/ports"
)

// GoldenHeaders is the vocabulary of known-good cost-sheet column labels.
// Row cells are scored by their best similarity against these.
var GoldenHeaders = []string{
	"序号",
	"功能区",
	"项目名称",
	"施工内容及主要做法",
	"计算规则",
	"供应方式或分包说明",
	"计量单位",
	"工程量",
	"不含税综合单价",
	"不含税合价",
	"主材单价",
	"损耗率",
	"主材单价(含损耗)",
	"人工费",
	"辅材费",
	"机械费",
	"管理费率、利润率",
	"备注",
}

// ScorerConfig tunes the semantic header scorer.
type ScorerConfig struct {
	// MaxRowsToScan bounds the preview scanned for candidates.
	MaxRowsToScan int
	// MinCells is the least non-empty cells a row needs to be worth an
	// embedding call.
	MinCells int
	// MinConfidence is the acceptance threshold on the final row score.
	MinConfidence float64
}

// DefaultScorerConfig returns the tuning the engine ships with.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		MaxRowsToScan: 20,
		MinCells:      3,
		MinConfidence: 0.3,
	}
}

// Scorer nominates header rows by embedding similarity against the golden
// vocabulary. It implements ports.HeaderScorer and is meant to run ahead of
// the rule scorer in a strategy chain: any embedding failure is reported as
// "not found" so the chain can fall through.
type Scorer struct {
	embedder ports.Embedder
	cfg      ScorerConfig

	goldenOnce sync.Once
	golden     [][]float64
	goldenErr  error
}

// NewScorer builds a semantic scorer. A nil embedder is legal and yields a
// scorer that always reports not found.
func NewScorer(embedder ports.Embedder, cfg ScorerConfig) *Scorer {
	return &Scorer{embedder: embedder, cfg: cfg}
}

// Name identifies the strategy in logs and metadata.
func (s *Scorer) Name() string {
	return "semantic"
}

// ScoreCandidates embeds the non-trivial preview rows and returns the one
// most similar to the golden vocabulary.
//
// A row's score is the mean of each cell's best cosine similarity against
// the golden labels, scaled by how much of the vocabulary the row covers. A
// short title row may contain one strong label but covers little, so it
// loses to a real header row that matches many.
func (s *Scorer) ScoreCandidates(ctx context.Context, g grid.Grid) (grid.RowScore, bool, error) {
	if s.embedder == nil {
		return grid.RowScore{}, false, nil
	}
	if err := s.ensureGolden(ctx); err != nil {
		log.Printf("[Semantic] Golden vocabulary embedding failed, falling through: %v", err)
		return grid.RowScore{}, false, nil
	}

	best := grid.RowScore{Row: -1}
	for r, row := range g.Preview(s.cfg.MaxRowsToScan) {
		cells := grid.NonEmptyCells(row)
		if len(cells) < s.cfg.MinCells {
			continue
		}

		vectors, err := s.embedder.Embed(ctx, cells)
		if err != nil {
			log.Printf("[Semantic] Row %d embedding failed, falling through: %v", r, err)
			return grid.RowScore{}, false, nil
		}

		score := s.rowScore(cells, vectors)
		if best.Row == -1 || score > best.Score {
			best = grid.RowScore{Row: r, Score: score}
		}
	}

	if best.Row == -1 || best.Score < s.cfg.MinConfidence {
		return grid.RowScore{}, false, nil
	}
	log.Printf("[Semantic] Header candidate row %d (confidence %.3f)", best.Row, best.Score)
	return best, true, nil
}

// rowScore is mean best-similarity per cell, scaled by vocabulary coverage.
func (s *Scorer) rowScore(cells []string, vectors [][]float64) float64 {
	total := 0.0
	for _, v := range vectors {
		bestSim := 0.0
		for _, gv := range s.golden {
			if sim := cosine(v, gv); sim > bestSim {
				bestSim = sim
			}
		}
		total += bestSim
	}
	mean := total / float64(len(vectors))
	coverage := float64(len(cells)) / float64(len(GoldenHeaders))
	if coverage > 1 {
		coverage = 1
	}
	return mean * coverage
}

// ensureGolden embeds the golden vocabulary once per scorer lifetime.
func (s *Scorer) ensureGolden(ctx context.Context) error {
	s.goldenOnce.Do(func() {
		s.golden, s.goldenErr = s.embedder.Embed(ctx, GoldenHeaders)
	})
	return s.goldenErr
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
