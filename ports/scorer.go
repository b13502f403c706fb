package ports

import (
	"context"

	"sheetsense/domain/grid"
)

// HeaderScorer is one header-discovery strategy: it scans a bounded preview
// of a grid and nominates the most header-like row together with its
// confidence. The boolean is false when no row clears the strategy's own
// threshold - a designed "not found" the orchestrator answers by trying the
// next strategy in its chain, never an error. Errors are reserved for hard
// failures and also advance the chain.
type HeaderScorer interface {
	// Name identifies the strategy in logs and metadata.
	Name() string

	// ScoreCandidates returns the best candidate header row of the grid.
	ScoreCandidates(ctx context.Context, g grid.Grid) (grid.RowScore, bool, error)
}
