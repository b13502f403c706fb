package app

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"sheetsense/domain/core"
	"sheetsense/domain/grid"
	"sheetsense/domain/header"
	"sheetsense/ports"
)

// SheetSelector picks the worksheet most likely to hold the target table
// when the caller names none. Every sheet's preview is scored with the rule
// scorer and the best sheet wins; ties break toward workbook order.
type SheetSelector struct {
	scorer  *header.RuleScorer
	workers int64
}

// NewSheetSelector creates a selector. workers bounds concurrent scoring.
func NewSheetSelector(scorer *header.RuleScorer, workers int) *SheetSelector {
	if workers <= 0 {
		workers = 1
	}
	return &SheetSelector{scorer: scorer, workers: int64(workers)}
}

type sheetCandidate struct {
	name  string
	score float64
	found bool
}

// Select loads every worksheet and returns the name and grid of the one
// whose best candidate row scores highest. Sheets that fail to read are
// skipped with a log line rather than aborting selection; the error is only
// ErrNoSuitableSheet when no sheet yields a header-like row at all.
func (s *SheetSelector) Select(ctx context.Context, source ports.GridSource) (string, grid.Grid, error) {
	names := source.SheetNames()
	if len(names) == 0 {
		return "", nil, core.ErrNoSuitableSheet
	}

	grids := make([]grid.Grid, len(names))
	for i, name := range names {
		g, err := source.ReadGrid(name)
		if err != nil {
			log.Printf("[SheetSelector] Skipping unreadable sheet %q: %v", name, err)
			continue
		}
		grids[i] = g
	}

	candidates := make([]sheetCandidate, len(names))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i := range names {
		if grids[i] == nil {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			return "", nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			best, ok, err := s.scorer.ScoreCandidates(ctx, grids[i])
			if err != nil {
				log.Printf("[SheetSelector] Scoring sheet %q failed: %v", names[i], err)
				return
			}
			candidates[i] = sheetCandidate{name: names[i], score: best.Score, found: ok}
		}(i)
	}
	wg.Wait()

	// Strictly-greater comparison in workbook order keeps ties deterministic.
	winner := -1
	for i, c := range candidates {
		if !c.found {
			continue
		}
		if winner == -1 || c.score > candidates[winner].score {
			winner = i
		}
	}
	if winner == -1 {
		return "", nil, core.ErrNoSuitableSheet
	}

	log.Printf("[SheetSelector] Selected sheet %q (score %.2f of %d sheets)",
		names[winner], candidates[winner].score, len(names))
	return names[winner], grids[winner], nil
}
