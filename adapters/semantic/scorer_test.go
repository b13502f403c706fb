package semantic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsense/domain/grid"
)

// headerAlignedEmbedder maps golden labels and a few row cells onto axis
// vectors so similarity is exact and easy to reason about.
func headerAlignedEmbedder() *MockEmbedder {
	vectors := make(map[string][]float64, len(GoldenHeaders)+4)
	dim := len(GoldenHeaders)
	for i, label := range GoldenHeaders {
		v := make([]float64, dim)
		v[i] = 1
		vectors[label] = v
	}
	// Data-row cells land on no golden axis.
	return &MockEmbedder{Vectors: vectors, Dim: dim}
}

func TestSemanticScorerPicksGoldenRow(t *testing.T) {
	g := grid.Grid{
		{"某项目清单", "2024", "说明"},
		{"序号", "功能区", "项目名称", "计量单位", "工程量", "不含税合价", "备注"},
		{"1", "地面", "找平", "㎡", "120", "4260", ""},
	}

	s := NewScorer(headerAlignedEmbedder(), DefaultScorerConfig())
	best, ok, err := s.ScoreCandidates(context.Background(), g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, best.Row)
	assert.GreaterOrEqual(t, best.Score, DefaultScorerConfig().MinConfidence)
}

func TestSemanticScorerSkipsSparseRows(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", ""},
		{"1", "找平", ""},
	}

	embedder := headerAlignedEmbedder()
	s := NewScorer(embedder, DefaultScorerConfig())
	_, ok, err := s.ScoreCandidates(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok, "rows below the cell minimum should never be embedded")
}

func TestSemanticScorerFallsThroughOnAPIError(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", "工程量"},
	}

	s := NewScorer(&MockEmbedder{Err: errors.New("rate limited")}, DefaultScorerConfig())
	_, ok, err := s.ScoreCandidates(context.Background(), g)
	require.NoError(t, err, "embedding failures must read as not-found, not hard errors")
	assert.False(t, ok)
}

func TestSemanticScorerNilEmbedder(t *testing.T) {
	s := NewScorer(nil, DefaultScorerConfig())
	_, ok, err := s.ScoreCandidates(context.Background(), grid.Grid{{"序号", "项目名称", "工程量"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSemanticScorerRejectsLowConfidence(t *testing.T) {
	g := grid.Grid{
		{"甲方代表", "乙方代表", "丙方代表"},
	}

	s := NewScorer(headerAlignedEmbedder(), DefaultScorerConfig())
	_, ok, err := s.ScoreCandidates(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok, "unknown labels score zero similarity and must miss the threshold")
}
