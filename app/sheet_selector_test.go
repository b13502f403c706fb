package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsense/domain/core"
	"sheetsense/domain/grid"
	"sheetsense/domain/header"
)

func newSelector(workers int) *SheetSelector {
	return NewSheetSelector(header.NewRuleScorer(nil, header.DefaultScorerConfig()), workers)
}

func TestSelectPicksBestSheet(t *testing.T) {
	source := &stubSource{
		order: []string{"封面", "清单", "说明"},
		sheets: map[string]grid.Grid{
			"封面": {{"某项目报价文件", "", ""}},
			"清单": costSheetGrid(),
			"说明": {{"使用说明", "版本", "日期"}},
		},
	}

	name, g, err := newSelector(2).Select(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, "清单", name)
	assert.Equal(t, costSheetGrid().RowCount(), g.RowCount())
}

func TestSelectNoSuitableSheet(t *testing.T) {
	source := &stubSource{
		order: []string{"封面"},
		sheets: map[string]grid.Grid{
			"封面": {{"某项目报价文件", "", ""}},
		},
	}

	_, _, err := newSelector(2).Select(context.Background(), source)
	require.Error(t, err)
	assert.True(t, core.IsNoSuitableSheet(err))
}

func TestSelectEmptyWorkbook(t *testing.T) {
	source := &stubSource{order: nil, sheets: nil}
	_, _, err := newSelector(2).Select(context.Background(), source)
	assert.True(t, core.IsNoSuitableSheet(err))
}

func TestSelectSkipsUnreadableSheet(t *testing.T) {
	source := &stubSource{
		order: []string{"损坏", "清单"},
		sheets: map[string]grid.Grid{
			// 损坏 is absent so reads fail.
			"清单": costSheetGrid(),
		},
	}

	name, _, err := newSelector(2).Select(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, "清单", name)
}

// TestSelectDeterministicTieBreak tests that identical sheets resolve to the
// first in workbook order regardless of worker count
func TestSelectDeterministicTieBreak(t *testing.T) {
	source := &stubSource{
		order: []string{"甲", "乙", "丙"},
		sheets: map[string]grid.Grid{
			"甲": costSheetGrid(),
			"乙": costSheetGrid(),
			"丙": costSheetGrid(),
		},
	}

	for _, workers := range []int{1, 2, 8} {
		name, _, err := newSelector(workers).Select(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, "甲", name, "workers=%d", workers)
	}
}
