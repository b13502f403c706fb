package header

import (
	"testing"

	"sheetsense/domain/grid"
)

func newLocator() *Locator {
	return NewLocator(NewRuleScorer(nil, DefaultScorerConfig()), DefaultLocatorConfig())
}

// TestTwoRowHeaderMerges tests that a sub-label row joins the block but the
// first data row does not
func TestTwoRowHeaderMerges(t *testing.T) {
	g := grid.Grid{
		{"某项目装饰工程清单", "", "", ""},
		{"序号", "项目名称", "单价", "合价"},
		{"", "", "(元)", "(元)"},
		{"1", "地面找平", "35.5", "4260"},
	}

	block, ok := newLocator().Locate(g)
	if !ok {
		t.Fatal("Expected header block to be found")
	}
	if block.Start != 1 || block.End != 2 {
		t.Errorf("Expected block [1,2], got [%d,%d]", block.Start, block.End)
	}
	if block.Height() != 2 {
		t.Errorf("Expected height 2, got %d", block.Height())
	}
}

// TestGroupingRowEndsBlock tests that the configured grouping-row shape
// stops extension even when the row is not data-like
func TestGroupingRowEndsBlock(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", "单价", "合价"},
		{"", "一层地面工程", "", ""},
		{"1", "地面找平", "35.5", "4260"},
	}

	block, ok := newLocator().Locate(g)
	if !ok {
		t.Fatal("Expected header block to be found")
	}
	if block.Start != 0 || block.End != 0 {
		t.Errorf("Expected single-row block [0,0], got [%d,%d]", block.Start, block.End)
	}
}

// TestHeightCap tests the three-row ceiling on header blocks
func TestHeightCap(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", "单价", "合价"},
		{"", "(含规格)", "(元)", "(元)"},
		{"", "第二行说明", "第二行说明", "第二行说明"},
		{"", "第三行说明", "第三行说明", "第三行说明"},
		{"", "第四行说明", "第四行说明", "第四行说明"},
	}

	block := newLocator().Extend(g, 0)
	if block.Height() != DefaultLocatorConfig().MaxHeaderRows {
		t.Errorf("Expected height capped at %d, got %d", DefaultLocatorConfig().MaxHeaderRows, block.Height())
	}
}

// TestDataRowEndsBlock tests that a serial-numbered row never joins the
// header
func TestDataRowEndsBlock(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", "单价", "合价"},
		{"1", "地面找平", "35.5", "4260"},
	}

	block := newLocator().Extend(g, 0)
	if block.Height() != 1 {
		t.Errorf("Expected single-row block, got height %d", block.Height())
	}
}

// TestEmptyRowEndsBlock tests that extension stops at a blank separator
func TestEmptyRowEndsBlock(t *testing.T) {
	g := grid.Grid{
		{"序号", "项目名称", "单价", "合价"},
		{"", "", "", ""},
		{"", "(含规格)", "", ""},
	}

	block := newLocator().Extend(g, 0)
	if block.End != 0 {
		t.Errorf("Expected block to stop before blank row, got end %d", block.End)
	}
}

// TestLocateNotFound tests the designed not-found on an unscoreable grid
func TestLocateNotFound(t *testing.T) {
	g := grid.Grid{
		{"1", "2"},
		{"3", "4"},
	}

	if _, ok := newLocator().Locate(g); ok {
		t.Error("Expected no header block for an all-numeric grid")
	}
}

// TestGroupRowPatternDisabled tests that an empty pattern never matches
func TestGroupRowPatternDisabled(t *testing.T) {
	cfg := DefaultLocatorConfig()
	cfg.GroupRowPattern = nil
	l := NewLocator(NewRuleScorer(nil, DefaultScorerConfig()), cfg)

	if l.IsGroupRow([]string{"", "一层地面工程", ""}) {
		t.Error("Expected empty pattern to match nothing")
	}
}
