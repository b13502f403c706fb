package table

import "testing"

func costTable() *StructuredTable {
	return &StructuredTable{
		Columns: []string{"序号", "功能区", "项目名称", "合价"},
		Rows: [][]string{
			{"", "地面", "", "12000"},
			{"1", "找平层", "水泥砂浆找平", "4260"},
			{"2", "面层", "地砖铺贴", "7740"},
			{"", "天花", "", "9000"},
			{"3", "吊顶", "石膏板吊顶", "9000"},
		},
	}
}

// TestHierarchyPropagatesL1 tests that each data row inherits the label of
// the nearest summary row above it
func TestHierarchyPropagatesL1(t *testing.T) {
	out, res := Structure(costTable(), DefaultHierarchyConfig())
	if !res.Applied {
		t.Fatal("Expected hierarchy to apply")
	}
	if res.L1Column != "功能区_L1" || res.L2Column != "功能区_L2" {
		t.Errorf("Unexpected derived column names: %q / %q", res.L1Column, res.L2Column)
	}

	if len(out.Rows) != 3 {
		t.Fatalf("Expected summary rows dropped, got %d rows", len(out.Rows))
	}

	l1 := out.ColumnIndex("功能区_L1")
	l2 := out.ColumnIndex("功能区_L2")
	if l1 == -1 || l2 == -1 {
		t.Fatalf("Derived columns missing from %v", out.Columns)
	}

	wantL1 := []string{"地面", "地面", "天花"}
	wantL2 := []string{"找平层", "面层", "吊顶"}
	for i := range out.Rows {
		if out.Rows[i][l1] != wantL1[i] {
			t.Errorf("Row %d L1: expected %q, got %q", i, wantL1[i], out.Rows[i][l1])
		}
		if out.Rows[i][l2] != wantL2[i] {
			t.Errorf("Row %d L2: expected %q, got %q", i, wantL2[i], out.Rows[i][l2])
		}
	}
}

// TestHierarchyRenamesGroupColumn tests that the grouping column survives
// only under its L2 name
func TestHierarchyRenamesGroupColumn(t *testing.T) {
	out, _ := Structure(costTable(), DefaultHierarchyConfig())
	if out.ColumnIndex("功能区") != -1 {
		t.Error("Expected original grouping column renamed away")
	}
	if got := len(out.Columns); got != 5 {
		t.Errorf("Expected 5 columns after L1 append, got %d", got)
	}
	if out.Columns[len(out.Columns)-1] != "功能区_L1" {
		t.Errorf("Expected L1 column appended last, got %q", out.Columns[len(out.Columns)-1])
	}
}

// TestHierarchySerialFallback tests data-row detection without an anchor
// column
func TestHierarchySerialFallback(t *testing.T) {
	in := &StructuredTable{
		Columns: []string{"序号", "功能区", "合价"},
		Rows: [][]string{
			{"", "地面", "12000"},
			{"1", "找平层", "4260"},
			{"小计", "汇总", "4260"},
			{"2", "面层", "7740"},
		},
	}

	out, res := Structure(in, DefaultHierarchyConfig())
	if !res.Applied {
		t.Fatal("Expected hierarchy to apply via serial fallback")
	}
	if len(out.Rows) != 2 {
		t.Fatalf("Expected only numeric-serial rows kept, got %d", len(out.Rows))
	}

	l1 := out.ColumnIndex("功能区_L1")
	if out.Rows[0][l1] != "地面" || out.Rows[1][l1] != "汇总" {
		t.Errorf("Unexpected L1 values: %q, %q", out.Rows[0][l1], out.Rows[1][l1])
	}
}

// TestSummaryRowsDropWithoutGroupColumn tests that section labels still
// vanish when only the anchor column exists
func TestSummaryRowsDropWithoutGroupColumn(t *testing.T) {
	in := &StructuredTable{
		Columns: []string{"序号", "项目名称", "合价"},
		Rows: [][]string{
			{"1", "找平", "4260"},
			{"小计", "", "4260"},
			{"2", "铺贴", "7740"},
		},
	}

	out, res := Structure(in, DefaultHierarchyConfig())
	if res.Applied {
		t.Error("Expected no hierarchy without a grouping column")
	}
	if len(out.Columns) != 3 {
		t.Error("Expected columns untouched")
	}
	if len(out.Rows) != 2 {
		t.Fatalf("Expected summary row dropped, got %d rows", len(out.Rows))
	}
}

// TestHierarchyDegradesWithoutAnchorOrSerial tests the second degrade path
func TestHierarchyDegradesWithoutAnchorOrSerial(t *testing.T) {
	in := &StructuredTable{
		Columns: []string{"功能区", "合价"},
		Rows:    [][]string{{"地面", "4260"}},
	}

	if _, res := Structure(in, DefaultHierarchyConfig()); res.Applied {
		t.Error("Expected no hierarchy without anchor and serial columns")
	}
}

// TestHierarchyRaggedRows tests rows shorter than the column set
func TestHierarchyRaggedRows(t *testing.T) {
	in := &StructuredTable{
		Columns: []string{"序号", "功能区", "项目名称", "合价"},
		Rows: [][]string{
			{"", "地面"},
			{"1", "找平层", "水泥砂浆找平"},
		},
	}

	out, res := Structure(in, DefaultHierarchyConfig())
	if !res.Applied {
		t.Fatal("Expected hierarchy to apply")
	}
	if len(out.Rows) != 1 {
		t.Fatalf("Expected one data row, got %d", len(out.Rows))
	}
	last := out.Rows[0][len(out.Rows[0])-1]
	if last != "地面" {
		t.Errorf("Expected L1 carried onto ragged row, got %q", last)
	}
}
