package profiling

import (
	"github.com/montanaflynn/stats"

	"sheetsense/domain/grid"
	"sheetsense/domain/table"
)

// Column kind labels.
const (
	KindNumeric = "numeric"
	KindText    = "text"
)

// numericShare is the fraction of non-empty cells that must parse as
// numbers before a column counts as numeric.
const numericShare = 0.6

// ProfileColumns summarizes every column of a structured table. Numeric
// columns get distribution statistics; text columns only counts. A column
// with no values at all profiles as text with a 1.0 missing rate.
func ProfileColumns(t *table.StructuredTable) []table.ColumnProfile {
	profiles := make([]table.ColumnProfile, 0, len(t.Columns))
	for c, name := range t.Columns {
		profiles = append(profiles, profileColumn(t, c, name))
	}
	return profiles
}

func profileColumn(t *table.StructuredTable, col int, name string) table.ColumnProfile {
	values := make([]string, 0, len(t.Rows))
	numbers := make([]float64, 0, len(t.Rows))
	missing := 0

	for r := range t.Rows {
		cell := t.Cell(r, col)
		if cell == "" {
			missing++
			continue
		}
		values = append(values, cell)
		if v, ok := grid.NumericValue(cell); ok {
			numbers = append(numbers, v)
		}
	}

	profile := table.ColumnProfile{
		Column: name,
		Kind:   KindText,
		Count:  len(values),
	}
	if len(t.Rows) > 0 {
		profile.MissingRate = float64(missing) / float64(len(t.Rows))
	}

	if len(values) == 0 {
		return profile
	}
	if float64(len(numbers)) < numericShare*float64(len(values)) {
		return profile
	}

	profile.Kind = KindNumeric
	// stats errors only trigger on empty input, excluded above.
	profile.Mean, _ = stats.Mean(numbers)
	profile.Median, _ = stats.Median(numbers)
	profile.Min, _ = stats.Min(numbers)
	profile.Max, _ = stats.Max(numbers)
	profile.StdDev, _ = stats.StandardDeviation(numbers)
	return profile
}
