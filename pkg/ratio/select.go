package ratio

import "math"

// preferenceTable scores how likely a ratio is to be the theatrically
// significant one. It deliberately overlaps the classifier table without
// being derivable from it: the same value carries a different meaning here
// (display preference, not format identity), so the two tables stay apart.
var preferenceTable = []struct {
	value float64
	score int
}{
	{2.35, 100},
	{2.39, 100},
	{2.40, 100},
	{1.85, 95},
	{2.20, 90},
	{1.90, 85},
	{2.11, 83},
	{1.78, 80},
	{1.66, 70},
	{2.00, 60},
	{1.43, 50},
	{1.44, 50},
	{2.76, 45},
	{2.59, 43},
	{1.37, 40},
	{1.33, 35},
	{1.19, 30},
	{4.00, 25},
}

const unknownScore = 10

// SelectPrimary picks the ratio most likely to represent the theatrical
// presentation, for compact display when a title lists several. Wide
// theatrical formats outrank incidental alternate-format listings even when
// those appear first in source order. Ties keep the earliest candidate.
// The result is always one of the input values; an empty input yields "".
func SelectPrimary(ratios []string) string {
	var primary string
	best := -1
	for _, r := range ratios {
		if s := preferenceScore(r); s > best {
			primary, best = r, s
		}
	}
	return primary
}

func preferenceScore(ratio string) int {
	v, ok := ratioValue(ratio)
	if !ok {
		return unknownScore
	}
	for _, row := range preferenceTable {
		if math.Abs(v-row.value) <= classifyTolerance {
			return row.score
		}
	}
	return unknownScore
}
