package ratio

import (
	"math"
	"strconv"
	"strings"
)

// Format names the cinema or TV format family a canonical ratio belongs to.
// The zero Format means the ratio matched no known family.
type Format struct {
	Short string
	Long  string
}

// Known reports whether the classification matched a format family.
func (f Format) Known() bool { return f.Short != "" }

const classifyTolerance = 0.02

// formatTable is matched in order and the first row within tolerance wins.
// Order matters: ranges overlap on purpose, the Scope family swallows
// 2.35–2.40 before any narrower row runs.
var formatTable = []struct {
	value float64
	short string
	long  string
}{
	{4.00, "Polyvision", "Polyvision (triple screen)"},
	{2.76, "Ultra Panavision 70", "Ultra Panavision 70 (65mm anamorphic)"},
	{2.59, "Cinerama", "Cinerama (three-strip)"},
	{2.40, "Scope", "Anamorphic widescreen, Scope"},
	{2.39, "Scope", "Anamorphic widescreen, Scope"},
	{2.35, "Scope", "Anamorphic widescreen, Scope"},
	{2.20, "Todd-AO", "Todd-AO 70mm"},
	{2.11, "IMAX 2.11:1", "IMAX digital 2.11:1"},
	{2.00, "Univisium", "Univisium 2.00:1"},
	{1.90, "Digital IMAX", "Digital IMAX 1.90:1"},
	{1.85, "Widescreen", "Widescreen theatrical, Flat"},
	{1.78, "16:9", "16:9 HDTV"},
	{16.0 / 9.0, "16:9", "16:9 HDTV"},
	{1.66, "European Widescreen", "European widescreen 1.66:1"},
	{1.43, "IMAX 70mm", "IMAX 70mm film"},
	{1.44, "IMAX 70mm", "IMAX 70mm film"},
	{1.37, "Academy", "Academy Ratio"},
	{1.33, "4:3", "4:3 television"},
	{4.0 / 3.0, "4:3", "4:3 television"},
	{1.19, "Silent", "Silent film"},
}

// Classify maps a canonical ratio to its format family. It never fails:
// an unparseable value or one outside every row's tolerance yields the zero
// Format.
func Classify(ratio string) Format {
	v, ok := ratioValue(ratio)
	if !ok {
		return Format{}
	}
	for _, row := range formatTable {
		if math.Abs(v-row.value) <= classifyTolerance {
			return Format{Short: row.short, Long: row.long}
		}
	}
	return Format{}
}

// ratioValue converts ratio text back to a number. It accepts the canonical
// "X.XX:1" form as well as a bare decimal.
func ratioValue(ratio string) (float64, bool) {
	s := strings.TrimSpace(ratio)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		numerator, err1 := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
		denominator, err2 := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
		if err1 != nil || err2 != nil || denominator == 0 {
			return 0, false
		}
		return numerator / denominator, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
