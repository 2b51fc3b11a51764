// Package ratio extracts aspect-ratio metadata from the raw markup of an
// IMDb technical-specs page. The pipeline is pure and stateless: block
// extraction, token parsing, deduplication, format classification and
// primary-ratio selection all operate on their inputs only, so callers may
// run it concurrently without locking.
package ratio

// Entry is a single aspect-ratio listing parsed out of a labeled block.
type Entry struct {
	// Ratio is the canonical two-decimal form, e.g. "2.39:1". Used for
	// deduplication and comparison.
	Ratio string
	// Raw is the source text the ratio was matched from, whitespace-stripped.
	Raw string
	// Note is the parenthetical annotation following the ratio, empty when
	// the source carried none.
	Note string
}
