package ratio

import (
	"errors"
	"strings"
	"time"
)

// Source identifies where every record is extracted from.
const Source = "imdb"

// ErrNotFound is returned when a document yields no valid ratio entries.
// Its text is shown to the user as-is by UI collaborators.
var ErrNotFound = errors.New("Aspect ratio not found")

// Result is the unit persisted to the cache and returned to callers.
// A cache entry is replaced wholesale on refresh, never mutated in place,
// so FetchedAt is stamped once at creation.
type Result struct {
	AspectRatio     string   `json:"aspectRatio"`
	DisplayText     string   `json:"displayText"`
	AllAspectRatios []string `json:"allAspectRatios"`
	MappedTypeShort *string  `json:"mappedTypeShort"`
	MappedTypeLong  *string  `json:"mappedTypeLong"`
	Source          string   `json:"source"`
	SourceURL       string   `json:"sourceUrl"`
	FetchedAt       int64    `json:"fetchedAt"` // epoch milliseconds
}

// Build assembles the final record from a deduplicated entry list in source
// order. The display text joins each ratio with its classifier long name in
// parentheses when one exists, separated by " • "; the mapped type fields
// come from the primary ratio. An empty entry list is a caller-visible
// failure, never an empty-result success.
func Build(entries []Entry, sourceURL string, now time.Time) (*Result, error) {
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	ratios := make([]string, 0, len(entries))
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		ratios = append(ratios, e.Ratio)
		if f := Classify(e.Ratio); f.Known() {
			parts = append(parts, e.Ratio+" ("+f.Long+")")
		} else {
			parts = append(parts, e.Ratio)
		}
	}

	result := &Result{
		AspectRatio:     SelectPrimary(ratios),
		DisplayText:     strings.Join(parts, " • "),
		AllAspectRatios: ratios,
		Source:          Source,
		SourceURL:       sourceURL,
		FetchedAt:       now.UnixMilli(),
	}
	if f := Classify(result.AspectRatio); f.Known() {
		result.MappedTypeShort = &f.Short
		result.MappedTypeLong = &f.Long
	}
	return result, nil
}

// Extract runs the full pipeline over a raw technical-page document:
// block extraction, token parsing, deduplication and record assembly.
func Extract(document, sourceURL string, now time.Time) (*Result, error) {
	var entries []Entry
	for _, block := range ExtractLabeledBlocks(document) {
		entries = append(entries, ParseEntries(block)...)
	}
	return Build(Dedupe(entries), sourceURL, now)
}
