package ratio

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// label is the field heading the pipeline locates on technical pages.
const label = "aspect ratio"

var (
	tagRE   = regexp.MustCompile(`<[^>]*>`)
	ratioRE = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*:\s*(\d+(?:\.\d+)?)`)
	noteRE  = regexp.MustCompile(`^\s*\(([^)]*)\)`)
)

// nextFieldLabels mark the start of adjacent technical-spec fields. Content
// past the first occurrence of any of them belongs to another row and must
// not be parsed as ratio text.
var nextFieldLabels = []string{
	"camera",
	"runtime",
	"sound mix",
	"color",
	"negative format",
	"cinematographic process",
	"printed film format",
	"laboratory",
	"film length",
	"contribute to this page",
}

// leakedAttrTokens show up in the text when tag stripping went wrong; they
// truncate the fragment the same way a next-field label does.
var leakedAttrTokens = []string{"class=", "role=", "data-testid="}

// aliases are textual forms that stand in for a numeric ratio. They are
// tried in order, and only when the strict numeric pattern fails.
var aliases = []struct {
	substr string
	ratio  string
}{
	{"academy", "1.37:1"},
	{"4:3", "1.33:1"},
	{"full screen", "1.33:1"},
	{"16:9", "1.78:1"},
	{"hdtv", "1.78:1"},
	{"1.78", "1.78:1"},
}

// ParseEntries extracts aspect-ratio entries from a single labeled block
// fragment. Segments that match neither the numeric pattern nor a known
// alias are dropped silently, as are numeric tokens with a zero numerator
// or denominator; one bad token never blocks the others.
func ParseEntries(fragment string) []Entry {
	// Collapse tag boundaries to spaces so values split across cells
	// ("<td>2.39</td><td>:1</td>") keep their separation and attribute
	// text never merges into content.
	text := tagRE.ReplaceAllString(fragment, " ")

	// The label itself is never content.
	if i := indexFold(text, label); i >= 0 {
		text = text[i+len(label):]
	}

	text = truncateAtAny(text, nextFieldLabels)
	text = truncateAtAny(text, leakedAttrTokens)

	var entries []Entry
	for _, segment := range splitOutsideParens(text) {
		if e, ok := parseSegment(segment); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseSegment(segment string) (Entry, bool) {
	loc := ratioRE.FindStringSubmatchIndex(segment)
	if loc != nil {
		numerator, _ := strconv.ParseFloat(segment[loc[2]:loc[3]], 64)
		denominator, _ := strconv.ParseFloat(segment[loc[4]:loc[5]], 64)
		if denominator == 0 || numerator <= 0 {
			return Entry{}, false
		}

		e := Entry{
			Ratio: canonical(numerator / denominator),
			Raw:   stripSpace(segment[loc[0]:loc[1]]),
		}
		if n := noteRE.FindStringSubmatch(segment[loc[1]:]); n != nil {
			e.Note = n[1]
		}
		return e, true
	}

	lower := lowerASCII(segment)
	for _, alias := range aliases {
		if containsToken(lower, alias.substr) {
			return Entry{
				Ratio: alias.ratio,
				Raw:   strings.TrimSpace(segment),
			}, true
		}
	}

	return Entry{}, false
}

// containsToken reports whether token occurs in s with no letter or digit
// touching either end, so a numeric alias like "1.78" never matches inside
// a larger number such as "11.78".
func containsToken(s, token string) bool {
	for from := 0; ; from++ {
		i := strings.Index(s[from:], token)
		if i < 0 {
			return false
		}
		from += i
		if isTokenBoundary(s, from-1) && isTokenBoundary(s, from+len(token)) {
			return true
		}
	}
}

func isTokenBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z')
}

// canonical renders a ratio value in the two-decimal "X.XX:1" form.
func canonical(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64) + ":1"
}

// splitOutsideParens splits s on the listing separators while never
// splitting inside parentheses, so annotations keep their full text.
func splitOutsideParens(s string) []string {
	var segments []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			current.WriteRune(r)
		case ')':
			if depth > 0 {
				depth--
			}
			current.WriteRune(r)
		case '•', '·', '|', ';':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
				continue
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	segments = append(segments, current.String())
	return segments
}

func truncateAtAny(s string, markers []string) string {
	cut := len(s)
	for _, marker := range markers {
		if i := indexFold(s, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return s[:cut]
}

// indexFold reports the byte offset of substr in s under ASCII case
// folding. Only ASCII letters are lowered when building the search copy:
// full Unicode lowering can change rune byte widths (İ shrinks, Ⱥ grows),
// which would make the returned offset invalid in s. Every needle the
// pipeline searches for is ASCII, so ASCII folding loses nothing.
func indexFold(s, substr string) int {
	return strings.Index(lowerASCII(s), lowerASCII(substr))
}

func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
