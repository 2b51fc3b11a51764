package ratio

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text-window fallback size around the first occurrence of the label.
const (
	windowBefore = 200
	windowAfter  = 800
)

var scriptStyleRE = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)\s*>`)

// blockPatterns are structural guesses tried in order against the parsed
// document; every match of every pattern is collected. The technical page
// has shipped as a plain table, a definition list and a testid-tagged
// container at different times, so the extractor guesses broadly instead of
// modeling one layout.
var blockPatterns = []struct {
	selector     string
	requireLabel bool
}{
	{"tr", true},
	{"li", true},
	{`[data-testid="title-techspec_aspectratio"]`, false},
	{"section", true},
}

// ExtractLabeledBlocks finds the self-contained markup regions associated
// with the aspect-ratio label and returns them as raw fragments for
// ParseEntries. When no structural pattern matches it falls back to a fixed
// text window around the first plain-text occurrence of the label, and it
// returns nil when the label never occurs at all.
func ExtractLabeledBlocks(document string) []string {
	var blocks []string

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err == nil {
		// Script and style bodies routinely mention field names; drop
		// them before any text matching.
		doc.Find("script,style").Remove()

		for _, pattern := range blockPatterns {
			doc.Find(pattern.selector).Each(func(_ int, s *goquery.Selection) {
				if pattern.requireLabel && indexFold(s.Text(), label) < 0 {
					return
				}
				if fragment, err := goquery.OuterHtml(s); err == nil {
					blocks = append(blocks, fragment)
				}
			})
		}
	}

	if len(blocks) > 0 {
		return blocks
	}
	return textWindow(document)
}

// textWindow is the universal fallback: a fixed-size slice of the document
// around the label, markup and all.
func textWindow(document string) []string {
	stripped := scriptStyleRE.ReplaceAllString(document, " ")

	i := indexFold(stripped, label)
	if i < 0 {
		return nil
	}

	start := i - windowBefore
	if start < 0 {
		start = 0
	}
	end := i + windowAfter
	if end > len(stripped) {
		end = len(stripped)
	}
	return []string{stripped[start:end]}
}
