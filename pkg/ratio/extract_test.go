package ratio

import (
	"strings"
	"testing"
)

const tableDocument = `<html><body>
<table>
<tr><td>Runtime</td><td>2h 22m</td></tr>
<tr><td>Aspect Ratio</td><td>2.39 : 1</td></tr>
<tr><td>Camera</td><td>Arriflex 435</td></tr>
</table>
</body></html>`

func TestExtractLabeledBlocksTableRow(t *testing.T) {
	blocks := ExtractLabeledBlocks(tableDocument)
	if len(blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	if !strings.Contains(blocks[0], "2.39") {
		t.Errorf("expected first block to carry the ratio value, got %q", blocks[0])
	}
	for _, block := range blocks {
		if strings.Contains(block, "Arriflex") {
			t.Errorf("expected camera row to be excluded, got %q", block)
		}
	}
}

func TestExtractLabeledBlocksTaggedContainer(t *testing.T) {
	document := `<html><body><ul>
<li data-testid="title-techspec_aspectratio">
<span>Aspect ratio</span><div>1.85 : 1 (Flat)</div>
</li>
<li data-testid="title-techspec_soundmix"><span>Sound mix</span><div>Dolby Digital</div></li>
</ul></body></html>`

	blocks := ExtractLabeledBlocks(document)
	// The li matches both the list-item pattern and the tagged-container
	// pattern; every match of every pattern is collected.
	if len(blocks) < 2 {
		t.Fatalf("expected the block from both patterns, got %d", len(blocks))
	}
	for _, block := range blocks {
		if !strings.Contains(block, "1.85") {
			t.Errorf("expected every block to carry the ratio value, got %q", block)
		}
	}
}

func TestExtractLabeledBlocksTextWindowFallback(t *testing.T) {
	document := `<html><body><div>Technical specifications.
Aspect Ratio: 1.66 : 1 and nothing structured around it.</div></body></html>`

	blocks := ExtractLabeledBlocks(document)
	if len(blocks) != 1 {
		t.Fatalf("expected single fallback window, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0], "1.66") {
		t.Errorf("expected window to carry the ratio value, got %q", blocks[0])
	}
}

func TestExtractLabeledBlocksFallbackWithMultibyteRunes(t *testing.T) {
	// Runes whose lowered form is wider (Ⱥ) must not shift the window
	// offsets out of bounds.
	document := strings.Repeat("Ⱥ", 300) + " aspect ratio 2.39 : 1"

	blocks := ExtractLabeledBlocks(document)
	if len(blocks) != 1 {
		t.Fatalf("expected single fallback window, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0], "2.39") {
		t.Errorf("expected window to carry the ratio value, got %q", blocks[0])
	}
}

func TestExtractLabeledBlocksNoLabel(t *testing.T) {
	if blocks := ExtractLabeledBlocks("<html><body><p>Runtime 142 min</p></body></html>"); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %v", blocks)
	}
}

func TestExtractLabeledBlocksIgnoresScriptAndStyle(t *testing.T) {
	document := `<html><head>
<style>.aspect ratio { color: red }</style>
<script>var aspectRatio = "aspect ratio 2.39 : 1";</script>
</head><body><p>nothing here</p></body></html>`

	if blocks := ExtractLabeledBlocks(document); len(blocks) != 0 {
		t.Fatalf("expected label inside script/style to be invisible, got %v", blocks)
	}
}

func TestExtractLabeledBlocksFallbackWindowSize(t *testing.T) {
	padding := strings.Repeat("x", 2000)
	document := padding + " aspect ratio 2.39 : 1 " + padding

	blocks := ExtractLabeledBlocks(document)
	if len(blocks) != 1 {
		t.Fatalf("expected single fallback window, got %d", len(blocks))
	}
	if len(blocks[0]) > windowBefore+windowAfter {
		t.Errorf("expected window of at most %d chars, got %d", windowBefore+windowAfter, len(blocks[0]))
	}
	if !strings.Contains(blocks[0], "2.39") {
		t.Errorf("expected window to carry the ratio value, got %q", blocks[0])
	}
}
