package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPrimaryPrefersTheatricalWide(t *testing.T) {
	assert.Equal(t, "2.39:1", SelectPrimary([]string{"1.33:1", "2.39:1"}))
	// Incidental alternate formats listed first do not win.
	assert.Equal(t, "2.39:1", SelectPrimary([]string{"1.43:1", "1.90:1", "2.39:1"}))
	assert.Equal(t, "1.85:1", SelectPrimary([]string{"1.37:1", "1.85:1", "1.33:1"}))
}

func TestSelectPrimaryTieKeepsEarliest(t *testing.T) {
	// Every Scope-family value scores the same; the first one stands.
	assert.Equal(t, "2.39:1", SelectPrimary([]string{"2.39:1", "2.35:1", "2.40:1"}))
	// Unknown values all score the floor.
	assert.Equal(t, "9.99:1", SelectPrimary([]string{"9.99:1", "8.88:1"}))
}

func TestSelectPrimaryReturnsMember(t *testing.T) {
	inputs := [][]string{
		{"2.39:1"},
		{"1.19:1", "4.00:1"},
		{"1.78:1", "2.20:1", "1.66:1"},
	}

	for _, ratios := range inputs {
		assert.Contains(t, ratios, SelectPrimary(ratios))
	}
}

func TestSelectPrimarySingleCandidate(t *testing.T) {
	assert.Equal(t, "1.19:1", SelectPrimary([]string{"1.19:1"}))
}
