package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeFirstSeenWins(t *testing.T) {
	entries := []Entry{
		{Ratio: "1.37:1", Raw: "1.37:1"},
		{Ratio: "2.39:1", Raw: "2.39:1", Note: "theatrical"},
		{Ratio: "1.37:1", Raw: "1.37:1", Note: "alt source"},
	}

	deduped := Dedupe(entries)

	assert.Equal(t, []Entry{
		{Ratio: "1.37:1", Raw: "1.37:1"},
		{Ratio: "2.39:1", Raw: "2.39:1", Note: "theatrical"},
	}, deduped)
}

func TestDedupeIdempotent(t *testing.T) {
	entries := []Entry{
		{Ratio: "2.39:1"},
		{Ratio: "1.85:1"},
		{Ratio: "2.39:1"},
		{Ratio: "1.85:1"},
	}

	once := Dedupe(entries)
	twice := Dedupe(once)

	assert.Equal(t, once, twice)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
