package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeEntryName(t *testing.T) {
	seen := map[string]int{}

	assert.Equal(t, "deck.pdf", dedupeEntryName(seen, "deck.pdf"))
	assert.Equal(t, "deck (2).pdf", dedupeEntryName(seen, "deck.pdf"))
	assert.Equal(t, "deck (3).pdf", dedupeEntryName(seen, "deck.pdf"))
	assert.Equal(t, "other.pptx", dedupeEntryName(seen, "other.pptx"))
}

func TestDedupeEntryNameWithoutExtension(t *testing.T) {
	seen := map[string]int{}

	assert.Equal(t, "notes", dedupeEntryName(seen, "notes"))
	assert.Equal(t, "notes (2)", dedupeEntryName(seen, "notes"))
}
