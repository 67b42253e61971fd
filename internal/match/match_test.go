package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstring(t *testing.T) {
	m := Substring{}
	assert.True(t, m.Matches("Full EPD documentation available", "epd"))
	assert.True(t, m.Matches("LEED Credits: 3", "leed credits"))
	// substring matching has no boundaries, by contract
	assert.True(t, m.Matches("the torpedo division", "epd"))
	assert.False(t, m.Matches("nothing relevant here", "epd"))
	assert.False(t, m.Matches("anything", "  "))
}

func TestWordBoundary(t *testing.T) {
	m := &WordBoundary{}
	assert.True(t, m.Matches("Full EPD documentation available", "epd"))
	assert.False(t, m.Matches("the torpedo division", "epd"))
	assert.True(t, m.Matches("earn LEED credits today", "leed credits"))
}
