package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIDsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range All() {
		assert.False(t, seen[p.PersonaID], "duplicate personaId %q", p.PersonaID)
		seen[p.PersonaID] = true
	}
	assert.Len(t, seen, 7)
}

func TestRegistryValidates(t *testing.T) {
	require.NoError(t, ValidateRegistry())
}

func TestByID(t *testing.T) {
	p, ok := ByID("facility_manager")
	require.True(t, ok)
	assert.Equal(t, "Facility Manager", p.JobTitle)
	assert.Contains(t, p.ScrapeKeywords, "warranty years")
	assert.Contains(t, p.IgnoreKeywords, "eco-friendly")

	_, ok = ByID("ceo")
	assert.False(t, ok)
}

func TestOverlapRejected(t *testing.T) {
	p, ok := ByID("architect")
	require.True(t, ok)

	p.IgnoreKeywords = append(p.IgnoreKeywords, "leed") // contained in "leed credits"
	ov := Overlap(p)
	require.Len(t, ov, 1)
	assert.Equal(t, "leed credits", ov[0][0])
	assert.Error(t, Validate(p))
}
