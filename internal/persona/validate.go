package persona

import (
	"fmt"
	"strings"
)

// Overlap returns the scrape/ignore keyword pairs of p where one phrase
// contains the other (either direction, case-insensitive). A keyword that
// is a substring of an ignore keyword silently suppresses its own blocks,
// so overlapping sets are rejected rather than guessed at.
func Overlap(p Persona) [][2]string {
	var out [][2]string
	for _, sk := range p.ScrapeKeywords {
		s := strings.ToLower(strings.TrimSpace(sk))
		if s == "" {
			continue
		}
		for _, ik := range p.IgnoreKeywords {
			i := strings.ToLower(strings.TrimSpace(ik))
			if i == "" {
				continue
			}
			if strings.Contains(s, i) || strings.Contains(i, s) {
				out = append(out, [2]string{sk, ik})
			}
		}
	}
	return out
}

// Validate checks a single persona record for the invariants the pipeline
// relies on.
func Validate(p Persona) error {
	if strings.TrimSpace(p.PersonaID) == "" {
		return fmt.Errorf("persona: empty personaId")
	}
	if len(p.ScrapeKeywords) == 0 {
		return fmt.Errorf("persona %s: no scrape keywords", p.PersonaID)
	}
	if len(p.OutputSchema) == 0 {
		return fmt.Errorf("persona %s: empty output schema", p.PersonaID)
	}
	if ov := Overlap(p); len(ov) > 0 {
		return fmt.Errorf("persona %s: scrape/ignore keyword overlap %q vs %q", p.PersonaID, ov[0][0], ov[0][1])
	}
	return nil
}

// ValidateRegistry checks the static registry: pairwise-distinct IDs and
// per-persona invariants. Called once at startup; a failure here is a
// programming error in the registry, not a runtime condition.
func ValidateRegistry() error {
	seen := map[string]bool{}
	for _, p := range registry {
		if seen[p.PersonaID] {
			return fmt.Errorf("persona: duplicate personaId %q", p.PersonaID)
		}
		seen[p.PersonaID] = true
		if err := Validate(p); err != nil {
			return err
		}
	}
	return nil
}
