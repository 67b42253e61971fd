package persona

import "time"

// FieldSpec describes one entry in a persona's output schema.
type FieldSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Persona is a named decision-maker archetype with the keyword sets the
// scraper uses to decide what on a page matters to that buyer.
type Persona struct {
	PersonaID      string               `json:"personaId"`
	JobTitle       string               `json:"jobTitle"`
	DecisionLogic  []string             `json:"decisionLogic"`
	ScrapeKeywords []string             `json:"scrapeKeywords"`
	IgnoreKeywords []string             `json:"ignoreKeywords"`
	OutputSchema   map[string]FieldSpec `json:"outputSchema"`

	// Set on records that came from the rules store, zero for static ones.
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
