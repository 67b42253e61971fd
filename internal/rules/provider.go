// Package rules resolves persona rules: remote document store first,
// static registry second, with a time-bounded cache in front. Store
// failures degrade to static rules instead of failing the caller.
package rules

import (
	"context"
	"database/sql"
	"log"

	"greenchainz-intel/internal/persona"
	"greenchainz-intel/internal/store"
)

// Provider is one tier of the persona lookup chain.
type Provider interface {
	// Get returns the persona for id. ok=false with nil error is a clean
	// miss; an error means the tier itself failed.
	Get(ctx context.Context, id string) (persona.Persona, bool, error)
	All(ctx context.Context) ([]persona.Persona, error)
}

// StoreProvider reads rules docs from the sqlite document store.
type StoreProvider struct {
	DB *sql.DB
}

func (p StoreProvider) Get(ctx context.Context, id string) (persona.Persona, bool, error) {
	rec, ok, err := store.GetPersonaDoc(ctx, p.DB, id)
	if err != nil || !ok {
		return persona.Persona{}, false, err
	}

	// A bad remote doc must not take the service down: drop overlapping
	// ignore phrases and keep going.
	if ov := persona.Overlap(rec); len(ov) > 0 {
		rec = dropOverlaps(rec, ov)
		log.Printf("[rules] store doc %s had %d scrape/ignore overlaps, dropped ignore phrases", id, len(ov))
	}
	return rec, true, nil
}

func (p StoreProvider) All(ctx context.Context) ([]persona.Persona, error) {
	return store.ListPersonaDocs(ctx, p.DB)
}

// StaticProvider wraps the compiled-in registry. It never errors.
type StaticProvider struct{}

func (StaticProvider) Get(_ context.Context, id string) (persona.Persona, bool, error) {
	p, ok := persona.ByID(id)
	return p, ok, nil
}

func (StaticProvider) All(_ context.Context) ([]persona.Persona, error) {
	return persona.All(), nil
}

func dropOverlaps(p persona.Persona, overlaps [][2]string) persona.Persona {
	bad := map[string]bool{}
	for _, ov := range overlaps {
		bad[ov[1]] = true
	}
	kept := make([]string, 0, len(p.IgnoreKeywords))
	for _, ik := range p.IgnoreKeywords {
		if !bad[ik] {
			kept = append(kept, ik)
		}
	}
	p.IgnoreKeywords = kept
	return p
}
