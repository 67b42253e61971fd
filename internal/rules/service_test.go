package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenchainz-intel/internal/persona"
)

// --- mock provider ---

type mockProvider struct {
	personas map[string]persona.Persona
	err      error
	getCalls int
	allCalls int
}

func (m *mockProvider) Get(_ context.Context, id string) (persona.Persona, bool, error) {
	m.getCalls++
	if m.err != nil {
		return persona.Persona{}, false, m.err
	}
	p, ok := m.personas[id]
	return p, ok, nil
}

func (m *mockProvider) All(_ context.Context) ([]persona.Persona, error) {
	m.allCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []persona.Persona
	for _, p := range m.personas {
		out = append(out, p)
	}
	return out, nil
}

func TestStaticFallbackWithoutStore(t *testing.T) {
	s := NewService(nil)

	p, ok := s.Rules(context.Background(), "facility_manager")
	require.True(t, ok)
	assert.Equal(t, "Facility Manager", p.JobTitle)

	_, ok = s.Rules(context.Background(), "nobody")
	assert.False(t, ok)
}

func TestStoreOverridesStatic(t *testing.T) {
	remote := &mockProvider{personas: map[string]persona.Persona{
		"architect": {
			PersonaID:      "architect",
			JobTitle:       "Principal Architect",
			ScrapeKeywords: []string{"leed credits"},
			OutputSchema:   map[string]persona.FieldSpec{"leed_signals": {Type: "list"}},
		},
	}}
	s := NewService(remote)

	p, ok := s.Rules(context.Background(), "architect")
	require.True(t, ok)
	assert.Equal(t, "Principal Architect", p.JobTitle)
}

func TestCacheAvoidsSecondLookup(t *testing.T) {
	remote := &mockProvider{personas: map[string]persona.Persona{
		"architect": {PersonaID: "architect", JobTitle: "Architect"},
	}}
	s := NewService(remote)

	a, ok := s.Rules(context.Background(), "architect")
	require.True(t, ok)
	b, ok := s.Rules(context.Background(), "architect")
	require.True(t, ok)

	assert.Equal(t, a, b)
	assert.Equal(t, 1, remote.getCalls, "second call must be served from cache")
}

func TestCacheExpiry(t *testing.T) {
	remote := &mockProvider{personas: map[string]persona.Persona{
		"architect": {PersonaID: "architect"},
	}}

	clock := time.Now()
	s := NewService(remote,
		WithTTL(time.Hour),
		WithClock(func() time.Time { return clock }),
	)

	s.Rules(context.Background(), "architect")
	clock = clock.Add(59 * time.Minute)
	s.Rules(context.Background(), "architect")
	assert.Equal(t, 1, remote.getCalls)

	clock = clock.Add(2 * time.Minute) // past the first entry's TTL
	s.Rules(context.Background(), "architect")
	assert.Equal(t, 2, remote.getCalls)
}

func TestInvalidateAndClear(t *testing.T) {
	remote := &mockProvider{personas: map[string]persona.Persona{
		"architect": {PersonaID: "architect"},
	}}
	s := NewService(remote)

	s.Rules(context.Background(), "architect")
	s.Invalidate("architect")
	s.Rules(context.Background(), "architect")
	assert.Equal(t, 2, remote.getCalls)

	s.Clear()
	s.Rules(context.Background(), "architect")
	assert.Equal(t, 3, remote.getCalls)
}

func TestStoreErrorFallsBackToStatic(t *testing.T) {
	remote := &mockProvider{err: errors.New("store unreachable")}
	s := NewService(remote)

	p, ok := s.Rules(context.Background(), "facility_manager")
	require.True(t, ok, "store failure must degrade to static rules")
	assert.Equal(t, "Facility Manager", p.JobTitle)
}

func TestAllRulesStoreOnly(t *testing.T) {
	s := NewService(nil)
	assert.Empty(t, s.AllRules(context.Background()), "no store configured means empty, not static")

	remote := &mockProvider{err: errors.New("down")}
	s = NewService(remote)
	assert.Empty(t, s.AllRules(context.Background()))

	remote = &mockProvider{personas: map[string]persona.Persona{
		"architect": {PersonaID: "architect"},
	}}
	s = NewService(remote)
	assert.Len(t, s.AllRules(context.Background()), 1)
}

func TestSweep(t *testing.T) {
	clock := time.Now()
	s := NewService(nil,
		WithTTL(time.Hour),
		WithClock(func() time.Time { return clock }),
	)
	s.Rules(context.Background(), "architect")
	s.Rules(context.Background(), "facility_manager")

	assert.Equal(t, 0, s.Sweep())
	clock = clock.Add(61 * time.Minute)
	assert.Equal(t, 2, s.Sweep())
}
