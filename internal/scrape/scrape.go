// Package scrape orchestrates one persona scrape: resolve rules, fetch
// the target page, extract qualifying content, map it onto the persona's
// output fields, and persist the result. Stateless per request.
package scrape

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"greenchainz-intel/internal/extract"
	"greenchainz-intel/internal/fetch"
	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/rules"
	"greenchainz-intel/internal/store"
)

// ErrPersonaNotFound maps to 404 at the boundary.
var ErrPersonaNotFound = errors.New("persona not found")

type Metadata struct {
	ScrapedAt       time.Time `json:"scrapedAt"`
	KeywordsFound   []string  `json:"keywordsFound"`
	KeywordsIgnored []string  `json:"keywordsIgnored"`
	ContentLength   int       `json:"contentLength"`
}

// Result is the outcome of applying one persona to one URL. Immutable
// once returned.
type Result struct {
	ID        string                        `json:"id"`
	TargetURL string                        `json:"targetUrl"`
	PersonaID string                        `json:"personaId"`
	JobTitle  string                        `json:"jobTitle"`
	Data      map[string]*extract.FieldData `json:"data"`
	Metadata  Metadata                      `json:"metadata"`
}

type Runner struct {
	Rules   *rules.Service
	Client  *fetch.Client
	Matcher match.KeywordMatcher
	DB      *sql.DB // optional; nil skips persistence
}

// Run executes the full pipeline for one targetUrl/personaId pair.
func (r *Runner) Run(ctx context.Context, targetURL, personaID string, customKeywords []string) (Result, error) {
	p, ok := r.Rules.Rules(ctx, personaID)
	if !ok {
		return Result{}, ErrPersonaNotFound
	}

	doc, err := r.Client.Document(ctx, targetURL)
	if err != nil {
		return Result{}, err
	}

	c := extract.Run(doc, p, customKeywords, r.Matcher)
	data := extract.MapFields(c.Content, p, c.FoundKeywords, r.Matcher)

	res := Result{
		ID:        uuid.NewString(),
		TargetURL: targetURL,
		PersonaID: p.PersonaID,
		JobTitle:  p.JobTitle,
		Data:      data,
		Metadata: Metadata{
			ScrapedAt:       time.Now().UTC(),
			KeywordsFound:   c.FoundKeywords,
			KeywordsIgnored: c.IgnoredKeywords,
			ContentLength:   len(c.Content),
		},
	}

	if r.DB != nil {
		if err := r.persist(ctx, res); err != nil {
			// History is best-effort; the caller still gets the result.
			log.Printf("[scrape] persist result url=%s persona=%s err=%v", targetURL, personaID, err)
		}
	}

	return res, nil
}

func (r *Runner) persist(ctx context.Context, res Result) error {
	dataB, err := json.Marshal(res.Data)
	if err != nil {
		return err
	}
	metaB, err := json.Marshal(res.Metadata)
	if err != nil {
		return err
	}
	return store.InsertScrapeResult(ctx, r.DB, store.ScrapeRow{
		ID:        res.ID,
		TargetURL: res.TargetURL,
		PersonaID: res.PersonaID,
		JobTitle:  res.JobTitle,
		Data:      dataB,
		Metadata:  metaB,
		CreatedAt: res.Metadata.ScrapedAt,
	})
}
