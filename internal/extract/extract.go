// Package extract selects the page fragments that matter to a persona and
// maps them onto the persona's declared output fields. The matching is
// heuristic: callers treat the output as advisory signal extraction, not
// structured data entry.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/persona"
)

// Block-level elements that carry readable text on supplier sites.
const blockSelector = "p, div, section, article, li, td"

const minBlockLen = 20

// Content is the outcome of one extraction pass over a parsed page.
type Content struct {
	Content         string   `json:"content"`
	FoundKeywords   []string `json:"foundKeywords"`
	IgnoredKeywords []string `json:"ignoredKeywords"`
}

// Run applies a persona's keyword sets to a parsed document. Custom
// keywords are matched alongside the persona's scrape set. The same doc,
// persona, and matcher always produce the same Content.
func Run(doc *goquery.Document, p persona.Persona, customKeywords []string, m match.KeywordMatcher) Content {
	if m == nil {
		m = match.Substring{}
	}

	pageText := doc.Text()

	var found []string
	seenFound := map[string]bool{}
	for _, kw := range append(append([]string{}, p.ScrapeKeywords...), customKeywords...) {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" || seenFound[k] {
			continue
		}
		if m.Matches(pageText, k) {
			found = append(found, k)
			seenFound[k] = true
		}
	}

	var ignored []string
	for _, kw := range p.IgnoreKeywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if m.Matches(pageText, k) {
			ignored = append(ignored, k)
		}
	}

	// A qualifying block mentions at least one found keyword, none of the
	// ignore phrases, and is long enough to carry a real statement.
	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) <= minBlockLen {
			return
		}

		hasKeyword := false
		for _, kw := range found {
			if m.Matches(text, kw) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			return
		}

		for _, kw := range p.IgnoreKeywords {
			if m.Matches(text, kw) {
				return
			}
		}

		blocks = append(blocks, text)
	})

	return Content{
		Content:         strings.Join(blocks, "\n\n"),
		FoundKeywords:   found,
		IgnoredKeywords: ignored,
	}
}
