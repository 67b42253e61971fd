package extract

import (
	"regexp"
	"sort"
	"strings"

	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/persona"
)

// FieldData is the per-schema-field slot a mapped line lands in.
type FieldData struct {
	KeywordsFound []string       `json:"keywords_found"`
	ExtractedText []string       `json:"extracted_text"`
	Metrics       map[string]any `json:"metrics"`
}

// Numeric values with a unit that buyers care about: percentages,
// durations, areas, money.
var metricRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:%|years?|months?|days?|hrs?|sq\.?\s*ft\.?|usd|\$|dollars?)`)

// MapFields assigns extracted lines and embedded metric values to the
// persona's output fields. A line lands in a field when the field key's
// first token matches the keyword's first token, or when a decision-logic
// term appears in both the field key and the line. Best-effort
// classification, not guaranteed-correct.
func MapFields(content string, p persona.Persona, foundKeywords []string, m match.KeywordMatcher) map[string]*FieldData {
	if m == nil {
		m = match.Substring{}
	}

	out := make(map[string]*FieldData, len(p.OutputSchema))
	fieldKeys := make([]string, 0, len(p.OutputSchema))
	for key := range p.OutputSchema {
		out[key] = &FieldData{
			KeywordsFound: []string{},
			ExtractedText: []string{},
			Metrics:       map[string]any{},
		}
		fieldKeys = append(fieldKeys, key)
	}
	sort.Strings(fieldKeys) // deterministic association order

	var lines []string
	for _, ln := range strings.Split(content, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}

	for _, line := range lines {
		for _, kw := range foundKeywords {
			if !m.Matches(line, kw) {
				continue
			}
			key, ok := fieldFor(fieldKeys, p.DecisionLogic, kw, line)
			if !ok {
				continue
			}
			fd := out[key]
			if !containsString(fd.KeywordsFound, kw) {
				fd.KeywordsFound = append(fd.KeywordsFound, kw)
			}
			fd.ExtractedText = append(fd.ExtractedText, line)
		}
	}

	// Metric attachment runs on raw lines, not just mapped ones; the last
	// matching line for a field wins (overwrite, not append).
	for _, line := range lines {
		values := metricRe.FindAllString(line, -1)
		if len(values) == 0 {
			continue
		}
		lineWords := map[string]bool{}
		for _, w := range strings.Fields(strings.ToLower(line)) {
			lineWords[strings.Trim(w, ".,:;()")] = true
		}
		for _, key := range fieldKeys {
			if lineWords[firstToken(key, "_")] {
				out[key].Metrics["raw_values"] = values
			}
		}
	}

	return out
}

// fieldFor picks the schema field the keyword+line pair associates with:
// first-token matches win over decision-logic matches, ties break in
// sorted key order.
func fieldFor(fieldKeys []string, decisionLogic []string, keyword, line string) (string, bool) {
	kwTok := firstToken(keyword, " ")
	lower := strings.ToLower(line)

	for _, key := range fieldKeys {
		if firstToken(key, "_") == kwTok {
			return key, true
		}
	}
	for _, key := range fieldKeys {
		for _, term := range decisionLogic {
			t := strings.ToLower(strings.TrimSpace(term))
			if t == "" {
				continue
			}
			if strings.Contains(strings.ToLower(key), t) && strings.Contains(lower, t) {
				return key, true
			}
		}
	}
	return "", false
}

func firstToken(s, sep string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
