// Package match holds the keyword matching strategy used by the extract
// and distributor pipelines. The default is plain case-insensitive
// substring containment; stricter strategies can be swapped in without
// touching pipeline structure.
package match

import (
	"regexp"
	"strings"
	"sync"
)

type KeywordMatcher interface {
	// Matches reports whether keyword occurs in text. Both arguments are
	// matched case-insensitively; text may be arbitrary page content.
	Matches(text, keyword string) bool
}

// Substring is the default matcher: literal substring containment, no
// stemming or word-boundary checks.
type Substring struct{}

func (Substring) Matches(text, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), k)
}

// WordBoundary matches the keyword only on word boundaries, so "epd" no
// longer hits "torpedo". Compiled patterns are cached per keyword.
type WordBoundary struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func (m *WordBoundary) Matches(text, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return false
	}

	m.mu.Lock()
	if m.cache == nil {
		m.cache = make(map[string]*regexp.Regexp)
	}
	re, ok := m.cache[k]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`)
		m.cache[k] = re
	}
	m.mu.Unlock()

	return re.MatchString(text)
}
