package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/persona"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func mustPersona(t *testing.T, id string) persona.Persona {
	t.Helper()
	p, ok := persona.ByID(id)
	require.True(t, ok)
	return p
}

func TestArchitectEndToEnd(t *testing.T) {
	html := `<html><body>
<p>This product carries 3 LEED credits and full EPD documentation.</p>
<p>We care about the planet, go green today!</p>
</body></html>`

	p := mustPersona(t, "architect")
	c := Run(doc(t, html), p, nil, match.Substring{})

	assert.Contains(t, c.FoundKeywords, "leed credits")
	assert.Contains(t, c.FoundKeywords, "epd")
	assert.Empty(t, c.IgnoredKeywords)
	assert.Contains(t, c.Content, "This product carries 3 LEED credits")
	assert.NotContains(t, c.Content, "go green today")
}

func TestIgnoreKeywordPrecedence(t *testing.T) {
	// Found keyword and ignore keyword in the same block: the block is out.
	html := `<html><body><p>Our warranty years are great, eco-friendly choice</p></body></html>`

	p := mustPersona(t, "facility_manager")
	c := Run(doc(t, html), p, nil, match.Substring{})

	assert.Contains(t, c.FoundKeywords, "warranty years")
	assert.Contains(t, c.IgnoredKeywords, "eco-friendly")
	assert.Empty(t, c.Content)
}

func TestShortBlocksExcluded(t *testing.T) {
	html := `<html><body><li>epd here now</li></body></html>` // 12 chars

	p := mustPersona(t, "architect")
	c := Run(doc(t, html), p, nil, match.Substring{})

	assert.Contains(t, c.FoundKeywords, "epd")
	assert.Empty(t, c.Content)
}

func TestCustomKeywords(t *testing.T) {
	html := `<html><body><p>Volatile organic binder content is below threshold limits.</p></body></html>`

	p := mustPersona(t, "architect")
	c := Run(doc(t, html), p, []string{"binder content"}, match.Substring{})

	assert.Contains(t, c.FoundKeywords, "binder content")
	assert.Contains(t, c.Content, "Volatile organic binder")
}

func TestExtractIdempotent(t *testing.T) {
	html := `<html><body>
<p>Lead time is 6 weeks with a firm delivery window guarantee.</p>
<li>Installation crew of four required on site for two days minimum.</li>
</body></html>`

	p := mustPersona(t, "project_manager")
	a := Run(doc(t, html), p, nil, match.Substring{})
	b := Run(doc(t, html), p, nil, match.Substring{})
	assert.Equal(t, a, b)
}

func TestMapFieldsAssociation(t *testing.T) {
	p := mustPersona(t, "architect")
	content := "This product carries 3 LEED credits and full EPD documentation."
	found := []string{"leed credits", "epd"}

	fields := MapFields(content, p, found, match.Substring{})
	require.Len(t, fields, len(p.OutputSchema), "every schema field is initialized")

	leed := fields["leed_signals"]
	require.NotNil(t, leed)
	assert.Equal(t, []string{"leed credits"}, leed.KeywordsFound)
	assert.Equal(t, []string{content}, leed.ExtractedText)

	epd := fields["epd_availability"]
	require.NotNil(t, epd)
	assert.Equal(t, []string{"epd"}, epd.KeywordsFound)
}

func TestMapFieldsMetrics(t *testing.T) {
	p := mustPersona(t, "facility_manager")
	content := "Warranty coverage runs 10 years with a 5% service discount.\n" +
		"Warranty claims average 3 days turnaround."
	found := []string{"warranty years"}

	fields := MapFields(content, p, found, match.Substring{})

	wt := fields["warranty_terms"]
	require.NotNil(t, wt)
	// last matching line wins
	assert.Equal(t, []string{"3 days"}, wt.Metrics["raw_values"])
}

func TestMapFieldsEmptyContent(t *testing.T) {
	p := mustPersona(t, "architect")
	fields := MapFields("", p, nil, match.Substring{})
	for key, fd := range fields {
		assert.Empty(t, fd.KeywordsFound, key)
		assert.Empty(t, fd.ExtractedText, key)
		assert.Empty(t, fd.Metrics, key)
	}
}
