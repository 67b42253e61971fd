package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenchainz-intel/internal/fetch"
	"greenchainz-intel/internal/match"
	"greenchainz-intel/internal/rules"
)

func testRunner() *Runner {
	return &Runner{
		Rules:   rules.NewService(nil),
		Client:  fetch.New(0, "", nil),
		Matcher: match.Substring{},
	}
}

func TestRunUnknownPersona(t *testing.T) {
	r := testRunner()
	_, err := r.Run(context.Background(), "https://example.com", "ceo", nil)
	assert.ErrorIs(t, err, ErrPersonaNotFound)
}

func TestRunFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	r := testRunner()
	_, err := r.Run(context.Background(), srv.URL, "architect", nil)
	require.Error(t, err)
	assert.True(t, fetch.IsFetchError(err))
}

func TestRunEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body>
<p>This product carries 3 LEED credits and full EPD documentation.</p>
<p>We care about the planet, go green today!</p>
</body></html>`))
	}))
	defer srv.Close()

	r := testRunner()
	res, err := r.Run(context.Background(), srv.URL, "architect", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, srv.URL, res.TargetURL)
	assert.Equal(t, "architect", res.PersonaID)
	assert.Equal(t, "Architect", res.JobTitle)
	assert.Contains(t, res.Metadata.KeywordsFound, "leed credits")
	assert.Contains(t, res.Metadata.KeywordsFound, "epd")
	assert.Empty(t, res.Metadata.KeywordsIgnored)
	assert.Greater(t, res.Metadata.ContentLength, 0)

	leed := res.Data["leed_signals"]
	require.NotNil(t, leed)
	assert.Equal(t, []string{"leed credits"}, leed.KeywordsFound)
}
