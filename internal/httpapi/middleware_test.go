package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func serve(h http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRequireKeyValid(t *testing.T) {
	h := Chain(okHandler(), RequireKey(func() (string, error) { return "s3cret", nil }))

	w := serve(h, http.MethodPost, "/persona-scraper", map[string]string{"X-Functions-Key": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireKeyMissingOrWrong(t *testing.T) {
	h := Chain(okHandler(), RequireKey(func() (string, error) { return "s3cret", nil }))

	w := serve(h, http.MethodPost, "/persona-scraper", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(h, http.MethodPost, "/persona-scraper", map[string]string{"X-Functions-Key": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireKeyOpenPaths(t *testing.T) {
	h := Chain(okHandler(), RequireKey(func() (string, error) { return "s3cret", nil }))

	for _, path := range []string{"/health", "/events"} {
		w := serve(h, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, "path=%s", path)
	}
}

func TestRequireKeyPreflightBypasses(t *testing.T) {
	h := Chain(okHandler(), RequireKey(func() (string, error) { return "s3cret", nil }))

	w := serve(h, http.MethodOptions, "/persona-scraper", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireKeyUnconfigured(t *testing.T) {
	h := Chain(okHandler(), RequireKey(func() (string, error) { return "", errors.New("no keychain") }))

	w := serve(h, http.MethodPost, "/persona-scraper", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})
	h := Chain(inner, RequestID)

	w := serve(h, http.MethodGet, "/health", nil)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
	require.Equal(t, w.Header().Get("X-Request-ID"), seen)

	w = serve(h, http.MethodGet, "/health", map[string]string{"X-Request-ID": "abc-123"})
	require.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover)

	w := serve(h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCorsPreflight(t *testing.T) {
	h := Chain(okHandler(), Cors)

	w := serve(h, http.MethodOptions, "/persona-scraper", map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Functions-Key")
}
