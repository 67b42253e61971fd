// Package fetch owns the outbound HTTP path: one shared client with a
// fixed timeout, a redirect cap, an identified user-agent, and per-host
// rate limiting.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "GreenChainzBot/1.0 (+https://greenchainz.com/bot)"
	maxRedirects     = 5
)

// Error wraps any upstream fetch failure so handlers can map it to the
// scraping-failed response shape.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// IsFetchError reports whether err came from the outbound fetch path.
func IsFetchError(err error) bool {
	var fe *Error
	return errors.As(err, &fe)
}

type Client struct {
	hc        *http.Client
	userAgent string
	limiter   *HostLimiter
}

// New builds the shared scrape client. limiter may be nil (tests).
func New(timeout time.Duration, userAgent string, limiter *HostLimiter) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		hc: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		limiter:   limiter,
	}
}

// Document fetches url and parses the response body as HTML. Non-2xx
// statuses, transport errors, and parse errors all come back as *Error.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, &Error{URL: url, Err: err}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{URL: url, Err: fmt.Errorf("status %d", res.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}
