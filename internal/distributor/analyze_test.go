package distributor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenchainz-intel/internal/fetch"
)

func parse(t *testing.T, html string) []*goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return []*goquery.Document{d}
}

func TestAnalyzeCompliance(t *testing.T) {
	html := `<html><body>
<p>All products ship with an Environmental Product Declaration and LEED v4 credit mapping, third party verified.</p>
<a href="/docs/epd-summary.pdf">EPD summary</a>
<a href="https://example.com/leed-guide">LEED guide</a>
<a href="/contact">Contact us</a>
</body></html>`

	c := AnalyzeCompliance(parse(t, html), "https://supplier.test")

	assert.True(t, c.HasLEEDDocs)
	assert.True(t, c.HasEPDDocs)
	assert.False(t, c.HasHPDDocs)
	assert.True(t, c.ThirdPartyVerified)
	assert.Contains(t, c.DocumentLinks, "https://supplier.test/docs/epd-summary.pdf")
	assert.Contains(t, c.DocumentLinks, "https://example.com/leed-guide")
	assert.Contains(t, c.DownloadableFiles, "https://supplier.test/docs/epd-summary.pdf")
	// leed(20) + epd(20) + verified(20) + doc links(10) + files(10)
	assert.Equal(t, 80, c.EaseScore)
}

func TestEaseScoreCap(t *testing.T) {
	html := `<html><body>
<p>LEED certified, environmental product declaration, health product declaration, independently verified.</p>
<a href="/epd.pdf">EPD</a>
</body></html>`
	c := AnalyzeCompliance(parse(t, html), "https://supplier.test")
	assert.Equal(t, 100, c.EaseScore)
	assert.LessOrEqual(t, c.EaseScore, 100)
}

func TestSKURequiresTwoTrades(t *testing.T) {
	oneTrade := `<html><body><li>` +
		`DuraPanel All-in-One Board — an integrated solution for your flooring projects, easy to fit and clean.` +
		`</li></body></html>`
	inv := AnalyzeInventory(parse(t, oneTrade))
	assert.Empty(t, inv.MultiFunctionalSKUs, "one replaced-trade hit must not count as a SKU")

	twoTrades := `<html><body><li>` +
		`DuraPanel All-in-One Board — an integrated solution combining flooring and acoustic insulation in one panel.` +
		`</li></body></html>`
	inv = AnalyzeInventory(parse(t, twoTrades))
	require.Len(t, inv.MultiFunctionalSKUs, 1)
	sku := inv.MultiFunctionalSKUs[0]
	assert.Contains(t, sku.Name, "DuraPanel")
	assert.Contains(t, sku.ReplacedTrades, "flooring")
	assert.Contains(t, sku.ReplacedTrades, "acoustic")
}

func TestSKUBlockLengthLimits(t *testing.T) {
	short := `<html><body><li>2-in-1 flooring insulation</li></body></html>` // < 50 chars
	inv := AnalyzeInventory(parse(t, short))
	assert.Empty(t, inv.MultiFunctionalSKUs)

	long := `<html><body><li>all-in-one flooring and insulation ` + strings.Repeat("x ", 600) + `</li></body></html>`
	inv = AnalyzeInventory(parse(t, long))
	assert.Empty(t, inv.MultiFunctionalSKUs)
}

func TestStockAndLeadTime(t *testing.T) {
	html := `<html><body>
<p>Everything listed is in stock at our regional hubs.</p>
<p>Typical lead time is 5-7 business days for palletized orders.</p>
</body></html>`
	inv := AnalyzeInventory(parse(t, html))
	assert.True(t, inv.StockTransparency)
	assert.True(t, inv.LeadTimeVisible)

	bare := `<html><body><p>Call us for availability details any time.</p></body></html>`
	inv = AnalyzeInventory(parse(t, bare))
	assert.False(t, inv.StockTransparency)
	assert.False(t, inv.LeadTimeVisible)
}

func TestAnalyzeFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := &Analyzer{Client: fetch.New(0, "", nil)}
	_, err := a.Analyze(context.Background(), Distributor{Name: "Down Co", Website: srv.URL}, false)
	require.Error(t, err)
	assert.True(t, fetch.IsFetchError(err))
}

func TestBatchAnalyzeExcludesFailures(t *testing.T) {
	okPage := `<html><body><p>LEED certified products, third party verified, in stock today at depots.</p></body></html>`

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(okPage))
	}))
	defer good.Close()

	var hits atomic.Int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	a := &Analyzer{Client: fetch.New(0, "", nil)}
	ds := []Distributor{
		{Name: "Good One", Website: good.URL},
		{Name: "Bad One", Website: bad.URL},
		{Name: "Good Two", Website: good.URL},
	}

	out := a.BatchAnalyze(context.Background(), ds, BatchOptions{
		Concurrency:       2,
		RequestsPerSecond: 1000, // keep the test fast
	})

	assert.Len(t, out, 2, "failed distributor is excluded, not fatal")
	assert.EqualValues(t, 1, hits.Load())
	for _, intel := range out {
		assert.True(t, intel.Compliance.HasLEEDDocs)
	}
}
