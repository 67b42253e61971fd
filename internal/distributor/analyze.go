package distributor

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"greenchainz-intel/internal/fetch"
)

// Keyword sets indicating each documentation family. Substring checks
// against the lower-cased page text, same contract as the persona
// extractor.
var (
	leedKeywords = []string{"leed", "leed certified", "leed credits", "leed v4"}
	epdKeywords  = []string{"epd", "environmental product declaration"}
	hpdKeywords  = []string{"hpd", "health product declaration"}
	verifiedKeywords = []string{
		"third party verified", "third-party verified",
		"independently verified", "ul verified", "scs certified",
	}
)

var docLinkRe = regexp.MustCompile(`(?i)(leed|epd|hpd)`)
var fileLinkRe = regexp.MustCompile(`(?i)\.(pdf|xlsx?|csv)(\?|$)`)

// Phrases that flag a multi-functional product block.
var multiFunctionalPhrases = []string{
	"multi-functional", "multifunctional", "multi-purpose",
	"all-in-one", "3-in-1", "2-in-1", "replaces multiple",
	"combined system", "integrated solution", "eliminates the need",
}

// The trades a multi-functional SKU can replace. A block must hit at
// least two distinct trades to count as a SKU.
var replacedTrades = []string{
	"flooring", "insulation", "structural", "vapor barrier", "acoustic", "waterproofing",
}

const (
	minSKUBlockLen = 50
	maxSKUBlockLen = 1000
	maxSKUs        = 10
	minTradeHits   = 2
)

var stockKeywords = []string{"in stock", "stock levels", "available now", "inventory status", "real-time availability"}
var leadTimeKeywords = []string{"lead time", "ships within", "delivery in", "dispatched within"}
var leadTimeRe = regexp.MustCompile(`(?i)\d+\s*(?:-\s*\d+\s*)?(?:business\s+)?(?:days?|weeks?)`)

type Analyzer struct {
	Client *fetch.Client
}

// Analyze fetches the distributor's website and produces a full
// intelligence record. Fetch failure is fatal for this call and is not
// retried here; batch callers decide what to do with it.
func (a *Analyzer) Analyze(ctx context.Context, d Distributor, deepScan bool) (Intelligence, error) {
	doc, err := a.Client.Document(ctx, d.Website)
	if err != nil {
		return Intelligence{}, err
	}

	docs := []*goquery.Document{doc}
	if deepScan {
		docs = append(docs, a.followInterestingLinks(ctx, doc, d.Website)...)
	}

	comp := AnalyzeCompliance(docs, d.Website)
	inv := AnalyzeInventory(docs)
	now := time.Now().UTC()

	return Intelligence{
		Distributor: d,
		Compliance:  comp,
		Inventory:   inv,
		Score:       ComputeScore(comp, inv, now),
		AnalyzedAt:  now,
	}, nil
}

// followInterestingLinks pulls up to three same-host pages whose anchor
// text suggests product or sustainability content. Failures are ignored;
// a deep scan is opportunistic.
func (a *Analyzer) followInterestingLinks(ctx context.Context, doc *goquery.Document, base string) []*goquery.Document {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	var targets []string
	seen := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label := strings.ToLower(sel.Text())
		if !strings.Contains(label, "product") &&
			!strings.Contains(label, "sustainability") &&
			!strings.Contains(label, "documentation") {
			return true
		}
		href, _ := sel.Attr("href")
		abs := resolveHref(baseURL, href)
		if abs == "" || seen[abs] {
			return true
		}
		u, err := url.Parse(abs)
		if err != nil || u.Host != baseURL.Host {
			return true
		}
		seen[abs] = true
		targets = append(targets, abs)
		return len(targets) < 3
	})

	var out []*goquery.Document
	for _, t := range targets {
		if sub, err := a.Client.Document(ctx, t); err == nil {
			out = append(out, sub)
		}
	}
	return out
}

// AnalyzeCompliance checks the fixed documentation keyword sets and
// harvests doc-associated links, then accumulates the ease score from six
// weighted conditions (20/20/20/20/10/10, capped at 100).
func AnalyzeCompliance(docs []*goquery.Document, base string) Compliance {
	var c Compliance

	var text strings.Builder
	for _, d := range docs {
		text.WriteString(strings.ToLower(d.Text()))
		text.WriteByte(' ')
	}
	page := text.String()

	c.HasLEEDDocs = containsAny(page, leedKeywords)
	c.HasEPDDocs = containsAny(page, epdKeywords)
	c.HasHPDDocs = containsAny(page, hpdKeywords)
	c.ThirdPartyVerified = containsAny(page, verifiedKeywords)

	baseURL, _ := url.Parse(base)
	seen := map[string]bool{}
	for _, d := range docs {
		d.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			abs := resolveHref(baseURL, href)
			if abs == "" || seen[abs] {
				return
			}
			label := sel.Text()
			isDoc := docLinkRe.MatchString(abs) || docLinkRe.MatchString(label)
			isFile := fileLinkRe.MatchString(abs)
			if !isDoc && !isFile {
				return
			}
			seen[abs] = true
			if isDoc {
				c.DocumentLinks = append(c.DocumentLinks, abs)
			}
			if isFile {
				c.DownloadableFiles = append(c.DownloadableFiles, abs)
			}
		})
	}

	ease := 0
	if c.HasLEEDDocs {
		ease += 20
	}
	if c.HasEPDDocs {
		ease += 20
	}
	if c.HasHPDDocs {
		ease += 20
	}
	if c.ThirdPartyVerified {
		ease += 20
	}
	if len(c.DocumentLinks) > 0 {
		ease += 10
	}
	if len(c.DownloadableFiles) > 0 {
		ease += 10
	}
	if ease > 100 {
		ease = 100
	}
	c.EaseScore = ease

	return c
}

// AnalyzeInventory walks block elements for multi-functional product
// phrases and stock/lead-time transparency signals.
func AnalyzeInventory(docs []*goquery.Document) Inventory {
	var inv Inventory

	seen := map[string]bool{}
	for _, d := range docs {
		d.Find("p, div, section, article, li, td").Each(func(_ int, sel *goquery.Selection) {
			if len(inv.MultiFunctionalSKUs) >= maxSKUs {
				return
			}
			block := strings.TrimSpace(sel.Text())
			if len(block) < minSKUBlockLen || len(block) > maxSKUBlockLen {
				return
			}
			lower := strings.ToLower(block)
			if !containsAny(lower, multiFunctionalPhrases) {
				return
			}

			var trades []string
			for _, trade := range replacedTrades {
				if strings.Contains(lower, trade) {
					trades = append(trades, trade)
				}
			}
			if len(trades) < minTradeHits {
				return
			}

			name := firstLine(block)
			if seen[name] {
				return
			}
			seen[name] = true
			inv.MultiFunctionalSKUs = append(inv.MultiFunctionalSKUs, SKU{
				Name:           name,
				ReplacedTrades: trades,
				Snippet:        snippet(block, 200),
			})
		})

		lower := strings.ToLower(d.Text())
		if containsAny(lower, stockKeywords) {
			inv.StockTransparency = true
		}
		if containsAny(lower, leadTimeKeywords) && leadTimeRe.MatchString(lower) {
			inv.LeadTimeVisible = true
		}
	}

	return inv
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}

func firstLine(block string) string {
	for _, ln := range strings.Split(block, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			return snippet(t, 80)
		}
	}
	return ""
}

func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n]
}
