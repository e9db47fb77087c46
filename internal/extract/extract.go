package extract

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// defaultSelectors is the ordered fallback chain tried against an article
// page, most semantic first. Sites vary wildly in markup; a small fixed
// chain keeps extraction latency bounded without a full readability pass.
var defaultSelectors = []string{
	"article",
	"main",
	"div.content",
	"div.post-content",
	"div#content",
}

// Extractor fetches article pages and pulls out their main text content
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	selectors  []string
}

// NewExtractor creates an extractor with the default selector chain
func NewExtractor(timeout time.Duration, userAgent string) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		selectors: defaultSelectors,
	}
}

// Text fetches url and returns the text of the first matching content
// selector, with whitespace collapsed to single spaces and trimmed.
//
// Text never fails: any transport, status, or parse problem yields an
// empty string so the caller can fall back to feed-provided content.
func (e *Extractor) Text(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return ""
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	for _, selector := range e.selectors {
		node := doc.Find(selector).First()
		if node.Length() > 0 {
			return collapseWhitespace(node.Text())
		}
	}

	return ""
}

// collapseWhitespace reduces all runs of whitespace to single spaces and
// trims the result.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
