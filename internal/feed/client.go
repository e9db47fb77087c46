package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry represents a single syndicated item from an RSS/Atom feed,
// prior to article body extraction.
type Entry struct {
	Title       string
	Link        string
	Description string
	Published   *time.Time
}

// Client fetches and parses syndication feeds
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new feed client
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves a feed URL and parses it into entries.
//
// Transport and HTTP-status failures return an error the caller may log
// and skip. A feed that downloads but fails to parse is treated as empty,
// not fatal: one broken feed must never abort a topic's ingestion.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		// Malformed feed: degrade to empty so the caller moves on to the
		// next source.
		return nil, nil
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entries = append(entries, Entry{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Published:   item.PublishedParsed,
		})
	}

	return entries, nil
}
