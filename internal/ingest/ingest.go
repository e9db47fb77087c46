package ingest

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moodwire/moodwire/internal/feed"
	"github.com/moodwire/moodwire/internal/sentiment"
)

// Article is a single ingested article. An Article is immutable once
// constructed; Body is empty only when extraction failed or was skipped.
type Article struct {
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	Source         string          `json:"source"`
	Topic          string          `json:"topic"`
	PublishedAt    time.Time       `json:"published_at"`
	Body           string          `json:"body"`
	SentimentScore float64         `json:"sentiment_score"`
	SentimentLabel sentiment.Label `json:"sentiment_label"`
}

// FeedFetcher retrieves feed entries for a feed URL
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]feed.Entry, error)
}

// TextExtractor pulls article body text from an article page
type TextExtractor interface {
	Text(ctx context.Context, url string) string
}

// Analyzer scores text on the [-1, 1] polarity scale
type Analyzer interface {
	Analyze(ctx context.Context, text string) (float64, sentiment.Label)
}

// Pipeline orchestrates fetch -> extract -> classify per topic.
//
// All external calls are isolated per source and per entry: a broken feed
// or a bad article degrades to a smaller result, never to a failed run.
type Pipeline struct {
	registry    *feed.Registry
	fetcher     FeedFetcher
	extractor   TextExtractor
	analyzer    Analyzer
	maxPerTopic int
	minBodyLen  int
	now         func() time.Time
}

// NewPipeline creates an ingestion pipeline over the given collaborators
func NewPipeline(registry *feed.Registry, fetcher FeedFetcher, extractor TextExtractor, analyzer Analyzer, maxPerTopic, minBodyLen int) *Pipeline {
	return &Pipeline{
		registry:    registry,
		fetcher:     fetcher,
		extractor:   extractor,
		analyzer:    analyzer,
		maxPerTopic: maxPerTopic,
		minBodyLen:  minBodyLen,
		now:         time.Now,
	}
}

// Topics returns the topic keys the pipeline will ingest, in order
func (p *Pipeline) Topics() []string {
	return p.registry.Topics()
}

// IngestTopic collects up to the per-topic cap of scored articles for one
// topic, in registry-then-feed-entry order. An unknown topic yields an
// empty result, not an error. On context cancellation the articles
// completed so far are returned.
func (p *Pipeline) IngestTopic(ctx context.Context, topic string) []Article {
	articles := make([]Article, 0, p.maxPerTopic)

	for _, source := range p.registry.Sources(topic) {
		if len(articles) >= p.maxPerTopic {
			break
		}

		entries, err := p.fetcher.Fetch(ctx, source.URL)
		if err != nil {
			log.Printf("Skipping source %s (%s): %v", source.Name, topic, err)
			continue
		}

		for _, entry := range entries {
			if len(articles) >= p.maxPerTopic {
				break
			}
			if ctx.Err() != nil {
				return articles
			}

			article, ok := p.processEntry(ctx, topic, source.Name, entry)
			if !ok {
				continue
			}
			articles = append(articles, article)
		}
	}

	return articles
}

// IngestAll runs every registered topic and returns topic -> articles
func (p *Pipeline) IngestAll(ctx context.Context) map[string][]Article {
	results := make(map[string][]Article, len(p.registry.Topics()))
	for _, topic := range p.registry.Topics() {
		results[topic] = p.IngestTopic(ctx, topic)
	}
	return results
}

// processEntry turns one feed entry into a scored Article. A false return
// means the entry was skipped; one bad entry must not drop the rest of
// the topic.
func (p *Pipeline) processEntry(ctx context.Context, topic, sourceName string, entry feed.Entry) (Article, bool) {
	title := strings.TrimSpace(entry.Title)
	if title == "" || entry.Link == "" {
		return Article{}, false
	}

	publishedAt := p.now()
	if entry.Published != nil {
		publishedAt = *entry.Published
	}

	body := p.extractor.Text(ctx, entry.Link)

	// Short extractions are usually cookie banners or teasers that would
	// mislead the classifier more than the feed's own summary. The
	// threshold counts characters, not bytes; accented French bodies are
	// nearly double their character count in bytes.
	text := body
	if utf8.RuneCountInString(body) <= p.minBodyLen {
		text = title + " " + entry.Description
	}

	score, label := p.analyzer.Analyze(ctx, text)

	return Article{
		Title:          title,
		URL:            entry.Link,
		Source:         sourceName,
		Topic:          topic,
		PublishedAt:    publishedAt,
		Body:           body,
		SentimentScore: score,
		SentimentLabel: label,
	}, true
}
