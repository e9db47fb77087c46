package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/moodwire/moodwire/internal/config"
	"github.com/moodwire/moodwire/internal/extract"
	"github.com/moodwire/moodwire/internal/feed"
	"github.com/moodwire/moodwire/internal/ingest"
	"github.com/moodwire/moodwire/internal/render"
	"github.com/moodwire/moodwire/internal/sentiment"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry := feed.DefaultRegistry()

	fetcher := feed.NewClient(time.Duration(cfg.FeedTimeoutSeconds)*time.Second, cfg.UserAgent)
	extractor := extract.NewExtractor(time.Duration(cfg.ArticleTimeoutSeconds)*time.Second, cfg.UserAgent)
	classifier := sentiment.NewHuggingFaceClient(cfg.ClassifierAPIKey, cfg.ClassifierModel)
	analyzer := sentiment.NewAnalyzer(classifier, cfg.ClassifierMaxLen, cfg.MinClassifyLen)

	pipeline := ingest.NewPipeline(registry, fetcher, extractor, analyzer, cfg.MaxArticlesPerTopic, cfg.MinBodyLen)

	ctx := context.Background()

	log.Println("Ingesting topics...")
	results := pipeline.IngestAll(ctx)

	render.TopicTables(os.Stdout, pipeline.Topics(), results)
}
