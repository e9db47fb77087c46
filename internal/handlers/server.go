package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/moodwire/moodwire/internal/cache"
	"github.com/moodwire/moodwire/internal/config"
	"github.com/moodwire/moodwire/internal/extract"
	"github.com/moodwire/moodwire/internal/feed"
	"github.com/moodwire/moodwire/internal/ingest"
	"github.com/moodwire/moodwire/internal/sentiment"
	"github.com/moodwire/moodwire/internal/slack"
)

// Notifier sends a topic digest to a notification channel
type Notifier interface {
	SendTopicDigest(ctx context.Context, topic string, articles []ingest.Article) error
}

// Server holds the HTTP server and its dependencies
type Server struct {
	config    *config.Config
	pipeline  *ingest.Pipeline
	seenStore cache.SeenStore
	notifier  Notifier
}

// NewServer creates a new HTTP server wired with the default registry
func NewServer(cfg *config.Config) (*Server, error) {
	registry := feed.DefaultRegistry()

	fetcher := feed.NewClient(time.Duration(cfg.FeedTimeoutSeconds)*time.Second, cfg.UserAgent)
	extractor := extract.NewExtractor(time.Duration(cfg.ArticleTimeoutSeconds)*time.Second, cfg.UserAgent)
	classifier := sentiment.NewHuggingFaceClient(cfg.ClassifierAPIKey, cfg.ClassifierModel)
	analyzer := sentiment.NewAnalyzer(classifier, cfg.ClassifierMaxLen, cfg.MinClassifyLen)

	pipeline := ingest.NewPipeline(registry, fetcher, extractor, analyzer, cfg.MaxArticlesPerTopic, cfg.MinBodyLen)

	seenStore, err := cache.NewStore(cfg.SeenStoreType, cfg.SeenStoreBucket, time.Duration(cfg.SeenTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("creating seen store: %w", err)
	}

	var notifier Notifier
	if cfg.SlackBotToken != "" {
		notifier = slack.NewClient(cfg.SlackBotToken, cfg.SlackChannel)
	}

	return &Server{
		config:    cfg,
		pipeline:  pipeline,
		seenStore: seenStore,
		notifier:  notifier,
	}, nil
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	api.HandleFunc("/health", s.healthHandler).Methods("GET")
	api.HandleFunc("/topics", s.topicsHandler).Methods("GET")
	api.HandleFunc("/topics/{topic}", s.ingestTopicHandler).Methods("GET")
	api.HandleFunc("/ingest", s.ingestAllHandler).Methods("POST")

	return r
}

// ProcessAndNotify ingests every topic and sends digests of unseen
// articles to the configured notifier. Already-seen articles are only
// filtered from notification, never from ingestion results.
func (s *Server) ProcessAndNotify(ctx context.Context) error {
	log.Println("Starting scheduled ingestion run...")

	results := s.pipeline.IngestAll(ctx)

	total := 0
	for _, topic := range s.pipeline.Topics() {
		articles := results[topic]
		total += len(articles)

		fresh, err := s.filterSeen(ctx, articles)
		if err != nil {
			return fmt.Errorf("filtering seen articles for %s: %w", topic, err)
		}

		if len(fresh) == 0 {
			log.Printf("No new articles for topic %s", topic)
			continue
		}

		if s.notifier != nil {
			if err := s.notifier.SendTopicDigest(ctx, topic, fresh); err != nil {
				log.Printf("Error sending digest for %s: %v", topic, err)
				continue
			}
		}

		for _, article := range fresh {
			key := cache.GenerateKey(article.URL)
			entry := &cache.SeenEntry{
				URL:   article.URL,
				Title: article.Title,
				Topic: article.Topic,
			}
			if err := s.seenStore.Mark(ctx, key, entry); err != nil {
				log.Printf("Error marking article as seen: %v", err)
			}
		}

		log.Printf("Notified %d new article(s) for topic %s", len(fresh), topic)
	}

	log.Printf("Ingestion run complete: %d article(s) across %d topic(s)", total, len(results))
	return nil
}

// filterSeen returns the articles whose URLs are not in the seen store
func (s *Server) filterSeen(ctx context.Context, articles []ingest.Article) ([]ingest.Article, error) {
	var fresh []ingest.Article

	for _, article := range articles {
		seen, err := s.seenStore.Contains(ctx, cache.GenerateKey(article.URL))
		if err != nil {
			return nil, err
		}
		if !seen {
			fresh = append(fresh, article)
		}
	}

	return fresh, nil
}

// Close releases server resources
func (s *Server) Close() error {
	return s.seenStore.Close()
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
