package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Classifier settings
	ClassifierAPIKey string `json:"-"` // Don't expose in JSON
	ClassifierModel  string `json:"classifier_model"`
	ClassifierMaxLen int    `json:"classifier_max_len"`
	MinClassifyLen   int    `json:"min_classify_len"`
	MinBodyLen       int    `json:"min_body_len"`

	// Ingestion settings
	UserAgent             string `json:"user_agent"`
	MaxArticlesPerTopic   int    `json:"max_articles_per_topic"`
	FeedTimeoutSeconds    int    `json:"feed_timeout_seconds"`
	ArticleTimeoutSeconds int    `json:"article_timeout_seconds"`

	// Scheduling (server mode)
	IngestSchedule string `json:"ingest_schedule"` // cron expression

	// Slack settings (optional, server mode only)
	SlackBotToken string `json:"-"` // Don't expose in JSON
	SlackChannel  string `json:"slack_channel"`

	// Seen-store settings
	SeenStoreType   string `json:"seen_store_type"` // "memory" or "cloud-storage"
	SeenStoreBucket string `json:"seen_store_bucket"`
	SeenTTLHours    int    `json:"seen_ttl_hours"`

	// Auth settings
	AuthToken string `json:"-"` // Don't expose in JSON
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Host:                  getEnvOrDefault("HOST", "0.0.0.0"),
		ClassifierAPIKey:      getEnvOrDefault("CLASSIFIER_API_KEY", ""),
		ClassifierModel:       getEnvOrDefault("CLASSIFIER_MODEL", "nlptown/bert-base-multilingual-uncased-sentiment"),
		ClassifierMaxLen:      getEnvOrDefaultInt("CLASSIFIER_MAX_LEN", 512),
		MinClassifyLen:        getEnvOrDefaultInt("MIN_CLASSIFY_LEN", 5),
		MinBodyLen:            getEnvOrDefaultInt("MIN_BODY_LEN", 100),
		UserAgent:             getEnvOrDefault("USER_AGENT", "MoodWire Bot/1.0"),
		MaxArticlesPerTopic:   getEnvOrDefaultInt("MAX_ARTICLES_PER_TOPIC", 3),
		FeedTimeoutSeconds:    getEnvOrDefaultInt("FEED_TIMEOUT_SECONDS", 10),
		ArticleTimeoutSeconds: getEnvOrDefaultInt("ARTICLE_TIMEOUT_SECONDS", 4),
		IngestSchedule:        getEnvOrDefault("INGEST_SCHEDULE", "*/30 * * * *"),
		SlackBotToken:         getEnvOrDefault("SLACK_BOT_TOKEN", ""),
		SlackChannel:          getEnvOrDefault("SLACK_CHANNEL", "#news-sentiment"),
		SeenStoreType:         getEnvOrDefault("SEEN_STORE_TYPE", "memory"),
		SeenStoreBucket:       getEnvOrDefault("SEEN_STORE_BUCKET", "moodwire-seen-articles"),
		SeenTTLHours:          getEnvOrDefaultInt("SEEN_TTL_HOURS", 72),
		AuthToken:             getEnvOrDefault("AUTH_TOKEN", ""),
	}

	return config, config.validate()
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.ClassifierAPIKey == "" {
		return &ConfigError{Field: "CLASSIFIER_API_KEY", Message: "classifier API key is required"}
	}
	if c.MaxArticlesPerTopic <= 0 {
		return &ConfigError{Field: "MAX_ARTICLES_PER_TOPIC", Message: "must be positive"}
	}
	if c.ClassifierMaxLen <= 0 {
		return &ConfigError{Field: "CLASSIFIER_MAX_LEN", Message: "must be positive"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
