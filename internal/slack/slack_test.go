package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moodwire/moodwire/internal/ingest"
	"github.com/moodwire/moodwire/internal/sentiment"
)

func sampleArticles() []ingest.Article {
	return []ingest.Article{
		{
			Title:          "Markets rally on rate cut hopes",
			URL:            "http://example.com/1",
			Source:         "lesechos",
			Topic:          "economy",
			SentimentScore: 0.5,
			SentimentLabel: sentiment.Positive,
		},
		{
			Title:          "Factory closures announced",
			URL:            "http://example.com/2",
			Source:         "latribune",
			Topic:          "economy",
			SentimentScore: -1.0,
			SentimentLabel: sentiment.Negative,
		},
	}
}

func TestSendTopicDigest(t *testing.T) {
	var received chatPostMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Unexpected Authorization header: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer server.Close()

	client := NewClient("test-token", "#news-sentiment")
	client.baseURL = server.URL

	if err := client.SendTopicDigest(context.Background(), "economy", sampleArticles()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if received.Channel != "#news-sentiment" {
		t.Errorf("Expected channel '#news-sentiment', got %q", received.Channel)
	}
	if !strings.Contains(received.Text, "ECONOMY") {
		t.Errorf("Expected digest to name the topic, got %q", received.Text)
	}
	if !strings.Contains(received.Text, "Markets rally on rate cut hopes") {
		t.Errorf("Expected digest to contain article titles, got %q", received.Text)
	}
	if !strings.Contains(received.Text, "🔴") || !strings.Contains(received.Text, "🟢") {
		t.Errorf("Expected mood markers in digest, got %q", received.Text)
	}
}

func TestSendTopicDigestEmptyIsNoop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		fmt.Fprint(w, `{"ok": true}`)
	}))
	defer server.Close()

	client := NewClient("test-token", "#news-sentiment")
	client.baseURL = server.URL

	if err := client.SendTopicDigest(context.Background(), "economy", nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if called {
		t.Error("Expected no API call for an empty digest")
	}
}

func TestSendTopicDigestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok": false, "error": "channel_not_found"}`)
	}))
	defer server.Close()

	client := NewClient("test-token", "#missing")
	client.baseURL = server.URL

	err := client.SendTopicDigest(context.Background(), "economy", sampleArticles())
	if err == nil {
		t.Fatal("Expected error for Slack API failure")
	}
	if !strings.Contains(err.Error(), "channel_not_found") {
		t.Errorf("Expected Slack error code in message, got %v", err)
	}
}

func TestMoodMarker(t *testing.T) {
	tests := []struct {
		label    sentiment.Label
		expected string
	}{
		{sentiment.Positive, "🟢"},
		{sentiment.Negative, "🔴"},
		{sentiment.Neutral, "⚪"},
	}

	for _, test := range tests {
		if marker := moodMarker(test.label); marker != test.expected {
			t.Errorf("moodMarker(%s): expected %s, got %s", test.label, test.expected, marker)
		}
	}
}
