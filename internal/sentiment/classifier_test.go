package sentiment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHuggingFaceClientClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer token header, got %q", auth)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[[
			{"label": "2 stars", "score": 0.15},
			{"label": "4 stars", "score": 0.62},
			{"label": "3 stars", "score": 0.23}
		]]`)
	}))
	defer server.Close()

	client := NewHuggingFaceClientWithBaseURL("test-key", "test-model", server.URL)

	result, err := client.Classify(context.Background(), "a pleasant article")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Label != "4 stars" {
		t.Errorf("Expected top-ranked label '4 stars', got %q", result.Label)
	}
	if result.Confidence != 0.62 {
		t.Errorf("Expected confidence 0.62, got %v", result.Confidence)
	}
}

func TestHuggingFaceClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHuggingFaceClientWithBaseURL("test-key", "test-model", server.URL)

	_, err := client.Classify(context.Background(), "some text")
	if err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestHuggingFaceClientMalformedResponse(t *testing.T) {
	tests := []string{
		`not json`,
		`[]`,
		`[[]]`,
	}

	for _, body := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}))

		client := NewHuggingFaceClientWithBaseURL("test-key", "test-model", server.URL)

		_, err := client.Classify(context.Background(), "some text")
		if err == nil {
			t.Errorf("Expected error for response body %q", body)
		}

		server.Close()
	}
}
