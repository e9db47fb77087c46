package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classification is the raw output of the external scoring model: a star
// rating label like "4 stars" and the model's confidence in it.
type Classification struct {
	Label      string
	Confidence float64
}

// Classifier abstracts the external sentiment model so any concrete
// implementation (hosted API, local model, rule-based) can sit behind
// the analyzer.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// HuggingFaceClient calls a hosted star-rating sentiment model via the
// Hugging Face inference API.
type HuggingFaceClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewHuggingFaceClient creates a new inference API client
func NewHuggingFaceClient(apiKey, model string) *HuggingFaceClient {
	return &HuggingFaceClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api-inference.huggingface.co/models",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewHuggingFaceClientWithBaseURL creates a client against a custom
// endpoint (used by tests and self-hosted inference servers).
func NewHuggingFaceClientWithBaseURL(apiKey, model, baseURL string) *HuggingFaceClient {
	c := NewHuggingFaceClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

// inferenceRequest represents the request structure for the inference API
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// inferenceScore is one ranked label in the inference API response
type inferenceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends text to the model and returns the top-ranked star label
func (c *HuggingFaceClient) Classify(ctx context.Context, text string) (Classification, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return Classification{}, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return Classification{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return Classification{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	// The API returns scores for every star label, ranked or not:
	// [[{"label": "5 stars", "score": 0.8}, ...]]
	var results [][]inferenceScore
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Classification{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 || len(results[0]) == 0 {
		return Classification{}, fmt.Errorf("no scores in response")
	}

	best := results[0][0]
	for _, score := range results[0][1:] {
		if score.Score > best.Score {
			best = score
		}
	}

	return Classification{Label: best.Label, Confidence: best.Score}, nil
}
