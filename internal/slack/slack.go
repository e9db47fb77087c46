package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moodwire/moodwire/internal/ingest"
	"github.com/moodwire/moodwire/internal/sentiment"
)

// Client posts topic digests to Slack
type Client struct {
	botToken   string
	channel    string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Slack client
func NewClient(botToken, channel string) *Client {
	return &Client{
		botToken: botToken,
		channel:  channel,
		baseURL:  "https://slack.com/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// chatPostMessageRequest represents a Slack chat.postMessage request
type chatPostMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// chatPostMessageResponse is the part of the Slack response we check
type chatPostMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SendTopicDigest posts the scored articles of one topic as a single
// message.
func (c *Client) SendTopicDigest(ctx context.Context, topic string, articles []ingest.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return c.sendMessage(ctx, c.formatDigest(topic, articles))
}

// formatDigest renders articles as a mood-marked list
func (c *Client) formatDigest(topic string, articles []ingest.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s* — %d article(s)\n", strings.ToUpper(topic), len(articles))

	for _, article := range articles {
		fmt.Fprintf(&b, "\n%s *%s* (%.2f)\n%s — %s\n",
			moodMarker(article.SentimentLabel),
			article.Title,
			article.SentimentScore,
			article.Source,
			article.URL,
		)
	}

	return b.String()
}

// moodMarker returns the emoji used for a sentiment label
func moodMarker(label sentiment.Label) string {
	switch label {
	case sentiment.Positive:
		return "🟢"
	case sentiment.Negative:
		return "🔴"
	default:
		return "⚪"
	}
}

// sendMessage posts a message via chat.postMessage
func (c *Client) sendMessage(ctx context.Context, text string) error {
	payload := chatPostMessageRequest{
		Channel: c.channel,
		Text:    text,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling Slack request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating Slack request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending Slack request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack API returned status %d", resp.StatusCode)
	}

	var slackResp chatPostMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&slackResp); err != nil {
		return fmt.Errorf("decoding Slack response: %w", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("Slack API error: %s", slackResp.Error)
	}

	return nil
}
