package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pablasso/sensei/internal/schedule"
)

// Defaults for the chat-completion request. Low temperature keeps the
// analysis literal instead of creative.
const (
	DefaultBaseURL     = "https://api.openai.com"
	DefaultModel       = "gpt-4o"
	DefaultMaxTokens   = 2048
	DefaultTemperature = 0.2

	// DefaultRequestTimeout bounds a single consult round-trip.
	DefaultRequestTimeout = 90 * time.Second
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
// The zero values of Model, BaseURL, MaxTokens and Temperature fall back to
// the package defaults, so Client{APIKey: key} is a usable client.
type Client struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64

	// HTTPClient can be replaced in tests. When nil, a client with
	// DefaultRequestTimeout is used.
	HTTPClient *http.Client
}

// NewClient returns a client using the package defaults.
func NewClient(apiKey string) *Client {
	return &Client{APIKey: apiKey}
}

// chatRequest is the chat-completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Consult builds the prompt for tasks and question, sends it in a single
// chat-completion request, and returns the reply text. Preconditions are
// checked before any network I/O: ErrEmptySchedule when tasks is empty,
// ErrMissingCredential when the API key is blank. Failures map to
// *UpstreamError (non-success status or unusable body) or *TransportError
// (the request never completed). No retries, no streaming.
func (c *Client) Consult(ctx context.Context, tasks []schedule.Task, question string) (string, error) {
	if len(tasks) == 0 {
		return "", ErrEmptySchedule
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrMissingCredential
	}

	prompt, err := BuildPrompt(tasks, question)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model(),
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens(),
		Temperature: c.temperature(),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient().Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&errResp)
		return "", &UpstreamError{StatusCode: res.StatusCode, Message: errResp.Error.Message}
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return "", &UpstreamError{StatusCode: res.StatusCode, Message: "chat service returned an unreadable response"}
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{StatusCode: res.StatusCode, Message: "chat service returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}

func (c *Client) temperature() float64 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return DefaultTemperature
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultRequestTimeout}
}
