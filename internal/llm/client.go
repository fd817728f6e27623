// Package llm implements a minimal OpenAI-compatible chat-completions client
// with vision (image data URL) support.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

const defaultRequestTimeout = 120 * time.Second

// Client handles communication with an OpenAI-compatible completions API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Config holds client construction options.
type Config struct {
	APIKey  string
	BaseURL string // e.g. https://api.openai.com/v1
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewClient creates a new LLM client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigError("OPENAI_API_KEY not set", nil)
	}
	if cfg.BaseURL == "" {
		return nil, domain.ConfigError("LLM base URL is required", nil)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}, nil
}

// Message represents a chat message
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content (text or image)
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an image URL in the message
type ImageURL struct {
	URL string `json:"url"`
}

// ChatRequest represents the API request structure
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents the API response structure
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice
type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage holds the assistant content of one choice
type ChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextMessage builds a plain text chat message.
func TextMessage(role, text string) Message {
	return Message{
		Role:    role,
		Content: []ContentPart{{Type: "text", Text: text}},
	}
}

// VisionMessage builds a user message carrying a text prompt plus one image.
func VisionMessage(text, imageDataURL string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageDataURL}},
		},
	}
}

// EncodeImage reads a PNG file and returns it as a base64 data URL.
func EncodeImage(imagePath string) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", domain.IOError("failed to read image", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageData), nil
}

// Complete sends a chat-completions request and returns the content of the
// first choice. Transient failures (429, 5xx, transport errors) are retried
// with exponential backoff.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", domain.APIError("failed to marshal request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		// Clone the request body for each retry
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.APIError("failed to send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", domain.APIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.APIError("failed to read response body", err)
	}

	var apiResp ChatResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return "", domain.APIError("failed to parse API response", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", domain.APIError("no choices in API response", nil)
	}

	return apiResp.Choices[0].Message.Content, nil
}
