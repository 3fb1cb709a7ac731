package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// ErrCompletion marks any failure at the completion boundary: transport
// errors, non-2xx upstream statuses and malformed response bodies.
// Callers distinguish it with errors.Is and never retry automatically.
var ErrCompletion = errors.New("completion request failed")

// Completer is the completion boundary: exchange a conversation window and
// a sampling temperature for the model's reply text.
type Completer interface {
	Complete(ctx context.Context, window []*schema.Message, temperature float64) (string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	referer    string
	title      string
}

// ClientConfig carries the upstream connection settings.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

// NewClient builds a completion client. The API key is required; it is
// attached as a Bearer credential and never surfaces in responses or logs.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("upstream API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("upstream model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		referer:    cfg.Referer,
		title:      cfg.Title,
	}, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the window upstream and returns the raw reply text. The
// caller trims before persisting. There is no retry and no cancellation
// beyond the request context and client timeout.
func (c *Client) Complete(ctx context.Context, window []*schema.Message, temperature float64) (string, error) {
	messages := make([]wireMessage, 0, len(window))
	for _, msg := range window {
		messages = append(messages, wireMessage{Role: string(msg.Role), Content: msg.Content})
	}

	payload, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrCompletion, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: upstream status %d", ErrCompletion, resp.StatusCode)
	}

	var decoded completionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrCompletion, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%w: upstream error: %s", ErrCompletion, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: response carried no choices", ErrCompletion)
	}

	return decoded.Choices[0].Message.Content, nil
}
