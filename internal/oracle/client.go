package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/schedassist/sched-assist-api/pkg/config"
)

// Chat message roles understood by OpenAI-compatible endpoints.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrNoModel is returned when no model identifier is configured. The server
// still starts without one; only oracle calls fail.
var ErrNoModel = errors.New("oracle: no model configured")

// Message is one role-tagged prompt segment.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls an OpenAI-compatible chat completions API with low-randomness
// sampling to bias the model toward consistent JSON output.
type Client struct {
	http        *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	topP        float32
}

// NewClient builds a client from the oracle configuration.
func NewClient(cfg config.OracleConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}
}

type chatReq struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	TopP        float32   `json:"top_p"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the ordered messages and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.model == "" {
		return "", ErrNoModel
	}

	body, err := json.Marshal(chatReq{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		TopP:        c.topP,
	})
	if err != nil {
		return "", fmt.Errorf("oracle: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("oracle: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("oracle: unexpected status %s", resp.Status)
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("oracle: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("oracle: empty completion")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
