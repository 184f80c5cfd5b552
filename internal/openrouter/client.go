package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/researchbot/researchbot/internal/core"
	"github.com/researchbot/researchbot/internal/registry"
)

func init() {
	registry.RegisterClient("default", func(apiKey, model string, temperature float64) (core.LLMClient, error) {
		return NewClient(apiKey, model, temperature), nil
	})
}

const BaseURL = "https://openrouter.ai/api/v1"

// Client calls the OpenRouter chat-completions API (OpenAI-compatible).
type Client struct {
	APIKey      string
	Model       string
	Temperature float64
	BaseURL     string
	HTTP        *http.Client
}

// NewClient creates a client with the given API key, model, and sampling
// temperature.
func NewClient(apiKey, model string, temperature float64) *Client {
	return &Client{
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		BaseURL:     BaseURL,
		HTTP:        http.DefaultClient,
	}
}

// ChatRequest is the request body for chat completions with tools.
type ChatRequest struct {
	Model       string                `json:"model"`
	Messages    []core.Message        `json:"messages"`
	Tools       []core.ToolDefinition `json:"tools,omitempty"`
	ToolChoice  interface{}           `json:"tool_choice,omitempty"` // "auto" or object
	Temperature float64               `json:"temperature,omitempty"`
}

// ChatResponse is the response from chat completions.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content   json.RawMessage `json:"content"`
			Role      string          `json:"role"`
			ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletionWithTools sends the transcript and tool schemas; returns the
// assistant content and any tool calls. Transient transport errors (network,
// 5xx, 429) are retried with exponential backoff inside the client; API-level
// errors are returned to the caller, which does not retry.
func (c *Client) ChatCompletionWithTools(ctx context.Context, messages []core.Message, tools []core.ToolDefinition) (content string, toolCalls []core.ToolCall, err error) {
	if c.APIKey == "" {
		return "", nil, fmt.Errorf("openrouter: API key not set")
	}
	if c.Model == "" {
		return "", nil, fmt.Errorf("openrouter: model not set")
	}
	body := ChatRequest{
		Model:       c.Model,
		Messages:    messages,
		Tools:       tools,
		Temperature: c.Temperature,
	}
	if len(tools) > 0 {
		body.ToolChoice = "auto"
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", nil, err
	}

	maxRetries := 3
	backoff := 1 * time.Second
	var resp *http.Response
	var lastErr error
	var bodyBytes []byte

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[OPENROUTER] Retry %d/%d after %v...", attempt, maxRetries, backoff)
			select {
			case <-ctx.Done():
				return "", nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(raw))
		if err != nil {
			return "", nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, lastErr = c.HTTP.Do(req)
		if lastErr != nil {
			log.Printf("[OPENROUTER] Network error: %v", lastErr)
			continue
		}

		bodyBytes, _ = io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			log.Printf("[OPENROUTER] Retryable error: HTTP %d", resp.StatusCode)
			continue
		}
		break
	}

	if lastErr != nil {
		return "", nil, fmt.Errorf("openrouter: request failed after %d retries: %w", maxRetries, lastErr)
	}
	if resp == nil {
		return "", nil, fmt.Errorf("openrouter: request failed after %d retries", maxRetries)
	}

	var out ChatResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", nil, fmt.Errorf("openrouter: decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("openrouter: HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}
	if out.Error != nil {
		return "", nil, fmt.Errorf("openrouter: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", nil, fmt.Errorf("openrouter: no choices in response")
	}
	msg := out.Choices[0].Message
	return parseContent(msg.Content), msg.ToolCalls, nil
}

// parseContent parses API content that may be a string, null, or an array of
/// parts (e.g. [{"type":"text","text":"..."}]).
func parseContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []map[string]interface{}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		if t, ok := p["text"].(string); ok {
			b.WriteString(t)
		}
	}
	return b.String()
}
