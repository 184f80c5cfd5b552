package core

import (
	"context"
)

// LLMClient abstracts the low-level chat-completions API client (OpenRouter,
// local LLM, etc).
type LLMClient interface {
	ChatCompletionWithTools(ctx context.Context, messages []Message, tools []ToolDefinition) (string, []ToolCall, error)
}

// ToolExecutor abstracts the tool registry the agent dispatches into.
// Execute never returns a tool failure as an error: tool-body failures come
// back as a JSON payload with an "error" key so the model can adapt.
type ToolExecutor interface {
	Execute(ctx context.Context, name, argsJSON string) (string, error)
	Definitions() []ToolDefinition
	Notes() []string
	Reset()
}

// SearchProvider executes a query and returns up to the provider's limit of
// ordered results. Failures are retryable errors.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// PageFetcher retrieves a URL and returns its plain-text content with markup
// stripped. Failures (network, HTTP status, parse) are retryable errors.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
