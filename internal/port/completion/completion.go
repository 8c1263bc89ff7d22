package completion

import "context"

// Request is a single system/user message pair plus sampling parameters.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Completion is the text of one completion plus usage reported by the provider.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int64
	CompletionTokens int64
}

// Client issues one completion per call.
// Implementations return an error on transport failure, non-2xx status, or a body
// with no text. OpenAI and Anthropic adapters are both valid substitutes.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
	// Provider names the backend for logs and metrics ("openai", "anthropic").
	Provider() string
}
