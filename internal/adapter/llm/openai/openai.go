// Package openai adapts the OpenAI chat completions API (and compatible
// endpoints) to the completion port.
package openai

import (
	"context"
	"fmt"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
)

const DefaultModel = "gpt-4o-mini"

var _ portcompletion.Client = (*Client)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	client openaiclient.Client
	model  string
}

func New(cfg Config) *Client {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(cfg.APIKey),
		// The dispatcher owns failure policy: one failed call fails the batch.
		openaioption.WithMaxRetries(0),
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		opts = append(opts, openaioption.WithBaseURL(base))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: openaiclient.NewClient(opts...), model: model}
}

func (c *Client) Provider() string { return "openai" }

func (c *Client) Complete(ctx context.Context, req portcompletion.Request) (portcompletion.Completion, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(c.model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.SystemMessage(req.SystemPrompt),
			openaiclient.UserMessage(req.UserPrompt),
		},
		Temperature: openaiclient.Float(req.Temperature),
		MaxTokens:   openaiclient.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		return portcompletion.Completion{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return portcompletion.Completion{}, fmt.Errorf("openai chat completion: no choices in response")
	}

	return portcompletion.Completion{
		Text:             resp.Choices[0].Message.Content,
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
