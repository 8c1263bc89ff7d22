// Package anthropic adapts the Anthropic Messages API to the completion port.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"

	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
)

const DefaultModel = "claude-haiku-4-5-20251001"

var _ portcompletion.Client = (*Client)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Client struct {
	client anthropicclient.Client
	model  string
}

func New(cfg Config) *Client {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(cfg.APIKey),
		anthropicoption.WithMaxRetries(0),
	}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		opts = append(opts, anthropicoption.WithBaseURL(base))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: anthropicclient.NewClient(opts...), model: model}
}

func (c *Client) Provider() string { return "anthropic" }

func (c *Client) Complete(ctx context.Context, req portcompletion.Request) (portcompletion.Completion, error) {
	msg, err := c.client.Messages.New(ctx, anthropicclient.MessageNewParams{
		Model:       anthropicclient.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		System:      []anthropicclient.TextBlockParam{{Text: req.SystemPrompt}},
		Messages:    []anthropicclient.MessageParam{anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(req.UserPrompt))},
		Temperature: anthropicclient.Float(req.Temperature),
	})
	if err != nil {
		return portcompletion.Completion{}, fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return portcompletion.Completion{
		Text:             text.String(),
		Model:            string(msg.Model),
		PromptTokens:     msg.Usage.InputTokens,
		CompletionTokens: msg.Usage.OutputTokens,
	}, nil
}
