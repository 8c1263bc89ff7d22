package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyang/listingcraft/internal/domain/generation"
	"github.com/alanyang/listingcraft/internal/metrics"
	portcompletion "github.com/alanyang/listingcraft/internal/port/completion"
)

// ErrEmptyCompletion is returned when the provider answers with no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

// Dispatcher issues one completion per temperature and joins the results.
// A single failed call fails the whole dispatch; the remaining calls are cancelled.
type Dispatcher struct {
	client   portcompletion.Client
	provider string
	timeout  time.Duration
}

// NewDispatcher returns a Dispatcher. timeout bounds each completion call; zero disables it.
func NewDispatcher(client portcompletion.Client, timeout time.Duration) *Dispatcher {
	return &Dispatcher{client: client, provider: client.Provider(), timeout: timeout}
}

func (d *Dispatcher) Dispatch(ctx context.Context, kind generation.Kind, pair generation.PromptPair) ([]generation.Variation, error) {
	out := make([]generation.Variation, generation.VariationCount)

	g, gctx := errgroup.WithContext(ctx)
	for i, temp := range generation.Temperatures {
		g.Go(func() error {
			text, err := d.complete(gctx, kind, pair, temp)
			if err != nil {
				return fmt.Errorf("variation %d (temperature %.1f): %w", i, temp, err)
			}
			out[i] = generation.Variation{Index: i, Temperature: temp, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Dispatcher) complete(ctx context.Context, kind generation.Kind, pair generation.PromptPair, temp float64) (string, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := d.client.Complete(ctx, portcompletion.Request{
		SystemPrompt: pair.SystemPrompt,
		UserPrompt:   pair.UserPrompt,
		Temperature:  temp,
		MaxTokens:    kind.MaxTokens(),
	})
	metrics.LLMCallDuration.WithLabelValues(d.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	metrics.LLMTokensUsed.WithLabelValues(d.provider, res.Model, "prompt").Add(float64(res.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(d.provider, res.Model, "completion").Add(float64(res.CompletionTokens))

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
