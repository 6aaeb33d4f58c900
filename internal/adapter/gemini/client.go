// Package gemini wraps the Gemini text-generation API behind the single
// call the interpretation pipeline needs.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// Client calls the Gemini API with a fixed wall-clock budget per request.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Gemini client from configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logger.With("adapter", "gemini"),
	}, nil
}

type generateResult struct {
	text string
	err  error
}

// Generate sends the prompt and returns the model's text. The call races a
// fixed timeout: whichever settles first wins. The losing call is not
// cancelled, its result is simply discarded.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resultCh := make(chan generateResult, 1)

	start := time.Now()
	go func() {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			resultCh <- generateResult{err: err}
			return
		}
		resultCh <- generateResult{text: resp.Text()}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", c.mapError(res.err)
		}
		if res.text == "" {
			return "", fmt.Errorf("model %s: %w", c.model, domain.ErrEmptyResponse)
		}
		c.log.Debug("generation complete",
			slog.Duration("elapsed", time.Since(start)),
			slog.Int("chars", len(res.text)),
		)
		return res.text, nil
	case <-timer.C:
		c.log.Warn("generation timed out", slog.Duration("timeout", c.timeout))
		return "", fmt.Errorf("model %s after %s: %w", c.model, c.timeout, domain.ErrTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// mapError classifies provider failures for the transport layer. The raw
// message is preserved for logs but callers only see the sentinel.
func (c *Client) mapError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("gemini: %v: %w", err, domain.ErrQuotaExceeded)
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthenticated"):
		return fmt.Errorf("gemini: %v: %w", err, domain.ErrUnauthorized)
	default:
		return fmt.Errorf("gemini: %v: %w", err, domain.ErrProvider)
	}
}
