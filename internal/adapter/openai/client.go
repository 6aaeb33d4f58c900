// Package openai wraps the image-generation API and the follow-up download
// of the generated asset. One method issues exactly one provider call;
// retry policy belongs to the visualization pipeline.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// Client calls the image-generation endpoint and downloads results.
type Client struct {
	http  *resty.Client
	model string
	size  string
	log   *slog.Logger
}

// NewClient creates an image-generation client from configuration.
func NewClient(cfg config.OpenAIConfig, logger *slog.Logger) *Client {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &Client{
		http:  c,
		model: cfg.Model,
		size:  cfg.Size,
		log:   logger.With("adapter", "openai"),
	}
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// GenerateImage issues one generation call and returns the provider-hosted
// URL of the result. A response with no image reference is an error, not a
// success. Safety-system refusals are wrapped in domain.ErrSafetyRejected
// so the caller can decide whether to retry with a reduced prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := imageRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    c.size,
		Quality: "hd",
		Style:   "vivid",
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/images/generations")
	if err != nil {
		return "", fmt.Errorf("image generation request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", c.mapError(resp)
	}

	var ir imageResponse
	if err := json.Unmarshal(resp.Body(), &ir); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}
	if len(ir.Data) == 0 || ir.Data[0].URL == "" {
		return "", fmt.Errorf("image response carries no image reference: %w", domain.ErrEmptyResponse)
	}

	return ir.Data[0].URL, nil
}

// Download fetches the generated image bytes from the provider-hosted URL.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("download image: %v: %w", err, domain.ErrDownloadFailed)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("download image: status %d: %w", resp.StatusCode(), domain.ErrDownloadFailed)
	}
	return resp.Body(), nil
}

// mapError classifies a non-success generation response. The raw provider
// body goes to the log only; callers see the provider message through the
// wrapped sentinel.
func (c *Client) mapError(resp *resty.Response) error {
	message := resp.Status()
	var er errorResponse
	if err := json.Unmarshal(resp.Body(), &er); err == nil && er.Error.Message != "" {
		message = er.Error.Message
	}

	c.log.Warn("image generation failed",
		slog.Int("status", resp.StatusCode()),
		slog.String("message", message),
	)

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "safety system") || er.Error.Code == "content_policy_violation":
		return fmt.Errorf("image provider: %s: %w", message, domain.ErrSafetyRejected)
	case resp.StatusCode() == http.StatusTooManyRequests || strings.Contains(lower, "quota"):
		return fmt.Errorf("image provider: %s: %w", message, domain.ErrQuotaExceeded)
	default:
		return fmt.Errorf("image provider: %s: %w", message, domain.ErrProvider)
	}
}
