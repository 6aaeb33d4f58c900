package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

type VisualizeInput struct {
	DreamID   uuid.UUID
	Requester domain.RequesterIdentity
}

// VisualizeDream generates and attaches an image to a dream the requester
// owns. If the dream already carries an image the stored record is returned
// untouched, so repeated requests never burn provider credits.
func (s *Service) VisualizeDream(ctx context.Context, input VisualizeInput) (*domain.Dream, error) {
	if input.DreamID == uuid.Nil {
		return nil, domain.NewValidationError("dreamId", "is required")
	}

	if s.dreams == nil || s.images == nil || s.assets == nil {
		return nil, domain.ErrNotConfigured
	}

	dream, err := s.dreams.GetByID(ctx, input.DreamID)
	if err != nil {
		return nil, fmt.Errorf("fetch dream: %w", err)
	}

	if !dream.IsOwnedBy(input.Requester) {
		return nil, fmt.Errorf("%w: you can only generate visualizations for your own dreams", domain.ErrForbidden)
	}

	if dream.ImageURL != nil && *dream.ImageURL != "" {
		s.log.InfoContext(ctx, "dream already has an image", slog.String("dream_id", dream.ID.String()))
		return dream, nil
	}

	remoteURL, err := s.generateImage(ctx, dream)
	if err != nil {
		return nil, err
	}

	data, err := s.images.Download(ctx, remoteURL)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}

	key := fmt.Sprintf("dream-%s-%d.png", dream.ID, time.Now().UnixNano())
	if err := s.assets.Upload(ctx, key, data, "image/png"); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	publicURL := s.assets.PublicURL(key)

	updated, err := s.dreams.SetImageURL(ctx, dream.ID, publicURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordUpdateFailed, err)
	}

	s.log.InfoContext(ctx, "dream image generated",
		slog.String("dream_id", dream.ID.String()), slog.String("image_url", publicURL))
	return updated, nil
}

// generateImage calls the provider with the composed prompt, retrying once
// with the reduced variant when, and only when, the safety system rejected
// the first attempt. Any other failure class is terminal.
func (s *Service) generateImage(ctx context.Context, dream *domain.Dream) (string, error) {
	prompt := composePrompt(dream, s.cfg)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		url, err := s.images.GenerateImage(ctx, prompt)
		if err == nil {
			return url, nil
		}
		lastErr = err

		if !errors.Is(err, domain.ErrSafetyRejected) || attempt == s.cfg.MaxAttempts {
			break
		}
		s.log.WarnContext(ctx, "image prompt rejected by safety system, retrying with reduced prompt",
			slog.String("dream_id", dream.ID.String()))
		prompt = composeSaferPrompt(dream, s.cfg)
	}
	return "", fmt.Errorf("generate image: %w", lastErr)
}
