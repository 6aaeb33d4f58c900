// Package vision renders a stored dream interpretation into a symbolic
// tarot-style image: compose a sanitized prompt, call the image provider
// with a one-shot safety retry, then download, store and link the asset.
package vision

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// dreamRepo defines the dream repository interface needed by the vision service.
type dreamRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dream, error)
	SetImageURL(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error)
}

// imageGenerator defines the image provider interface needed by the vision
// service. GenerateImage returns the provider-hosted URL of the rendered
// image; Download fetches its bytes.
type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// assetStore defines the object storage interface needed by the vision service.
type assetStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// Service implements dream visualization operations.
type Service struct {
	log    *slog.Logger
	cfg    config.VisionConfig
	dreams dreamRepo
	images imageGenerator
	assets assetStore
}

// NewService creates a new vision service instance.
func NewService(logger *slog.Logger, cfg config.VisionConfig, dreams dreamRepo, images imageGenerator, assets assetStore) *Service {
	return &Service{
		log:    logger.With("service", "vision"),
		cfg:    cfg,
		dreams: dreams,
		images: images,
		assets: assets,
	}
}
