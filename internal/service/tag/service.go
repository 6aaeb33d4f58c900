// Package tag exposes the popular-tag listing used by the explore surface.
package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// defaultLimit keeps the explore widget small unless the caller asks for more.
const defaultLimit = 3

// tagRepo defines the tag repository interface needed by the tag service.
type tagRepo interface {
	Popular(ctx context.Context, tagType *domain.TagType, limit int) ([]domain.PopularTag, error)
}

// Service implements tag listing operations.
type Service struct {
	log  *slog.Logger
	tags tagRepo
}

// NewService creates a new tag service instance.
func NewService(logger *slog.Logger, tags tagRepo) *Service {
	return &Service{
		log:  logger.With("service", "tag"),
		tags: tags,
	}
}

type PopularInput struct {
	// Type filters to a single tag type when set.
	Type string
	// Limit caps the result; zero or negative means the default.
	Limit int
}

// Popular lists the most-used tags, ordered by dream count descending and
// name ascending.
func (s *Service) Popular(ctx context.Context, input PopularInput) ([]domain.PopularTag, error) {
	if s.tags == nil {
		return nil, domain.ErrNotConfigured
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var tagType *domain.TagType
	if input.Type != "" {
		tt := domain.TagType(input.Type)
		if !tt.Valid() {
			return nil, domain.NewValidationError("type", "must be one of symbol, archetype, theme")
		}
		tagType = &tt
	}

	tags, err := s.tags.Popular(ctx, tagType, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular tags: %w", err)
	}
	return tags, nil
}
