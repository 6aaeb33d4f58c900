// Package analysis turns raw dream narratives into structured interpretations.
//
// The pipeline is prompt construction, model invocation, response
// normalization and finally persistence. Persistence is optional: when the
// service is built without repositories the interpretation is still returned
// to the caller, it just is not stored anywhere.
package analysis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// textGenerator defines the completion interface needed by the analysis
// service. Implementations enforce their own invocation timeout and return
// domain.ErrTimeout when it elapses.
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// dreamRepo defines the dream repository interface needed by the analysis service.
type dreamRepo interface {
	Insert(ctx context.Context, dream *domain.Dream) (*domain.Dream, error)
	ListByOwner(ctx context.Context, owner domain.RequesterIdentity) ([]*domain.Dream, error)
}

// tagRepo defines the tag repository interface needed by the analysis service.
type tagRepo interface {
	UpsertByName(ctx context.Context, name string, tagType domain.TagType) (*domain.Tag, error)
	LinkDream(ctx context.Context, dreamID uuid.UUID, tagIDs []int64) error
}

// Service implements dream interpretation operations.
type Service struct {
	log    *slog.Logger
	gen    textGenerator
	dreams dreamRepo
	tags   tagRepo
}

// NewService creates a new analysis service instance. dreams and tags may be
// nil, in which case interpretations are returned without being persisted.
func NewService(logger *slog.Logger, gen textGenerator, dreams dreamRepo, tags tagRepo) *Service {
	return &Service{
		log:    logger.With("service", "analysis"),
		gen:    gen,
		dreams: dreams,
		tags:   tags,
	}
}
