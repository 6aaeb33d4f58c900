// Package account merges anonymously recorded dreams into a durable account
// once the dreamer signs up.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// dreamRepo defines the dream repository interface needed by the account service.
type dreamRepo interface {
	ClaimAnonymous(ctx context.Context, userID uuid.UUID, anonymousID string) (int, error)
}

// Service implements account merge operations.
type Service struct {
	log    *slog.Logger
	dreams dreamRepo
}

// NewService creates a new account service instance.
func NewService(logger *slog.Logger, dreams dreamRepo) *Service {
	return &Service{
		log:    logger.With("service", "account"),
		dreams: dreams,
	}
}

type MergeInput struct {
	AnonymousID string
	Requester   domain.RequesterIdentity
}

// MergeAnonymous reassigns every dream carrying the given anonymous id to
// the authenticated requester, clearing the anonymous marker. Returns the
// number of dreams claimed. Merging nothing is a success, not an error.
func (s *Service) MergeAnonymous(ctx context.Context, input MergeInput) (int, error) {
	if s.dreams == nil {
		return 0, domain.ErrNotConfigured
	}
	if input.AnonymousID == "" {
		return 0, domain.NewValidationError("anonymousUserId", "is required")
	}
	if !input.Requester.IsAuthenticated() {
		return 0, fmt.Errorf("%w: authentication required", domain.ErrUnauthorized)
	}

	merged, err := s.dreams.ClaimAnonymous(ctx, *input.Requester.UserID, input.AnonymousID)
	if err != nil {
		return 0, fmt.Errorf("merge accounts: %w", err)
	}

	s.log.InfoContext(ctx, "anonymous dreams merged",
		slog.String("user_id", input.Requester.UserID.String()), slog.Int("count", merged))
	return merged, nil
}
