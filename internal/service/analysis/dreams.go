package analysis

import (
	"context"
	"fmt"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// ListDreams returns the requester's dream history, newest first. A
// requester with no identity signal has no history to list.
func (s *Service) ListDreams(ctx context.Context, requester domain.RequesterIdentity) ([]*domain.Dream, error) {
	if s.dreams == nil {
		return nil, domain.ErrNotConfigured
	}
	if !requester.IsAuthenticated() && !requester.IsAnonymous() {
		return nil, domain.NewValidationError("identity", "user or anonymous id is required")
	}
	dreams, err := s.dreams.ListByOwner(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	return dreams, nil
}
