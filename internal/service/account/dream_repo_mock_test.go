package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ dreamRepo = &dreamRepoMock{}

type dreamRepoMock struct {
	ClaimAnonymousFunc func(ctx context.Context, userID uuid.UUID, anonymousID string) (int, error)

	calls struct {
		ClaimAnonymous []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			AnonymousID string
		}
	}
	lockClaimAnonymous sync.RWMutex
}

func (mock *dreamRepoMock) ClaimAnonymous(ctx context.Context, userID uuid.UUID, anonymousID string) (int, error) {
	if mock.ClaimAnonymousFunc == nil {
		panic("dreamRepoMock.ClaimAnonymousFunc: method is nil but dreamRepo.ClaimAnonymous was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		AnonymousID string
	}{Ctx: ctx, UserID: userID, AnonymousID: anonymousID}
	mock.lockClaimAnonymous.Lock()
	mock.calls.ClaimAnonymous = append(mock.calls.ClaimAnonymous, callInfo)
	mock.lockClaimAnonymous.Unlock()
	return mock.ClaimAnonymousFunc(ctx, userID, anonymousID)
}

func (mock *dreamRepoMock) ClaimAnonymousCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	AnonymousID string
} {
	mock.lockClaimAnonymous.RLock()
	calls := mock.calls.ClaimAnonymous
	mock.lockClaimAnonymous.RUnlock()
	return calls
}
