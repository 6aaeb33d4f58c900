package analysis

import (
	"context"
	"sync"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

var _ dreamRepo = &dreamRepoMock{}

type dreamRepoMock struct {
	InsertFunc      func(ctx context.Context, dream *domain.Dream) (*domain.Dream, error)
	ListByOwnerFunc func(ctx context.Context, owner domain.RequesterIdentity) ([]*domain.Dream, error)

	calls struct {
		Insert []struct {
			Ctx   context.Context
			Dream *domain.Dream
		}
		ListByOwner []struct {
			Ctx   context.Context
			Owner domain.RequesterIdentity
		}
	}
	lockInsert      sync.RWMutex
	lockListByOwner sync.RWMutex
}

func (mock *dreamRepoMock) Insert(ctx context.Context, dream *domain.Dream) (*domain.Dream, error) {
	if mock.InsertFunc == nil {
		panic("dreamRepoMock.InsertFunc: method is nil but dreamRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Dream *domain.Dream
	}{Ctx: ctx, Dream: dream}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, dream)
}

func (mock *dreamRepoMock) InsertCalls() []struct {
	Ctx   context.Context
	Dream *domain.Dream
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *dreamRepoMock) ListByOwner(ctx context.Context, owner domain.RequesterIdentity) ([]*domain.Dream, error) {
	if mock.ListByOwnerFunc == nil {
		panic("dreamRepoMock.ListByOwnerFunc: method is nil but dreamRepo.ListByOwner was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.RequesterIdentity
	}{Ctx: ctx, Owner: owner}
	mock.lockListByOwner.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, callInfo)
	mock.lockListByOwner.Unlock()
	return mock.ListByOwnerFunc(ctx, owner)
}

func (mock *dreamRepoMock) ListByOwnerCalls() []struct {
	Ctx   context.Context
	Owner domain.RequesterIdentity
} {
	mock.lockListByOwner.RLock()
	calls := mock.calls.ListByOwner
	mock.lockListByOwner.RUnlock()
	return calls
}
