package vision

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

var _ dreamRepo = &dreamRepoMock{}

type dreamRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Dream, error)
	SetImageURLFunc func(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SetImageURL []struct {
			Ctx context.Context
			ID  uuid.UUID
			URL string
		}
	}
	lockGetByID     sync.RWMutex
	lockSetImageURL sync.RWMutex
}

func (mock *dreamRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
	if mock.GetByIDFunc == nil {
		panic("dreamRepoMock.GetByIDFunc: method is nil but dreamRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *dreamRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *dreamRepoMock) SetImageURL(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error) {
	if mock.SetImageURLFunc == nil {
		panic("dreamRepoMock.SetImageURLFunc: method is nil but dreamRepo.SetImageURL was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		URL string
	}{Ctx: ctx, ID: id, URL: url}
	mock.lockSetImageURL.Lock()
	mock.calls.SetImageURL = append(mock.calls.SetImageURL, callInfo)
	mock.lockSetImageURL.Unlock()
	return mock.SetImageURLFunc(ctx, id, url)
}

func (mock *dreamRepoMock) SetImageURLCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	URL string
} {
	mock.lockSetImageURL.RLock()
	calls := mock.calls.SetImageURL
	mock.lockSetImageURL.RUnlock()
	return calls
}
