package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

var _ tagRepo = &tagRepoMock{}

type tagRepoMock struct {
	UpsertByNameFunc func(ctx context.Context, name string, tagType domain.TagType) (*domain.Tag, error)
	LinkDreamFunc    func(ctx context.Context, dreamID uuid.UUID, tagIDs []int64) error

	calls struct {
		UpsertByName []struct {
			Ctx     context.Context
			Name    string
			TagType domain.TagType
		}
		LinkDream []struct {
			Ctx     context.Context
			DreamID uuid.UUID
			TagIDs  []int64
		}
	}
	lockUpsertByName sync.RWMutex
	lockLinkDream    sync.RWMutex
}

func (mock *tagRepoMock) UpsertByName(ctx context.Context, name string, tagType domain.TagType) (*domain.Tag, error) {
	if mock.UpsertByNameFunc == nil {
		panic("tagRepoMock.UpsertByNameFunc: method is nil but tagRepo.UpsertByName was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Name    string
		TagType domain.TagType
	}{Ctx: ctx, Name: name, TagType: tagType}
	mock.lockUpsertByName.Lock()
	mock.calls.UpsertByName = append(mock.calls.UpsertByName, callInfo)
	mock.lockUpsertByName.Unlock()
	return mock.UpsertByNameFunc(ctx, name, tagType)
}

func (mock *tagRepoMock) UpsertByNameCalls() []struct {
	Ctx     context.Context
	Name    string
	TagType domain.TagType
} {
	mock.lockUpsertByName.RLock()
	calls := mock.calls.UpsertByName
	mock.lockUpsertByName.RUnlock()
	return calls
}

func (mock *tagRepoMock) LinkDream(ctx context.Context, dreamID uuid.UUID, tagIDs []int64) error {
	if mock.LinkDreamFunc == nil {
		panic("tagRepoMock.LinkDreamFunc: method is nil but tagRepo.LinkDream was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		DreamID uuid.UUID
		TagIDs  []int64
	}{Ctx: ctx, DreamID: dreamID, TagIDs: tagIDs}
	mock.lockLinkDream.Lock()
	mock.calls.LinkDream = append(mock.calls.LinkDream, callInfo)
	mock.lockLinkDream.Unlock()
	return mock.LinkDreamFunc(ctx, dreamID, tagIDs)
}

func (mock *tagRepoMock) LinkDreamCalls() []struct {
	Ctx     context.Context
	DreamID uuid.UUID
	TagIDs  []int64
} {
	mock.lockLinkDream.RLock()
	calls := mock.calls.LinkDream
	mock.lockLinkDream.RUnlock()
	return calls
}
