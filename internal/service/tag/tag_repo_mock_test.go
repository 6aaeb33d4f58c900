package tag

import (
	"context"
	"sync"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

var _ tagRepo = &tagRepoMock{}

type tagRepoMock struct {
	PopularFunc func(ctx context.Context, tagType *domain.TagType, limit int) ([]domain.PopularTag, error)

	calls struct {
		Popular []struct {
			Ctx     context.Context
			TagType *domain.TagType
			Limit   int
		}
	}
	lockPopular sync.RWMutex
}

func (mock *tagRepoMock) Popular(ctx context.Context, tagType *domain.TagType, limit int) ([]domain.PopularTag, error) {
	if mock.PopularFunc == nil {
		panic("tagRepoMock.PopularFunc: method is nil but tagRepo.Popular was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TagType *domain.TagType
		Limit   int
	}{Ctx: ctx, TagType: tagType, Limit: limit}
	mock.lockPopular.Lock()
	mock.calls.Popular = append(mock.calls.Popular, callInfo)
	mock.lockPopular.Unlock()
	return mock.PopularFunc(ctx, tagType, limit)
}

func (mock *tagRepoMock) PopularCalls() []struct {
	Ctx     context.Context
	TagType *domain.TagType
	Limit   int
} {
	mock.lockPopular.RLock()
	calls := mock.calls.Popular
	mock.lockPopular.RUnlock()
	return calls
}
