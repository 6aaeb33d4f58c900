package vision

import (
	"context"
	"sync"
)

var _ assetStore = &assetStoreMock{}

type assetStoreMock struct {
	UploadFunc    func(ctx context.Context, key string, data []byte, contentType string) error
	PublicURLFunc func(key string) string

	calls struct {
		Upload []struct {
			Ctx         context.Context
			Key         string
			Data        []byte
			ContentType string
		}
		PublicURL []struct {
			Key string
		}
	}
	lockUpload    sync.RWMutex
	lockPublicURL sync.RWMutex
}

func (mock *assetStoreMock) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if mock.UploadFunc == nil {
		panic("assetStoreMock.UploadFunc: method is nil but assetStore.Upload was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         string
		Data        []byte
		ContentType string
	}{Ctx: ctx, Key: key, Data: data, ContentType: contentType}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, key, data, contentType)
}

func (mock *assetStoreMock) UploadCalls() []struct {
	Ctx         context.Context
	Key         string
	Data        []byte
	ContentType string
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}

func (mock *assetStoreMock) PublicURL(key string) string {
	if mock.PublicURLFunc == nil {
		panic("assetStoreMock.PublicURLFunc: method is nil but assetStore.PublicURL was just called")
	}
	callInfo := struct {
		Key string
	}{Key: key}
	mock.lockPublicURL.Lock()
	mock.calls.PublicURL = append(mock.calls.PublicURL, callInfo)
	mock.lockPublicURL.Unlock()
	return mock.PublicURLFunc(key)
}

func (mock *assetStoreMock) PublicURLCalls() []struct {
	Key string
} {
	mock.lockPublicURL.RLock()
	calls := mock.calls.PublicURL
	mock.lockPublicURL.RUnlock()
	return calls
}
