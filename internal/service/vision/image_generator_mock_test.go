package vision

import (
	"context"
	"sync"
)

var _ imageGenerator = &imageGeneratorMock{}

type imageGeneratorMock struct {
	GenerateImageFunc func(ctx context.Context, prompt string) (string, error)
	DownloadFunc      func(ctx context.Context, url string) ([]byte, error)

	calls struct {
		GenerateImage []struct {
			Ctx    context.Context
			Prompt string
		}
		Download []struct {
			Ctx context.Context
			URL string
		}
	}
	lockGenerateImage sync.RWMutex
	lockDownload      sync.RWMutex
}

func (mock *imageGeneratorMock) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if mock.GenerateImageFunc == nil {
		panic("imageGeneratorMock.GenerateImageFunc: method is nil but imageGenerator.GenerateImage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prompt string
	}{Ctx: ctx, Prompt: prompt}
	mock.lockGenerateImage.Lock()
	mock.calls.GenerateImage = append(mock.calls.GenerateImage, callInfo)
	mock.lockGenerateImage.Unlock()
	return mock.GenerateImageFunc(ctx, prompt)
}

func (mock *imageGeneratorMock) GenerateImageCalls() []struct {
	Ctx    context.Context
	Prompt string
} {
	mock.lockGenerateImage.RLock()
	calls := mock.calls.GenerateImage
	mock.lockGenerateImage.RUnlock()
	return calls
}

func (mock *imageGeneratorMock) Download(ctx context.Context, url string) ([]byte, error) {
	if mock.DownloadFunc == nil {
		panic("imageGeneratorMock.DownloadFunc: method is nil but imageGenerator.Download was just called")
	}
	callInfo := struct {
		Ctx context.Context
		URL string
	}{Ctx: ctx, URL: url}
	mock.lockDownload.Lock()
	mock.calls.Download = append(mock.calls.Download, callInfo)
	mock.lockDownload.Unlock()
	return mock.DownloadFunc(ctx, url)
}

func (mock *imageGeneratorMock) DownloadCalls() []struct {
	Ctx context.Context
	URL string
} {
	mock.lockDownload.RLock()
	calls := mock.calls.Download
	mock.lockDownload.RUnlock()
	return calls
}
