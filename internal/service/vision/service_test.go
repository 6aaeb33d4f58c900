package vision

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

//go:generate moq -out dream_repo_mock_test.go -pkg vision . dreamRepo
//go:generate moq -out image_generator_mock_test.go -pkg vision . imageGenerator
//go:generate moq -out asset_store_mock_test.go -pkg vision . assetStore

func defaultCfg() config.VisionConfig {
	return config.VisionConfig{
		MaxAttempts:     2,
		PromptMaxLen:    4000,
		SanitizedMaxLen: 800,
	}
}

func ownedDream(owner uuid.UUID) *domain.Dream {
	return &domain.Dream{
		ID:     uuid.New(),
		UserID: &owner,
		Symbols: []domain.SymbolEntry{
			{Symbol: "Water", Meaning: "The unconscious"},
			{Symbol: "Mirror", Meaning: "Self-reflection"},
		},
		Archetypes: []domain.ArchetypeEntry{
			{Archetype: "The Shadow", Representation: "A dark double"},
		},
		Themes: []string{"Transformation", "Identity"},
	}
}

func TestService_VisualizeDream_FullPipeline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ownerID := uuid.New()
	dream := ownedDream(ownerID)
	imageBytes := []byte("png-bytes")

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
		SetImageURLFunc: func(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error) {
			updated := *dream
			updated.ImageURL = &url
			return &updated, nil
		},
	}
	imagesMock := &imageGeneratorMock{
		GenerateImageFunc: func(ctx context.Context, prompt string) (string, error) {
			return "https://provider.example/img.png", nil
		},
		DownloadFunc: func(ctx context.Context, url string) ([]byte, error) {
			return imageBytes, nil
		},
	}
	assetsMock := &assetStoreMock{
		UploadFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
			return nil
		},
		PublicURLFunc: func(key string) string {
			return "https://cdn.example/" + key
		},
	}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, assetsMock)

	updated, err := svc.VisualizeDream(ctx, VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if err != nil {
		t.Fatalf("VisualizeDream returned error: %v", err)
	}
	if updated.ImageURL == nil || !strings.HasPrefix(*updated.ImageURL, "https://cdn.example/dream-") {
		t.Errorf("ImageURL: got=%v", updated.ImageURL)
	}

	// The generated prompt carries the dream's own imagery.
	genCalls := imagesMock.GenerateImageCalls()
	if len(genCalls) != 1 {
		t.Fatalf("GenerateImage called %d times, want 1", len(genCalls))
	}
	prompt := genCalls[0].Prompt
	if !strings.Contains(prompt, "a mysterious figure emerging from darkness") {
		t.Error("prompt does not use The Shadow's scene fragment")
	}
	if !strings.Contains(prompt, "Water, Mirror") {
		t.Error("prompt does not list the dream's symbols")
	}
	if !strings.Contains(prompt, "Transformation and Identity") {
		t.Error("prompt does not list the dream's themes")
	}

	uploads := assetsMock.UploadCalls()
	if len(uploads) != 1 {
		t.Fatalf("Upload called %d times, want 1", len(uploads))
	}
	if !strings.HasPrefix(uploads[0].Key, "dream-"+dream.ID.String()+"-") || !strings.HasSuffix(uploads[0].Key, ".png") {
		t.Errorf("upload key: got=%q", uploads[0].Key)
	}
	if uploads[0].ContentType != "image/png" {
		t.Errorf("content type: got=%q", uploads[0].ContentType)
	}
	if string(uploads[0].Data) != string(imageBytes) {
		t.Error("uploaded bytes differ from downloaded bytes")
	}
}

func TestService_VisualizeDream_AlreadyHasImage(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	existing := "https://cdn.example/dream-old.png"
	dream := ownedDream(ownerID)
	dream.ImageURL = &existing

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
	}
	imagesMock := &imageGeneratorMock{}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, &assetStoreMock{})

	got, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if err != nil {
		t.Fatalf("VisualizeDream returned error: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != existing {
		t.Errorf("ImageURL: got=%v, want=%q", got.ImageURL, existing)
	}
	if len(imagesMock.GenerateImageCalls()) != 0 {
		t.Error("provider must not be called when an image already exists")
	}
}

func TestService_VisualizeDream_NotOwner(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()
	dream := ownedDream(ownerID)

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
	}
	imagesMock := &imageGeneratorMock{}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, &assetStoreMock{})

	_, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &strangerID},
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("error: got=%v, want ErrForbidden", err)
	}
	if len(imagesMock.GenerateImageCalls()) != 0 {
		t.Error("provider must not be called for a dream the requester does not own")
	}
}

func TestService_VisualizeDream_SafetyRetryUsesReducedPrompt(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dream := ownedDream(ownerID)

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
		SetImageURLFunc: func(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error) {
			updated := *dream
			updated.ImageURL = &url
			return &updated, nil
		},
	}
	attempt := 0
	imagesMock := &imageGeneratorMock{
		GenerateImageFunc: func(ctx context.Context, prompt string) (string, error) {
			attempt++
			if attempt == 1 {
				return "", domain.ErrSafetyRejected
			}
			return "https://provider.example/retry.png", nil
		},
		DownloadFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte("png"), nil
		},
	}
	assetsMock := &assetStoreMock{
		UploadFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
			return nil
		},
		PublicURLFunc: func(key string) string { return "https://cdn.example/" + key },
	}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, assetsMock)

	updated, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if err != nil {
		t.Fatalf("VisualizeDream returned error: %v", err)
	}
	if updated.ImageURL == nil {
		t.Fatal("ImageURL not set after successful retry")
	}

	genCalls := imagesMock.GenerateImageCalls()
	if len(genCalls) != 2 {
		t.Fatalf("GenerateImage called %d times, want 2", len(genCalls))
	}
	if genCalls[0].Prompt == genCalls[1].Prompt {
		t.Error("retry must use the reduced prompt, not the original")
	}
	if !strings.Contains(genCalls[1].Prompt, "water symbol") {
		t.Errorf("reduced prompt does not carry the first symbol: %q", genCalls[1].Prompt)
	}

	// The stored image is the retry's result.
	if got := imagesMock.DownloadCalls()[0].URL; got != "https://provider.example/retry.png" {
		t.Errorf("downloaded url: got=%q", got)
	}
}

func TestService_VisualizeDream_NonSafetyFailureNotRetried(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dream := ownedDream(ownerID)

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
	}
	imagesMock := &imageGeneratorMock{
		GenerateImageFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", domain.ErrQuotaExceeded
		},
	}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, &assetStoreMock{})

	_, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("error: got=%v, want ErrQuotaExceeded", err)
	}
	if len(imagesMock.GenerateImageCalls()) != 1 {
		t.Errorf("GenerateImage called %d times, want 1 (no retry on non-safety failures)", len(imagesMock.GenerateImageCalls()))
	}
}

func TestService_VisualizeDream_SecondSafetyRejectionTerminal(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dream := ownedDream(ownerID)

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
	}
	imagesMock := &imageGeneratorMock{
		GenerateImageFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", domain.ErrSafetyRejected
		},
	}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, &assetStoreMock{})

	_, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if !errors.Is(err, domain.ErrSafetyRejected) {
		t.Fatalf("error: got=%v, want ErrSafetyRejected", err)
	}
	if len(imagesMock.GenerateImageCalls()) != 2 {
		t.Errorf("GenerateImage called %d times, want exactly 2", len(imagesMock.GenerateImageCalls()))
	}
}

func TestService_VisualizeDream_RecordUpdateFailed(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	dream := ownedDream(ownerID)

	dreamsMock := &dreamRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
			return dream, nil
		},
		SetImageURLFunc: func(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error) {
			return nil, errors.New("connection reset")
		},
	}
	imagesMock := &imageGeneratorMock{
		GenerateImageFunc: func(ctx context.Context, prompt string) (string, error) {
			return "https://provider.example/img.png", nil
		},
		DownloadFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte("png"), nil
		},
	}
	assetsMock := &assetStoreMock{
		UploadFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
			return nil
		},
		PublicURLFunc: func(key string) string { return "https://cdn.example/" + key },
	}

	svc := NewService(slog.Default(), defaultCfg(), dreamsMock, imagesMock, assetsMock)

	_, err := svc.VisualizeDream(context.Background(), VisualizeInput{
		DreamID:   dream.ID,
		Requester: domain.RequesterIdentity{UserID: &ownerID},
	})
	if !errors.Is(err, domain.ErrRecordUpdateFailed) {
		t.Fatalf("error: got=%v, want ErrRecordUpdateFailed", err)
	}
	// The asset was stored before the update failed.
	if len(assetsMock.UploadCalls()) != 1 {
		t.Error("image should have been uploaded before the record update failed")
	}
}
