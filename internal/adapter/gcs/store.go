// Package gcs stores generated dream images in a Google Cloud Storage
// bucket and resolves publicly addressable URLs for them.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

const uploadTimeout = 2 * time.Minute

// Store uploads image objects and resolves their public URLs.
type Store struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
	log       *slog.Logger
}

// NewStore creates a Store from configuration.
func NewStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		cdnDomain: cfg.CDNDomain,
		log:       logger.With("adapter", "gcs"),
	}, nil
}

// Upload writes the object under key with the given content type.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %v: %w", key, err, domain.ErrUploadFailed)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer %s: %v: %w", key, err, domain.ErrUploadFailed)
	}

	s.log.Debug("object uploaded", slog.String("key", key), slog.Int("bytes", len(data)))
	return nil
}

// PublicURL resolves the publicly addressable URL for an uploaded object.
// A configured CDN domain takes precedence over the direct bucket URL.
func (s *Store) PublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

// Close releases the underlying storage client.
func (s *Store) Close() error {
	return s.client.Close()
}
