package gcs

import (
	"context"
	"fmt"
	"io"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

// BlobStore implements domain.BlobStore on top of the Cloud Storage JSON API.
// Firebase Storage buckets are plain GCS buckets, so the same client serves both.
type BlobStore struct {
	svc    *storage.Service
	bucket string
}

// NewBlobStore creates a read-only client for the given bucket.
func NewBlobStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*BlobStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name cannot be empty")
	}
	svc, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BlobStore{svc: svc, bucket: bucket}, nil
}

// ClientOptions translates the storage config into API client options.
// A custom endpoint (e.g. a storage emulator) is used without authentication.
func ClientOptions(cfg config.StorageConfig) []option.ClientOption {
	if cfg.Endpoint != "" {
		return []option.ClientOption{option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication()}
	}
	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadOnlyScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

// Bucket returns the bucket this store reads from.
func (s *BlobStore) Bucket() string {
	return s.bucket
}

// List implements domain.BlobStore. Pages are followed until exhausted.
func (s *BlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	call := s.svc.Objects.List(s.bucket).Prefix(prefix).Fields("items(name)", "nextPageToken")
	err := call.Pages(ctx, func(page *storage.Objects) error {
		for _, obj := range page.Items {
			names = append(names, obj.Name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects under %q in bucket %s: %w", prefix, s.bucket, err)
	}
	return names, nil
}

// Read implements domain.BlobStore.
func (s *BlobStore) Read(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.svc.Objects.Get(s.bucket, name).Context(ctx).Download()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok {
			return nil, fmt.Errorf("failed to download %s: status %d: %w", name, apiErr.Code, err)
		}
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

var _ domain.BlobStore = (*BlobStore)(nil)
