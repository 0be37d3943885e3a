package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const textFileExtension = ".txt"

// ContentFetcherOption configures a content fetcher.
type ContentFetcherOption func(*contentFetcher)

// WithContentCache enables a read-through cache of the assembled text per prefix.
// A zero ttl stores entries without expiry.
func WithContentCache(c domain.Cache, bucket string, ttl time.Duration) ContentFetcherOption {
	return func(f *contentFetcher) {
		f.cache = c
		f.bucket = bucket
		f.cacheTTL = ttl
	}
}

// WithDownloadConcurrency bounds the number of objects downloaded at once.
func WithDownloadConcurrency(n int) ContentFetcherOption {
	return func(f *contentFetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

type contentFetcher struct {
	store       domain.BlobStore
	cache       domain.Cache
	bucket      string
	cacheTTL    time.Duration
	concurrency int
	logger      *zap.Logger
}

// NewContentFetcher creates a fetcher that reads every .txt object under a prefix.
func NewContentFetcher(store domain.BlobStore, logger *zap.Logger, opts ...ContentFetcherOption) domain.ContentFetcher {
	f := &contentFetcher{
		store:       store,
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch lists the objects under prefix and concatenates the text files in listing
// order, each preceded by a "--- name ---" header. Objects that fail to download
// are logged and skipped. The result is empty when nothing usable was found.
func (f *contentFetcher) Fetch(ctx context.Context, prefix string) (string, error) {
	f.logger.Info("Fetching files from storage path", zap.String("path", prefix))

	if text, ok := f.cached(ctx, prefix); ok {
		return text, nil
	}

	names, err := f.store.List(ctx, prefix)
	if err != nil {
		return "", domain.NewStorageError(err)
	}

	var candidates []string
	for _, name := range names {
		if strings.HasSuffix(name, "/") || !strings.HasSuffix(name, textFileExtension) {
			continue
		}
		candidates = append(candidates, name)
	}

	contents := make([]string, len(candidates))
	downloaded := make([]bool, len(candidates))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, name := range candidates {
		g.Go(func() error {
			f.logger.Debug("Processing file", zap.String("name", name))
			data, err := f.store.Read(ctx, name)
			if err != nil {
				f.logger.Warn("Error downloading file", zap.String("name", name), zap.Error(err))
				return nil
			}
			if !utf8.Valid(data) {
				f.logger.Warn("Skipping file that is not valid UTF-8", zap.String("name", name))
				return nil
			}
			contents[i] = string(data)
			downloaded[i] = true
			f.logger.Debug("Downloaded file", zap.String("name", name), zap.Int("characters", utf8.RuneCount(data)))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return "", domain.NewStorageError(err)
	}

	var sb strings.Builder
	fileCount := 0
	for i, name := range candidates {
		if !downloaded[i] {
			continue
		}
		fileCount++
		sb.WriteString("--- ")
		sb.WriteString(path.Base(name))
		sb.WriteString(" ---\n")
		sb.WriteString(contents[i])
		sb.WriteString("\n\n")
	}
	text := sb.String()

	f.logger.Info("Retrieved files from storage",
		zap.Int("file_count", fileCount),
		zap.Int("skipped", len(candidates)-fileCount),
		zap.Int("characters", utf8.RuneCountInString(text)),
	)

	f.remember(ctx, prefix, text)
	return text, nil
}

func (f *contentFetcher) cached(ctx context.Context, prefix string) (string, bool) {
	if f.cache == nil {
		return "", false
	}
	text, err := f.cache.Get(ctx, cache.ContentKey(f.bucket, prefix))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			f.logger.Warn("Content cache read failed", zap.String("path", prefix), zap.Error(err))
		}
		return "", false
	}
	f.logger.Debug("Content cache hit", zap.String("path", prefix))
	return text, true
}

func (f *contentFetcher) remember(ctx context.Context, prefix, text string) {
	if f.cache == nil || text == "" {
		return
	}
	if err := f.cache.Set(ctx, cache.ContentKey(f.bucket, prefix), text, f.cacheTTL); err != nil {
		f.logger.Warn("Content cache write failed", zap.String("path", prefix), zap.Error(err))
	}
}
