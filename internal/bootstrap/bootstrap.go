// Package bootstrap wires configuration into the quiz generation pipeline
// shared by the HTTP server and the command line tool.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/gcs"
	"quiz-forge/internal/adapter/quizgen"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

const cachePingTimeout = 5 * time.Second

// Pipeline holds the constructed quiz service and releases its clients on Close.
type Pipeline struct {
	Service service.QuizService
	closers []func() error
}

// Close releases every client opened by NewPipeline.
func (p *Pipeline) Close() error {
	var firstErr error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewPipeline builds the storage, cache and completion clients described by cfg.
func NewPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	p := &Pipeline{}

	store, err := gcs.NewBlobStore(ctx, cfg.Storage.Bucket, gcs.ClientOptions(cfg.Storage)...)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to storage bucket", zap.String("bucket", store.Bucket()))

	fetcherOpts := []service.ContentFetcherOption{
		service.WithDownloadConcurrency(cfg.Storage.DownloadConcurrency),
	}
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, redisClient.Close)
		contentCache := adapter.NewRedisCacheAdapter(redisClient)
		if err := CheckCache(ctx, contentCache); err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Address, err)
		}
		logger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		fetcherOpts = append(fetcherOpts,
			service.WithContentCache(contentCache, cfg.Storage.Bucket, cfg.Cache.ContentTTL))
	}
	fetcher := service.NewContentFetcher(store, logger, fetcherOpts...)

	llm, closeLLM, err := NewCompletionClient(ctx, cfg.LLM, logger)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	if closeLLM != nil {
		p.closers = append(p.closers, closeLLM)
	}

	validator, err := service.NewResponseValidator(cfg.Quiz.ExpectedCount, cfg.Quiz.StrictDifficulty)
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	p.Service = service.NewQuizService(fetcher, service.NewPromptBuilder(cfg.Quiz.QuestionCount), llm, validator, cfg.Storage.Root)
	return p, nil
}

// CheckCache pings the cache, giving up after cachePingTimeout.
func CheckCache(ctx context.Context, c domain.Cache) error {
	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	return c.Ping(ctx)
}

// NewCompletionClient returns the client for the configured provider and, when the
// client holds a connection, a function that closes it.
func NewCompletionClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (domain.CompletionClient, func() error, error) {
	switch cfg.Provider {
	case "gemini":
		client, err := quizgen.NewGeminiCompletionClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	case "ollama":
		client, err := quizgen.NewOllamaCompletionClient(cfg.Ollama.ServerURL, cfg.Ollama.Model, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case "openai":
		client, err := quizgen.NewOpenAICompletionClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
