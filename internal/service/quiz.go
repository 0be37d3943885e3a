package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/validation"

	"go.uber.org/zap"
)

const contextPreviewLength = 500

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*dto.QuizManifestResponse, error)
}

// quizService implements QuizService
type quizService struct {
	fetcher     domain.ContentFetcher
	prompts     *PromptBuilder
	llm         domain.CompletionClient
	validator   *ResponseValidator
	requests    *validation.Validator
	storageRoot string
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	fetcher domain.ContentFetcher,
	prompts *PromptBuilder,
	llm domain.CompletionClient,
	validator *ResponseValidator,
	storageRoot string,
) QuizService {
	if storageRoot == "" {
		storageRoot = domain.DefaultStorageRoot
	}
	return &quizService{
		fetcher:     fetcher,
		prompts:     prompts,
		llm:         llm,
		validator:   validator,
		requests:    validation.NewValidator(),
		storageRoot: storageRoot,
	}
}

// GenerateQuiz fetches the unit's source text, asks the model for questions
// and returns the validated result as a one-file manifest.
func (s *quizService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*dto.QuizManifestResponse, error) {
	if err := s.requests.ValidateQuizRequest(req); err != nil {
		return nil, err
	}

	storagePath := req.StoragePath(s.storageRoot)
	logger.Get().Info("Generating quiz",
		zap.String("subject", req.Subject),
		zap.String("unit", req.Unit),
		zap.String("path", storagePath))

	text, err := s.fetcher.Fetch(ctx, storagePath)
	if err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return nil, err
		}
		return nil, domain.NewStorageError(err)
	}
	if strings.TrimSpace(text) == "" {
		logger.Get().Warn("No text data found", zap.String("path", storagePath))
		return nil, domain.NewEmptyContentError()
	}
	logger.Get().Debug("Fetched source text",
		zap.Int("characters", utf8.RuneCountInString(text)),
		zap.String("preview", preview(text, contextPreviewLength)))

	prompt, err := s.prompts.Build(req.Subject, req.Unit, text)
	if err != nil {
		return nil, domain.NewInternalError("Error generating questions", err)
	}
	logger.Get().Debug("Built prompt", zap.String("preview", preview(prompt, contextPreviewLength)))

	completion, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCompletion) {
			logger.Get().Error("Model returned no text", zap.Error(err))
			return nil, domain.NewModelUnavailableError(err)
		}
		logger.Get().Error("Completion request failed", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	quiz, err := s.validator.Validate(completion)
	if err != nil {
		logger.Get().Warn("Model response failed validation",
			zap.Error(err),
			zap.String("response_preview", preview(completion, contextPreviewLength)))
		return nil, err
	}

	manifest, err := dto.NewQuizManifest(req, quiz)
	if err != nil {
		return nil, domain.NewInternalError("Error generating questions", err)
	}

	logger.Get().Info("Quiz generated",
		zap.String("file", req.ManifestName()),
		zap.Int("questions", quiz.Len()),
		zap.Any("difficulty", quiz.CountByDifficulty()))
	return manifest, nil
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
