package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		log.Fatalf("Failed to initialize logger for handler tests: %v", err)
	}

	exitCode := m.Run()
	_ = logger.Sync()
	os.Exit(exitCode)
}

// fakeBlobStore serves objects from memory, listing keys in sorted insertion order.
type fakeBlobStore struct {
	names   []string
	objects map[string]string
}

func (s *fakeBlobStore) List(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, name := range s.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out, nil
}

func (s *fakeBlobStore) Read(_ context.Context, name string) ([]byte, error) {
	content, ok := s.objects[name]
	if !ok {
		return nil, fmt.Errorf("object %q not found", name)
	}
	return []byte(content), nil
}

// fakeCompletionClient returns a canned completion and records the prompts it saw.
type fakeCompletionClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (c *fakeCompletionClient) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.response, c.err
}

func quizJSON(n int) string {
	questions := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, map[string]any{
			"question":       fmt.Sprintf("Which statement about sorting #%d is true?", i+1),
			"options":        []string{"Option 1", "Option 2", "Option 3", "Option 4"},
			"correct_answer": "Option 3",
			"explanation":    "The intro covers it.",
			"difficulty":     domain.Difficulties[i%len(domain.Difficulties)],
			"hint":           "Think about comparisons.",
		})
	}
	b, _ := json.Marshal(map[string]any{"questions": questions})
	return string(b)
}

func setupApp(t *testing.T, store domain.BlobStore, llm domain.CompletionClient) *fiber.App {
	t.Helper()
	validator, err := service.NewResponseValidator(20, true)
	require.NoError(t, err)

	fetcher := service.NewContentFetcher(store, logger.Get(), service.WithDownloadConcurrency(2))
	quizService := service.NewQuizService(fetcher, service.NewPromptBuilder(20), llm, validator, "data")

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	handler.RegisterRoutes(app, handler.NewQuizHandler(quizService), middleware.NewValidationMiddleware())
	return app
}

func postQuiz(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quiz", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readError(t *testing.T, body io.Reader) string {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}

func sortingStore() *fakeBlobStore {
	return &fakeBlobStore{
		names: []string{"data/Algorithms/Sorting/", "data/Algorithms/Sorting/intro.txt"},
		objects: map[string]string{
			"data/Algorithms/Sorting/intro.txt": "Sorting arranges elements in a defined order.",
		},
	}
}

func TestGenerateQuiz_EndToEnd(t *testing.T) {
	llm := &fakeCompletionClient{response: "```json\n" + quizJSON(20) + "\n```"}
	app := setupApp(t, sortingStore(), llm)

	resp := postQuiz(t, app, `{"subject":"Algorithms","unit":"Sorting"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var manifest dto.QuizManifestResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&manifest))
	require.Len(t, manifest.Files, 1)
	assert.Equal(t, "Algorithms_Sorting_questions.json", manifest.Files[0].Name)

	var quiz domain.Quiz
	require.NoError(t, json.Unmarshal([]byte(manifest.Files[0].Content), &quiz))
	require.Equal(t, 20, quiz.Len())
	for _, q := range quiz.Questions {
		assert.Len(t, q.Options, domain.OptionCount)
		assert.Contains(t, q.Options, q.CorrectAnswer)
		assert.True(t, domain.IsKnownDifficulty(q.Difficulty))
	}

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "--- intro.txt ---\nSorting arranges elements in a defined order.")
}

func TestGenerateQuiz_Errors(t *testing.T) {
	tests := []struct {
		name       string
		store      *fakeBlobStore
		llm        *fakeCompletionClient
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing unit",
			body:       `{"subject":"Algorithms"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required field: unit",
		},
		{
			name:       "missing subject",
			body:       `{"unit":"Sorting"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required field: subject",
		},
		{
			name:       "body is not json",
			body:       `subject=Algorithms`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "empty storage",
			store:      &fakeBlobStore{},
			body:       `{"subject":"Algorithms","unit":"Sorting"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "No text data found in Firebase Storage",
		},
		{
			name:       "empty completion",
			llm:        &fakeCompletionClient{err: fmt.Errorf("model: %w", domain.ErrEmptyCompletion)},
			body:       `{"subject":"Algorithms","unit":"Sorting"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "No response from AI model",
		},
		{
			name:       "wrong number of questions",
			llm:        &fakeCompletionClient{response: quizJSON(5)},
			body:       `{"subject":"Algorithms","unit":"Sorting"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Expected 20 questions, got 5",
		},
		{
			name:       "completion service failure",
			llm:        &fakeCompletionClient{err: fmt.Errorf("429 quota exceeded")},
			body:       `{"subject":"Algorithms","unit":"Sorting"}`,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Error generating questions: 429 quota exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.store
			if store == nil {
				store = sortingStore()
			}
			llm := tt.llm
			if llm == nil {
				llm = &fakeCompletionClient{response: quizJSON(20)}
			}
			app := setupApp(t, store, llm)

			resp := postQuiz(t, app, tt.body)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, readError(t, resp.Body))
		})
	}
}

func TestHealthCheck(t *testing.T) {
	app := setupApp(t, sortingStore(), &fakeCompletionClient{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
}
