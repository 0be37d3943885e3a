package quizgen

import (
	"context"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainCompletionClient implements domain.CompletionClient over any langchaingo model.
type LangchainCompletionClient struct {
	llm    llms.Model
	name   string
	logger *zap.Logger
}

// NewLangchainCompletionClient wraps an already constructed langchaingo model.
func NewLangchainCompletionClient(llm llms.Model, name string, logger *zap.Logger) *LangchainCompletionClient {
	return &LangchainCompletionClient{llm: llm, name: name, logger: logger}
}

// NewOllamaCompletionClient creates a client for a local Ollama server.
func NewOllamaCompletionClient(serverURL, model string, logger *zap.Logger) (*LangchainCompletionClient, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	logger.Info("Initialized Ollama completion client", zap.String("server_url", serverURL), zap.String("model", model))
	return NewLangchainCompletionClient(llm, "ollama/"+model, logger), nil
}

// NewOpenAICompletionClient creates a client for the OpenAI chat API.
func NewOpenAICompletionClient(apiKey, model string, logger *zap.Logger) (*LangchainCompletionClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	logger.Info("Initialized OpenAI completion client", zap.String("model", model))
	return NewLangchainCompletionClient(llm, "openai/"+model, logger), nil
}

// CallOptions mirrors the Gemini sampling configuration for langchaingo backends.
func CallOptions() []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(Temperature),
		llms.WithTopP(TopP),
		llms.WithTopK(TopK),
		llms.WithMaxTokens(MaxOutputTokens),
		llms.WithJSONMode(),
	}
}

// Complete implements domain.CompletionClient.
func (c *LangchainCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}

	resp, err := c.llm.GenerateContent(ctx, messages, CallOptions()...)
	if err != nil {
		return "", fmt.Errorf("%s generate content: %w", c.name, err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		c.logger.Warn("Model returned no choices", zap.String("model", c.name))
		return "", domain.ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

var _ domain.CompletionClient = (*LangchainCompletionClient)(nil)
