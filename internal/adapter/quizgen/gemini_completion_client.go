package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements domain.CompletionClient against the Gemini API.
type GeminiCompletionClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewGeminiCompletionClient creates the Gemini client and configures the model once.
// The returned client is safe to share between requests.
func NewGeminiCompletionClient(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiCompletionClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	modelName = strings.TrimSpace(modelName)
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	ConfigureModel(model)

	logger.Info("Initialized Gemini completion client", zap.String("model", modelName))
	return &GeminiCompletionClient{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// ConfigureModel applies the fixed sampling parameters, safety thresholds and
// JSON response mode used for quiz generation.
func ConfigureModel(m *genai.GenerativeModel) {
	m.SetTemperature(Temperature)
	m.SetTopP(TopP)
	m.SetTopK(TopK)
	m.SetMaxOutputTokens(MaxOutputTokens)
	m.ResponseMIMEType = "application/json"
	m.SafetySettings = SafetySettings()
}

// SafetySettings blocks medium-and-above severity in every moderated category.
func SafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockMediumAndAbove})
	}
	return settings
}

// Complete implements domain.CompletionClient.
func (c *GeminiCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			c.logger.Warn("Gemini blocked the completion", zap.String("model", c.modelName), zap.Error(err))
			return "", fmt.Errorf("%w: %v", domain.ErrEmptyCompletion, err)
		}
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyCompletion
	}
	if resp.UsageMetadata != nil {
		c.logger.Debug("Gemini usage",
			zap.Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("candidate_tokens", resp.UsageMetadata.CandidatesTokenCount),
		)
	}
	return text, nil
}

// Close releases the underlying API client.
func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}

// firstText joins the text parts of the first candidate. Later candidates are
// never consulted, so an empty first candidate yields "".
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

var _ domain.CompletionClient = (*GeminiCompletionClient)(nil)
