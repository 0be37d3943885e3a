package quizgen

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewGeminiCompletionClient_Validation(t *testing.T) {
	logger := zap.NewNop()

	_, err := NewGeminiCompletionClient(context.Background(), "", "gemini-2.0-flash-exp", logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key cannot be empty")

	_, err = NewGeminiCompletionClient(context.Background(), "test-api-key", "  ", logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model name cannot be empty")
}

func TestConfigureModel(t *testing.T) {
	m := &genai.GenerativeModel{}
	ConfigureModel(m)

	require.NotNil(t, m.Temperature)
	require.NotNil(t, m.TopP)
	require.NotNil(t, m.TopK)
	require.NotNil(t, m.MaxOutputTokens)
	assert.InDelta(t, 0.7, *m.Temperature, 1e-6)
	assert.InDelta(t, 1.0, *m.TopP, 1e-6)
	assert.Equal(t, int32(1), *m.TopK)
	assert.Equal(t, int32(8192), *m.MaxOutputTokens)
	assert.Equal(t, "application/json", m.ResponseMIMEType)
	assert.Len(t, m.SafetySettings, 4)
}

func TestSafetySettings(t *testing.T) {
	settings := SafetySettings()

	categories := make([]genai.HarmCategory, 0, len(settings))
	for _, s := range settings {
		assert.Equal(t, genai.HarmBlockMediumAndAbove, s.Threshold)
		categories = append(categories, s.Category)
	}
	assert.ElementsMatch(t, []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}, categories)
}

func TestFirstText(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
	}{
		{name: "nil response", resp: nil, expected: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, expected: ""},
		{
			name: "first candidate without content yields nothing",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"questions":[]}`)}}},
			}},
			expected: "",
		},
		{
			name: "nil first candidate yields nothing",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				nil,
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			expected: "",
		},
		{
			name: "text parts are joined",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"questions":`), genai.Text(`[]}`)}}},
			}},
			expected: `{"questions":[]}`,
		},
		{
			name: "only the first candidate is used",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
			}},
			expected: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, firstText(tt.resp))
		})
	}
}
