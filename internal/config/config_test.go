package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("STORAGE_BUCKET", "quiz-bucket.firebasestorage.app")
	t.Setenv("LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("QUIZ_EXPECTED_COUNT", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "quiz-bucket.firebasestorage.app", cfg.Storage.Bucket)
	assert.Equal(t, "data", cfg.Storage.Root)
	assert.Equal(t, 4, cfg.Storage.DownloadConcurrency)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.LLM.Gemini.Model)
	assert.Equal(t, 20, cfg.Quiz.QuestionCount)
	assert.Equal(t, 20, cfg.Quiz.ExpectedCount)
	assert.True(t, cfg.Quiz.StrictDifficulty)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ContentTTL)
	assert.Equal(t, ":5000", cfg.Addr())
}

func TestLoadConfig_MissingBucket(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("LLM_GEMINI_API_KEY", "test-key")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.bucket is required")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Bucket: "b", DownloadConcurrency: 2},
			LLM: LLMConfig{
				Provider: "gemini",
				Gemini:   ModelConfig{APIKey: "k"},
				Ollama:   OllamaConfig{ServerURL: "http://localhost:11434"},
			},
			Quiz: QuizConfig{QuestionCount: 20},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid gemini", mutate: func(c *Config) {}},
		{name: "valid ollama", mutate: func(c *Config) { c.LLM.Provider = "ollama" }},
		{name: "gemini without key", mutate: func(c *Config) { c.LLM.Gemini.APIKey = "" }, wantErr: "llm.gemini.api_key"},
		{name: "openai without key", mutate: func(c *Config) { c.LLM.Provider = "openai" }, wantErr: "llm.openai.api_key"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "bard" }, wantErr: "unsupported llm.provider"},
		{name: "zero question count", mutate: func(c *Config) { c.Quiz.QuestionCount = 0 }, wantErr: "quiz.question_count"},
		{name: "negative expected count", mutate: func(c *Config) { c.Quiz.ExpectedCount = -1 }, wantErr: "quiz.expected_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
