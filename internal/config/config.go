package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Storage StorageConfig
	LLM     LLMConfig
	Quiz    QuizConfig
	Redis   RedisConfig
	Cache   CacheConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// StorageConfig points at the bucket holding the source text files.
type StorageConfig struct {
	Bucket              string
	CredentialsFile     string
	Endpoint            string
	Root                string
	DownloadConcurrency int
}

type LLMConfig struct {
	Provider string
	Gemini   ModelConfig
	Ollama   OllamaConfig
	OpenAI   ModelConfig
}

type ModelConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

// QuizConfig controls prompt cardinality and how strictly model output is checked.
// ExpectedCount of 0 disables the question count check.
type QuizConfig struct {
	QuestionCount    int
	ExpectedCount    int
	StrictDifficulty bool
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	ContentTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 120)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("storage.root", "data")
	v.SetDefault("storage.download_concurrency", 4)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash-exp")
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "qwen3:0.6b")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("quiz.question_count", 20)
	v.SetDefault("quiz.expected_count", 0)
	v.SetDefault("quiz.strict_difficulty", true)
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.content_ttl", "10m")
}

// LoadConfig reads config.yaml (if present) and overlays environment variables.
// Nested keys map to env names with "." replaced by "_", e.g. LLM_GEMINI_API_KEY.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Storage: StorageConfig{
			Bucket:              v.GetString("storage.bucket"),
			CredentialsFile:     v.GetString("storage.credentials_file"),
			Endpoint:            v.GetString("storage.endpoint"),
			Root:                v.GetString("storage.root"),
			DownloadConcurrency: v.GetInt("storage.download_concurrency"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(v.GetString("llm.provider")),
			Gemini: ModelConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
				Model:     v.GetString("llm.ollama.model"),
			},
			OpenAI: ModelConfig{
				APIKey: v.GetString("llm.openai.api_key"),
				Model:  v.GetString("llm.openai.model"),
			},
		},
		Quiz: QuizConfig{
			QuestionCount:    v.GetInt("quiz.question_count"),
			ExpectedCount:    v.GetInt("quiz.expected_count"),
			StrictDifficulty: v.GetBool("quiz.strict_difficulty"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			ContentTTL: v.GetDuration("cache.content_ttl"),
		},
	}

	// GEMINI_API_KEY is what most Gemini tooling exports; honour it as a fallback.
	if cfg.LLM.Gemini.APIKey == "" {
		cfg.LLM.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Storage.CredentialsFile == "" {
		cfg.Storage.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no sensible default.
func (c *Config) Validate() error {
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if c.Quiz.QuestionCount <= 0 {
		return fmt.Errorf("quiz.question_count must be positive, got %d", c.Quiz.QuestionCount)
	}
	if c.Quiz.ExpectedCount < 0 {
		return fmt.Errorf("quiz.expected_count must not be negative, got %d", c.Quiz.ExpectedCount)
	}
	if c.Storage.DownloadConcurrency <= 0 {
		c.Storage.DownloadConcurrency = 1
	}
	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.Gemini.APIKey == "" {
			return fmt.Errorf("llm.gemini.api_key is required for the gemini provider")
		}
	case "openai":
		if c.LLM.OpenAI.APIKey == "" {
			return fmt.Errorf("llm.openai.api_key is required for the openai provider")
		}
	case "ollama":
		if c.LLM.Ollama.ServerURL == "" {
			return fmt.Errorf("llm.ollama.server_url is required for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported llm.provider: %q", c.LLM.Provider)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
