package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider names accepted by LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Rephrase static questions through the LLM before presenting them.
	RephraseQuestions bool

	LLMProvider   string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Upper bound for a single collaborator call. LLM calls are the dominant
	// latency source on the request path.
	LLMTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:recall.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		RephraseQuestions: envBoolOr("REPHRASE_QUESTIONS", true),
		LLMProvider:       envOr("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:      envOr("GEMINI_API_KEY", ""),
		GeminiModel:       envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:      envOr("OPENAI_API_KEY", ""),
		OpenAIModel:       envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaBaseURL:     envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		OllamaModel:       envOr("OLLAMA_MODEL", "llama3.1"),
		LLMTimeout:        time.Duration(envIntOr("LLM_TIMEOUT_SECONDS", 20)) * time.Second,
	}
}

// Validate checks the configuration for values that would prevent startup.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of gemini, openai, ollama; got %q", c.LLMProvider)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
