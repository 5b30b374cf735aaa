package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalsh/recall/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:        ":8080",
		DBPath:      "file:test.db",
		LogLevel:    "INFO",
		LLMProvider: config.ProviderGemini,
		LLMTimeout:  20 * time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.LLMProvider = "bard"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.LLMTimeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TIMEOUT_SECONDS")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "REPHRASE_QUESTIONS",
		"LLM_PROVIDER", "LLM_TIMEOUT_SECONDS",
	} {
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:recall.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.RephraseQuestions)
	assert.Equal(t, config.ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, 20*time.Second, cfg.LLMTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("REPHRASE_QUESTIONS", "false")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, config.ProviderOllama, cfg.LLMProvider)
	assert.False(t, cfg.RephraseQuestions)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_SECONDS", "soon")

	cfg := config.Load()
	assert.Equal(t, 20*time.Second, cfg.LLMTimeout)
}
