package services

import (
	"context"

	"github.com/dwalsh/recall/internal/config"
	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
)

const (
	llmModeLocal = "local"
	llmModeWeb   = "web"
)

// SettingsService handles runtime configuration
type SettingsService interface {
	LLMMode(ctx context.Context) *models.LLMMode
	SetLLMMode(ctx context.Context, mode string) (*models.LLMMode, error)
}

type settingsService struct {
	cfg *config.Config
	llm llm.ClientInterface
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(cfg *config.Config, llmClient llm.ClientInterface) SettingsService {
	return &settingsService{cfg: cfg, llm: llmClient}
}

func (s *settingsService) describe(provider string) *models.LLMMode {
	mode := llmModeWeb
	model := s.cfg.GeminiModel
	if provider == config.ProviderOllama {
		mode = llmModeLocal
		model = s.cfg.OllamaModel
	}
	return &models.LLMMode{Mode: mode, Provider: provider, Model: model}
}

func (s *settingsService) LLMMode(ctx context.Context) *models.LLMMode {
	return s.describe(s.llm.Provider())
}

// SetLLMMode switches between the local (Ollama) and web (Gemini)
// collaborator at runtime.
func (s *settingsService) SetLLMMode(ctx context.Context, mode string) (*models.LLMMode, error) {
	log := logger.FromContext(ctx)

	var provider string
	switch mode {
	case llmModeLocal:
		provider = config.ProviderOllama
	case llmModeWeb:
		provider = config.ProviderGemini
	default:
		return nil, errors.NewValidationError("mode", `must be "local" or "web"`)
	}

	if err := s.llm.SetProvider(provider); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("llm mode switched: mode=%s, provider=%s", mode, provider)
	return s.describe(provider), nil
}
