package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tsootsoo/dictees/config"
	"github.com/tsootsoo/dictees/internal/correction"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LLMService is a correction.Invoker that knows its provider name.
type LLMService interface {
	correction.Invoker
	Name() string
}

// NewLLMService picks the completion provider configured by LLM_PROVIDER.
func NewLLMService(cfg *config.Config) (LLMService, error) {
	switch cfg.LLM.Provider {
	case ProviderGemini:
		return NewGeminiLLMService(cfg)
	case ProviderOpenAI, "":
		return NewOpenAILLMService(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}
}

// NewCorrector builds the correction pipeline around the configured provider.
func NewCorrector(llm LLMService, cfg *config.Config) *correction.Corrector {
	log.Info().Str("provider", llm.Name()).Dur("timeout", cfg.LLM.Timeout).Msg("Dictation corrector ready")
	return correction.NewCorrector(llm, cfg.LLM.Timeout)
}
