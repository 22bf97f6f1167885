package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

// NewCompletionService creates the completion service implementation
// selected by configuration.
func NewCompletionService(cfg *common.Config, logger arbor.ILogger) (interfaces.CompletionService, error) {
	if !interfaces.ValidTier(cfg.LLM.Tier) {
		return nil, fmt.Errorf("invalid default tier '%s': must be 'small', 'large', or 'large2'", cfg.LLM.Tier)
	}
	defaultTier := interfaces.ModelTier(cfg.LLM.Tier)

	logger.Info().
		Str("provider", string(cfg.LLM.DefaultProvider)).
		Str("tier", cfg.LLM.Tier).
		Msg("Initializing completion service")

	switch cfg.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		return NewClaudeService(&cfg.Claude, defaultTier, logger)

	case common.LLMProviderGemini:
		return NewGeminiService(&cfg.Gemini, defaultTier, logger)

	default:
		return nil, fmt.Errorf("invalid LLM provider '%s': must be 'claude' or 'gemini'", cfg.LLM.DefaultProvider)
	}
}
