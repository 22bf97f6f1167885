package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

// ClaudeService implements the CompletionService interface using the
// Anthropic Claude API.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    *anthropic.Client
	limiter   *rate.Limiter
	timeout   time.Duration
	maxTokens int
	tiers     tierTable
}

// NewClaudeService creates a new Claude completion service instance.
//
// Initialization resolves the API key, fills tier defaults, parses the
// timeout and rate-limit durations, and builds the client.
func NewClaudeService(claudeConfig *common.ClaudeConfig, defaultTier interfaces.ModelTier, logger arbor.ILogger) (*ClaudeService, error) {
	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for Claude service (set via ANTHROPIC_API_KEY, TAXCHAT_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	tiers, err := newTierTable(claudeConfig.Models, defaultTier)
	if err != nil {
		return nil, fmt.Errorf("invalid Claude model tier configuration: %w", err)
	}

	timeout, err := time.ParseDuration(claudeConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", claudeConfig.Timeout, err)
	}

	limiter, err := newCallLimiter(claudeConfig.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit '%s': %w", claudeConfig.RateLimit, err)
	}

	maxTokens := claudeConfig.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	client := anthropic.NewClient(
		option.WithAPIKey(claudeConfig.APIKey),
	)

	service := &ClaudeService{
		config:    claudeConfig,
		logger:    logger,
		client:    &client,
		limiter:   limiter,
		timeout:   timeout,
		maxTokens: maxTokens,
		tiers:     tiers,
	}

	logger.Debug().
		Str("default_model", tiers.name(defaultTier)).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude completion service initialized")

	return service, nil
}

// Complete generates text for the given prompt using the model mapped to
// the requested tier.
func (s *ClaudeService) Complete(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty for completion")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter interrupted: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	model := s.tiers.name(tier)
	startTime := time.Now()
	s.logger.Debug().
		Str("model", model).
		Int("prompt_length", len(prompt)).
		Msg("Starting Claude completion")

	response, err := s.generateCompletion(timeoutCtx, model, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("model", model).
			Msg("Claude completion failed")
		return "", fmt.Errorf("completion failed: %w", err)
	}

	s.logger.Debug().
		Str("model", model).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude completion completed")

	return response, nil
}

// Provider returns the provider name.
func (s *ClaudeService) Provider() string {
	return string(common.LLMProviderClaude)
}

// ModelName returns the provider model name a tier resolves to.
func (s *ClaudeService) ModelName(tier interfaces.ModelTier) string {
	return s.tiers.name(tier)
}

// HealthCheck verifies the Claude endpoint is reachable with a minimal
// probe on the small tier.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("Claude client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.generateCompletion(healthCtx, s.tiers.name(interfaces.TierSmall), "ping")
	if err != nil {
		return fmt.Errorf("Claude health check failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("Claude probe returned empty response")
	}

	return nil
}

// Close releases resources.
func (s *ClaudeService) Close() error {
	s.logger.Debug().Msg("Closing Claude completion service")
	// Claude client doesn't require explicit cleanup
	s.client = nil
	return nil
}

// generateCompletion encapsulates the Claude API call.
func (s *ClaudeService) generateCompletion(ctx context.Context, model, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	return response.String(), nil
}
