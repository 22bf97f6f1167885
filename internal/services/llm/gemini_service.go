package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

// GeminiService implements the CompletionService interface using the
// Google Gemini API.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
	tiers   tierTable
}

// NewGeminiService creates a new Gemini completion service instance.
func NewGeminiService(geminiConfig *common.GeminiConfig, defaultTier interfaces.ModelTier, logger arbor.ILogger) (*GeminiService, error) {
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required for Gemini service (set via GEMINI_API_KEY, TAXCHAT_GEMINI_API_KEY, or gemini.api_key in config)")
	}

	tiers, err := newTierTable(geminiConfig.Models, defaultTier)
	if err != nil {
		return nil, fmt.Errorf("invalid Gemini model tier configuration: %w", err)
	}

	timeout, err := time.ParseDuration(geminiConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", geminiConfig.Timeout, err)
	}

	limiter, err := newCallLimiter(geminiConfig.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit '%s': %w", geminiConfig.RateLimit, err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  geminiConfig,
		logger:  logger,
		client:  client,
		limiter: limiter,
		timeout: timeout,
		tiers:   tiers,
	}

	logger.Debug().
		Str("default_model", tiers.name(defaultTier)).
		Dur("timeout", timeout).
		Msg("Gemini completion service initialized")

	return service, nil
}

// Complete generates text for the given prompt using the model mapped to
// the requested tier.
func (s *GeminiService) Complete(ctx context.Context, tier interfaces.ModelTier, prompt string) (string, error) {
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
		Msg("Starting Gemini completion")

	response, err := s.generateCompletion(timeoutCtx, model, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("model", model).
			Msg("Gemini completion failed")
		return "", fmt.Errorf("completion failed: %w", err)
	}

	s.logger.Debug().
		Str("model", model).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini completion completed")

	return response, nil
}

// Provider returns the provider name.
func (s *GeminiService) Provider() string {
	return string(common.LLMProviderGemini)
}

// ModelName returns the provider model name a tier resolves to.
func (s *GeminiService) ModelName(tier interfaces.ModelTier) string {
	return s.tiers.name(tier)
}

// HealthCheck verifies the Gemini endpoint is reachable with a minimal
// probe on the small tier.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("Gemini client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.generateCompletion(healthCtx, s.tiers.name(interfaces.TierSmall), "ping")
	if err != nil {
		return fmt.Errorf("Gemini health check failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("Gemini probe returned empty response")
	}

	return nil
}

// Close releases resources.
func (s *GeminiService) Close() error {
	s.logger.Debug().Msg("Closing Gemini completion service")
	// genai.Client doesn't require explicit cleanup
	s.client = nil
	return nil
}

// generateCompletion encapsulates the Gemini API call.
func (s *GeminiService) generateCompletion(ctx context.Context, model, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	// Extract text from response - iterate candidates until non-empty text is found
	var response strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Gemini API")
	}

	return response.String(), nil
}
