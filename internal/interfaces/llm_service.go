package interfaces

import "context"

// ModelTier identifies one of three interchangeable completion-quality
// tiers. Each provider maps tiers onto its own model names via
// configuration.
type ModelTier string

const (
	// TierSmall is the fastest, cheapest completion tier
	TierSmall ModelTier = "small"

	// TierLarge is the standard high-quality completion tier
	TierLarge ModelTier = "large"

	// TierLarge2 is the newest large-model generation
	TierLarge2 ModelTier = "large2"
)

// ValidTier reports whether s names a recognized model tier.
func ValidTier(s string) bool {
	switch ModelTier(s) {
	case TierSmall, TierLarge, TierLarge2:
		return true
	}
	return false
}

// CompletionService is a stateless text-completion function over a hosted
// model endpoint. Implementations apply their own bounded timeout and
// rate limiting; a failed or timed-out call surfaces as an error the
// caller degrades on.
type CompletionService interface {
	// Complete generates text for the given prompt using the model mapped
	// to the requested tier. An unrecognized tier falls back to the
	// provider's configured default.
	Complete(ctx context.Context, tier ModelTier, prompt string) (string, error)

	// Provider returns the provider name ("claude" or "gemini").
	Provider() string

	// ModelName returns the provider model name a tier resolves to.
	ModelName(tier ModelTier) string

	// HealthCheck verifies the completion endpoint is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases client resources.
	Close() error
}
