package llm

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

// tierTable maps the three quality tiers onto provider model names. An
// unrecognized tier resolves to the configured default tier's model, so a
// bad per-request override degrades instead of failing the turn.
type tierTable struct {
	models      map[interfaces.ModelTier]string
	defaultTier interfaces.ModelTier
}

func newTierTable(models common.ModelTierMap, defaultTier interfaces.ModelTier) (tierTable, error) {
	table := tierTable{
		models: map[interfaces.ModelTier]string{
			interfaces.TierSmall:  models.Small,
			interfaces.TierLarge:  models.Large,
			interfaces.TierLarge2: models.Large2,
		},
		defaultTier: defaultTier,
	}

	for tier, name := range table.models {
		if name == "" {
			return tierTable{}, fmt.Errorf("no model configured for tier %q", tier)
		}
	}
	if _, ok := table.models[defaultTier]; !ok {
		return tierTable{}, fmt.Errorf("unknown default tier %q", defaultTier)
	}

	return table, nil
}

// name resolves a tier to a provider model name.
func (t tierTable) name(tier interfaces.ModelTier) string {
	if model, ok := t.models[tier]; ok {
		return model
	}
	return t.models[t.defaultTier]
}

// newCallLimiter builds a rate limiter from a minimum-interval duration
// string such as "1s" or "4s". An empty interval disables limiting.
func newCallLimiter(interval string) (*rate.Limiter, error) {
	if interval == "" {
		return rate.NewLimiter(rate.Inf, 1), nil
	}
	d, err := time.ParseDuration(interval)
	if err != nil {
		return nil, err
	}
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1), nil
	}
	return rate.NewLimiter(rate.Every(d), 1), nil
}
