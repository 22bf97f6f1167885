package llm

import (
	"testing"

	"github.com/moneyfornothin/taxchat/internal/common"
	"github.com/moneyfornothin/taxchat/internal/interfaces"
)

func testTierMap() common.ModelTierMap {
	return common.ModelTierMap{
		Small:  "model-small",
		Large:  "model-large",
		Large2: "model-large2",
	}
}

func TestTierTable_ResolvesConfiguredTiers(t *testing.T) {
	table, err := newTierTable(testTierMap(), interfaces.TierLarge)
	if err != nil {
		t.Fatalf("newTierTable failed: %v", err)
	}

	cases := []struct {
		tier interfaces.ModelTier
		want string
	}{
		{interfaces.TierSmall, "model-small"},
		{interfaces.TierLarge, "model-large"},
		{interfaces.TierLarge2, "model-large2"},
	}
	for _, tc := range cases {
		if got := table.name(tc.tier); got != tc.want {
			t.Errorf("Tier %s: expected %s, got %s", tc.tier, tc.want, got)
		}
	}
}

func TestTierTable_UnknownTierFallsBackToDefault(t *testing.T) {
	table, err := newTierTable(testTierMap(), interfaces.TierLarge)
	if err != nil {
		t.Fatalf("newTierTable failed: %v", err)
	}

	if got := table.name(interfaces.ModelTier("mistral-7b")); got != "model-large" {
		t.Errorf("Expected default tier model, got %s", got)
	}
}

func TestTierTable_RejectsMissingModel(t *testing.T) {
	tiers := testTierMap()
	tiers.Large2 = ""
	if _, err := newTierTable(tiers, interfaces.TierLarge); err == nil {
		t.Error("Expected error for tier without a model name")
	}
}

func TestNewCallLimiter(t *testing.T) {
	limiter, err := newCallLimiter("1s")
	if err != nil {
		t.Fatalf("newCallLimiter failed: %v", err)
	}
	if limiter.Limit() != 1 {
		t.Errorf("Expected 1 call/s, got %v", limiter.Limit())
	}

	if _, err := newCallLimiter("not-a-duration"); err == nil {
		t.Error("Expected error for invalid interval")
	}

	unlimited, err := newCallLimiter("")
	if err != nil {
		t.Fatalf("newCallLimiter failed for empty interval: %v", err)
	}
	if !unlimited.Allow() {
		t.Error("Expected unlimited limiter to allow immediately")
	}
}
