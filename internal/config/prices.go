package config

import (
	"encoding/json"
	"fmt"

	"golfphysics/internal/types"
)

// ParsePriceIDs decodes the STRIPE_PRICE_IDS_JSON mapping into plan tiers.
// Unknown tier names are rejected so a typo in the deploy config is caught
// at startup rather than at checkout time.
func (b BillingConfig) ParsePriceIDs() (map[types.PlanTier]string, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(b.PriceIDs), &raw); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to parse STRIPE_PRICE_IDS_JSON",
			Err:     err,
		}
	}

	prices := make(map[types.PlanTier]string, len(raw))
	for name, priceID := range raw {
		tier := types.PlanTier(name)
		if !tier.Valid() {
			return nil, &ConfigError{
				Type:    ErrValidation,
				Message: fmt.Sprintf("unknown plan tier %q in STRIPE_PRICE_IDS_JSON", name),
			}
		}
		prices[tier] = priceID
	}
	return prices, nil
}
