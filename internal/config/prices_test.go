package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

func TestParsePriceIDs(t *testing.T) {
	b := BillingConfig{PriceIDs: `{"starter":"price_1","professional":"price_2"}`}

	prices, err := b.ParsePriceIDs()
	require.NoError(t, err)
	assert.Equal(t, "price_1", prices[types.TierStarter])
	assert.Equal(t, "price_2", prices[types.TierProfessional])
}

func TestParsePriceIDsUnknownTier(t *testing.T) {
	b := BillingConfig{PriceIDs: `{"platinum":"price_9"}`}

	_, err := b.ParsePriceIDs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platinum")
}

func TestParsePriceIDsMalformed(t *testing.T) {
	b := BillingConfig{PriceIDs: `{`}

	_, err := b.ParsePriceIDs()
	require.Error(t, err)
}
