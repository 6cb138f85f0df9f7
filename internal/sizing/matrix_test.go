package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/regime"
)

func TestSize_VeryHighBullFull(t *testing.T) {
	s := Size(confidence.VeryHigh, regime.Bull, 350, 100000, 2.0)

	assert.Equal(t, Full, s.Size)
	assert.Equal(t, 100.0, s.Percentage)
	assert.InDelta(t, 2000.0, s.MaxRiskDollars, 1e-9)
	assert.Equal(t, 5, s.MaxContracts, "floor of 2000/350")
	assert.NotEmpty(t, s.Reasoning)
}

func TestSize_RegimeDegradesTier(t *testing.T) {
	bull := Size(confidence.High, regime.Bull, 350, 100000, 2.0)
	neutral := Size(confidence.High, regime.Neutral, 350, 100000, 2.0)
	bear := Size(confidence.High, regime.Bear, 350, 100000, 2.0)

	assert.Equal(t, ThreeQuarter, bull.Size)
	assert.Equal(t, Half, neutral.Size)
	assert.Equal(t, Skip, bear.Size)
	assert.Equal(t, 0, bear.MaxContracts)
	assert.Equal(t, 0.0, bear.MaxRiskDollars)
}

func TestSize_InsufficientAlwaysSkips(t *testing.T) {
	for _, reg := range []regime.Regime{regime.Bull, regime.Neutral, regime.Caution, regime.Bear} {
		s := Size(confidence.Insufficient, reg, 350, 100000, 2.0)
		assert.Equal(t, Skip, s.Size, "regime %s", reg)
		assert.Equal(t, 0, s.MaxContracts)
	}
}

func TestSize_LowConfidenceOnlyBull(t *testing.T) {
	assert.Equal(t, Quarter, Size(confidence.Low, regime.Bull, 350, 100000, 2.0).Size)
	assert.Equal(t, Skip, Size(confidence.Low, regime.Neutral, 350, 100000, 2.0).Size)
	assert.Equal(t, Skip, Size(confidence.Low, regime.Caution, 350, 100000, 2.0).Size)
}

func TestSize_NonPositiveMaxLoss(t *testing.T) {
	s := Size(confidence.VeryHigh, regime.Bull, 0, 100000, 2.0)
	assert.Equal(t, Full, s.Size)
	assert.Equal(t, 0, s.MaxContracts, "unsizable risk must not produce contracts")
}

func TestSize_BudgetSmallerThanOneContract(t *testing.T) {
	// 25% of a 2% budget on a 25k account is $125; a $350-risk spread does
	// not fit even once.
	s := Size(confidence.VeryHigh, regime.Bear, 350, 25000, 2.0)
	assert.Equal(t, Quarter, s.Size)
	assert.Equal(t, 0, s.MaxContracts)
}

func TestSize_UnknownLevelTreatedAsInsufficient(t *testing.T) {
	s := Size(confidence.Level("bogus"), regime.Bull, 350, 100000, 2.0)
	assert.Equal(t, Skip, s.Size)
	assert.Equal(t, 0, s.MaxContracts)
}

func TestSize_UnknownRegimeSkips(t *testing.T) {
	s := Size(confidence.VeryHigh, regime.Regime("sideways"), 350, 100000, 2.0)
	assert.Equal(t, Skip, s.Size)
}
