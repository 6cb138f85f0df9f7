package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadscan/spreadscan/internal/market"
)

func linearSeries(n int, start, step float64) market.Series {
	bars := make(market.Series, n)
	for i := range bars {
		c := start + step*float64(i)
		bars[i] = market.PriceBar{Open: c, High: c + 0.5, Low: c - 0.5, Close: c}
	}
	return bars
}

func TestDetect_InsufficientDataIsConservative(t *testing.T) {
	detector := NewDetector(nil)
	result := detector.Detect(linearSeries(199, 100, 0.2))

	assert.Equal(t, Neutral, result.Regime, "199 bars must fall back to neutral")
	assert.Equal(t, 0.5, result.Confidence)
	assert.True(t, result.Adjustments.OnlyGradeA, "fail-safe default restricts to grade-A setups")
	assert.Empty(t, result.Signals)
}

func TestDetect_EmptySeries(t *testing.T) {
	result := NewDetector(nil).Detect(nil)
	assert.Equal(t, Neutral, result.Regime)
	assert.True(t, result.Adjustments.OnlyGradeA)
}

func TestDetect_BullishStructure(t *testing.T) {
	// 250 rising bars: price above both MAs and MA50 above MA200.
	result := NewDetector(nil).Detect(linearSeries(250, 100, 0.2))

	assert.Equal(t, Bull, result.Regime)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9, "unanimous bullish votes give full confidence")
	require.Len(t, result.Signals, 3)
	for _, s := range result.Signals {
		assert.Equal(t, "bullish", s.Signal, s.Name)
	}
	assert.Equal(t, 1.0, result.Adjustments.PositionMultiplier)
	assert.False(t, result.Adjustments.OnlyGradeA)
}

func TestDetect_BearishStructure(t *testing.T) {
	result := NewDetector(nil).Detect(linearSeries(250, 150, -0.2))

	assert.Equal(t, Bear, result.Regime)
	assert.True(t, result.Adjustments.OnlyGradeA)
	assert.Equal(t, 0.25, result.Adjustments.PositionMultiplier)
}

func TestDetect_MixedStructureIsNeutral(t *testing.T) {
	// Long uptrend with a sharp recent dip: above MA200, below MA50,
	// golden cross intact. Score 0.4 - 0.3 + 0.3 = 0.4 lands in neutral.
	bars := linearSeries(240, 100, 0.2)
	last := bars[len(bars)-1].Close
	for i := 1; i <= 10; i++ {
		c := last - 0.8*float64(i)
		bars = append(bars, market.PriceBar{Open: c, High: c + 0.5, Low: c - 0.5, Close: c})
	}
	result := NewDetector(nil).Detect(bars)

	assert.Equal(t, Neutral, result.Regime)
	assert.False(t, result.Adjustments.OnlyGradeA)
}

func TestDetect_SignalWeights(t *testing.T) {
	result := NewDetector(nil).Detect(linearSeries(250, 100, 0.2))
	require.Len(t, result.Signals, 3)
	assert.Equal(t, "price_vs_ma200", result.Signals[0].Name)
	assert.Equal(t, 0.4, result.Signals[0].Weight)
	assert.Equal(t, 0.3, result.Signals[1].Weight)
	assert.Equal(t, 0.3, result.Signals[2].Weight)
}
