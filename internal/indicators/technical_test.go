package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadscan/spreadscan/internal/market"
)

func TestCalculateRSI_InsufficientData(t *testing.T) {
	prices := []float64{100, 101, 102}
	result := CalculateRSI(prices, 14)

	assert.False(t, result.IsValid, "3 bars cannot support a 14-period RSI")
	assert.Equal(t, 50.0, result.Value, "insufficient data should report neutral RSI")
	assert.Equal(t, 3, result.DataCount)
}

func TestCalculateRSI_AllGains(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	result := CalculateRSI(prices, 14)

	require.True(t, result.IsValid)
	assert.Equal(t, 100.0, result.Value, "no losses should pin RSI at 100")
}

func TestCalculateRSI_MixedTape(t *testing.T) {
	// Alternating +1/-1.2 keeps losses slightly ahead of gains.
	prices := make([]float64, 61)
	prices[0] = 100
	for i := 1; i < len(prices); i++ {
		if i%2 == 1 {
			prices[i] = prices[i-1] + 1.0
		} else {
			prices[i] = prices[i-1] - 1.2
		}
	}
	result := CalculateRSI(prices, 14)

	require.True(t, result.IsValid)
	assert.Greater(t, result.Value, 35.0)
	assert.Less(t, result.Value, 50.0, "loss-heavy alternation should sit below neutral")
}

func TestRSISeries_AlignmentAndWarmup(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	series := RSISeries(prices, 14)

	require.Len(t, series, len(prices))
	for i := 0; i < 14; i++ {
		assert.Equal(t, 50.0, series[i], "warm-up entries hold the neutral value")
	}
	assert.Equal(t, 100.0, series[len(series)-1])
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	avg, ok := SMA(values, 5)
	require.True(t, ok)
	assert.InDelta(t, 8.0, avg, 1e-9)

	early, ok := SMAEndingAt(values, 5, 5)
	require.True(t, ok)
	assert.InDelta(t, 3.0, early, 1e-9)

	_, ok = SMA(values, 11)
	assert.False(t, ok, "period longer than data must fail")
}

func TestMACDHistogram_ConstantSeries(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100
	}
	hist := MACDHistogram(prices)

	require.Len(t, hist, len(prices))
	for _, v := range hist {
		assert.InDelta(t, 0.0, v, 1e-9, "flat prices have a flat histogram")
	}
}

func TestBollingerPercentB(t *testing.T) {
	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 100
	}
	_, ok := BollingerPercentB(flat, 20, 2)
	assert.False(t, ok, "zero-width band must be rejected, never NaN")

	rising := make([]float64, 25)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	pctB, ok := BollingerPercentB(rising, 20, 2)
	require.True(t, ok)
	assert.Greater(t, pctB, 0.5, "latest close of a rising series sits in the upper band")
}

func TestCalculateADX_TrendingSeries(t *testing.T) {
	bars := make(market.Series, 60)
	for i := range bars {
		c := 100 + float64(i)*0.5
		bars[i] = market.PriceBar{High: c + 0.5, Low: c - 0.5, Close: c}
	}
	result := CalculateADX(bars, 14)

	require.True(t, result.IsValid)
	assert.Greater(t, result.ADX, 25.0, "a steady uptrend is a strong directional trend")
	assert.Greater(t, result.PDI, result.MDI)
}

func TestCalculateADX_InsufficientData(t *testing.T) {
	bars := make(market.Series, 20)
	result := CalculateADX(bars, 14)
	assert.False(t, result.IsValid)
}
