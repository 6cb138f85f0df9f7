package indicators

import (
	"math"

	"github.com/spreadscan/spreadscan/internal/market"
)

// RSIResult represents the result of RSI calculation
type RSIResult struct {
	Value     float64 `json:"value"`
	Period    int     `json:"period"`
	IsValid   bool    `json:"is_valid"`
	DataCount int     `json:"data_count"`
}

// CalculateRSI calculates the Relative Strength Index for the given closes
// using Wilder's smoothing.
func CalculateRSI(prices []float64, period int) RSIResult {
	if period <= 0 || len(prices) < period+1 {
		return RSIResult{
			Value:     50.0, // Neutral RSI when insufficient data
			Period:    period,
			IsValid:   false,
			DataCount: len(prices),
		}
	}

	series := RSISeries(prices, period)
	return RSIResult{
		Value:     series[len(series)-1],
		Period:    period,
		IsValid:   true,
		DataCount: len(prices),
	}
}

// RSISeries returns an RSI value aligned to every input bar. Entries before
// the warm-up window hold the neutral value 50. Callers must ensure
// len(prices) >= period+1.
func RSISeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = 50.0
	}
	if period <= 0 || len(prices) < period+1 {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFromAverages(avgGain, avgLoss)

	// Wilder's smoothing for subsequent bars
	alpha := 1.0 / float64(period)
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = avgGain*(1-alpha) + gain*alpha
		avgLoss = avgLoss*(1-alpha) + loss*alpha
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// SMA returns the simple moving average of the trailing period values.
func SMA(values []float64, period int) (float64, bool) {
	return SMAEndingAt(values, period, len(values))
}

// SMAEndingAt returns the simple moving average of the period values ending
// just before index end. Useful for comparing a moving average against its
// own past value.
func SMAEndingAt(values []float64, period, end int) (float64, bool) {
	if period <= 0 || end > len(values) || end < period {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[end-period : end] {
		sum += v
	}
	return sum / float64(period), true
}

// EMASeries returns an exponential moving average aligned to every input
// value, seeded with the SMA of the first period values.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		copy(out, values)
		return out
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
		out[i] = values[i]
	}
	seed /= float64(period)
	out[period-1] = seed

	k := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// MACDHistogram returns the MACD histogram (MACD line minus signal line)
// aligned to every input bar, using the standard 12/26/9 periods.
func MACDHistogram(prices []float64) []float64 {
	const (
		fastPeriod   = 12
		slowPeriod   = 26
		signalPeriod = 9
	)
	out := make([]float64, len(prices))
	if len(prices) < slowPeriod+signalPeriod {
		return out
	}

	fast := EMASeries(prices, fastPeriod)
	slow := EMASeries(prices, slowPeriod)
	macd := make([]float64, len(prices))
	for i := range prices {
		macd[i] = fast[i] - slow[i]
	}
	signal := EMASeries(macd, signalPeriod)
	for i := range prices {
		out[i] = macd[i] - signal[i]
	}
	return out
}

// ADXResult represents the result of ADX calculation
type ADXResult struct {
	ADX       float64 `json:"adx"`
	PDI       float64 `json:"pdi"` // Plus Directional Indicator
	MDI       float64 `json:"mdi"` // Minus Directional Indicator
	Period    int     `json:"period"`
	IsValid   bool    `json:"is_valid"`
	DataCount int     `json:"data_count"`
}

// CalculateADX calculates the Average Directional Index for trend strength.
func CalculateADX(bars market.Series, period int) ADXResult {
	if period <= 0 || len(bars) < period*2+1 { // Need extra data for smoothing
		return ADXResult{Period: period, IsValid: false, DataCount: len(bars)}
	}

	trueRanges := make([]float64, len(bars)-1)
	plusDM := make([]float64, len(bars)-1)
	minusDM := make([]float64, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		cur, prev := bars[i], bars[i-1]

		hl := cur.High - cur.Low
		hc := math.Abs(cur.High - prev.Close)
		lc := math.Abs(cur.Low - prev.Close)
		trueRanges[i-1] = math.Max(hl, math.Max(hc, lc))

		plusMove := cur.High - prev.High
		minusMove := prev.Low - cur.Low
		if plusMove > minusMove && plusMove > 0 {
			plusDM[i-1] = plusMove
		}
		if minusMove > plusMove && minusMove > 0 {
			minusDM[i-1] = minusMove
		}
	}

	smoothedTR := 0.0
	smoothedPlusDM := 0.0
	smoothedMinusDM := 0.0
	for i := 0; i < period; i++ {
		smoothedTR += trueRanges[i]
		smoothedPlusDM += plusDM[i]
		smoothedMinusDM += minusDM[i]
	}

	alpha := 1.0 / float64(period)
	for i := period; i < len(trueRanges); i++ {
		smoothedTR = smoothedTR*(1-alpha) + trueRanges[i]*alpha
		smoothedPlusDM = smoothedPlusDM*(1-alpha) + plusDM[i]*alpha
		smoothedMinusDM = smoothedMinusDM*(1-alpha) + minusDM[i]*alpha
	}

	var pdi, mdi, adx float64
	if smoothedTR > 0 {
		pdi = 100.0 * smoothedPlusDM / smoothedTR
		mdi = 100.0 * smoothedMinusDM / smoothedTR
		if sum := pdi + mdi; sum > 0 {
			adx = 100.0 * math.Abs(pdi-mdi) / sum
		}
	}

	return ADXResult{
		ADX:       adx,
		PDI:       pdi,
		MDI:       mdi,
		Period:    period,
		IsValid:   true,
		DataCount: len(bars),
	}
}

// BollingerPercentB returns the %B position of the latest close inside the
// Bollinger band over the trailing period bars (k standard deviations).
// Returns false when data is insufficient or the band has zero width.
func BollingerPercentB(prices []float64, period int, k float64) (float64, bool) {
	mid, ok := SMA(prices, period)
	if !ok {
		return 0, false
	}
	variance := 0.0
	for _, v := range prices[len(prices)-period:] {
		variance += (v - mid) * (v - mid)
	}
	variance /= float64(period)
	std := math.Sqrt(variance)
	if std == 0 {
		return 0, false
	}
	upper := mid + k*std
	lower := mid - k*std
	last := prices[len(prices)-1]
	return (last - lower) / (upper - lower), true
}
