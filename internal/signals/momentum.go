package signals

import (
	"fmt"

	"github.com/spreadscan/spreadscan/internal/indicators"
	"github.com/spreadscan/spreadscan/internal/market"
)

// rsiZone grades the 14-period RSI against five non-overlapping bands. The
// bands reward the ideal-pullback entry (35-50) rather than classic
// oversold/overbought extremes; above 70 there is no signal at all.
func (d *Detector) rsiZone(bars market.Series, closes []float64) *Signal {
	if len(closes) < d.config.RSIPeriod+1 {
		return nil
	}
	rsi := indicators.CalculateRSI(closes, d.config.RSIPeriod)
	if !rsi.IsValid {
		return nil
	}

	var points int
	var desc string
	switch {
	case rsi.Value >= 35 && rsi.Value < 50:
		points, desc = 10, "RSI in ideal pullback zone"
	case rsi.Value >= 30 && rsi.Value < 35:
		points, desc = 7, "RSI approaching oversold"
	case rsi.Value >= 50 && rsi.Value < 60:
		points, desc = 5, "RSI neutral with room to run"
	case rsi.Value >= 20 && rsi.Value < 30:
		points, desc = 4, "RSI oversold"
	case rsi.Value >= 60 && rsi.Value <= 70:
		points, desc = 2, "RSI elevated"
	default:
		return nil // Overbought (>70) or washed out (<20)
	}

	return &Signal{
		Name:        "rsi_zone",
		Category:    CategoryTechnical,
		Points:      points,
		Description: fmt.Sprintf("%s (RSI %.1f)", desc, rsi.Value),
		Value:       rsi.Value,
	}
}

// Divergence describes a bullish price/indicator divergence: price set a
// lower low while the indicator set a higher low.
type Divergence struct {
	FirstLowIdx   int
	SecondLowIdx  int
	PriceDropPc   float64 // How much lower the second price low is, percent
	IndicatorGain float64 // Indicator improvement between the two lows
}

// BullishDivergence runs the shared windowed swing-low scan over prices and
// compares the indicator at the two most recent swing lows inside the
// lookback window. It returns nil when fewer than two qualifying lows exist
// or the divergence conditions fail. prices and indicator must be aligned.
func BullishDivergence(prices, indicator []float64, cfg *Config) *Divergence {
	if len(prices) != len(indicator) {
		return nil
	}
	lows := indicators.SwingLows(prices, cfg.SwingRadius, cfg.SwingMinSeparation)
	if len(lows) < 2 {
		return nil
	}

	// Only consider lows inside the lookback window, keeping the two most
	// recent.
	cutoff := len(prices) - cfg.DivergenceLookback
	var inWindow []int
	for _, idx := range lows {
		if idx >= cutoff {
			inWindow = append(inWindow, idx)
		}
	}
	if len(inWindow) < 2 {
		return nil
	}
	i1 := inWindow[len(inWindow)-2]
	i2 := inWindow[len(inWindow)-1]

	if prices[i1] <= 0 {
		return nil
	}
	dropPc := (prices[i1] - prices[i2]) / prices[i1] * 100
	if dropPc < cfg.DivergenceMinDropPc {
		return nil // Second price low not meaningfully lower
	}
	if indicator[i2] <= indicator[i1] {
		return nil // Indicator confirmed the low: no divergence
	}

	return &Divergence{
		FirstLowIdx:   i1,
		SecondLowIdx:  i2,
		PriceDropPc:   dropPc,
		IndicatorGain: indicator[i2] - indicator[i1],
	}
}

// rsiDivergence looks for a bullish RSI divergence over the lookback window.
func (d *Detector) rsiDivergence(bars market.Series, closes []float64) *Signal {
	if len(closes) < d.config.RSIPeriod+d.config.DivergenceLookback+1 {
		return nil
	}
	rsiSeries := indicators.RSISeries(closes, d.config.RSIPeriod)
	div := BullishDivergence(closes, rsiSeries, d.config)
	if div == nil {
		return nil
	}
	return &Signal{
		Name:     "rsi_divergence",
		Category: CategoryTechnical,
		Points:   8,
		Description: fmt.Sprintf("Bullish RSI divergence: price -%.1f%%, RSI +%.1f",
			div.PriceDropPc, div.IndicatorGain),
		Value: div.IndicatorGain,
	}
}

// macdDivergence looks for a bullish MACD-histogram divergence.
func (d *Detector) macdDivergence(bars market.Series, closes []float64) *Signal {
	if len(closes) < 35+d.config.DivergenceLookback { // 26+9 MACD warm-up
		return nil
	}
	hist := indicators.MACDHistogram(closes)
	div := BullishDivergence(closes, hist, d.config)
	if div == nil {
		return nil
	}
	return &Signal{
		Name:     "macd_divergence",
		Category: CategoryTechnical,
		Points:   7,
		Description: fmt.Sprintf("Bullish MACD histogram divergence: price -%.1f%%, histogram +%.3f",
			div.PriceDropPc, div.IndicatorGain),
		Value: div.IndicatorGain,
	}
}

// CheckRSIDivergence exposes the RSI divergence check on raw closes.
func (d *Detector) CheckRSIDivergence(closes []float64) *Signal {
	return d.rsiDivergence(nil, closes)
}

// CheckMACDDivergence exposes the MACD histogram divergence check on raw
// closes.
func (d *Detector) CheckMACDDivergence(closes []float64) *Signal {
	return d.macdDivergence(nil, closes)
}
