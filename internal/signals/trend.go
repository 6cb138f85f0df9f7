package signals

import (
	"fmt"
	"math"

	"github.com/spreadscan/spreadscan/internal/indicators"
	"github.com/spreadscan/spreadscan/internal/market"
)

// ma50SupportTest awards points when price is settling onto the 50-bar MA
// while the long-term uptrend (price above 200-bar MA) is intact.
func (d *Detector) ma50SupportTest(bars market.Series, closes []float64) *Signal {
	if len(closes) < 200 {
		return nil
	}
	price := closes[len(closes)-1]
	ma50, ok50 := indicators.SMA(closes, 50)
	ma200, ok200 := indicators.SMA(closes, 200)
	if !ok50 || !ok200 || ma50 <= 0 || price <= ma200 {
		return nil
	}
	dist := math.Abs(price-ma50) / ma50 * 100
	if dist > 2.0 {
		return nil
	}
	return &Signal{
		Name:        "ma50_support_test",
		Category:    CategoryTechnical,
		Points:      8,
		Description: fmt.Sprintf("Price testing 50-day MA support (%.1f%% away) in uptrend", dist),
		Value:       dist,
	}
}

// ma20SupportTest is the shorter-term sibling of ma50SupportTest.
func (d *Detector) ma20SupportTest(bars market.Series, closes []float64) *Signal {
	if len(closes) < 200 {
		return nil
	}
	price := closes[len(closes)-1]
	ma20, ok20 := indicators.SMA(closes, 20)
	ma200, ok200 := indicators.SMA(closes, 200)
	if !ok20 || !ok200 || ma20 <= 0 || price <= ma200 {
		return nil
	}
	dist := math.Abs(price-ma20) / ma20 * 100
	if dist > 2.0 {
		return nil
	}
	return &Signal{
		Name:        "ma20_support_test",
		Category:    CategoryTechnical,
		Points:      5,
		Description: fmt.Sprintf("Price settling near 20-day MA (%.1f%% away) in uptrend", dist),
		Value:       dist,
	}
}

// pullbackInUptrend rewards a 5-15% pullback from the 20-bar high while the
// price still holds above the 200-bar MA.
func (d *Detector) pullbackInUptrend(bars market.Series, closes []float64) *Signal {
	if len(bars) < 200 {
		return nil
	}
	price := closes[len(closes)-1]
	ma200, ok := indicators.SMA(closes, 200)
	if !ok || price <= ma200 {
		return nil
	}
	high20, ok := bars.HighestClose(20)
	if !ok || high20 <= 0 {
		return nil
	}
	pullback := (high20 - price) / high20 * 100
	if pullback < 5.0 || pullback > 15.0 {
		return nil
	}
	return &Signal{
		Name:        "pullback_in_uptrend",
		Category:    CategoryTechnical,
		Points:      7,
		Description: fmt.Sprintf("%.1f%% pullback from 20-day high, long-term uptrend intact", pullback),
		Value:       pullback,
	}
}

// ma200ReclaimSetup handles the special case where price sits below but
// within 5% of the 200-bar MA. At least 2 of 3 confirmations must hold:
// the 50-bar MA is rising, price is above the 50-bar MA, and recent lows
// are higher. Strict trend filters would reject these about-to-reclaim
// setups outright.
func (d *Detector) ma200ReclaimSetup(bars market.Series, closes []float64) *Signal {
	if len(closes) < 200 {
		return nil
	}
	price := closes[len(closes)-1]
	ma200, ok := indicators.SMA(closes, 200)
	if !ok || ma200 <= 0 || price >= ma200 {
		return nil
	}
	shortfall := (ma200 - price) / ma200 * 100
	if shortfall > 5.0 {
		return nil
	}

	confirmations := 0
	ma50Now, okNow := indicators.SMA(closes, 50)
	ma50Prior, okPrior := indicators.SMAEndingAt(closes, 50, len(closes)-10)
	if okNow && okPrior && ma50Now > ma50Prior {
		confirmations++
	}
	if okNow && price > ma50Now {
		confirmations++
	}
	if recentLow, ok := bars[len(bars)-10:].LowestClose(10); ok {
		if priorLow, ok := bars[len(bars)-20 : len(bars)-10].LowestClose(10); ok && recentLow > priorLow {
			confirmations++
		}
	}
	if confirmations < 2 {
		return nil
	}

	return &Signal{
		Name:        "ma200_reclaim_setup",
		Category:    CategoryTechnical,
		Points:      6,
		Description: fmt.Sprintf("Price %.1f%% below 200-day MA with %d/3 reclaim confirmations", shortfall, confirmations),
		Value:       shortfall,
	}
}

// adxTrend grades trend strength from the 14-period ADX.
func (d *Detector) adxTrend(bars market.Series, closes []float64) *Signal {
	const period = 14
	if len(bars) < period*2+1 {
		return nil
	}
	adx := indicators.CalculateADX(bars, period)
	if !adx.IsValid {
		return nil
	}

	var points int
	switch {
	case adx.ADX >= 40:
		points = 7
	case adx.ADX >= 25:
		points = 5
	default:
		return nil
	}
	return &Signal{
		Name:        "adx_trend",
		Category:    CategoryTechnical,
		Points:      points,
		Description: fmt.Sprintf("Strong directional trend (ADX %.1f)", adx.ADX),
		Value:       adx.ADX,
	}
}

// range52wPosition grades where price sits in the trailing 52-week range.
func (d *Detector) range52wPosition(bars market.Series, closes []float64) *Signal {
	const tradingYear = 252
	if len(bars) < tradingYear {
		return nil
	}
	pos, ok := bars.RangePosition(tradingYear)
	if !ok {
		return nil
	}

	var points int
	var desc string
	switch {
	case pos >= 0.9:
		points, desc = 2, "near 52-week high"
	case pos >= 0.5:
		points, desc = 5, "upper half of 52-week range"
	case pos >= 0.25:
		points, desc = 3, "lower-middle of 52-week range"
	default:
		return nil
	}
	return &Signal{
		Name:        "range_52w_position",
		Category:    CategoryTechnical,
		Points:      points,
		Description: fmt.Sprintf("Price %s (%.0f%%)", desc, pos*100),
		Value:       pos,
	}
}
