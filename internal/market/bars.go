// Package market holds the price-bar primitives every detector and scorer
// consumes. Bars are ordered oldest first.
package market

import "time"

// PriceBar is one OHLCV bar.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered run of bars, oldest first.
type Series []PriceBar

// Closes returns the close of every bar, aligned to the series.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high of every bar, aligned to the series.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows returns the low of every bar, aligned to the series.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// HighestClose returns the maximum close over the trailing n bars.
func (s Series) HighestClose(n int) (float64, bool) {
	if n <= 0 || len(s) < n {
		return 0, false
	}
	high := s[len(s)-n].Close
	for _, b := range s[len(s)-n:] {
		if b.Close > high {
			high = b.Close
		}
	}
	return high, true
}

// LowestClose returns the minimum close over the trailing n bars.
func (s Series) LowestClose(n int) (float64, bool) {
	if n <= 0 || len(s) < n {
		return 0, false
	}
	low := s[len(s)-n].Close
	for _, b := range s[len(s)-n:] {
		if b.Close < low {
			low = b.Close
		}
	}
	return low, true
}

// RangePosition returns where the last close sits inside the trailing n-bar
// close range: 0 at the low, 1 at the high. A flat range has no position.
func (s Series) RangePosition(n int) (float64, bool) {
	high, okH := s.HighestClose(n)
	low, okL := s.LowestClose(n)
	if !okH || !okL || high == low {
		return 0, false
	}
	return (s.LastClose() - low) / (high - low), true
}
