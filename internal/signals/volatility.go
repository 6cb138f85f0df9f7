package signals

import (
	"fmt"

	"github.com/spreadscan/spreadscan/internal/indicators"
	"github.com/spreadscan/spreadscan/internal/market"
)

// bollingerPosition grades the close's %B position inside the 20-bar,
// 2-sigma Bollinger band. Entries near the lower band score best.
func (d *Detector) bollingerPosition(bars market.Series, closes []float64) *Signal {
	const (
		period = 20
		sigma  = 2.0
	)
	if len(closes) < period {
		return nil
	}
	pctB, ok := indicators.BollingerPercentB(closes, period, sigma)
	if !ok {
		return nil
	}

	var points int
	var desc string
	switch {
	case pctB <= 0.2:
		points, desc = 6, "hugging lower Bollinger band"
	case pctB <= 0.4:
		points, desc = 4, "lower half of Bollinger band"
	default:
		return nil
	}
	return &Signal{
		Name:        "bollinger_position",
		Category:    CategoryTechnical,
		Points:      points,
		Description: fmt.Sprintf("Price %s (%%B %.2f)", desc, pctB),
		Value:       pctB,
	}
}
